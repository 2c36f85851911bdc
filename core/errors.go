// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidContact indicates a Contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrPriorityRange indicates a priority value outside 0-100.
	ErrPriorityRange = errors.New("priority must be between 0 and 100")

	// ErrEmptyQuery indicates a search query with no content.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
