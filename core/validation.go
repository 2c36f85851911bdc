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

import (
	"fmt"
	"strings"
)

// ValidateContact validates a Contact according to domain rules.
//
// Validation rules:
//   - Name must not be empty (or whitespace only)
//   - Priority must be within 0-100
//
// NOT validated (populated later by processors and collaborators):
//   - Tags (may be empty, and may contain duplicates by design)
//   - Enrichment (written only by the enrichment collaborator)
//   - Id and CreatedAt (assigned by storage at creation)
func ValidateContact(contact *Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}

	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyName)
	}

	if contact.Priority < 0 || contact.Priority > 100 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidContact, ErrPriorityRange, contact.Priority)
	}

	return nil
}

// ValidateQuery validates a raw search query string.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}
