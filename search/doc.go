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


// Package search provides intent-driven and field-weighted contact search.
//
// The Pipeline type implements a multi-stage search algorithm:
//   - Intent parsing via an LLM, with a deterministic keyword fallback
//   - Intent-driven scoring over filters, timeframe, priority, and keywords
//   - Result composition with a natural-language explanation
//
// Two additional strategies complement the pipeline: a field-weighted
// substring matcher for incremental text search, and a simple keyword
// search used when the LLM path is unavailable. All three rank results
// by score descending and never call out to AI services except where
// noted.
package search
