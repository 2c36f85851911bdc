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


package mock

import (
	"context"
	"strings"

	"github.com/poiesic/reach/core"
)

// MockIntentParser is a test double for ai.IntentParser.
// It allows custom behavior injection via function fields.
type MockIntentParser struct {
	// ParseIntentFunc is called by ParseIntent if set.
	// If nil, uses default keyword extraction.
	ParseIntentFunc func(ctx context.Context, query string) (*core.SearchIntent, error)

	callCount int
}

// NewMockIntentParser creates a mock intent parser with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockParser().
func NewMockIntentParser() *MockIntentParser {
	return &MockIntentParser{}
}

// ParseIntent parses a simple mock intent from the query.
// Default behavior: general intent with lowercase words longer than
// two characters as keywords.
func (m *MockIntentParser) ParseIntent(ctx context.Context, query string) (*core.SearchIntent, error) {
	m.callCount++

	if m.ParseIntentFunc != nil {
		return m.ParseIntentFunc(ctx, query)
	}

	words := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 2 {
			keywords = append(keywords, word)
		}
	}

	return &core.SearchIntent{
		Type:          core.IntentGeneral,
		Keywords:      keywords,
		OriginalQuery: query,
	}, nil
}

// CallCount returns the number of times ParseIntent was called.
func (m *MockIntentParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentParser) Reset() {
	m.callCount = 0
	m.ParseIntentFunc = nil
}
