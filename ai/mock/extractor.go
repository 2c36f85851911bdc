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

	"github.com/poiesic/reach/ai"
)

// MockProfileExtractor is a test double for ai.ProfileExtractor.
// It allows custom behavior injection via function fields.
type MockProfileExtractor struct {
	// ExtractProfileFunc is called by ExtractProfile if set.
	// If nil, uses default word-based tag extraction.
	ExtractProfileFunc func(ctx context.Context, captureContext, cardText string) (*ai.ExtractedProfile, error)

	callCount int
}

// NewMockProfileExtractor creates a mock profile extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockProfileExtractor() *MockProfileExtractor {
	return &MockProfileExtractor{}
}

// ExtractProfile extracts a simple mock profile.
// Default behavior: tags are the first five lowercase words of the
// context longer than three characters.
func (m *MockProfileExtractor) ExtractProfile(ctx context.Context, captureContext, cardText string) (*ai.ExtractedProfile, error) {
	m.callCount++

	if m.ExtractProfileFunc != nil {
		return m.ExtractProfileFunc(ctx, captureContext, cardText)
	}

	words := strings.Fields(strings.ToLower(captureContext))
	tags := make([]string, 0, 5)
	seen := make(map[string]bool)
	for _, word := range words {
		if len(tags) >= 5 {
			break
		}
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) <= 3 || seen[word] {
			continue
		}
		seen[word] = true
		tags = append(tags, word)
	}

	return &ai.ExtractedProfile{Tags: tags}, nil
}

// CallCount returns the number of times ExtractProfile was called.
func (m *MockProfileExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockProfileExtractor) Reset() {
	m.callCount = 0
	m.ExtractProfileFunc = nil
}
