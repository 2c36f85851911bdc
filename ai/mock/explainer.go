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
	"fmt"

	"github.com/poiesic/reach/core"
)

// MockExplainer is a test double for ai.Explainer.
// It allows custom behavior injection via function fields.
type MockExplainer struct {
	// ExplainResultsFunc is called by ExplainResults if set.
	// If nil, returns a deterministic canned explanation.
	ExplainResultsFunc func(ctx context.Context, query string, top *core.ScoredContact, totalMatches int) (string, error)

	callCount int
}

// NewMockExplainer creates a mock explainer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExplainer().
func NewMockExplainer() *MockExplainer {
	return &MockExplainer{}
}

// ExplainResults returns a deterministic explanation of the results.
func (m *MockExplainer) ExplainResults(ctx context.Context, query string, top *core.ScoredContact, totalMatches int) (string, error) {
	m.callCount++

	if m.ExplainResultsFunc != nil {
		return m.ExplainResultsFunc(ctx, query, top, totalMatches)
	}

	return fmt.Sprintf("Mock explanation for %q with %d matches.", query, totalMatches), nil
}

// CallCount returns the number of times ExplainResults was called.
func (m *MockExplainer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExplainer) Reset() {
	m.callCount = 0
	m.ExplainResultsFunc = nil
}
