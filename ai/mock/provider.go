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

import "github.com/poiesic/reach/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock parser, explainer, and extractor instances.
type MockProvider struct {
	parser    *MockIntentParser
	explainer *MockExplainer
	extractor *MockProfileExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockParser()/GetMockExplainer()/GetMockExtractor() to access concrete
// types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		parser:    NewMockIntentParser(),
		explainer: NewMockExplainer(),
		extractor: NewMockProfileExtractor(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(parser *MockIntentParser, explainer *MockExplainer, extractor *MockProfileExtractor) ai.AIProvider {
	return &MockProvider{
		parser:    parser,
		explainer: explainer,
		extractor: extractor,
	}
}

// IntentParser returns the mock intent parser.
func (p *MockProvider) IntentParser() ai.IntentParser {
	return p.parser
}

// Explainer returns the mock explainer.
func (p *MockProvider) Explainer() ai.Explainer {
	return p.explainer
}

// ProfileExtractor returns the mock profile extractor.
func (p *MockProvider) ProfileExtractor() ai.ProfileExtractor {
	return p.extractor
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockParser returns the underlying mock parser for test assertions.
func (p *MockProvider) GetMockParser() *MockIntentParser {
	return p.parser
}

// GetMockExplainer returns the underlying mock explainer for test assertions.
func (p *MockProvider) GetMockExplainer() *MockExplainer {
	return p.explainer
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockProfileExtractor {
	return p.extractor
}
