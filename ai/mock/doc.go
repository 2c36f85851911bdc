// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.IntentParser, ai.Explainer,
// ai.ProfileExtractor, and ai.AIProvider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	intent, err := mockProvider.IntentParser().ParseIntent(ctx, "test query")
//
//	// Custom behavior injection
//	mockParser := mock.NewMockIntentParser()
//	mockParser.ParseIntentFunc = func(ctx context.Context, query string) (*core.SearchIntent, error) {
//	    return nil, errors.New("model unavailable")
//	}
//
//	// Check call counts
//	count := mockParser.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockIntentParser: Returns a general intent with word keywords
//   - MockExplainer: Returns a canned explanation string
//   - MockProfileExtractor: Extracts tags from words in the context
//   - MockProvider: Aggregates the three mocks above
package mock
