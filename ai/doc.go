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


// Package ai provides abstractions for the language-understanding
// services used in reach.
//
// This package defines interfaces for query intent parsing, result
// explanation, and contact profile extraction. It follows the
// dependency inversion principle, allowing the search pipeline and
// ingestion flow to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - IntentParser: structured interpretation of voice/text queries
//   - Explainer: natural-language explanation of result sets
//   - ProfileExtractor: contact fields + tags from capture context
//
// All three are single-attempt services: a failed call is reported to
// the caller, which substitutes a deterministic fallback. No service
// retries internally, so a broken upstream degrades answer quality but
// never availability.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors (openai.NewProvider, ...) return interface types
// to enforce abstraction; mock constructors return concrete types so
// tests can inject behavior and assert call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithHost(host), ai.WithModel("gpt-4o-mini"), ai.WithToken(token))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	intent, err := provider.IntentParser().ParseIntent(ctx, "find Bob from Acme")
package ai
