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


package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// All three services share one chat client and model.
type Provider struct {
	config    *ai.Config
	parser    *IntentParser
	explainer *Explainer
	extractor *ProfileExtractor
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		parser:    newIntentParser(client, config.CallTimeout),
		explainer: newExplainer(client, config.CallTimeout),
		extractor: newProfileExtractor(client, config.CallTimeout),
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// callContext bounds a single chat call. A zero or negative timeout
// leaves the parent context untouched; callers still holding a
// cancelable parent keep that behavior either way.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// newClient creates the shared OpenAI-compatible chat client.
// Uses "none" as token for local services that don't require authentication.
func newClient(config *ai.Config) (llms.Model, error) {
	token := config.Token
	if token == "" {
		token = "none"
	}
	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
}

// IntentParser returns the query intent parsing service.
func (p *Provider) IntentParser() ai.IntentParser {
	return p.parser
}

// Explainer returns the result explanation service.
func (p *Provider) Explainer() ai.Explainer {
	return p.explainer
}

// ProfileExtractor returns the profile extraction service.
func (p *Provider) ProfileExtractor() ai.ProfileExtractor {
	return p.extractor
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
