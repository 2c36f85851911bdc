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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/tmc/langchaingo/llms"
)

// Explainer implements ai.Explainer using OpenAI-compatible chat APIs.
type Explainer struct {
	client      llms.Model
	callTimeout time.Duration
	logger      *slog.Logger
}

var _ ai.Explainer = (*Explainer)(nil)

// newExplainer is an internal constructor that returns the concrete type.
func newExplainer(client llms.Model, callTimeout time.Duration) *Explainer {
	return &Explainer{
		client:      client,
		callTimeout: callTimeout,
		logger:      slog.Default().With("component", "openai-explainer"),
	}
}

// NewExplainer creates a new explainer using the provided configuration.
//
// Returns ai.Explainer interface to enforce abstraction.
func NewExplainer(config *ai.Config) (ai.Explainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return newExplainer(client, config.CallTimeout), nil
}

// ExplainResults generates a short conversational explanation of why the
// top match answers the query. A single attempt; errors go back to the
// caller, which falls back to a deterministic template.
func (e *Explainer) ExplainResults(ctx context.Context, query string, top *core.ScoredContact, totalMatches int) (string, error) {
	company := top.Contact.Company
	if company == "" {
		company = "Unknown company"
	}

	prompt := fmt.Sprintf(explanationPromptTemplate,
		query,
		top.Contact.Name,
		company,
		strings.Join(top.MatchReasons, ", "),
		totalMatches)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	callCtx, cancel := callContext(ctx, e.callTimeout)
	defer cancel()

	response, err := e.client.GenerateContent(callCtx, content, llms.WithTemperature(0.0))
	if err != nil {
		e.logger.Error("failed to generate explanation", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		e.logger.Warn("no choices returned from model")
		return "", ErrNoCompletion
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
