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
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/tmc/langchaingo/llms"
)

// IntentParser implements ai.IntentParser using OpenAI-compatible chat APIs.
type IntentParser struct {
	client      llms.Model
	callTimeout time.Duration
	logger      *slog.Logger
}

var _ ai.IntentParser = (*IntentParser)(nil)

// intentPayload matches the JSON structure requested from the LLM.
type intentPayload struct {
	Type     string   `json:"type"`
	Keywords []string `json:"keywords"`
	Filters  struct {
		Name      string `json:"name"`
		Company   string `json:"company"`
		Industry  string `json:"industry"`
		Location  string `json:"location"`
		Timeframe string `json:"timeframe"`
		Priority  string `json:"priority"`
	} `json:"filters"`
}

// newIntentParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentParser(client llms.Model, callTimeout time.Duration) *IntentParser {
	return &IntentParser{
		client:      client,
		callTimeout: callTimeout,
		logger:      slog.Default().With("component", "openai-intent-parser"),
	}
}

// NewIntentParser creates a new intent parser using the provided configuration.
//
// Returns ai.IntentParser interface to enforce abstraction.
func NewIntentParser(config *ai.Config) (ai.IntentParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return newIntentParser(client, config.CallTimeout), nil
}

// ParseIntent extracts a structured search intent from a voice/text query.
// A single attempt is made: any transport error or malformed response is
// returned as-is so the pipeline can substitute its deterministic
// fallback. No retries.
func (p *IntentParser) ParseIntent(ctx context.Context, query string) (*core.SearchIntent, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(intentSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	callCtx, cancel := callContext(ctx, p.callTimeout)
	defer cancel()

	response, err := p.client.GenerateContent(callCtx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		p.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		p.logger.Warn("no choices returned from model")
		return nil, ErrNoCompletion
	}

	responseText := stripCodeFences(response.Choices[0].Content)
	responseText = repairJSON(responseText)

	var payload intentPayload
	if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
		p.logger.Warn("error parsing intent response", "response", responseText, "err", err)
		return nil, err
	}

	intent := payloadToIntent(&payload, query)
	p.logger.Debug("parsed intent",
		"type", intent.Type,
		"keywords", len(intent.Keywords))
	return intent, nil
}

// payloadToIntent converts the raw LLM payload into a domain intent,
// discarding values outside the allowed enumerations.
func payloadToIntent(payload *intentPayload, query string) *core.SearchIntent {
	intent := &core.SearchIntent{
		Type:          core.IntentGeneral,
		Keywords:      make([]string, 0, len(payload.Keywords)),
		OriginalQuery: query,
	}

	switch t := core.IntentType(strings.ToLower(payload.Type)); t {
	case core.IntentName, core.IntentCompany, core.IntentIndustry,
		core.IntentLocation, core.IntentTime, core.IntentGeneral:
		intent.Type = t
	}

	for _, kw := range payload.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			intent.Keywords = append(intent.Keywords, kw)
		}
	}

	intent.Filters = core.IntentFilters{
		Name:      strings.TrimSpace(payload.Filters.Name),
		Company:   strings.TrimSpace(payload.Filters.Company),
		Industry:  strings.TrimSpace(payload.Filters.Industry),
		Location:  strings.TrimSpace(payload.Filters.Location),
		Timeframe: strings.TrimSpace(payload.Filters.Timeframe),
	}

	switch b := core.PriorityBand(strings.ToLower(payload.Filters.Priority)); b {
	case core.PriorityHigh, core.PriorityMedium, core.PriorityLow:
		intent.Filters.Priority = b
	}

	return intent
}
