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
	"github.com/tmc/langchaingo/llms"
)

// ProfileExtractor implements ai.ProfileExtractor using OpenAI-compatible
// chat APIs.
type ProfileExtractor struct {
	client      llms.Model
	callTimeout time.Duration
	logger      *slog.Logger
}

var _ ai.ProfileExtractor = (*ProfileExtractor)(nil)

// newProfileExtractor is an internal constructor that returns the concrete type.
func newProfileExtractor(client llms.Model, callTimeout time.Duration) *ProfileExtractor {
	return &ProfileExtractor{
		client:      client,
		callTimeout: callTimeout,
		logger:      slog.Default().With("component", "openai-extractor"),
	}
}

// NewProfileExtractor creates a new profile extractor using the provided
// configuration.
//
// Returns ai.ProfileExtractor interface to enforce abstraction.
func NewProfileExtractor(config *ai.Config) (ai.ProfileExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return newProfileExtractor(client, config.CallTimeout), nil
}

// ExtractProfile extracts contact fields and searchable tags from
// free-text capture context using an LLM. Tags are lowercased and
// deduplicated before being returned.
func (x *ProfileExtractor) ExtractProfile(ctx context.Context, captureContext, cardText string) (*ai.ExtractedProfile, error) {
	userText := "CONTEXT:\n" + captureContext
	if cardText != "" {
		userText = "BUSINESS CARD:\n" + cardText + "\n\n" + userText
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(profileSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userText),
			},
		},
	}

	callCtx, cancel := callContext(ctx, x.callTimeout)
	defer cancel()

	response, err := x.client.GenerateContent(callCtx, content, llms.WithTemperature(0.4), llms.WithJSONMode())
	if err != nil {
		x.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		x.logger.Warn("no choices returned from model")
		return nil, ErrNoCompletion
	}

	responseText := stripCodeFences(response.Choices[0].Content)
	responseText = repairJSON(responseText)

	var profile ai.ExtractedProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		x.logger.Warn("error parsing extraction response", "response", responseText, "err", err)
		return nil, err
	}

	// Lowercase and deduplicate tags, preserving first-seen order
	seen := make(map[string]bool, len(profile.Tags))
	tags := make([]string, 0, len(profile.Tags))
	for _, tag := range profile.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	profile.Tags = tags

	x.logger.Debug("extracted profile", "name", profile.Name, "tags", len(profile.Tags))
	return &profile, nil
}
