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


package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/reach/core"
)

// maxResults caps how many scored contacts a search response carries.
const maxResults = 10

// Response sources.
const (
	SourceAgent  = "agent"
	SourceSimple = "simple"
	SourceEmpty  = "empty"
)

// Response is the composed output of a voice search.
type Response struct {
	Results           []*core.ScoredContact `json:"results"`
	Explanation       string                `json:"explanation"`
	SuggestedFollowUp string                `json:"suggestedFollowUp,omitempty"`
	Intent            *core.SearchIntent    `json:"parsedIntent,omitempty"`
	TotalMatches      int                   `json:"totalMatches"`
	TopScore          float64               `json:"topScore"`
	Source            string                `json:"source"`
}

// emptyPoolResponse is returned when the contact store has nothing in it.
func emptyPoolResponse() *Response {
	return &Response{
		Results:           []*core.ScoredContact{},
		Explanation:       "You don't have any contacts yet. Add some contacts first!",
		SuggestedFollowUp: "Go to 'Add Contact' to start building your network.",
		Source:            SourceEmpty,
	}
}

// compose selects the best matches and attaches an explanation and a
// follow-up suggestion. The explanation comes from the LLM explainer;
// if that fails, a deterministic template is used instead.
func (p *Pipeline) compose(ctx context.Context, intent *core.SearchIntent, scored []*core.ScoredContact) *Response {
	bestMatches := scored
	if len(bestMatches) > maxResults {
		bestMatches = bestMatches[:maxResults]
	}

	if len(bestMatches) == 0 {
		return &Response{
			Results: []*core.ScoredContact{},
			Explanation: fmt.Sprintf(
				"I couldn't find any contacts matching %q. Try searching with different keywords or check if you have added contacts that match this description.",
				intent.OriginalQuery),
			SuggestedFollowUp: "Try searching by name, company, or industry",
			Intent:            intent,
			Source:            SourceAgent,
		}
	}

	explanation := p.explainResults(ctx, intent, bestMatches)

	var followUp string
	if len(bestMatches) <= 3 {
		keywords := intent.Keywords
		if len(keywords) > 2 {
			keywords = keywords[:2]
		}
		followUp = fmt.Sprintf("You might also try searching for \"%s\" with different terms.",
			strings.Join(keywords, `" or "`))
	}

	return &Response{
		Results:           bestMatches,
		Explanation:       explanation,
		SuggestedFollowUp: followUp,
		Intent:            intent,
		TotalMatches:      len(bestMatches),
		TopScore:          bestMatches[0].Score,
		Source:            SourceAgent,
	}
}

// explainResults asks the explainer for a natural-language summary and
// falls back to a count template when the model is unavailable.
func (p *Pipeline) explainResults(ctx context.Context, intent *core.SearchIntent, bestMatches []*core.ScoredContact) string {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	explanation, err := p.explainer.ExplainResults(callCtx, intent.OriginalQuery, bestMatches[0], len(bestMatches))
	if err == nil && explanation != "" {
		return explanation
	}
	if err != nil {
		p.logger.Warn("explainer unavailable, using template", "err", err)
	}
	return countExplanation(intent.OriginalQuery, len(bestMatches))
}

// countExplanation is the deterministic explanation template.
func countExplanation(query string, count int) string {
	if count == 0 {
		return fmt.Sprintf("No contacts found for %q", query)
	}
	noun := "contact"
	if count > 1 {
		noun = "contacts"
	}
	return fmt.Sprintf("Found %d %s matching %q", count, noun, query)
}
