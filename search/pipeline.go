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
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/storage"
)

const defaultCallTimeout = 12 * time.Second

// Pipeline orchestrates intent-driven contact search.
type Pipeline struct {
	contactRepository storage.ContactRepository
	parser            ai.IntentParser
	explainer         ai.Explainer
	logger            *slog.Logger
	callTimeout       time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithCallTimeout bounds each individual AI call made by the pipeline.
// Default is 12 seconds.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d > 0 {
			p.callTimeout = d
		}
		return nil
	}
}

// NewPipeline creates a new search pipeline.
func NewPipeline(
	contactRepository storage.ContactRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if contactRepository == nil {
		return nil, ErrContactRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		contactRepository: contactRepository,
		parser:            provider.IntentParser(),
		explainer:         provider.Explainer(),
		logger:            slog.Default(),
		callTimeout:       defaultCallTimeout,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Search runs the field-weighted matcher over the whole contact pool.
// Results are ranked by score descending; contacts with no matching
// field are excluded.
func (p *Pipeline) Search(ctx context.Context, query string) ([]*FieldMatch, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	contacts, err := p.contactRepository.ListContacts(ctx)
	if err != nil {
		p.logger.Error("error listing contacts", "err", err)
		return nil, err
	}

	return Match(contacts, query, time.Now()), nil
}

// VoiceSearch runs the full intent-driven pipeline over the contact pool.
func (p *Pipeline) VoiceSearch(ctx context.Context, query string) (*Response, error) {
	return p.VoiceSearchWithMonitor(ctx, query, nil)
}

// VoiceSearchWithMonitor runs the full intent-driven pipeline with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// Intent parsing makes a single LLM attempt; on any failure the
// deterministic fallback intent is substituted and the pipeline
// continues, so the LLM being down degrades quality but never fails
// the search.
func (p *Pipeline) VoiceSearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	monitor.Start(query)

	contacts, err := p.contactRepository.ListContacts(ctx)
	if err != nil {
		p.logger.Error("error listing contacts", "err", err)
		return nil, err
	}

	if len(contacts) == 0 {
		response := emptyPoolResponse()
		monitor.Finish(response)
		return response, nil
	}

	// 1. Parse intent, single attempt
	intent := p.parseIntent(ctx, query, monitor)

	// 2. Score the pool against the intent
	scored := ScoreByIntent(contacts, intent, time.Now())
	monitor.AfterScoring(scored)

	// 3. Compose the response
	response := p.compose(ctx, intent, scored)
	monitor.Finish(response)

	return response, nil
}

// SimpleSearch is the keyword fallback used when the LLM path is
// disabled or unavailable. The whole lowercased query is matched as a
// substring against name, company, role, and industry; individual
// keywords add smaller bonuses. Results are capped at ten.
func (p *Pipeline) SimpleSearch(ctx context.Context, query string) (*Response, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	contacts, err := p.contactRepository.ListContacts(ctx)
	if err != nil {
		p.logger.Error("error listing contacts", "err", err)
		return nil, err
	}

	if len(contacts) == 0 {
		return emptyPoolResponse(), nil
	}

	queryLower := strings.ToLower(query)
	keywords := queryTerms(query, 2)

	results := make([]*core.ScoredContact, 0, len(contacts))
	for _, contact := range contacts {
		var score float64
		var matchedFields []string

		if containsFold(contact.Name, queryLower) {
			score += 5
			matchedFields = append(matchedFields, "Name")
		}
		if containsFold(contact.Company, queryLower) {
			score += 3
			matchedFields = append(matchedFields, "Company")
		}
		if containsFold(contact.Role, queryLower) {
			score += 2
			matchedFields = append(matchedFields, "Role")
		}
		if containsFold(contact.Industry, queryLower) {
			score += 2
			matchedFields = append(matchedFields, "Industry")
		}

		for _, kw := range keywords {
			if containsFold(contact.Name, kw) {
				score += 1
			}
			if containsFold(contact.Company, kw) {
				score += 1
			}
			if anyTagContains(contact.Tags, kw) {
				score += 1
				matchedFields = appendReason(matchedFields, "Tags")
			}
		}

		if score > 0 {
			results = append(results, &core.ScoredContact{
				Contact:      contact,
				Score:        score,
				MatchReasons: matchedFields,
				Relevance:    core.RelevanceOf(score),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	response := &Response{
		Results:      results,
		Explanation:  countExplanation(query, len(results)),
		TotalMatches: len(results),
		Source:       SourceSimple,
	}
	if len(results) > 0 {
		response.TopScore = results[0].Score
	}
	return response, nil
}

// parseIntent asks the LLM for the search intent, substituting the
// deterministic fallback on any error.
func (p *Pipeline) parseIntent(ctx context.Context, query string, monitor SearchMonitor) *core.SearchIntent {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	intent, err := p.parser.ParseIntent(callCtx, query)
	if err != nil {
		p.logger.Warn("intent parse failed, using keyword fallback", "query", query, "err", err)
		monitor.IntentParseFailed(err)
		intent = FallbackIntent(query)
	}
	intent.OriginalQuery = query
	monitor.AfterIntentParse(intent)
	return intent
}

// FallbackIntent builds the deterministic intent used when the LLM
// parser fails: a general search whose keywords are the lowercase words
// of the query longer than two characters, with no filters.
func FallbackIntent(query string) *core.SearchIntent {
	return &core.SearchIntent{
		Type:          core.IntentGeneral,
		Keywords:      queryTerms(query, 2),
		OriginalQuery: query,
	}
}
