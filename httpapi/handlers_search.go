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


package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/search"
)

// plainSearchLimit caps the plain text-search response.
const plainSearchLimit = 20

// contactResult flattens a contact with its search annotations, the
// shape the clients expect.
type contactResult struct {
	*core.Contact
	Score         float64        `json:"_score"`
	MatchReason   string         `json:"_matchReason"`
	MatchedFields []string       `json:"_matchedFields"`
	Relevance     core.Relevance `json:"_relevance,omitempty"`
}

type searchRequest struct {
	Query    string `json:"query"`
	UseAgent *bool  `json:"useAgent,omitempty"`
}

// handleSearch runs the field-weighted matcher. POST /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	matches, err := s.pipeline.Search(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "Query is required")
			return
		}
		s.logger.Error("search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	if len(matches) > plainSearchLimit {
		matches = matches[:plainSearchLimit]
	}

	results := make([]contactResult, len(matches))
	for i, m := range matches {
		results[i] = contactResult{
			Contact:       m.Contact,
			Score:         m.Score,
			MatchReason:   m.MatchReason,
			MatchedFields: m.MatchedFields,
		}
	}

	topScore := 0.0
	if len(matches) > 0 {
		topScore = matches[0].Score
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":  results,
		"topScore": topScore,
		"query":    req.Query,
	})
}

// handleVoiceSearch runs the intent-driven pipeline, falling back to
// simple keyword search when the agent path is disabled or fails.
// POST /api/voice-search.
func (s *Server) handleVoiceSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	useAgent := s.agentEnabled
	if req.UseAgent != nil {
		useAgent = useAgent && *req.UseAgent
	}

	var response *search.Response
	var err error

	if useAgent {
		response, err = s.pipeline.VoiceSearch(r.Context(), req.Query)
		if err != nil {
			s.logger.Error("voice search agent error, falling back", "err", err)
		}
	}

	if response == nil {
		response, err = s.pipeline.SimpleSearch(r.Context(), req.Query)
		if err != nil {
			if errors.Is(err, core.ErrEmptyQuery) {
				writeError(w, http.StatusBadRequest, "Query is required")
				return
			}
			s.logger.Error("voice search failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to search contacts")
			return
		}
	}

	results := make([]contactResult, len(response.Results))
	for i, m := range response.Results {
		results[i] = contactResult{
			Contact:       m.Contact,
			Score:         m.Score,
			MatchReason:   m.MatchReason(),
			MatchedFields: m.MatchReasons,
			Relevance:     m.Relevance,
		}
	}

	body := map[string]any{
		"success":      true,
		"results":      results,
		"explanation":  response.Explanation,
		"totalMatches": response.TotalMatches,
		"topScore":     response.TopScore,
		"source":       response.Source,
	}
	if response.SuggestedFollowUp != "" {
		body["suggestedFollowUp"] = response.SuggestedFollowUp
	}
	if response.Intent != nil {
		body["parsedIntent"] = response.Intent
	}

	writeJSON(w, http.StatusOK, body)
}
