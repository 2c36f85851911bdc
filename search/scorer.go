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
	"sort"
	"strings"
	"time"

	"github.com/poiesic/reach/core"
)

// ScoreByIntent scores the contact pool against a parsed search intent.
// Filters contribute fixed bonuses (name 10, company 8, timeframe 7,
// industry 6, location 5, priority 4), keywords contribute smaller
// per-field bonuses. Contacts with a zero score are dropped; the rest
// are sorted by score descending with ties keeping pool order, and
// tagged with a relevance band.
func ScoreByIntent(contacts []*core.Contact, intent *core.SearchIntent, now time.Time) []*core.ScoredContact {
	scored := make([]*core.ScoredContact, 0, len(contacts))

	for _, contact := range contacts {
		var score float64
		var reasons []string

		if intent.Filters.Name != "" && containsFold(contact.Name, intent.Filters.Name) {
			score += 10
			reasons = append(reasons, "Name match")
		}

		if intent.Filters.Company != "" && containsFold(contact.Company, intent.Filters.Company) {
			score += 8
			reasons = append(reasons, "Company match")
		}

		if intent.Filters.Industry != "" && containsFold(contact.Industry, intent.Filters.Industry) {
			score += 6
			reasons = append(reasons, "Industry match")
		}

		if intent.Filters.Location != "" &&
			(containsFold(contact.Location, intent.Filters.Location) ||
				containsFold(contact.MeetingLocation, intent.Filters.Location)) {
			score += 5
			reasons = append(reasons, "Location match")
		}

		if intent.Filters.Timeframe != "" && contact.MetDate != nil {
			if timeframeMatches(intent.Filters.Timeframe, *contact.MetDate, now) {
				score += 7
				reasons = append(reasons, "Recent meeting")
			}
		}

		if intent.Filters.Priority != "" &&
			core.PriorityBandOf(contact.Priority) == intent.Filters.Priority {
			score += 4
			reasons = append(reasons, "Priority match")
		}

		for _, keyword := range intent.Keywords {
			kw := strings.ToLower(keyword)

			if containsFold(contact.Name, kw) {
				score += 3
				reasons = appendReason(reasons, "Name contains keyword")
			}
			if containsFold(contact.Company, kw) {
				score += 2
				reasons = appendReason(reasons, "Company contains keyword")
			}
			if containsFold(contact.Role, kw) {
				score += 2
				reasons = appendReason(reasons, "Role match")
			}
			if containsFold(contact.Industry, kw) {
				score += 2
				reasons = appendReason(reasons, "Industry contains keyword")
			}
			if anyTagContains(contact.Tags, kw) {
				score += 2
				reasons = appendReason(reasons, "Tag match")
			}
			if containsFold(contact.RawContext, kw) {
				score += 1
				reasons = appendReason(reasons, "Context match")
			}
		}

		if score > 0 {
			scored = append(scored, &core.ScoredContact{
				Contact:      contact,
				Score:        score,
				MatchReasons: reasons,
				Relevance:    core.RelevanceOf(score),
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// timeframeMatches checks a free-text timeframe against the days elapsed
// since the meeting. Phrases are checked narrowest first; the first
// matching phrase decides.
func timeframeMatches(timeframe string, metDate, now time.Time) bool {
	daysDiff := int(now.Sub(metDate).Hours() / 24)
	tf := strings.ToLower(timeframe)

	switch {
	case strings.Contains(tf, "today") || strings.Contains(tf, "just"):
		return daysDiff == 0
	case strings.Contains(tf, "yesterday") || strings.Contains(tf, "recent"):
		return daysDiff <= 1
	case strings.Contains(tf, "week"):
		return daysDiff <= 7
	case strings.Contains(tf, "month"):
		return daysDiff <= 30
	}
	return false
}

// appendReason appends a reason unless it is already present.
func appendReason(reasons []string, reason string) []string {
	for _, r := range reasons {
		if r == reason {
			return reasons
		}
	}
	return append(reasons, reason)
}

func anyTagContains(tags []string, kw string) bool {
	for _, tag := range tags {
		if containsFold(tag, kw) {
			return true
		}
	}
	return false
}
