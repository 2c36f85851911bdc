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

// FieldMatch is a single result from the field-weighted matcher.
type FieldMatch struct {
	Contact       *core.Contact `json:"contact"`
	Score         float64       `json:"score"`
	MatchedFields []string      `json:"matchedFields"`
	MatchReason   string        `json:"matchReason"`
}

// weightedField binds a contact field to its search weight and display label.
type weightedField struct {
	key    string
	label  string
	weight float64
	value  func(*core.Contact) string
}

// Field weights for the text matcher. Name dominates, free-form notes
// contribute least.
var matchFields = []weightedField{
	{"name", "Name", 3, func(c *core.Contact) string { return c.Name }},
	{"company", "Company", 2, func(c *core.Contact) string { return c.Company }},
	{"role", "Role", 2, func(c *core.Contact) string { return c.Role }},
	{"industry", "Industry", 1.5, func(c *core.Contact) string { return c.Industry }},
	{"location", "Location", 1, func(c *core.Contact) string { return c.Location }},
	{"meeting_location", "Met at", 1, func(c *core.Contact) string { return c.MeetingLocation }},
	{"event_type", "Event", 1, func(c *core.Contact) string { return c.EventType }},
	{"notes", "Notes", 0.5, func(c *core.Contact) string { return c.RawContext }},
}

var fieldLabels = func() map[string]string {
	labels := make(map[string]string, len(matchFields)+1)
	for _, f := range matchFields {
		labels[f.key] = f.label
	}
	labels["tags"] = "Tags"
	return labels
}()

// Match runs the field-weighted substring matcher over the contact pool.
// Each query term longer than one character is matched case-insensitively
// against every weighted field; the score is the sum of matched-term
// counts times field weights. Exact tag hits score double a substring
// tag hit. Queries mentioning "last month" or "last week" additionally
// restrict results to contacts met (or created) within that window.
// Results are sorted by score descending; ties keep pool order.
func Match(contacts []*core.Contact, query string, now time.Time) []*FieldMatch {
	terms := queryTerms(query, 1)

	var cutoff time.Time
	lowerQuery := strings.ToLower(query)
	if strings.Contains(lowerQuery, "last month") {
		cutoff = now.AddDate(0, -1, 0)
	} else if strings.Contains(lowerQuery, "last week") {
		cutoff = now.AddDate(0, 0, -7)
	}

	results := make([]*FieldMatch, 0, len(contacts))
	for _, contact := range contacts {
		score, matchedFields := scoreFields(contact, terms)

		if score == 0 {
			continue
		}

		if !cutoff.IsZero() {
			contactDate := contact.CreatedAt
			if contact.MetDate != nil {
				contactDate = *contact.MetDate
			}
			if contactDate.Before(cutoff) {
				continue
			}
		}

		reasons := make([]string, len(matchedFields))
		for i, field := range matchedFields {
			reasons[i] = fieldLabels[field]
		}

		results = append(results, &FieldMatch{
			Contact:       contact,
			Score:         score,
			MatchedFields: matchedFields,
			MatchReason:   strings.Join(reasons, ", "),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// scoreFields scores one contact against the query terms and reports
// which fields matched, in table order with tags last.
func scoreFields(contact *core.Contact, terms []string) (float64, []string) {
	var score float64
	matchedFields := make([]string, 0, len(matchFields))

	for _, f := range matchFields {
		value := f.value(contact)
		if value == "" {
			continue
		}
		lowerValue := strings.ToLower(value)
		matches := 0
		for _, term := range terms {
			if strings.Contains(lowerValue, term) {
				matches++
			}
		}
		if matches > 0 {
			score += float64(matches) * f.weight
			matchedFields = append(matchedFields, f.key)
		}
	}

	tagsMatched := false
	for _, tag := range contact.Tags {
		lowerTag := strings.ToLower(tag)
		for _, term := range terms {
			if lowerTag == term {
				score += 2
				tagsMatched = true
			} else if strings.Contains(lowerTag, term) {
				score += 1
				tagsMatched = true
			}
		}
	}
	if tagsMatched {
		matchedFields = append(matchedFields, "tags")
	}

	return score, matchedFields
}
