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


package browse

import (
	"sort"
	"strings"

	"github.com/poiesic/reach/core"
)

// TagCount pairs a normalized tag with its frequency across the
// deduplicated contact list.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Dedupe collapses contacts that share a case-insensitive, trimmed name.
// On collision the record with the higher completeness score wins; ties
// keep the earlier record. Output preserves first-occurrence order.
func Dedupe(contacts []*core.Contact) []*core.Contact {
	byName := make(map[string]int, len(contacts))
	deduped := make([]*core.Contact, 0, len(contacts))

	for _, contact := range contacts {
		key := strings.ToLower(strings.TrimSpace(contact.Name))
		idx, exists := byName[key]
		if !exists {
			byName[key] = len(deduped)
			deduped = append(deduped, contact)
			continue
		}
		if completeness(contact) > completeness(deduped[idx]) {
			deduped[idx] = contact
		}
	}

	return deduped
}

// completeness measures how much a record knows about a person: one
// point per tag plus one each for a non-empty company and role.
func completeness(c *core.Contact) int {
	score := len(c.Tags)
	if c.Company != "" {
		score++
	}
	if c.Role != "" {
		score++
	}
	return score
}

// TagCounts computes tag frequencies over the deduplicated contact
// list. Tags are lowercased and trimmed; empty tags are excluded.
// The result is sorted by count descending, ties alphabetically.
// Callers typically display the top few entries as quick-filter chips.
func TagCounts(contacts []*core.Contact) []TagCount {
	deduped := Dedupe(contacts)

	counts := make(map[string]int)
	for _, contact := range deduped {
		for _, tag := range contact.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	return result
}
