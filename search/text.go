package search

import "strings"

// queryTerms splits a query into lowercase terms longer than minLen
// bytes. Splitting is on whitespace only; punctuation is kept as typed.
func queryTerms(query string, minLen int) []string {
	words := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > minLen {
			terms = append(terms, word)
		}
	}
	return terms
}

// containsFold reports whether substr occurs in s, case-insensitively.
// An empty substr never matches.
func containsFold(s, substr string) bool {
	if s == "" || substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
