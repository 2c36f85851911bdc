// Package browse provides the list-view companions to search: contact
// deduplication by normalized name and tag frequency aggregation for
// quick-filter chips. Both are pure functions of the current contact
// list and are recomputed on every call, never persisted.
package browse
