// Package retag provides functionality for regenerating the tags of
// existing contacts with a new or updated extraction model.
//
// This package supports batch processing of contacts, progress tracking,
// and retry logic with exponential backoff. Contacts without captured
// context are skipped since there is nothing to extract from.
package retag
