package enrich

import "errors"

var (
	// ErrAPIKeyRequired is returned when no API key is configured.
	ErrAPIKeyRequired = errors.New("enrichment API key required")

	// ErrEmailRequired is returned when Lookup is called without an email.
	ErrEmailRequired = errors.New("email required for enrichment")

	// ErrLookupFailed is returned when the provider responds with an error.
	ErrLookupFailed = errors.New("enrichment lookup failed")
)
