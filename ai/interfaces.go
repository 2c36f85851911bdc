package ai

import (
	"context"

	"github.com/poiesic/reach/core"
)

// IntentParser turns a free-form voice or text query into a structured
// search intent. Implementations must be thread-safe for concurrent use.
type IntentParser interface {
	// ParseIntent analyzes a query and extracts the search type,
	// keywords, and structured filters. A single attempt is made; any
	// failure (transport error, malformed response) is returned to the
	// caller, which substitutes the deterministic fallback intent.
	// OriginalQuery on the returned intent is always the raw query.
	ParseIntent(ctx context.Context, query string) (*core.SearchIntent, error)
}

// Explainer produces a short natural-language explanation of a search
// result set. Implementations must be thread-safe for concurrent use.
type Explainer interface {
	// ExplainResults describes why the top match answers the query, in
	// one or two conversational sentences. Failures are returned to
	// the caller, which substitutes a deterministic template.
	ExplainResults(ctx context.Context, query string, top *core.ScoredContact, totalMatches int) (string, error)
}

// ProfileExtractor extracts structured contact data and searchable
// tags from free-text capture context (a transcribed voice memo,
// scanned card text, or both).
type ProfileExtractor interface {
	// ExtractProfile analyzes the capture context and returns the
	// contact fields it could identify plus 8-15 lowercase tags.
	// Returns an error if extraction fails; the caller decides whether
	// an untagged contact is acceptable.
	ExtractProfile(ctx context.Context, context, cardText string) (*ExtractedProfile, error)
}

// ExtractedProfile is the structured output of profile extraction.
// Absent fields are empty strings; Tags are lowercase and deduplicated.
type ExtractedProfile struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Company   string   `json:"company,omitempty"`
	Role      string   `json:"role,omitempty"`
	Location  string   `json:"location,omitempty"`
	Industry  string   `json:"industry,omitempty"`
	EventType string   `json:"event_type,omitempty"`
	Tags      []string `json:"tags"`
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the parser,
// explainer, and extractor, ensuring they share configuration.
type AIProvider interface {
	// IntentParser returns the query intent parsing service.
	IntentParser() IntentParser

	// Explainer returns the result explanation service.
	Explainer() Explainer

	// ProfileExtractor returns the profile extraction service.
	ProfileExtractor() ProfileExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
