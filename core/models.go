package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// NewContactID generates a unique, opaque contact identifier.
// IDs are assigned once at creation and are immutable thereafter.
func NewContactID() string {
	return "c_" + uuid.NewString()
}

// KeyFromName generates a deterministic 64-bit key from a contact name
// using BLAKE2b hashing. The name is trimmed and lowercased first, so
// "Jane Doe" and " jane doe " produce the same key. Used for the
// name index and client-side deduplication.
func KeyFromName(name string) uint64 {
	normalized := strings.ToLower(strings.TrimSpace(name))
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(normalized))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Contact represents one real-world person the user has met.
// Only Name is required; everything else is filled in by capture,
// extraction, and enrichment as it becomes available.
type Contact struct {
	Id              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Company         string      `json:"company,omitempty"`
	Role            string      `json:"role,omitempty"`
	LinkedInURL     string      `json:"linkedin_url,omitempty"`
	CardImageURL    string      `json:"card_image_url,omitempty"`
	Location        string      `json:"location,omitempty"`
	Industry        string      `json:"industry,omitempty"`
	EventType       string      `json:"event_type,omitempty"`
	MeetingLocation string      `json:"meeting_location,omitempty"`
	MetDate         *time.Time  `json:"met_date,omitempty"` // date the contact was met; distinct from CreatedAt
	Tags            []string    `json:"tags"`
	RawContext      string      `json:"raw_context,omitempty"` // free-text notes, e.g. a transcribed voice memo
	Priority        int         `json:"priority"`              // 0-100, see PriorityBandOf
	Enrichment      *Enrichment `json:"enrichment,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Enrichment holds data populated by the external enrichment
// collaborator. The search core only ever reads it.
type Enrichment struct {
	Avatar         string    `json:"avatar,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	LinkedInHandle string    `json:"linkedin_handle,omitempty"`
	TwitterHandle  string    `json:"twitter_handle,omitempty"`
	EmployerName   string    `json:"employer_name,omitempty"`
	EmployerDomain string    `json:"employer_domain,omitempty"`
	Seniority      string    `json:"seniority,omitempty"`
	EnrichedAt     time.Time `json:"enriched_at,omitempty"`
}

// PriorityBand is the coarse classification of a Contact's 0-100
// priority value.
type PriorityBand string

const (
	PriorityLow    PriorityBand = "low"
	PriorityMedium PriorityBand = "medium"
	PriorityHigh   PriorityBand = "high"
)

// PriorityBandOf classifies a priority value. The boundaries are
// 34 and 67: [0,34) is low, [34,67) is medium, [67,100] is high.
// Scoring, filtering, and the UI all use this same split, so the
// boundary values must not drift.
func PriorityBandOf(priority int) PriorityBand {
	switch {
	case priority >= 67:
		return PriorityHigh
	case priority >= 34:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Relevance is the coarse classification of a ScoredContact derived
// from its numeric score. Independent of PriorityBand; the two
// threshold systems must not be conflated.
type Relevance string

const (
	RelevanceLow    Relevance = "low"
	RelevanceMedium Relevance = "medium"
	RelevanceHigh   Relevance = "high"
)

// RelevanceOf classifies a search score: >=8 is high, >=4 is medium,
// everything else is low.
func RelevanceOf(score float64) Relevance {
	switch {
	case score >= 8:
		return RelevanceHigh
	case score >= 4:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// IntentType is the advisory classification of a parsed search query.
// It is surfaced for explanations and logging but never branched on
// by the scorer, which works from Filters and Keywords directly.
type IntentType string

const (
	IntentName     IntentType = "name"
	IntentCompany  IntentType = "company"
	IntentIndustry IntentType = "industry"
	IntentLocation IntentType = "location"
	IntentTime     IntentType = "time"
	IntentGeneral  IntentType = "general"
)

// IntentFilters holds the structured, sparse filters extracted from a
// query. The filter set is fixed and enumerable; absent fields are
// empty strings.
type IntentFilters struct {
	Name      string       `json:"name,omitempty"`
	Company   string       `json:"company,omitempty"`
	Industry  string       `json:"industry,omitempty"`
	Location  string       `json:"location,omitempty"`
	Timeframe string       `json:"timeframe,omitempty"` // free text like "last week"
	Priority  PriorityBand `json:"priority,omitempty"`
}

// SearchIntent is the structured interpretation of a free-text or
// voice query. It is ephemeral and never persisted.
type SearchIntent struct {
	Type          IntentType    `json:"type"`
	Keywords      []string      `json:"keywords"`
	Filters       IntentFilters `json:"filters"`
	OriginalQuery string        `json:"originalQuery"`
}

// ScoredContact pairs a Contact with its search score and the
// human-readable labels of the fields that contributed.
type ScoredContact struct {
	Contact      *Contact
	Score        float64
	MatchReasons []string // deduplicated display labels, in evaluation order
	Relevance    Relevance
}

// MatchReason joins the match labels into the single display string
// shown next to a result.
func (s *ScoredContact) MatchReason() string {
	return strings.Join(s.MatchReasons, ", ")
}
