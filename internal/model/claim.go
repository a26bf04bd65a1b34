package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a short unique id (first 12 hex chars of a UUID).
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// Status is the verification status of a claim
type Status string

const (
	StatusUnknown      Status = "unknown"
	StatusPartial      Status = "partial"
	StatusSupported    Status = "supported"
	StatusContradicted Status = "contradicted" // human-only, never set by the engine
)

// Rank orders statuses for best-verdict selection (higher wins)
func (s Status) Rank() int {
	switch s {
	case StatusSupported:
		return 3
	case StatusPartial:
		return 2
	case StatusContradicted:
		return 1
	default:
		return 0
	}
}

// Confidence classifies the hedging level of claim language
type Confidence string

const (
	ConfidenceHedged     Confidence = "hedged"
	ConfidenceDefinitive Confidence = "definitive"
	ConfidenceUnknown    Confidence = "unknown"
)

// Category is the topic category assigned to a claim
type Category string

const (
	CategoryFinance       Category = "finance"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategoryTech          Category = "tech"
	CategoryPolitics      Category = "politics"
	CategoryMilitary      Category = "military"
	CategoryEducation     Category = "education"
	CategoryEnergyClimate Category = "energy_climate"
	CategoryLabor         Category = "labor"
	CategoryGeneral       Category = "general"
)

// CategoryPriority is the fixed tie-break order for category assignment.
// When two categories score equally, the earlier entry wins.
var CategoryPriority = []Category{
	CategoryFinance, CategoryHealth, CategoryScience, CategoryTech,
	CategoryPolitics, CategoryMilitary, CategoryEducation,
	CategoryEnergyClimate, CategoryLabor, CategoryGeneral,
}

// Claim represents a self-contained, checkable factual assertion
// extracted from a source. Text, span, and hashes are immutable once
// created; only the status and the attached evidence set change.
type Claim struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	Text     string `json:"text"`

	StartS float64 `json:"start_s"`
	EndS   float64 `json:"end_s"`

	ContentHash string `json:"content_hash"` // SHA-256 of normalized text
	GlobalHash  string `json:"global_hash"`  // cross-source identity, same normalization

	ConfidenceLanguage Confidence `json:"confidence_language"`
	Category           Category   `json:"category"`

	// SignalLog lists the atomic rule tags that fired during extraction,
	// in detection order (e.g. "num=96500000000", "entity:ORG=Alphabet").
	SignalLog []string `json:"signal_log"`

	Status      Status  `json:"status"`
	StatusHuman *Status `json:"status_human,omitempty"` // human override, wins over auto

	CreatedAt time.Time `json:"created_at"`
}

// FinalStatus resolves the effective status: human override wins.
func (c *Claim) FinalStatus() Status {
	if c.StatusHuman != nil {
		return *c.StatusHuman
	}
	return c.Status
}

// HasSignal reports whether any signal tag starts with the given prefix.
func (c *Claim) HasSignal(prefix string) bool {
	for _, s := range c.SignalLog {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
