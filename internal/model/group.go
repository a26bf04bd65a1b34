package model

import "time"

// GroupOccurrence records one claim's appearance inside a claim group
type GroupOccurrence struct {
	ClaimID    string    `json:"claim_id"`
	SourceID   string    `json:"source_id"`
	IngestedAt time.Time `json:"ingested_at"`
	StartS     float64   `json:"start_s"`
}

// ClaimGroup is a set of claims asserting the same underlying fact,
// grouped exactly by global hash or fuzzily by token similarity.
// Groups are computed views: they reference claims by id and are never
// pointed back to.
type ClaimGroup struct {
	ID                 string            `json:"id"`
	GlobalHash         string            `json:"global_hash"`
	RepresentativeText string            `json:"representative_text"`
	Category           Category          `json:"category"`
	FirstSeen          time.Time         `json:"first_seen"`
	SourceIDs          []string          `json:"source_ids"` // distinct, in timeline order
	Occurrences        []GroupOccurrence `json:"occurrences"`
}

// SourceCount is the spread of the group: distinct sources it appears in.
func (g *ClaimGroup) SourceCount() int {
	return len(g.SourceIDs)
}

// ContradictionFlag marks two groups whose representatives share entities
// and category but diverge numerically. Advisory only; no status changes.
type ContradictionFlag struct {
	GroupA         string   `json:"group_a"`
	GroupB         string   `json:"group_b"`
	SharedEntities []string `json:"shared_entities"`
	NumberA        float64  `json:"number_a"`
	NumberB        float64  `json:"number_b"`
	Reason         string   `json:"reason"`
}
