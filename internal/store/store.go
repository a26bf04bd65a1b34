// Package store defines the persistence contract the engine writes
// through, plus the SQLite reference implementation and an in-memory
// implementation for tests. The core only requires: uniqueness of
// (source_id, content_hash), uniqueness of (claim_id, url), an index on
// global_hash, and atomic per-claim writes.
package store

import (
	"github.com/veritaslabs/veritas/internal/model"
)

// Store is the persistence contract. SaveClaimResult must be atomic:
// the claim's evidence and status land together or not at all.
type Store interface {
	SaveSource(src model.Source) error
	GetSource(id string) (model.Source, error)
	ListSources() ([]model.Source, error)

	SaveSegments(sourceID string, segments []model.TimedSegment) error
	ListSegments(sourceID string) ([]model.TimedSegment, error)

	// ReplaceClaims persists extraction output. Claims whose
	// (source_id, content_hash) already exist are left untouched so
	// their status and evidence survive re-extraction.
	ReplaceClaims(sourceID string, claims []model.Claim) (inserted int, err error)
	ClaimsForSource(sourceID string) ([]model.Claim, error)
	AllClaims() ([]model.Claim, error)

	// CountGlobalHash counts claims sharing the global hash in other
	// sources, for cross-source duplicate annotation.
	CountGlobalHash(globalHash, excludeSourceID string) (int, error)

	// SaveClaimResult stores the claim's scored evidence and auto-status
	// in one transaction. Evidence rows are append-only per
	// (claim_id, url); existing pairs are skipped.
	SaveClaimResult(claim *model.Claim, evidence []model.ScoredEvidence, status model.Status) error
	EvidenceForClaim(claimID string) ([]model.ScoredEvidence, error)

	// SetHumanStatus records a human override, which wins over any
	// auto-status. This is the only path that may write CONTRADICTED.
	SetHumanStatus(claimID string, status model.Status) error

	Close() error
}
