package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/veritaslabs/veritas/internal/model"
)

// Memory is an in-process Store used by tests and dry runs. Semantics
// match the SQLite implementation, including idempotent claim inserts
// and append-only evidence keyed by (claim_id, url).
type Memory struct {
	mu       sync.Mutex
	sources  map[string]model.Source
	segments map[string][]model.TimedSegment
	claims   map[string]model.Claim            // by claim id
	byHash   map[string]string                 // source_id|content_hash → claim id
	evidence map[string][]model.ScoredEvidence // by claim id
	evSeen   map[string]bool                   // claim_id|url
	order    []string                          // claim ids in insertion order
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		sources:  make(map[string]model.Source),
		segments: make(map[string][]model.TimedSegment),
		claims:   make(map[string]model.Claim),
		byHash:   make(map[string]string),
		evidence: make(map[string][]model.ScoredEvidence),
		evSeen:   make(map[string]bool),
	}
}

// SaveSource upserts a source.
func (m *Memory) SaveSource(src model.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[src.ID] = src
	return nil
}

// GetSource loads a source by id.
func (m *Memory) GetSource(id string) (model.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return model.Source{}, fmt.Errorf("%w: source %s not found", model.ErrStore, id)
	}
	return src, nil
}

// ListSources returns sources ordered by ingestion time.
func (m *Memory) ListSources() ([]model.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Source, 0, len(m.sources))
	for _, src := range m.sources {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IngestedAt.Equal(out[j].IngestedAt) {
			return out[i].IngestedAt.Before(out[j].IngestedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveSegments replaces a source's segment stream.
func (m *Memory) SaveSegments(sourceID string, segments []model.TimedSegment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.segments[sourceID] = append([]model.TimedSegment(nil), segments...)
	return nil
}

// ListSegments returns a source's segments in order.
func (m *Memory) ListSegments(sourceID string) ([]model.TimedSegment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.TimedSegment(nil), m.segments[sourceID]...), nil
}

// ReplaceClaims inserts claims new to this source; duplicates by
// (source_id, content_hash) are skipped.
func (m *Memory) ReplaceClaims(sourceID string, claims []model.Claim) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, c := range claims {
		key := sourceID + "|" + c.ContentHash
		if _, exists := m.byHash[key]; exists {
			continue
		}
		m.byHash[key] = c.ID
		m.claims[c.ID] = c
		m.order = append(m.order, c.ID)
		inserted++
	}
	return inserted, nil
}

// ClaimsForSource returns a source's claims in span order.
func (m *Memory) ClaimsForSource(sourceID string) ([]model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Claim
	for _, id := range m.order {
		if c := m.claims[id]; c.SourceID == sourceID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartS < out[j].StartS })
	return out, nil
}

// AllClaims returns every claim in insertion order.
func (m *Memory) AllClaims() ([]model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Claim, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.claims[id])
	}
	return out, nil
}

// CountGlobalHash counts same-hash claims in other sources.
func (m *Memory) CountGlobalHash(globalHash, excludeSourceID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.claims {
		if c.GlobalHash == globalHash && c.SourceID != excludeSourceID {
			n++
		}
	}
	return n, nil
}

// SaveClaimResult appends new evidence rows and sets the status.
func (m *Memory) SaveClaimResult(claim *model.Claim, evidence []model.ScoredEvidence, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[claim.ID]
	if !ok {
		return fmt.Errorf("%w: claim %s not found", model.ErrStore, claim.ID)
	}
	for _, ev := range evidence {
		key := claim.ID + "|" + ev.Candidate.URL
		if m.evSeen[key] {
			continue
		}
		m.evSeen[key] = true
		m.evidence[claim.ID] = append(m.evidence[claim.ID], ev)
	}
	c.Status = status
	m.claims[claim.ID] = c
	return nil
}

// EvidenceForClaim returns stored evidence ordered by descending score.
func (m *Memory) EvidenceForClaim(claimID string) ([]model.ScoredEvidence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.ScoredEvidence(nil), m.evidence[claimID]...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Candidate.URL < out[j].Candidate.URL
	})
	return out, nil
}

// SetHumanStatus records the human override.
func (m *Memory) SetHumanStatus(claimID string, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[claimID]
	if !ok {
		return fmt.Errorf("%w: claim %s not found", model.ErrStore, claimID)
	}
	c.StatusHuman = &status
	m.claims[claimID] = c
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }
