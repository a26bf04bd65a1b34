// Package sources implements the evidence-source adapters: each one
// turns a claim into a search against a structured public API and
// normalizes the payload into evidence candidates. Adapters never error
// into the orchestrator; every failure is an empty result.
package sources

import (
	"context"

	"github.com/veritaslabs/veritas/internal/model"
)

// Query carries the claim-derived inputs an adapter searches with
type Query struct {
	ClaimText string
	Terms     string // condensed search terms, see BuildQuery
	Entities  []string
	Numbers   []float64
	Dates     []string
	Category  model.Category
}

// Adapter is the single-operation plug-in contract for evidence sources.
// Fetch returns up to the configured number of candidates in the
// adapter's native order, honours the context deadline, and returns an
// empty slice on timeout, rate limit, or HTTP error.
type Adapter interface {
	ID() string
	EvidenceType() model.EvidenceType
	Fetch(ctx context.Context, q Query) []model.EvidenceCandidate
}

// Registry is a flat table of adapters keyed by source id
type Registry struct {
	adapters map[string]Adapter
	order    []string
}

// NewRegistry registers the built-in adapters over a shared client.
func NewRegistry(client *Client) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, a := range []Adapter{
		NewYFinance(client),
		NewSECEdgar(client),
		NewFRED(client),
		NewPubMed(client),
		NewOpenFDA(client),
		NewArxiv(client),
		NewCrossref(client),
		NewGoogleFactCheck(client),
		NewBLS(client),
		NewCBO(client),
		NewUSASpending(client),
		NewCensus(client),
		NewWorldBank(client),
		NewPatentsView(client),
		NewWikipedia(client),
	} {
		r.Register(a)
	}
	return r
}

// NewRegistryWith builds a registry from explicit adapters, for tests
// and custom deployments.
func NewRegistryWith(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds an adapter; a duplicate id replaces the earlier one.
func (r *Registry) Register(a Adapter) {
	if _, exists := r.adapters[a.ID()]; !exists {
		r.order = append(r.order, a.ID())
	}
	r.adapters[a.ID()] = a
}

// Get looks up an adapter by source id.
func (r *Registry) Get(id string) (Adapter, bool) {
	a, ok := r.adapters[id]
	return a, ok
}

// IDs lists registered source ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
