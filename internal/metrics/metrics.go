// Package metrics registers the engine's prometheus instrumentation.
// Everything is best-effort observability: nothing here influences
// extraction, routing, or scoring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ClaimsExtracted counts claims emitted per category.
	ClaimsExtracted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_claims_extracted_total",
			Help: "Total claims emitted by the extractor",
		},
		[]string{"category"},
	)

	// CandidatesFetched counts evidence candidates returned per source API.
	CandidatesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_candidates_fetched_total",
			Help: "Evidence candidates returned by adapters",
		},
		[]string{"source_api"},
	)

	// AdapterFailures counts absorbed adapter failures by reason.
	AdapterFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_adapter_failures_total",
			Help: "Adapter fetch failures absorbed as empty results",
		},
		[]string{"source_api", "reason"},
	)

	// EvidenceScores observes the distribution of candidate scores.
	EvidenceScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "veritas_evidence_score",
			Help:    "Rule-based evidence scores (0-100)",
			Buckets: []float64{10, 25, 50, 70, 85, 95, 100},
		},
	)

	// AutoStatus counts auto-status verdicts by outcome.
	AutoStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_auto_status_total",
			Help: "Auto-status verdicts assigned by the scorer",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		ClaimsExtracted,
		CandidatesFetched,
		AdapterFailures,
		EvidenceScores,
		AutoStatus,
	)
}
