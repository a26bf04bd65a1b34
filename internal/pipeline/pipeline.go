// Package pipeline orchestrates the per-source flow: segments →
// extractor → claims → router → adapter fan-out → scorer → store →
// aggregator. Extraction, routing, and scoring are pure and synchronous;
// only adapter fetches run in parallel, and evidence is persisted in
// deterministic order regardless of completion order.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/extract"
	"github.com/veritaslabs/veritas/internal/graph"
	"github.com/veritaslabs/veritas/internal/logger"
	"github.com/veritaslabs/veritas/internal/metrics"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/route"
	"github.com/veritaslabs/veritas/internal/score"
	"github.com/veritaslabs/veritas/internal/sources"
	"github.com/veritaslabs/veritas/internal/store"
	"github.com/veritaslabs/veritas/internal/textsig"
	"github.com/veritaslabs/veritas/internal/worker"
)

// Engine wires the deterministic core to the store and the adapters
type Engine struct {
	cfg        *model.Config
	store      store.Store
	extractor  *extract.Extractor
	router     *route.Router
	scorer     *score.Scorer
	registry   *sources.Registry
	aggregator *graph.Aggregator
	entities   *textsig.EntityLexicon
	pool       *worker.FetchPool
}

// New validates the configuration and builds the engine. Lexicon
// problems surface here, before any work starts.
func New(cfg *model.Config, st store.Store, registry *sources.Registry) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		store:      st,
		extractor:  extract.NewExtractor(cfg),
		router:     route.NewRouter(cfg),
		scorer:     score.NewScorer(cfg),
		registry:   registry,
		aggregator: graph.NewAggregator(cfg),
		entities:   textsig.NewEntityLexicon(cfg.Lexicon.OrgSuffixes, cfg.Lexicon.KnownEntities),
		pool:       worker.NewFetchPool(cfg.Concurrency.FetchWorkers),
	}, nil
}

// Extract loads a source's segments, runs the extractor, annotates
// cross-source duplicates, and persists the claims. Malformed segment
// streams fail the whole source; nothing partial is written.
func (e *Engine) Extract(ctx context.Context, sourceID string) ([]model.Claim, error) {
	src, err := e.store.GetSource(sourceID)
	if err != nil {
		return nil, err
	}
	segments, err := e.store.ListSegments(sourceID)
	if err != nil {
		return nil, err
	}
	claims, err := e.extractor.Extract(sourceID, segments, src.IngestedAt)
	if err != nil {
		return nil, err
	}

	// Cross-source duplicates are allowed, but annotated for the
	// aggregator's benefit.
	for i := range claims {
		n, err := e.store.CountGlobalHash(claims[i].GlobalHash, sourceID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			claims[i].SignalLog = append(claims[i].SignalLog, "dup:global")
		}
	}

	inserted, err := e.store.ReplaceClaims(sourceID, claims)
	if err != nil {
		return nil, err
	}
	for _, c := range claims {
		metrics.ClaimsExtracted.WithLabelValues(string(c.Category)).Inc()
	}
	logger.Info("extraction complete",
		zap.String("source_id", sourceID),
		zap.Int("claims", len(claims)),
		zap.Int("new", inserted),
	)
	return claims, nil
}

// Assist runs evidence discovery for every claim of a source: route,
// fan out adapter fetches, score, and persist atomically per claim. The
// context carries the per-source deadline; claims that have not started
// fetching when it expires stay UNKNOWN with no evidence.
func (e *Engine) Assist(ctx context.Context, sourceID string) (*model.RunReport, error) {
	src, err := e.store.GetSource(sourceID)
	if err != nil {
		return nil, err
	}
	claims, err := e.store.ClaimsForSource(sourceID)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, fmt.Errorf("no claims for source %s; run extract first", sourceID)
	}

	report := &model.RunReport{SourceID: sourceID, Extracted: len(claims)}

	for i := range claims {
		claim := &claims[i]
		if ctx.Err() != nil {
			// Deadline reached: remaining claims stay UNKNOWN, silently.
			report.Unknown += len(claims) - i
			break
		}

		evidence := e.assistClaim(ctx, claim, src)
		if ctx.Err() != nil && len(evidence) == 0 {
			report.Unknown += len(claims) - i
			break
		}
		if len(evidence) > 0 {
			report.Evidenced++
		}

		// Auto-status is a pure function of the full evidence set:
		// previously stored rows plus this run's.
		stored, err := e.store.EvidenceForClaim(claim.ID)
		if err != nil {
			e.recordClaimError(report, claim, err)
			continue
		}
		status := e.scorer.AutoStatus(append(stored, evidence...))

		if err := e.store.SaveClaimResult(claim, evidence, status); err != nil {
			e.recordClaimError(report, claim, err)
			continue
		}
		metrics.AutoStatus.WithLabelValues(string(status)).Inc()
		report.Count(status)
	}
	return report, nil
}

// assistClaim fans adapter fetches out through the bounded pool, then
// drains the completion buffer in router order so evidence order is a
// pure function of the claim and the config.
func (e *Engine) assistClaim(ctx context.Context, claim *model.Claim, src model.Source) []model.ScoredEvidence {
	routed := e.router.Route(claim)
	query := sources.NewQuery(claim, e.entities)

	var jobs []worker.FetchJob
	for _, sourceID := range routed {
		adapter, ok := e.registry.Get(sourceID)
		if !ok {
			continue
		}
		jobs = append(jobs, worker.FetchJob{
			Key: worker.FetchKey{ClaimID: claim.ID, SourceID: sourceID},
			Run: func(ctx context.Context) []model.EvidenceCandidate {
				fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.Adapters.Timeout)
				defer cancel()
				return adapter.Fetch(fetchCtx, query)
			},
		})
	}
	buffer := e.pool.Collect(ctx, jobs)

	var evidence []model.ScoredEvidence
	seenURL := make(map[string]bool)
	for _, sourceID := range routed {
		candidates := buffer[worker.FetchKey{ClaimID: claim.ID, SourceID: sourceID}]
		if len(candidates) > e.cfg.Adapters.MaxPerSource {
			candidates = candidates[:e.cfg.Adapters.MaxPerSource]
		}
		for _, cand := range candidates {
			if cand.URL == "" || seenURL[cand.URL] {
				continue
			}
			seenURL[cand.URL] = true
			metrics.CandidatesFetched.WithLabelValues(cand.SourceAPI).Inc()

			scored := e.scorer.Score(claim, cand, src.IngestedAt)
			metrics.EvidenceScores.Observe(float64(scored.Score))
			evidence = append(evidence, scored)
		}
	}
	return evidence
}

// Aggregate recomputes cross-source claim groups and contradiction
// flags over everything in the store.
func (e *Engine) Aggregate() ([]model.ClaimGroup, []model.ContradictionFlag, error) {
	claims, err := e.store.AllClaims()
	if err != nil {
		return nil, nil, err
	}
	srcList, err := e.store.ListSources()
	if err != nil {
		return nil, nil, err
	}
	srcMap := make(map[string]model.Source, len(srcList))
	for _, s := range srcList {
		srcMap[s.ID] = s
	}
	groups, flags := e.aggregator.Aggregate(claims, srcMap)
	return groups, flags, nil
}

func (e *Engine) recordClaimError(report *model.RunReport, claim *model.Claim, err error) {
	report.Errored++
	report.ClaimErrors = append(report.ClaimErrors, model.ClaimError{
		ClaimID: claim.ID,
		Reason:  err.Error(),
	})
	if errors.Is(err, model.ErrStore) {
		logger.Error("claim persistence failed",
			zap.String("claim_id", claim.ID),
			zap.Error(err),
		)
	} else {
		logger.Error("claim processing failed",
			zap.String("claim_id", claim.ID),
			zap.Error(err),
		)
	}
}
