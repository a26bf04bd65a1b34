// Package worker runs bounded-concurrency adapter fan-out. Fetches for
// one claim's source list run in parallel; completions land in a buffer
// keyed by (claim, source) that callers drain in deterministic order, so
// persisted evidence order never depends on network timing.
package worker

import (
	"context"
	"sync"

	"github.com/veritaslabs/veritas/internal/model"
)

// FetchKey identifies one adapter call
type FetchKey struct {
	ClaimID  string
	SourceID string
}

// FetchJob is one adapter call to execute
type FetchJob struct {
	Key FetchKey
	Run func(ctx context.Context) []model.EvidenceCandidate
}

// FetchPool executes fetch jobs with a fixed concurrency cap
type FetchPool struct {
	workers int
}

// NewFetchPool creates a pool with the given concurrency cap.
func NewFetchPool(workers int) *FetchPool {
	if workers <= 0 {
		workers = 1
	}
	return &FetchPool{workers: workers}
}

// Collect runs all jobs and returns the completion buffer. Results are
// indexed by job key; a cancelled context leaves unstarted jobs absent
// from the buffer and in-flight results discarded.
func (p *FetchPool) Collect(ctx context.Context, jobs []FetchJob) map[FetchKey][]model.EvidenceCandidate {
	results := make([][]model.EvidenceCandidate, len(jobs))
	started := make([]bool, len(jobs))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, p.workers)
	for i, job := range jobs {
		select {
		case <-ctx.Done():
		case semaphore <- struct{}{}:
			started[i] = true
			wg.Add(1)
			go func(idx int, j FetchJob) {
				defer wg.Done()
				defer func() { <-semaphore }()
				results[idx] = j.Run(ctx)
			}(i, job)
		}
	}
	wg.Wait()

	buffer := make(map[FetchKey][]model.EvidenceCandidate, len(jobs))
	if ctx.Err() != nil {
		// Cancellation is silent: partial responses are discarded.
		return buffer
	}
	for i, job := range jobs {
		if started[i] && results[i] != nil {
			buffer[job.Key] = results[i]
		}
	}
	return buffer
}
