package worker

import (
	"context"
	"testing"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
)

func candidate(api string) []model.EvidenceCandidate {
	return []model.EvidenceCandidate{{SourceAPI: api, URL: "https://example.com/" + api}}
}

func TestFetchPool_BuffersByKey(t *testing.T) {
	pool := NewFetchPool(2)
	// The slow job finishes last; completion order must not matter.
	jobs := []FetchJob{
		{
			Key: FetchKey{ClaimID: "c1", SourceID: "slow"},
			Run: func(ctx context.Context) []model.EvidenceCandidate {
				time.Sleep(30 * time.Millisecond)
				return candidate("slow")
			},
		},
		{
			Key: FetchKey{ClaimID: "c1", SourceID: "fast"},
			Run: func(ctx context.Context) []model.EvidenceCandidate {
				return candidate("fast")
			},
		},
	}
	buffer := pool.Collect(context.Background(), jobs)

	if len(buffer) != 2 {
		t.Fatalf("expected 2 buffered results, got %d", len(buffer))
	}
	for _, key := range []FetchKey{{ClaimID: "c1", SourceID: "slow"}, {ClaimID: "c1", SourceID: "fast"}} {
		got := buffer[key]
		if len(got) != 1 || got[0].SourceAPI != key.SourceID {
			t.Errorf("buffer[%v] = %v", key, got)
		}
	}
}

func TestFetchPool_BoundedConcurrency(t *testing.T) {
	pool := NewFetchPool(1)
	running := 0
	maxRunning := 0
	done := make(chan struct{}, 8)

	var jobs []FetchJob
	for i := 0; i < 4; i++ {
		jobs = append(jobs, FetchJob{
			Key: FetchKey{ClaimID: "c1", SourceID: string(rune('a' + i))},
			Run: func(ctx context.Context) []model.EvidenceCandidate {
				running++
				if running > maxRunning {
					maxRunning = running
				}
				time.Sleep(5 * time.Millisecond)
				running--
				done <- struct{}{}
				return nil
			},
		})
	}
	pool.Collect(context.Background(), jobs)
	// One worker means the counter never overlaps, so no data race above.
	if maxRunning != 1 {
		t.Errorf("max concurrent jobs = %d, want 1", maxRunning)
	}
}

func TestFetchPool_CancelledContextDiscards(t *testing.T) {
	pool := NewFetchPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []FetchJob{{
		Key: FetchKey{ClaimID: "c1", SourceID: "x"},
		Run: func(ctx context.Context) []model.EvidenceCandidate { return candidate("x") },
	}}
	buffer := pool.Collect(ctx, jobs)
	if len(buffer) != 0 {
		t.Errorf("cancelled collect must discard results, got %v", buffer)
	}
}
