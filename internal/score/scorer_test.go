package score

import (
	"math"
	"testing"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

var refTime = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func financeClaim() *model.Claim {
	text := "Alphabet reported revenue of $96.5 billion in Q4 2024."
	return &model.Claim{
		ID:          "claim-1",
		Text:        text,
		Category:    model.CategoryFinance,
		ContentHash: textsig.Hash(text),
	}
}

func candidateFrom(api string, evType model.EvidenceType, title, snippet string, published *time.Time) model.EvidenceCandidate {
	return model.EvidenceCandidate{
		SourceAPI:    api,
		EvidenceType: evType,
		Title:        title,
		Snippet:      snippet,
		URL:          "https://example.com/" + api,
		PublishedAt:  published,
		Entities:     nil,
		Numbers:      textsig.NumberValues(title + " " + snippet),
	}
}

func TestScore_FilingWithExactNumberMatch_Supported(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	published := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	cand := candidateFrom("sec_edgar", model.EvidenceFiling,
		"Alphabet Inc. Form 10-K Annual Report",
		"Alphabet announced quarterly revenue of $96.5 billion for Q4 2024 in its annual filing.",
		&published)

	ev := s.Score(financeClaim(), cand, refTime)

	if ev.Score < 85 {
		t.Fatalf("score = %d, want >= 85 (breakdown %v)", ev.Score, ev.Breakdown)
	}
	if ev.Breakdown[SignalNumberMatch] <= 0 {
		t.Errorf("expected number match, breakdown %v", ev.Breakdown)
	}
	if ev.MatchedNumber != "96500000000" {
		t.Errorf("matched number = %q", ev.MatchedNumber)
	}
	if got := s.StatusFor(ev); got != model.StatusSupported {
		t.Errorf("status = %s, want supported", got)
	}
}

func TestScore_SecondarySourceCannotBeSupported(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	// Even a perfect textual match on a secondary source stays below the
	// primary-source guardrail.
	cand := candidateFrom("wikipedia", model.EvidenceSecondary,
		"Alphabet Inc.",
		"Alphabet reported revenue of $96.5 billion in Q4 2024.",
		nil)

	ev := s.Score(financeClaim(), cand, refTime)
	if got := s.StatusFor(ev); got == model.StatusSupported {
		t.Errorf("secondary source must never yield supported (score %d)", ev.Score)
	}
}

func TestScore_WeakOverlapIsUnknown(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	cand := candidateFrom("wikipedia", model.EvidenceSecondary,
		"Alphabet Inc.",
		"Alphabet is an American multinational technology conglomerate headquartered in Mountain View.",
		nil)

	ev := s.Score(financeClaim(), cand, refTime)
	if ev.Score >= 70 {
		t.Errorf("score = %d, want < 70 (breakdown %v)", ev.Score, ev.Breakdown)
	}
	if got := s.StatusFor(ev); got != model.StatusUnknown {
		t.Errorf("status = %s, want unknown", got)
	}
}

func TestScore_BreakdownSumsToScore(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	published := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	candidates := []model.EvidenceCandidate{
		candidateFrom("sec_edgar", model.EvidenceFiling,
			"Alphabet Inc. Form 10-K",
			"Alphabet announced quarterly revenue of $96.5 billion for Q4 2024.",
			&published),
		candidateFrom("wikipedia", model.EvidenceSecondary,
			"Alphabet Inc.", "An American technology conglomerate.", nil),
		candidateFrom("fred", model.EvidenceDataset,
			"Gross Domestic Product", "2024-10-01: 29000", &published),
	}
	for _, cand := range candidates {
		ev := s.Score(financeClaim(), cand, refTime)
		sum := 0.0
		for _, v := range ev.Breakdown {
			sum += v
		}
		if math.Abs(sum-float64(ev.Score)) > 1 {
			t.Errorf("%s: breakdown sum %.2f != score %d", cand.SourceAPI, sum, ev.Score)
		}
		if ev.Score < 0 || ev.Score > 100 {
			t.Errorf("%s: score %d out of range", cand.SourceAPI, ev.Score)
		}
	}
}

func TestScore_DegenerateCandidate(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	ev := s.Score(financeClaim(), model.EvidenceCandidate{SourceAPI: "empty"}, refTime)
	if ev.Score != 0 {
		t.Errorf("empty candidate score = %d, want 0", ev.Score)
	}
	if got := s.StatusFor(ev); got != model.StatusUnknown {
		t.Errorf("status = %s, want unknown", got)
	}
}

func TestAutoStatus_BestVerdictWins(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	published := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)

	strong := s.Score(financeClaim(), candidateFrom("sec_edgar", model.EvidenceFiling,
		"Alphabet Inc. Form 10-K Annual Report",
		"Alphabet announced quarterly revenue of $96.5 billion for Q4 2024 in its annual filing.",
		&published), refTime)
	weak := s.Score(financeClaim(), candidateFrom("wikipedia", model.EvidenceSecondary,
		"Alphabet Inc.", "An American technology conglomerate.", nil), refTime)

	if got := s.AutoStatus([]model.ScoredEvidence{weak, strong}); got != model.StatusSupported {
		t.Errorf("AutoStatus = %s, want supported", got)
	}
	if got := s.AutoStatus([]model.ScoredEvidence{weak}); got != model.StatusUnknown {
		t.Errorf("weak evidence alone: status = %s, want unknown", got)
	}
	if got := s.AutoStatus(nil); got != model.StatusUnknown {
		t.Errorf("empty evidence set: status = %s, want unknown", got)
	}
}

func TestAutoStatus_NeverContradicted(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	published := refTime
	// Sweep a spread of candidates; no code path may yield contradicted.
	for _, evType := range []model.EvidenceType{
		model.EvidenceFiling, model.EvidenceDataset, model.EvidencePaper,
		model.EvidenceGov, model.EvidenceSecondary, model.EvidenceFactcheck,
	} {
		cand := candidateFrom("x", evType,
			"Alphabet revenue falsehood report",
			"Alphabet revenue was definitely not $96.5 billion in Q4 2024.",
			&published)
		ev := s.Score(financeClaim(), cand, refTime)
		if got := s.StatusFor(ev); got == model.StatusContradicted {
			t.Fatalf("contradicted produced for %s", evType)
		}
	}
}

func TestScore_TemporalDecay(t *testing.T) {
	s := NewScorer(model.DefaultConfig())
	within := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC) // ~31 days from mid-2024
	stale := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)  // far beyond 3 years

	evNear := s.Score(financeClaim(), candidateFrom("sec_edgar", model.EvidenceFiling,
		"Filing", "quarterly report", &within), refTime)
	if evNear.Breakdown[SignalTemporal] != 10 {
		t.Errorf("near-date temporal = %v, want 10", evNear.Breakdown[SignalTemporal])
	}

	evStale := s.Score(financeClaim(), candidateFrom("sec_edgar", model.EvidenceFiling,
		"Filing", "quarterly report", &stale), refTime)
	if evStale.Breakdown[SignalTemporal] > 0 {
		t.Errorf("stale temporal = %v, want <= 0", evStale.Breakdown[SignalTemporal])
	}
}
