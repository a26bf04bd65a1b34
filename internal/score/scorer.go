// Package score computes rule-based evidence scores with a transparent
// per-signal breakdown, and derives auto-status verdicts under strict
// guardrails. Scoring never consults the wall clock: "now" is an explicit
// argument so results stay reproducible.
package score

import (
	"math"
	"strings"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

// Breakdown signal names, persisted verbatim with each score.
const (
	SignalTokenOverlap = "token_overlap"
	SignalEntityMatch  = "entity_match"
	SignalNumberMatch  = "number_match"
	SignalKeyphrase    = "keyphrase"
	SignalEvidenceType = "evidence_type"
	SignalTemporal     = "temporal"
)

// Scorer scores evidence candidates against claims
type Scorer struct {
	cfg           *model.Config
	stopwords     map[string]bool
	entities      *textsig.EntityLexicon
	timeSensitive map[model.Category]bool
}

// NewScorer creates a scorer from validated configuration.
func NewScorer(cfg *model.Config) *Scorer {
	stop := make(map[string]bool, len(cfg.Lexicon.Stopwords))
	for _, w := range cfg.Lexicon.Stopwords {
		stop[strings.ToLower(w)] = true
	}
	sensitive := make(map[model.Category]bool, len(cfg.Scoring.TimeSensitive))
	for _, c := range cfg.Scoring.TimeSensitive {
		sensitive[c] = true
	}
	return &Scorer{
		cfg:           cfg,
		stopwords:     stop,
		entities:      textsig.NewEntityLexicon(cfg.Lexicon.OrgSuffixes, cfg.Lexicon.KnownEntities),
		timeSensitive: sensitive,
	}
}

// Score computes the 0-100 weighted score of one candidate against one
// claim. The breakdown map records each signal's exact contribution;
// summing it reproduces the score within rounding. A degenerate candidate
// (no title, no snippet) scores 0 without error.
func (s *Scorer) Score(claim *model.Claim, cand model.EvidenceCandidate, now time.Time) model.ScoredEvidence {
	ev := model.ScoredEvidence{
		ClaimID:   claim.ID,
		Candidate: cand,
		Breakdown: map[string]float64{},
	}
	candText := strings.TrimSpace(cand.Title + " " + cand.Snippet)
	if candText == "" {
		return ev
	}
	w := s.cfg.Scoring.Weights

	// 1. Token overlap: Jaccard of stop-word-filtered stemmed sets.
	claimSet := textsig.TokenSet(claim.Text, s.stopwords)
	candSet := textsig.TokenSet(candText, s.stopwords)
	ev.Breakdown[SignalTokenOverlap] = round2(textsig.Jaccard(claimSet, candSet) * w.TokenOverlap)

	// 2. Entity match: fraction of claim entities found in the candidate.
	claimEnts := s.entities.Detect(claim.Text)
	if len(claimEnts) > 0 {
		candLower := strings.ToLower(candText)
		matched := 0
		for _, e := range claimEnts {
			if strings.Contains(candLower, strings.ToLower(e.Name)) {
				matched++
			}
		}
		ev.Breakdown[SignalEntityMatch] = round2(float64(matched) / float64(len(claimEnts)) * w.EntityMatch)
	} else {
		ev.Breakdown[SignalEntityMatch] = 0
	}

	// 3. Number match: exact canonical equality, with a unit/scale bonus.
	numScore := 0.0
	claimNums := textsig.DetectNumbers(claim.Text)
	for _, cn := range claimNums {
		for _, ev2 := range cand.Numbers {
			if numbersEqual(cn.Value, ev2) {
				numScore = w.NumberMatch
				ev.MatchedNumber = textsig.FormatNumber(cn.Value)
				if unitsAgree(cn, candText) {
					numScore += w.UnitBonus
				}
				break
			}
		}
		if numScore > 0 {
			break
		}
	}
	ev.Breakdown[SignalNumberMatch] = numScore

	// 4. Keyphrase alignment: longest shared n-gram (n>=3) over claim length.
	claimLen := len(strings.Fields(textsig.Normalize(claim.Text)))
	if gram, n := textsig.LongestSharedNGram(claim.Text, candText, 3); n > 0 && claimLen > 0 {
		ev.MatchedKeyphrase = gram
		ev.Breakdown[SignalKeyphrase] = round2(float64(n) / float64(claimLen) * w.Keyphrase)
	} else {
		ev.Breakdown[SignalKeyphrase] = 0
	}

	// 5. Evidence type weight from the per-category table.
	typeWeights, ok := s.cfg.Scoring.EvidenceTypeWeights[claim.Category]
	if !ok {
		typeWeights = s.cfg.Scoring.EvidenceTypeWeights[model.CategoryGeneral]
	}
	ev.Breakdown[SignalEvidenceType] = typeWeights[cand.EvidenceType]

	// 6. Temporal alignment against the explicit reference time.
	ev.Breakdown[SignalTemporal] = s.temporal(claim, cand, now)

	total := 0.0
	for _, v := range ev.Breakdown {
		total += v
	}
	// The unit bonus may not push past 100; trim the overflow where it arose.
	if total > 100 {
		ev.Breakdown[SignalNumberMatch] = round2(ev.Breakdown[SignalNumberMatch] - (total - 100))
		total = 100
	}
	// A stale penalty may not drag the total below zero.
	if total < 0 {
		ev.Breakdown[SignalTemporal] = round2(ev.Breakdown[SignalTemporal] - total)
		total = 0
	}
	ev.Score = int(math.Round(total))
	return ev
}

// temporal scores date proximity: full weight inside ±90 days, linear
// decay to zero at ±3 years, and a stale penalty past that for
// time-sensitive categories. Claims without dates, or candidates without
// a publication date, contribute nothing.
func (s *Scorer) temporal(claim *model.Claim, cand model.EvidenceCandidate, now time.Time) float64 {
	if cand.PublishedAt == nil {
		return 0
	}
	var claimYear int
	for _, d := range textsig.DetectDates(claim.Text) {
		if d.Resolved && d.Year > 0 {
			claimYear = d.Year
			break
		}
	}
	if claimYear == 0 {
		return 0
	}
	// Anchor the claim date at mid-year; day precision is not available.
	claimDate := time.Date(claimYear, time.July, 1, 0, 0, 0, 0, time.UTC)
	diff := cand.PublishedAt.Sub(claimDate)
	if diff < 0 {
		diff = -diff
	}
	days := diff.Hours() / 24
	const window = 90.0
	const horizon = 3 * 365.0
	switch {
	case days <= window:
		return s.cfg.Scoring.Weights.Temporal
	case days <= horizon:
		frac := 1 - (days-window)/(horizon-window)
		return round2(s.cfg.Scoring.Weights.Temporal * frac)
	default:
		if s.timeSensitive[claim.Category] {
			_ = now // reference time reserved for relative-date resolution
			return -5
		}
		return 0
	}
}

// StatusFor derives the guardrailed auto-status of a single scored
// candidate. CONTRADICTED is never produced here.
func (s *Scorer) StatusFor(ev model.ScoredEvidence) model.Status {
	if ev.Score >= s.cfg.Scoring.SupportedThreshold &&
		ev.Candidate.EvidenceType.IsPrimary() &&
		(ev.Breakdown[SignalNumberMatch] > 0 || ev.Breakdown[SignalKeyphrase] > 0) {
		return model.StatusSupported
	}
	if ev.Score >= s.cfg.Scoring.PartialThreshold &&
		ev.Score < s.cfg.Scoring.SupportedThreshold &&
		ev.Breakdown[SignalEntityMatch] > 0 {
		return model.StatusPartial
	}
	return model.StatusUnknown
}

// AutoStatus resolves a claim's status from its full evidence set: the
// highest-ranked verdict across candidates. A pure function of the
// evidence set, so re-scoring unchanged evidence never moves the status.
func (s *Scorer) AutoStatus(evidence []model.ScoredEvidence) model.Status {
	best := model.StatusUnknown
	for _, ev := range evidence {
		if st := s.StatusFor(ev); st.Rank() > best.Rank() {
			best = st
		}
	}
	return best
}

func numbersEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return scale > 0 && math.Abs(a-b)/scale < 1e-9
}

// unitsAgree checks whether the claim number's unit or currency surface
// also appears in the candidate text.
func unitsAgree(n textsig.Number, candText string) bool {
	lower := strings.ToLower(candText)
	if n.Unit == "pct" {
		return strings.Contains(lower, "%") || strings.Contains(lower, "percent")
	}
	if n.Unit != "" {
		return strings.Contains(lower, strings.ToLower(n.Unit))
	}
	if n.Currency == "USD" {
		return strings.Contains(candText, "$") || strings.Contains(lower, "usd")
	}
	if n.Currency != "" {
		return strings.Contains(lower, strings.ToLower(n.Currency))
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
