package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

var ingested = time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)

func testClaim(id, sourceID, text string) model.Claim {
	return model.Claim{
		ID:                 id,
		SourceID:           sourceID,
		Text:               text,
		StartS:             1.5,
		EndS:               4.5,
		ContentHash:        textsig.Hash(text),
		GlobalHash:         textsig.Hash(text),
		ConfidenceLanguage: model.ConfidenceDefinitive,
		Category:           model.CategoryFinance,
		SignalLog:          []string{"num=96500000000", "verb:assert=reported", "anchor:proper"},
		Status:             model.StatusUnknown,
		CreatedAt:          ingested,
	}
}

func testEvidence(claimID, url string, score int) model.ScoredEvidence {
	published := ingested.AddDate(0, -1, 0)
	return model.ScoredEvidence{
		ClaimID: claimID,
		Candidate: model.EvidenceCandidate{
			SourceAPI:    "sec_edgar",
			EvidenceType: model.EvidenceFiling,
			Title:        "Form 10-K",
			Snippet:      "revenue of $96.5 billion",
			URL:          url,
			PublishedAt:  &published,
			Entities:     []string{"Alphabet"},
			Numbers:      []float64{96.5e9},
			Keyphrases:   []string{"revenue of 965"},
		},
		Score: score,
		Breakdown: map[string]float64{
			"token_overlap": 12, "entity_match": 20, "number_match": 35,
			"keyphrase": 6.67, "evidence_type": 10, "temporal": 8.78,
		},
		MatchedNumber: "96500000000",
	}
}

// stores under test: the SQLite reference implementation and the
// in-memory implementation must behave identically.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "veritas.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]Store{"sqlite": sqlite, "memory": NewMemory()}
}

func TestStore_SourceAndSegmentsRoundTrip(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			src := model.Source{ID: "src-1", Kind: model.SourceText, Title: "call", IngestedAt: ingested}
			require.NoError(t, st.SaveSource(src))

			segments := []model.TimedSegment{
				{Text: "one", StartS: 0, EndS: 5},
				{Text: "two", StartS: 5, EndS: 9},
			}
			require.NoError(t, st.SaveSegments(src.ID, segments))

			got, err := st.ListSegments(src.ID)
			require.NoError(t, err)
			assert.Equal(t, segments, got)

			loaded, err := st.GetSource(src.ID)
			require.NoError(t, err)
			assert.Equal(t, src.Title, loaded.Title)
			assert.True(t, loaded.IngestedAt.Equal(src.IngestedAt))
		})
	}
}

func TestStore_ClaimInsertIsIdempotent(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveSource(model.Source{ID: "src-1", Kind: model.SourceText, IngestedAt: ingested}))
			claims := []model.Claim{
				testClaim("c1", "src-1", "Alphabet reported revenue of $96.5 billion in Q4 2024."),
			}

			n, err := st.ReplaceClaims("src-1", claims)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			// Re-running extraction produces zero new claims.
			n, err = st.ReplaceClaims("src-1", claims)
			require.NoError(t, err)
			assert.Equal(t, 0, n)

			got, err := st.ClaimsForSource("src-1")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, claims[0].SignalLog, got[0].SignalLog)
		})
	}
}

func TestStore_EvidenceAppendOnlyPerURL(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveSource(model.Source{ID: "src-1", Kind: model.SourceText, IngestedAt: ingested}))
			claim := testClaim("c1", "src-1", "Alphabet reported revenue of $96.5 billion in Q4 2024.")
			_, err := st.ReplaceClaims("src-1", []model.Claim{claim})
			require.NoError(t, err)

			ev := testEvidence("c1", "https://sec.gov/filing/1", 91)
			require.NoError(t, st.SaveClaimResult(&claim, []model.ScoredEvidence{ev}, model.StatusSupported))

			// Same (claim, url) again: no new rows, status unchanged.
			require.NoError(t, st.SaveClaimResult(&claim, []model.ScoredEvidence{ev}, model.StatusSupported))

			rows, err := st.EvidenceForClaim("c1")
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, 91, rows[0].Score)
			assert.InDelta(t, 35, rows[0].Breakdown["number_match"], 0.001)
			assert.Equal(t, "96500000000", rows[0].MatchedNumber)

			claims, err := st.ClaimsForSource("src-1")
			require.NoError(t, err)
			assert.Equal(t, model.StatusSupported, claims[0].Status)
		})
	}
}

func TestStore_GlobalHashAcrossSources(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveSource(model.Source{ID: "src-1", Kind: model.SourceText, IngestedAt: ingested}))
			require.NoError(t, st.SaveSource(model.Source{ID: "src-2", Kind: model.SourceText, IngestedAt: ingested.Add(time.Hour)}))

			text := "GDP grew 2.8% in 2024 according to the bureau."
			a := testClaim("c1", "src-1", text)
			b := testClaim("c2", "src-2", text)
			_, err := st.ReplaceClaims("src-1", []model.Claim{a})
			require.NoError(t, err)
			_, err = st.ReplaceClaims("src-2", []model.Claim{b})
			require.NoError(t, err)

			// Cross-source duplicates are allowed...
			all, err := st.AllClaims()
			require.NoError(t, err)
			assert.Len(t, all, 2)

			// ...and visible via the global hash index.
			n, err := st.CountGlobalHash(a.GlobalHash, "src-1")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestStore_HumanOverrideWins(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveSource(model.Source{ID: "src-1", Kind: model.SourceText, IngestedAt: ingested}))
			claim := testClaim("c1", "src-1", "Alphabet reported revenue of $96.5 billion in Q4 2024.")
			_, err := st.ReplaceClaims("src-1", []model.Claim{claim})
			require.NoError(t, err)

			require.NoError(t, st.SetHumanStatus("c1", model.StatusContradicted))

			claims, err := st.ClaimsForSource("src-1")
			require.NoError(t, err)
			require.NotNil(t, claims[0].StatusHuman)
			assert.Equal(t, model.StatusContradicted, claims[0].FinalStatus())
			assert.Equal(t, model.StatusUnknown, claims[0].Status, "auto status untouched")

			assert.Error(t, st.SetHumanStatus("missing", model.StatusSupported))
		})
	}
}
