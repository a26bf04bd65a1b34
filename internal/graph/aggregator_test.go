package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

var (
	t0 = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC) // Monday, ISO week 10
	t1 = t0.Add(24 * time.Hour)
)

func mkClaim(id, sourceID, text string, cat model.Category) model.Claim {
	return model.Claim{
		ID:          id,
		SourceID:    sourceID,
		Text:        text,
		Category:    cat,
		ContentHash: textsig.Hash(text),
		GlobalHash:  textsig.Hash(text),
		Status:      model.StatusUnknown,
		CreatedAt:   t0,
	}
}

func mkSources() map[string]model.Source {
	return map[string]model.Source{
		"src-a": {ID: "src-a", Kind: model.SourceText, IngestedAt: t0},
		"src-b": {ID: "src-b", Kind: model.SourceText, IngestedAt: t1},
	}
}

func TestAggregate_ExactSpreadAcrossSources(t *testing.T) {
	a := NewAggregator(model.DefaultConfig())
	text := "GDP grew 2.8% in 2024."
	claims := []model.Claim{
		mkClaim("c1", "src-a", text, model.CategoryFinance),
		mkClaim("c2", "src-b", text, model.CategoryFinance),
		mkClaim("c3", "src-a", "The unemployment rate held at 4.1% in January.", model.CategoryLabor),
	}

	groups, _ := a.Aggregate(claims, mkSources())
	require.Len(t, groups, 2)

	var spread *model.ClaimGroup
	for i := range groups {
		if groups[i].SourceCount() == 2 {
			spread = &groups[i]
		}
	}
	require.NotNil(t, spread, "expected a two-source group")
	assert.Equal(t, 2, len(spread.Occurrences))
	// Timeline ordered by ingestion time; first-seen is the minimum.
	assert.Equal(t, "src-a", spread.Occurrences[0].SourceID)
	assert.Equal(t, "src-b", spread.Occurrences[1].SourceID)
	assert.True(t, spread.FirstSeen.Equal(t0))

	// The repeated claim outranks the singleton.
	top := TopClaims(groups)
	assert.Equal(t, spread.ID, top[0].ID)
}

func TestAggregate_FuzzyMergeWithinBlock(t *testing.T) {
	a := NewAggregator(model.DefaultConfig())
	// Same fact, trailing word differs: similarity above 0.85 within the
	// same week and category merges the two hashes into one group.
	base := "Alphabet quarterly revenue reached 96.5 billion dollars in the fourth quarter of 2024 overall"
	variant := base + " again"
	claims := []model.Claim{
		mkClaim("c1", "src-a", base, model.CategoryFinance),
		mkClaim("c2", "src-b", variant, model.CategoryFinance),
	}
	require.NotEqual(t, claims[0].GlobalHash, claims[1].GlobalHash)

	groups, _ := a.Aggregate(claims, mkSources())
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].SourceCount())
	// Representative is the longest member text.
	assert.Equal(t, variant, groups[0].RepresentativeText)
}

func TestAggregate_NoFuzzyMergeAcrossCategories(t *testing.T) {
	a := NewAggregator(model.DefaultConfig())
	text := "The budget deficit reached 1.8 trillion dollars in fiscal 2024"
	claims := []model.Claim{
		mkClaim("c1", "src-a", text, model.CategoryFinance),
		mkClaim("c2", "src-b", text+" says", model.CategoryPolitics),
	}
	groups, _ := a.Aggregate(claims, mkSources())
	assert.Len(t, groups, 2, "different categories must not fuzzy-merge")
}

func TestAggregate_ContradictionFlag(t *testing.T) {
	a := NewAggregator(model.DefaultConfig())
	claims := []model.Claim{
		mkClaim("c1", "src-a",
			"Goldman Sachs said Tesla delivered 400,000 vehicles worldwide during 2023.",
			model.CategoryFinance),
		mkClaim("c2", "src-b",
			"Goldman Sachs analysts reported Tesla shipped only 250,000 cars across 2023.",
			model.CategoryFinance),
	}
	groups, flags := a.Aggregate(claims, mkSources())
	require.Len(t, groups, 2)
	require.Len(t, flags, 1)

	flag := flags[0]
	assert.GreaterOrEqual(t, len(flag.SharedEntities), 2)
	assert.NotZero(t, flag.NumberA)
	assert.NotZero(t, flag.NumberB)
}

func TestAggregate_NoFlagWhenNumbersAgree(t *testing.T) {
	a := NewAggregator(model.DefaultConfig())
	claims := []model.Claim{
		mkClaim("c1", "src-a",
			"Goldman Sachs said Tesla delivered 400,000 vehicles worldwide during 2023.",
			model.CategoryFinance),
		mkClaim("c2", "src-b",
			"Goldman Sachs noted Tesla handed over 400,000 vehicles to customers in 2023.",
			model.CategoryFinance),
	}
	_, flags := a.Aggregate(claims, mkSources())
	assert.Empty(t, flags, "matching figures must not be flagged")
}

func TestTopClaims_Ordering(t *testing.T) {
	early := model.ClaimGroup{ID: "g1", FirstSeen: t0, SourceIDs: []string{"a"},
		Occurrences: []model.GroupOccurrence{{SourceID: "a"}}}
	late := model.ClaimGroup{ID: "g2", FirstSeen: t1, SourceIDs: []string{"a"},
		Occurrences: []model.GroupOccurrence{{SourceID: "a"}}}
	wide := model.ClaimGroup{ID: "g3", FirstSeen: t1, SourceIDs: []string{"a", "b"},
		Occurrences: []model.GroupOccurrence{{SourceID: "a"}, {SourceID: "b"}}}

	top := TopClaims([]model.ClaimGroup{late, early, wide})
	require.Len(t, top, 3)
	assert.Equal(t, "g3", top[0].ID, "widest spread first")
	assert.Equal(t, "g1", top[1].ID, "earlier first-seen breaks the tie")
	assert.Equal(t, "g2", top[2].ID)
}
