// Package graph links claims about the same fact across sources:
// exact grouping by global hash, fuzzy grouping inside (week, category)
// blocks, group timelines, top-claims ranking, and advisory
// contradiction flags. Groups reference claims by id only; nothing
// points back.
package graph

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

// Aggregator computes cross-source claim groups
type Aggregator struct {
	cfg      *model.Config
	entities *textsig.EntityLexicon
}

// NewAggregator creates an aggregator from validated configuration.
func NewAggregator(cfg *model.Config) *Aggregator {
	return &Aggregator{
		cfg:      cfg,
		entities: textsig.NewEntityLexicon(cfg.Lexicon.OrgSuffixes, cfg.Lexicon.KnownEntities),
	}
}

// Aggregate groups the claims and derives contradiction flags. sources
// supplies ingestion timestamps for timelines; claims from unknown
// sources fall back to their creation time.
func (a *Aggregator) Aggregate(claims []model.Claim, sources map[string]model.Source) ([]model.ClaimGroup, []model.ContradictionFlag) {
	groups := a.buildGroups(claims, sources)
	flags := a.contradictions(groups)
	return groups, flags
}

// buildGroups merges exact global-hash groups, then fuzzy-merges near
// duplicates within (ISO week, category) blocks via union-find.
func (a *Aggregator) buildGroups(claims []model.Claim, sources map[string]model.Source) []model.ClaimGroup {
	// Exact pass: one bucket per global hash, in claim order.
	var hashOrder []string
	byHash := make(map[string][]model.Claim)
	for _, c := range claims {
		if _, ok := byHash[c.GlobalHash]; !ok {
			hashOrder = append(hashOrder, c.GlobalHash)
		}
		byHash[c.GlobalHash] = append(byHash[c.GlobalHash], c)
	}

	// Fuzzy pass: compare bucket representatives inside blocks keyed by
	// (ISO week of first-seen, category) to avoid O(n^2) over everything.
	uf := newUnionFind(hashOrder)
	blocks := make(map[string][]string)
	for _, h := range hashOrder {
		rep := byHash[h][0]
		year, week := a.firstSeen(byHash[h], sources).ISOWeek()
		key := fmt.Sprintf("%d-W%02d|%s", year, week, rep.Category)
		blocks[key] = append(blocks[key], h)
	}
	for _, hashes := range blocks {
		for i := 0; i < len(hashes); i++ {
			for j := i + 1; j < len(hashes); j++ {
				ra := byHash[hashes[i]][0]
				rb := byHash[hashes[j]][0]
				if textsig.LCSTokenRatio(ra.Text, rb.Text) >= a.cfg.Extract.DedupThreshold {
					uf.union(hashes[i], hashes[j])
				}
			}
		}
	}

	// Materialize merged groups, keyed by the earliest member hash so
	// group ids are stable across runs.
	merged := make(map[string][]model.Claim)
	var rootOrder []string
	for _, h := range hashOrder {
		root := uf.find(h)
		if _, ok := merged[root]; !ok {
			rootOrder = append(rootOrder, root)
		}
		merged[root] = append(merged[root], byHash[h]...)
	}

	groups := make([]model.ClaimGroup, 0, len(rootOrder))
	for _, root := range rootOrder {
		members := merged[root]
		g := model.ClaimGroup{
			ID:         "grp-" + root[:12],
			GlobalHash: root,
			Category:   members[0].Category,
		}
		for _, c := range members {
			occ := model.GroupOccurrence{
				ClaimID:    c.ID,
				SourceID:   c.SourceID,
				IngestedAt: a.occurrenceTime(c, sources),
				StartS:     c.StartS,
			}
			g.Occurrences = append(g.Occurrences, occ)
		}
		sort.SliceStable(g.Occurrences, func(i, j int) bool {
			oi, oj := g.Occurrences[i], g.Occurrences[j]
			if !oi.IngestedAt.Equal(oj.IngestedAt) {
				return oi.IngestedAt.Before(oj.IngestedAt)
			}
			return oi.StartS < oj.StartS
		})
		g.FirstSeen = g.Occurrences[0].IngestedAt
		seenSrc := make(map[string]bool)
		for _, occ := range g.Occurrences {
			if !seenSrc[occ.SourceID] {
				seenSrc[occ.SourceID] = true
				g.SourceIDs = append(g.SourceIDs, occ.SourceID)
			}
		}
		// Representative: the longest member text, ties to the earliest.
		rep := members[0]
		for _, c := range members[1:] {
			if len(c.Text) > len(rep.Text) {
				rep = c
			}
		}
		g.RepresentativeText = rep.Text
		groups = append(groups, g)
	}
	return groups
}

// TopClaims orders groups by spread: distinct source count descending,
// total occurrences descending, first-seen ascending.
func TopClaims(groups []model.ClaimGroup) []model.ClaimGroup {
	out := make([]model.ClaimGroup, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SourceCount() != b.SourceCount() {
			return a.SourceCount() > b.SourceCount()
		}
		if len(a.Occurrences) != len(b.Occurrences) {
			return len(a.Occurrences) > len(b.Occurrences)
		}
		return a.FirstSeen.Before(b.FirstSeen)
	})
	return out
}

// contradictions flags group pairs that share entities and category but
// diverge numerically. Advisory only: statuses are never touched.
func (a *Aggregator) contradictions(groups []model.ClaimGroup) []model.ContradictionFlag {
	var flags []model.ContradictionFlag
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			ga, gb := groups[i], groups[j]
			if ga.Category != gb.Category {
				continue
			}
			shared := a.sharedEntities(ga.RepresentativeText, gb.RepresentativeText)
			if len(shared) < 2 {
				continue
			}
			na, nb, diverges := numbersDiverge(ga.RepresentativeText, gb.RepresentativeText)
			if !diverges {
				continue
			}
			if keyphraseAlignment(ga.RepresentativeText, gb.RepresentativeText) >= 0.3 {
				continue
			}
			flags = append(flags, model.ContradictionFlag{
				GroupA:         ga.ID,
				GroupB:         gb.ID,
				SharedEntities: shared,
				NumberA:        na,
				NumberB:        nb,
				Reason: fmt.Sprintf("shared entities %s with divergent figures %s vs %s",
					strings.Join(shared, ", "), textsig.FormatNumber(na), textsig.FormatNumber(nb)),
			})
		}
	}
	return flags
}

func (a *Aggregator) sharedEntities(ta, tb string) []string {
	ea := a.entities.Detect(ta)
	lb := strings.ToLower(tb)
	var shared []string
	for _, e := range ea {
		if strings.Contains(lb, strings.ToLower(e.Name)) {
			shared = append(shared, e.Name)
		}
	}
	return shared
}

// numbersDiverge reports whether the two texts disagree numerically.
// Figures that match exactly across both sides (a shared year, a shared
// total) are accounted for and removed first; among the remainders the
// closest pair must still differ by a factor >= 1.25, or in sign.
func numbersDiverge(ta, tb string) (float64, float64, bool) {
	na, nb := unmatchedNumbers(textsig.NumberValues(ta), textsig.NumberValues(tb))
	if len(na) == 0 || len(nb) == 0 {
		return 0, 0, false
	}
	var bestA, bestB float64
	bestRatio := math.Inf(1)
	for _, x := range na {
		for _, y := range nb {
			if (x < 0) != (y < 0) {
				return x, y, true
			}
			ax, ay := math.Abs(x), math.Abs(y)
			lo, hi := math.Min(ax, ay), math.Max(ax, ay)
			if lo == 0 {
				continue
			}
			if r := hi / lo; r < bestRatio {
				bestRatio = r
				bestA, bestB = x, y
			}
		}
	}
	if math.IsInf(bestRatio, 1) {
		return 0, 0, false
	}
	return bestA, bestB, bestRatio >= 1.25
}

// unmatchedNumbers drops values present on both sides.
func unmatchedNumbers(na, nb []float64) ([]float64, []float64) {
	inB := make(map[float64]bool, len(nb))
	for _, y := range nb {
		inB[y] = true
	}
	inA := make(map[float64]bool, len(na))
	for _, x := range na {
		inA[x] = true
	}
	var outA, outB []float64
	for _, x := range na {
		if !inB[x] {
			outA = append(outA, x)
		}
	}
	for _, y := range nb {
		if !inA[y] {
			outB = append(outB, y)
		}
	}
	return outA, outB
}

// keyphraseAlignment is the longest shared n-gram (n>=3) between the two
// texts, as a fraction of the shorter text's token count.
func keyphraseAlignment(ta, tb string) float64 {
	la := len(strings.Fields(textsig.Normalize(ta)))
	lb := len(strings.Fields(textsig.Normalize(tb)))
	shorter := la
	if lb < shorter {
		shorter = lb
	}
	if shorter == 0 {
		return 0
	}
	_, n := textsig.LongestSharedNGram(ta, tb, 3)
	return float64(n) / float64(shorter)
}

func (a *Aggregator) firstSeen(members []model.Claim, sources map[string]model.Source) time.Time {
	first := a.occurrenceTime(members[0], sources)
	for _, c := range members[1:] {
		if t := a.occurrenceTime(c, sources); t.Before(first) {
			first = t
		}
	}
	return first
}

func (a *Aggregator) occurrenceTime(c model.Claim, sources map[string]model.Source) time.Time {
	if src, ok := sources[c.SourceID]; ok && !src.IngestedAt.IsZero() {
		return src.IngestedAt
	}
	return c.CreatedAt
}

// unionFind is a string-keyed disjoint set with path compression. Root
// choice is deterministic: the earlier key in insertion order wins.
type unionFind struct {
	parent map[string]string
	order  map[string]int
}

func newUnionFind(keys []string) *unionFind {
	uf := &unionFind{parent: make(map[string]string, len(keys)), order: make(map[string]int, len(keys))}
	for i, k := range keys {
		uf.parent[k] = k
		uf.order[k] = i
	}
	return uf
}

func (u *unionFind) find(x string) string {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.order[ra] > u.order[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
