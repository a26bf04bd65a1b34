package extract

import "github.com/veritaslabs/veritas/internal/textsig"

// deduper enforces local dedup during extraction: exact by content hash,
// fuzzy by token-LCS similarity against every kept claim. Global
// duplicates are allowed and annotated later by the orchestrator, which
// can see across sources.
type deduper struct {
	threshold float64
	hashes    map[string]bool
	kept      []string // original texts of admitted claims
}

func newDeduper(threshold float64) *deduper {
	return &deduper{threshold: threshold, hashes: make(map[string]bool)}
}

// admit reports whether the claim is new enough to keep, and records it.
func (d *deduper) admit(contentHash, text string) bool {
	if d.hashes[contentHash] {
		return false
	}
	for _, prev := range d.kept {
		if textsig.LCSTokenRatio(text, prev) >= d.threshold {
			return false
		}
	}
	d.hashes[contentHash] = true
	d.kept = append(d.kept, text)
	return true
}
