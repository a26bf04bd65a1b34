package extract

import (
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

// Classifier assigns confidence language and a topic category
type Classifier struct {
	hedges textsig.WordSet
	verbs  textsig.VerbLexicon
	bags   []categoryBag // in fixed priority order
}

type categoryBag struct {
	category model.Category
	words    textsig.WordSet
	phrases  []string
}

// NewClassifier compiles the category keyword bags in priority order.
func NewClassifier(cfg *model.Config) *Classifier {
	byCat := make(map[model.Category]model.CategoryTerms, len(cfg.Categories))
	for _, ct := range cfg.Categories {
		byCat[ct.Category] = ct
	}
	var bags []categoryBag
	for _, cat := range model.CategoryPriority {
		if cat == model.CategoryGeneral {
			continue
		}
		ct := byCat[cat]
		bags = append(bags, categoryBag{
			category: cat,
			words:    textsig.NewWordSet(ct.Words),
			phrases:  ct.Phrases,
		})
	}
	return &Classifier{
		hedges: textsig.NewWordSet(cfg.Lexicon.HedgeWords),
		verbs:  textsig.NewVerbLexicon(cfg.Lexicon.AssertionVerbs),
		bags:   bags,
	}
}

// Confidence scans for hedge markers first; a hedged sentence is hedged
// no matter how assertive the verb. Definitive requires an assertion verb
// together with a definite subject anchor already detected upstream.
func (c *Classifier) Confidence(sent string, signals []string) model.Confidence {
	lower := strings.ToLower(sent)
	for _, w := range textsig.Words(lower) {
		if c.hedges[w] {
			return model.ConfidenceHedged
		}
	}
	// Multi-word hedges ("some say") are checked by substring.
	if strings.Contains(lower, "some say") {
		return model.ConfidenceHedged
	}
	hasVerb := false
	hasAnchor := false
	for _, s := range signals {
		if strings.HasPrefix(s, "verb:assert") {
			hasVerb = true
		}
		if strings.HasPrefix(s, "entity:") || strings.HasPrefix(s, "anchor:") {
			hasAnchor = true
		}
	}
	if hasVerb && hasAnchor {
		return model.ConfidenceDefinitive
	}
	return model.ConfidenceUnknown
}

// Category scores every keyword bag (whole-word hits count 1, phrase hits
// count 2) and returns the highest scorer. Ties resolve to the earlier
// category in the fixed priority order; zero score means general.
func (c *Classifier) Category(sent string) model.Category {
	lower := strings.ToLower(sent)
	norm := textsig.Normalize(lower)
	words := strings.Fields(norm)

	best := model.CategoryGeneral
	bestScore := 0
	for _, bag := range c.bags {
		score := 0
		seen := make(map[string]bool)
		for _, w := range words {
			if bag.words[w] && !seen[w] {
				seen[w] = true
				score++
			}
		}
		for _, p := range bag.phrases {
			if strings.Contains(lower, strings.ToLower(p)) {
				score += 2
			}
		}
		if score > bestScore {
			bestScore = score
			best = bag.category
		}
	}
	return best
}
