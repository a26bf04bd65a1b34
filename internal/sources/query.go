package sources

import (
	"regexp"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

var properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)

// Phrases too common to help a search query
var commonPhrases = map[string]bool{
	"United States": true, "New York": true, "Last Year": true,
	"Next Year": true, "First Quarter": true, "Second Quarter": true,
	"Third Quarter": true, "Fourth Quarter": true,
}

var queryStopwords = textsig.NewWordSet([]string{
	"the", "a", "an", "is", "are", "was", "were", "has", "have", "had",
	"be", "been", "being", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "shall", "can", "to", "of", "in", "for",
	"on", "at", "by", "with", "from", "as", "into", "about", "between",
	"through", "during", "before", "after", "and", "but", "or", "so",
	"if", "then", "than", "that", "this", "these", "those", "it", "its",
	"not", "no", "just", "very", "really", "also", "too", "more", "most",
	"some", "any", "all", "each", "every", "both", "few", "many", "much",
	"own", "other", "such", "only",
})

// BuildQuery condenses a claim into search terms: multi-word proper
// nouns become quoted phrases, numbers are always kept, stopwords drop,
// and the result is capped at maxTerms (quoted phrases count double).
func BuildQuery(claimText string, maxTerms int) string {
	properNouns := properNounRe.FindAllString(claimText, -1)
	var phrases []string
	phraseWords := make(map[string]bool)
	termsUsed := 0
	for _, pn := range properNouns {
		if commonPhrases[pn] {
			continue
		}
		if len(phrases) >= 3 {
			break
		}
		phrases = append(phrases, `"`+pn+`"`)
		for _, w := range strings.Fields(pn) {
			phraseWords[w] = true
		}
		termsUsed += 2
	}

	var keyTerms []string
	for _, w := range strings.Fields(claimText) {
		cleaned := strings.Trim(w, `.,!?;:"'()[]`)
		if cleaned == "" || phraseWords[cleaned] {
			continue
		}
		lower := strings.ToLower(cleaned)
		switch {
		case strings.ContainsAny(cleaned, "0123456789"):
			keyTerms = append(keyTerms, cleaned)
		case cleaned[0] >= 'A' && cleaned[0] <= 'Z' && !queryStopwords[lower]:
			keyTerms = append(keyTerms, cleaned)
		case !queryStopwords[lower] && len(lower) > 2:
			keyTerms = append(keyTerms, lower)
		}
	}
	remaining := maxTerms - termsUsed
	if remaining < 0 {
		remaining = 0
	}
	if len(keyTerms) > remaining {
		keyTerms = keyTerms[:remaining]
	}
	return strings.Join(append(phrases, keyTerms...), " ")
}

// NewQuery builds the adapter input from a claim using the shared
// detectors, so adapters and extractor see the same signals.
func NewQuery(claim *model.Claim, lex *textsig.EntityLexicon) Query {
	var dates []string
	for _, d := range textsig.DetectDates(claim.Text) {
		dates = append(dates, d.Surface)
	}
	return Query{
		ClaimText: claim.Text,
		Terms:     BuildQuery(claim.Text, 8),
		Entities:  lex.Names(claim.Text),
		Numbers:   textsig.NumberValues(claim.Text),
		Dates:     dates,
		Category:  claim.Category,
	}
}
