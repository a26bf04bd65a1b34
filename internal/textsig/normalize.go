// Package textsig provides the deterministic text primitives the engine
// is built on: tokenization, normalization, hashing, and the rule-based
// signal detectors for numbers, dates, entities, and assertion verbs.
// Everything here is a pure function; given the same input and lexicons
// the output is byte-identical across runs and architectures.
package textsig

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Token is a word with its byte offsets in the original text
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits text on Unicode word boundaries, preserving offsets.
// A token is a maximal run of letters, digits, or word-internal
// punctuation (apostrophes, hyphens, dots between alphanumerics).
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	runes := []rune(text)
	byteOff := 0
	startByte := 0

	isWordRune := func(i int) bool {
		r := runes[i]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
		// Keep '.', '\'', '-', '/' when flanked by alphanumerics ("U.S.", "mg/dL", "year-over-year")
		if (r == '\'' || r == '-' || r == '.' || r == '/') && i > 0 && i+1 < len(runes) {
			return (unicode.IsLetter(runes[i-1]) || unicode.IsDigit(runes[i-1])) &&
				(unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1]))
		}
		return false
	}

	for i := range runes {
		if isWordRune(i) {
			if start < 0 {
				start = i
				startByte = byteOff
			}
		} else if start >= 0 {
			tokens = append(tokens, Token{Text: string(runes[start:i]), Start: startByte, End: byteOff})
			start = -1
		}
		byteOff += len(string(runes[i]))
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: string(runes[start:]), Start: startByte, End: byteOff})
	}
	return tokens
}

// Words returns just the token texts
func Words(text string) []string {
	toks := Tokenize(text)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

var leadingArticles = map[string]bool{"the": true, "a": true, "an": true}

// Normalize produces the canonical claim surface all hashes and fuzzy
// comparisons consume: lowercase, whitespace collapsed, trailing
// punctuation stripped, leading articles stripped, and every rune that is
// not a letter, digit, or space removed.
func Normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimRight(t, ".!?;:,")

	var b strings.Builder
	for _, r := range t {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	fields := strings.Fields(b.String())
	for len(fields) > 0 && leadingArticles[fields[0]] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// Hash returns the hex SHA-256 of the normalized text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// Stem applies a small deterministic suffix stripper, enough to align
// "reported"/"reports" or "earnings"/"earning" for overlap scoring.
func Stem(word string) string {
	w := word
	switch {
	case strings.HasSuffix(w, "sses"):
		w = strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		w = strings.TrimSuffix(w, "ies") + "i"
	case strings.HasSuffix(w, "ss"):
		// keep
	case strings.HasSuffix(w, "s") && len(w) > 3:
		w = strings.TrimSuffix(w, "s")
	}
	if strings.HasSuffix(w, "ing") && len(w) > 5 {
		w = strings.TrimSuffix(w, "ing")
	} else if strings.HasSuffix(w, "ed") && len(w) > 4 {
		w = strings.TrimSuffix(w, "ed")
	}
	return w
}

// TokenSet returns the stop-word-filtered, stemmed token set of text.
func TokenSet(text string, stopwords map[string]bool) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(text)) {
		if stopwords[w] {
			continue
		}
		set[Stem(w)] = true
	}
	return set
}

// Jaccard computes set similarity: |A∩B| / |A∪B|.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// LCSTokenRatio computes token-level similarity as the length of the
// longest common subsequence over normalized tokens, divided by the
// longer sequence length. 1.0 means identical token sequences.
func LCSTokenRatio(a, b string) float64 {
	ta := strings.Fields(Normalize(a))
	tb := strings.Fields(Normalize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	prev := make([]int, len(tb)+1)
	curr := make([]int, len(tb)+1)
	for i := 1; i <= len(ta); i++ {
		for j := 1; j <= len(tb); j++ {
			if ta[i-1] == tb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(tb)]
	longer := len(ta)
	if len(tb) > longer {
		longer = len(tb)
	}
	return float64(lcs) / float64(longer)
}

// LongestSharedNGram finds the longest contiguous token n-gram (n >= minN)
// of claim that appears verbatim in candidate, both normalized. Returns
// the n-gram and its token length (0 if none).
func LongestSharedNGram(claim, candidate string, minN int) (string, int) {
	ct := strings.Fields(Normalize(claim))
	cand := " " + strings.Join(strings.Fields(Normalize(candidate)), " ") + " "
	best := ""
	bestN := 0
	for n := len(ct); n >= minN; n-- {
		for i := 0; i+n <= len(ct); i++ {
			gram := strings.Join(ct[i:i+n], " ")
			if strings.Contains(cand, " "+gram+" ") {
				best = gram
				bestN = n
				break
			}
		}
		if bestN > 0 {
			break
		}
	}
	return best, bestN
}
