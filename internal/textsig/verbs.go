package textsig

import "strings"

// VerbLexicon is the static set of assertive verbs
type VerbLexicon map[string]bool

// NewVerbLexicon builds the lookup set from the configured list.
func NewVerbLexicon(verbs []string) VerbLexicon {
	set := make(VerbLexicon, len(verbs))
	for _, v := range verbs {
		set[strings.ToLower(v)] = true
	}
	return set
}

// First returns the first assertion verb in the sentence, or "".
func (l VerbLexicon) First(sentence string) string {
	for _, w := range Words(sentence) {
		if l[strings.ToLower(w)] {
			return strings.ToLower(w)
		}
	}
	return ""
}

// WordSet is a generic lowercase word lookup built from a config list.
type WordSet map[string]bool

// NewWordSet lowercases and indexes the given words.
func NewWordSet(words []string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// ContainsAny reports whether any word of the sentence is in the set.
func (s WordSet) ContainsAny(sentence string) bool {
	return s.FirstMatch(sentence) != ""
}

// FirstMatch returns the first sentence word present in the set, or "".
func (s WordSet) FirstMatch(sentence string) string {
	for _, w := range Words(sentence) {
		lw := strings.ToLower(strings.TrimSuffix(w, ","))
		if s[lw] {
			return lw
		}
	}
	return ""
}

// CountHits counts distinct set words present in the lowercased text,
// plus phrase hits checked by substring. Used by the router's signal bags.
func CountHits(textLower string, words WordSet, phrases []string) int {
	hits := 0
	seen := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(textLower)) {
		if words[w] && !seen[w] {
			seen[w] = true
			hits++
		}
	}
	for _, p := range phrases {
		if strings.Contains(textLower, strings.ToLower(p)) {
			hits++
		}
	}
	return hits
}
