package textsig

import (
	"strings"
	"unicode"
)

// Entity is a rule-detected proper noun
type Entity struct {
	Name string
	Kind string // "ORG" for suffix/allow-list hits, "NAME" otherwise
}

// EntityLexicon configures the rule-based entity detector
type EntityLexicon struct {
	OrgSuffixes   map[string]bool // "Inc", "Corp", ...
	KnownEntities []string        // allow-list, matched case-insensitively
}

// NewEntityLexicon builds the lookup structures from raw config lists.
func NewEntityLexicon(orgSuffixes, knownEntities []string) *EntityLexicon {
	suffixes := make(map[string]bool, len(orgSuffixes))
	for _, s := range orgSuffixes {
		suffixes[s] = true
	}
	return &EntityLexicon{OrgSuffixes: suffixes, KnownEntities: knownEntities}
}

func isCapitalized(w string) bool {
	r := []rune(w)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return false
	}
	for _, c := range r[1:] {
		if !unicode.IsLetter(c) && c != '.' && c != '&' && c != '\'' {
			return false
		}
	}
	return true
}

// Detect finds proper nouns: runs of capitalized tokens that do not sit
// at the sentence start, plus allow-list entities anywhere. No ML.
func (l *EntityLexicon) Detect(sentence string) []Entity {
	var out []Entity
	seen := make(map[string]bool)

	add := func(name, kind string) {
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			out = append(out, Entity{Name: name, Kind: kind})
		}
	}

	// Allow-list hits first: they may sit at the sentence start.
	lower := strings.ToLower(sentence)
	for _, known := range l.KnownEntities {
		if containsWord(lower, strings.ToLower(known)) {
			add(known, "ORG")
		}
	}

	tokens := Tokenize(sentence)
	i := 0
	for i < len(tokens) {
		if !isCapitalized(tokens[i].Text) || i == 0 {
			i++
			continue
		}
		j := i
		for j < len(tokens) && isCapitalized(tokens[j].Text) {
			j++
		}
		run := make([]string, 0, j-i)
		for k := i; k < j; k++ {
			run = append(run, tokens[k].Text)
		}
		name := strings.Join(run, " ")
		kind := "NAME"
		if l.OrgSuffixes[strings.TrimSuffix(run[len(run)-1], ".")] {
			kind = "ORG"
		}
		if !seen[strings.ToLower(name)] {
			add(name, kind)
		}
		i = j
	}
	return out
}

// Names returns the detected entity surfaces, for adapter normalization.
func (l *EntityLexicon) Names(text string) []string {
	ents := l.Detect(text)
	out := make([]string, len(ents))
	for i, e := range ents {
		out[i] = e.Name
	}
	return out
}

// containsWord reports a whole-word, case-matched substring hit.
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], needle)
		if pos < 0 {
			return false
		}
		pos += idx
		beforeOK := pos == 0 || !isWordByte(haystack[pos-1])
		after := pos + len(needle)
		afterOK := after >= len(haystack) || !isWordByte(haystack[after])
		if beforeOK && afterOK {
			return true
		}
		idx = pos + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
