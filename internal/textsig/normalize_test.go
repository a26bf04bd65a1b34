package textsig

import (
	"testing"
)

func TestNormalize_HashStability(t *testing.T) {
	// The hash must not care about case, surrounding whitespace,
	// trailing punctuation, or leading articles.
	base := Hash("GDP grew 2.8 percent in 2024")
	variants := []string{
		"  GDP grew 2.8 percent in 2024.  ",
		"The GDP grew 2.8 percent in 2024!",
		"gdp grew 2.8 percent in 2024;",
		"A GDP grew   2.8 percent in 2024",
	}
	for _, v := range variants {
		if got := Hash(v); got != base {
			t.Errorf("Hash(%q) = %s, want %s", v, got, base)
		}
	}
}

func TestNormalize_RemovesNonAlphanumeric(t *testing.T) {
	got := Normalize("Revenue was $96.5 billion (GAAP), up 12%!")
	want := "revenue was 965 billion gaap up 12"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestTokenize_PreservesOffsets(t *testing.T) {
	text := "U.S. GDP grew"
	tokens := Tokenize(text)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	for _, tok := range tokens {
		if text[tok.Start:tok.End] != tok.Text {
			t.Errorf("offset mismatch: %q vs %q", text[tok.Start:tok.End], tok.Text)
		}
	}
	if tokens[0].Text != "U.S" {
		t.Errorf("expected dotted token preserved, got %q", tokens[0].Text)
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"reported": "report",
		"reports":  "report",
		"earnings": "earn",
		"classes":  "class",
		"studies":  "studi",
		"growing":  "grow",
		"is":       "is",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLCSTokenRatio(t *testing.T) {
	if r := LCSTokenRatio("alpha beta gamma delta", "alpha beta gamma delta"); r != 1.0 {
		t.Errorf("identical texts: ratio = %f, want 1.0", r)
	}
	if r := LCSTokenRatio("alpha beta gamma delta", "zeta eta theta iota"); r != 0.0 {
		t.Errorf("disjoint texts: ratio = %f, want 0.0", r)
	}
	// 3 of 4 tokens in order: 0.75
	if r := LCSTokenRatio("alpha beta gamma delta", "alpha beta gamma zeta"); r != 0.75 {
		t.Errorf("ratio = %f, want 0.75", r)
	}
}

func TestLongestSharedNGram(t *testing.T) {
	claim := "Alphabet reported revenue of 96.5 billion dollars"
	candidate := "The filing shows revenue of 96.5 billion dollars for the quarter"
	gram, n := LongestSharedNGram(claim, candidate, 3)
	if n != 5 {
		t.Fatalf("expected 5-gram, got %d (%q)", n, gram)
	}
	if gram != "revenue of 965 billion dollars" {
		t.Errorf("unexpected gram %q", gram)
	}

	if _, n := LongestSharedNGram("one two three", "four five six", 3); n != 0 {
		t.Errorf("expected no shared n-gram, got %d", n)
	}
}

func TestJaccard(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}
	if got := Jaccard(a, b); got != 1.0/3.0 {
		t.Errorf("Jaccard = %f, want 1/3", got)
	}
	if got := Jaccard(nil, b); got != 0 {
		t.Errorf("Jaccard with empty set = %f, want 0", got)
	}
}
