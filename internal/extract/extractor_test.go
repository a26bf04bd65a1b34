package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
)

var testIngested = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func segs(texts ...string) []model.TimedSegment {
	out := make([]model.TimedSegment, len(texts))
	ts := 0.0
	for i, txt := range texts {
		out[i] = model.TimedSegment{Text: txt, StartS: ts, EndS: ts + 5}
		ts += 5
	}
	return out
}

func extractAll(t *testing.T, texts ...string) []model.Claim {
	t.Helper()
	e := NewExtractor(model.DefaultConfig())
	claims, err := e.Extract("src-test", segs(texts...), testIngested)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return claims
}

func TestExtract_FinanceScenario(t *testing.T) {
	claims := extractAll(t, "Alphabet reported revenue of $96.5 billion in Q4 2024.")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	c := claims[0]

	if c.Category != model.CategoryFinance {
		t.Errorf("category = %s, want finance", c.Category)
	}
	if c.ConfidenceLanguage != model.ConfidenceDefinitive {
		t.Errorf("confidence = %s, want definitive", c.ConfidenceLanguage)
	}

	wantSignals := []string{
		"num=96500000000", "currency=USD", "date=Q4 2024",
		"entity:ORG=Alphabet", "verb:assert=reported", "anchor:proper",
		"category:finance",
	}
	for _, want := range wantSignals {
		found := false
		for _, s := range c.SignalLog {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("signal %q missing from %v", want, c.SignalLog)
		}
	}
	if c.ContentHash != c.GlobalHash {
		t.Errorf("content and global hash must share normalization")
	}
}

func TestExtract_HealthScenario(t *testing.T) {
	claims := extractAll(t, "LDL cholesterol levels above 160 mg/dL are associated with cardiovascular risk.")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	c := claims[0]
	if c.Category != model.CategoryHealth {
		t.Errorf("category = %s, want health", c.Category)
	}
	hasNum, hasUnit := false, false
	for _, s := range c.SignalLog {
		if s == "num=160" {
			hasNum = true
		}
		if s == "unit=mg/dL" {
			hasUnit = true
		}
	}
	if !hasNum || !hasUnit {
		t.Errorf("expected num=160 and unit=mg/dL in %v", c.SignalLog)
	}
}

func TestExtract_RejectsLeadingConjunction(t *testing.T) {
	claims := extractAll(t, "And they said revenue reached eighty million dollars in 2023 overall.")
	if len(claims) != 0 {
		t.Errorf("expected rejection of dangling clause, got %v", claims)
	}
}

func TestExtract_LengthGate(t *testing.T) {
	// Six words, under the word gate.
	if claims := extractAll(t, "Alphabet reported revenue rising considerably here."); len(claims) != 0 {
		t.Errorf("expected rejection below 7 words, got %d claims", len(claims))
	}
	// Exactly 7 words and over 40 chars: accepted.
	claims := extractAll(t, "Alphabet reported quarterly revenue reaching record highs.")
	if len(claims) != 1 {
		t.Fatalf("expected 7-word sentence accepted, got %d", len(claims))
	}
	got := claims[0].Text
	if len(strings.Fields(got)) != 7 || len(got) < 40 {
		t.Errorf("unexpected accepted text %q", got)
	}
	// Over-length sentences are rejected, never trimmed.
	long := "Alphabet said " + strings.Repeat("the quarterly revenue figure was exceptionally strong and ", 5) + "analysts agreed."
	if len(long) <= 240 {
		t.Fatalf("fixture not over-length: %d chars", len(long))
	}
	if claims := extractAll(t, long); len(claims) != 0 {
		t.Errorf("expected over-length rejection, got %d claims", len(claims))
	}
}

func TestExtract_RejectsDateWithoutAnchor(t *testing.T) {
	claims := extractAll(t, "around early 2024 things were generally looking rather bleak everywhere.")
	if len(claims) != 0 {
		t.Errorf("expected rejection without subject anchor, got %v", claims)
	}
}

func TestExtract_RejectsBoilerplateAndQuestions(t *testing.T) {
	if claims := extractAll(t, "This video was sponsored by Example Corp and their new savings account product."); len(claims) != 0 {
		t.Errorf("expected boilerplate rejection, got %d claims", len(claims))
	}
	if claims := extractAll(t, "Did Alphabet really report revenue of $96.5 billion in Q4 2024?"); len(claims) != 0 {
		t.Errorf("expected question rejection, got %d claims", len(claims))
	}
}

func TestExtract_Deterministic(t *testing.T) {
	input := []string{
		"Alphabet reported revenue of $96.5 billion in Q4 2024.",
		"They expanded the cloud division across three new regions in 2023.",
		"LDL cholesterol levels above 160 mg/dL are associated with cardiovascular risk.",
	}
	a := extractAll(t, input...)
	b := extractAll(t, input...)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("extraction is not deterministic:\n%v\nvs\n%v", a, b)
	}
	for _, c := range a {
		if len(c.SignalLog) == 0 {
			t.Errorf("claim %q has empty signal log", c.Text)
		}
	}
}

func TestExtract_LocalExactDedup(t *testing.T) {
	claims := extractAll(t,
		"Alphabet reported revenue of $96.5 billion in Q4 2024.",
		"Unrelated filler text that will not become a claim here.",
		"Alphabet reported revenue of $96.5 billion in Q4 2024.",
	)
	hashes := make(map[string]bool)
	for _, c := range claims {
		if hashes[c.ContentHash] {
			t.Fatalf("duplicate content hash emitted: %s", c.ContentHash)
		}
		hashes[c.ContentHash] = true
	}
}

func TestExtract_ValidatesSegments(t *testing.T) {
	e := NewExtractor(model.DefaultConfig())

	_, err := e.Extract("s", nil, testIngested)
	if !errors.Is(err, model.ErrInput) {
		t.Errorf("empty stream: err = %v, want ErrInput", err)
	}

	outOfOrder := []model.TimedSegment{
		{Text: "one", StartS: 10, EndS: 12},
		{Text: "two", StartS: 5, EndS: 7},
	}
	_, err = e.Extract("s", outOfOrder, testIngested)
	if !errors.Is(err, model.ErrInput) {
		t.Errorf("out of order: err = %v, want ErrInput", err)
	}

	overlapping := []model.TimedSegment{
		{Text: "one", StartS: 0, EndS: 6},
		{Text: "two", StartS: 5, EndS: 9},
	}
	_, err = e.Extract("s", overlapping, testIngested)
	if !errors.Is(err, model.ErrInput) {
		t.Errorf("overlapping: err = %v, want ErrInput", err)
	}
}

func TestDeduper_FuzzyThreshold(t *testing.T) {
	d := newDeduper(0.85)
	base := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon"
	if !d.admit("h1", base) {
		t.Fatal("first claim must be admitted")
	}
	// 17 of 20 tokens shared in order: ratio 0.85, at the threshold → rejected.
	nearDup := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho one two three"
	if d.admit("h2", nearDup) {
		t.Error("similarity at 0.85 must be rejected")
	}
	// 16 of 20 tokens shared: ratio 0.80, below the threshold → admitted.
	farEnough := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi one two three four"
	if !d.admit("h3", farEnough) {
		t.Error("similarity below 0.85 must be admitted")
	}
}

func TestStitch_WindowBounds(t *testing.T) {
	e := NewExtractor(model.DefaultConfig())
	// Short fragments merge until terminal punctuation lands past 80
	// accumulated chars; the trailing remainder becomes its own window.
	windows := e.stitch(segs(
		"Alphabet reported revenue",
		"of $96.5 billion in Q4 2024.",
		"They expanded the cloud division across three new regions in 2023.",
		"Revenue guidance for next year was raised again by management.",
	))
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d: %v", len(windows), windows)
	}
	if !strings.Contains(windows[0].text, "billion in Q4 2024.") {
		t.Errorf("first window truncated: %q", windows[0].text)
	}
	if windows[0].startS != 0 || windows[0].endS != 15 {
		t.Errorf("window span = (%v, %v), want (0, 15)", windows[0].startS, windows[0].endS)
	}
	if windows[1].startS != 15 || windows[1].endS != 20 {
		t.Errorf("second window span = (%v, %v), want (15, 20)", windows[1].startS, windows[1].endS)
	}
}

func TestSplitSentences_AbbreviationGuard(t *testing.T) {
	e := NewExtractor(model.DefaultConfig())
	sentences := e.splitSentences("Dr. Smith of Acme Inc. said U.S. growth was strong. The market agreed.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if !strings.HasPrefix(sentences[1], "The market") {
		t.Errorf("unexpected second sentence %q", sentences[1])
	}
}
