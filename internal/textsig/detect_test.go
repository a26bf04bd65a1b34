package textsig

import (
	"testing"
)

func TestDetectNumbers_Forms(t *testing.T) {
	cases := []struct {
		text     string
		value    float64
		currency string
		unit     string
	}{
		{"revenue of $96.5 billion last year", 96.5e9, "USD", ""},
		{"the project has 65k users", 65000, "", ""},
		{"inflation hit 3.2% in June", 3.2, "", "pct"},
		{"levels above 160 mg/dL are risky", 160, "", "mg/dL"},
		{"the population reached 1,234,567 people", 1234567, "", ""},
		{"a $2 trillion package", 2e12, "USD", ""},
	}
	for _, tc := range cases {
		nums := DetectNumbers(tc.text)
		if len(nums) == 0 {
			t.Errorf("%q: no numbers detected", tc.text)
			continue
		}
		n := nums[0]
		if n.Value != tc.value {
			t.Errorf("%q: value = %v, want %v", tc.text, n.Value, tc.value)
		}
		if n.Currency != tc.currency {
			t.Errorf("%q: currency = %q, want %q", tc.text, n.Currency, tc.currency)
		}
		if n.Unit != tc.unit {
			t.Errorf("%q: unit = %q, want %q", tc.text, n.Unit, tc.unit)
		}
	}
}

func TestDetectDates(t *testing.T) {
	cases := []struct {
		text     string
		resolved bool
		year     int
	}{
		{"published on 2024-01-31 by the agency", true, 2024},
		{"results for Q4 2024 were strong", true, 2024},
		{"it happened on March 15, 1972", true, 1972},
		{"back in 1998 the market crashed", true, 1998},
		{"growth slowed last quarter", false, 0},
	}
	for _, tc := range cases {
		dates := DetectDates(tc.text)
		if len(dates) == 0 {
			t.Errorf("%q: no dates detected", tc.text)
			continue
		}
		d := dates[0]
		if d.Resolved != tc.resolved || d.Year != tc.year {
			t.Errorf("%q: got resolved=%v year=%d, want resolved=%v year=%d",
				tc.text, d.Resolved, d.Year, tc.resolved, tc.year)
		}
	}
}

func TestDetectDates_YearRange(t *testing.T) {
	// Years outside [1500, 2100] are not plausible dates.
	if dates := DetectDates("the serial number 1204 was printed"); len(dates) != 0 {
		t.Errorf("expected no dates for year below range, got %v", dates)
	}
	if dates := DetectDates("a part numbered 3024 shipped"); len(dates) != 0 {
		t.Errorf("expected no dates for year above range, got %v", dates)
	}
}

func TestDetectDates_QuarterCoversYear(t *testing.T) {
	// "Q4 2024" must be one mention, not a quarter plus a bare year.
	dates := DetectDates("revenue rose in Q4 2024 overall")
	if len(dates) != 1 {
		t.Fatalf("expected 1 date mention, got %d: %v", len(dates), dates)
	}
	if dates[0].Surface != "Q4 2024" {
		t.Errorf("surface = %q, want %q", dates[0].Surface, "Q4 2024")
	}
}

func TestEntityDetection(t *testing.T) {
	lex := NewEntityLexicon(
		[]string{"Inc", "Corp", "Ltd"},
		[]string{"Alphabet", "Federal Reserve"},
	)

	// Capitalized run not at sentence start.
	ents := lex.Detect("The company Goldman Sachs announced a merger")
	if len(ents) == 0 || ents[0].Name != "Goldman Sachs" {
		t.Fatalf("expected Goldman Sachs, got %v", ents)
	}

	// Allow-list hits even at sentence start, classified ORG.
	ents = lex.Detect("Alphabet reported strong revenue growth")
	found := false
	for _, e := range ents {
		if e.Name == "Alphabet" && e.Kind == "ORG" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected allow-list ORG Alphabet, got %v", ents)
	}

	// Org suffix classifies the run as ORG.
	ents = lex.Detect("Shares of Acme Corp fell sharply")
	found = false
	for _, e := range ents {
		if e.Name == "Acme Corp" && e.Kind == "ORG" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ORG Acme Corp, got %v", ents)
	}

	// A capitalized word at the sentence start alone is not an entity.
	if ents := lex.Detect("Revenue increased again"); len(ents) != 0 {
		t.Errorf("expected no entities, got %v", ents)
	}
}

func TestVerbLexicon(t *testing.T) {
	verbs := NewVerbLexicon([]string{"reported", "grew", "is"})
	if v := verbs.First("Alphabet reported revenue growth"); v != "reported" {
		t.Errorf("First = %q, want reported", v)
	}
	if v := verbs.First("nothing assertive here"); v != "" {
		t.Errorf("First = %q, want empty", v)
	}
}
