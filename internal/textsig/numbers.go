package textsig

import (
	"regexp"
	"strconv"
	"strings"
)

// Number is a detected numeric mention with its canonical value
type Number struct {
	Surface  string  // original matched text
	Value    float64 // canonical value with scale applied
	Currency string  // "USD", "EUR", "GBP" when a currency prefix is present
	Unit     string  // "pct", "mg/dL", ... when a unit suffix is present
}

var numberRe = regexp.MustCompile(
	`(?i)([$€£])?\s?(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)\s?(%|percent|trillion|billion|million|thousand|bn|mg/dl|k\b|m\b|b\b)?`,
)

var currencyNames = map[string]string{"$": "USD", "€": "EUR", "£": "GBP"}

var scaleSuffixes = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "million": 1e6,
	"b": 1e9, "bn": 1e9, "billion": 1e9,
	"trillion": 1e12,
}

// DetectNumbers finds integer, decimal, percentage, currency-prefixed,
// suffix-scaled, and comma-grouped numeric forms, returning canonical
// values in order of appearance.
func DetectNumbers(text string) []Number {
	var out []Number
	for _, m := range numberRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[2], ",", "")
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		n := Number{Surface: strings.TrimSpace(m[0])}
		if cur, ok := currencyNames[m[1]]; ok {
			n.Currency = cur
		}
		suffix := strings.ToLower(strings.TrimSpace(m[3]))
		switch {
		case suffix == "%" || suffix == "percent":
			n.Unit = "pct"
		case suffix == "mg/dl":
			n.Unit = "mg/dL"
		case suffix != "":
			if scale, ok := scaleSuffixes[suffix]; ok {
				// Bare single-letter scales only count when attached or
				// currency-prefixed ("65k", "$5B"); "5 m" is more likely metres.
				if len(suffix) == 1 && n.Currency == "" && !strings.Contains(n.Surface, m[2]+m[3]) {
					break
				}
				val *= scale
			}
		}
		n.Value = val
		out = append(out, n)
	}
	return out
}

// NumberValues returns just the canonical values, for adapter normalization.
func NumberValues(text string) []float64 {
	nums := DetectNumbers(text)
	out := make([]float64, len(nums))
	for i, n := range nums {
		out[i] = n.Value
	}
	return out
}

// FormatNumber renders a canonical value the way signal logs record it:
// integers without a decimal point, decimals trimmed.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
