package textsig

import (
	"regexp"
	"strconv"
)

// DateMention is a detected date reference. Relative forms ("last
// quarter") are kept as unresolved markers; the engine never consults
// the wall clock to resolve them.
type DateMention struct {
	Surface  string
	Resolved bool
	Year     int // 0 when unresolved or not implied
}

var (
	isoDateRe  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDayRe = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:,\s*(\d{4}))?\b`)
	quarterRe  = regexp.MustCompile(`\b[Qq]([1-4])\s+(\d{4})\b`)
	bareYearRe = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2}|2100)\b`)
	relativeRe = regexp.MustCompile(`(?i)\b(last|next|this)\s+(quarter|year|month|week)\b`)
)

// DetectDates finds ISO dates, written dates, fiscal quarters, plausible
// bare years (1500-2100), and relative markers. Results are grouped by
// form (ISO, quarter, written, bare year, relative), each group in order
// of appearance.
func DetectDates(text string) []DateMention {
	var out []DateMention
	covered := make([][2]int, 0, 4)

	add := func(loc []int, d DateMention) {
		for _, c := range covered {
			if loc[0] >= c[0] && loc[1] <= c[1] {
				return // inside an already-detected mention
			}
		}
		covered = append(covered, [2]int{loc[0], loc[1]})
		out = append(out, d)
	}

	for _, loc := range isoDateRe.FindAllStringSubmatchIndex(text, -1) {
		year, _ := strconv.Atoi(text[loc[2]:loc[3]])
		add(loc, DateMention{Surface: text[loc[0]:loc[1]], Resolved: true, Year: year})
	}
	for _, loc := range quarterRe.FindAllStringSubmatchIndex(text, -1) {
		year, _ := strconv.Atoi(text[loc[4]:loc[5]])
		add(loc, DateMention{Surface: text[loc[0]:loc[1]], Resolved: true, Year: year})
	}
	for _, loc := range monthDayRe.FindAllStringSubmatchIndex(text, -1) {
		d := DateMention{Surface: text[loc[0]:loc[1]], Resolved: true}
		if loc[2] >= 0 {
			d.Year, _ = strconv.Atoi(text[loc[2]:loc[3]])
		}
		add(loc, d)
	}
	for _, loc := range bareYearRe.FindAllStringSubmatchIndex(text, -1) {
		year, _ := strconv.Atoi(text[loc[0]:loc[1]])
		add(loc, DateMention{Surface: text[loc[0]:loc[1]], Resolved: true, Year: year})
	}
	for _, loc := range relativeRe.FindAllStringSubmatchIndex(text, -1) {
		add(loc, DateMention{Surface: text[loc[0]:loc[1]], Resolved: false})
	}
	return out
}

// HasDate reports whether any date form appears in the text.
func HasDate(text string) bool {
	return len(DetectDates(text)) > 0
}
