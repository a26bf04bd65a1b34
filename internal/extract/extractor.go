// Package extract turns ordered transcript segments into deduplicated,
// classified claims. The whole path is deterministic: identical segments
// and lexicons produce byte-identical claims.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

// Extractor extracts claims from timed segments
type Extractor struct {
	cfg        *model.Config
	dangling   textsig.WordSet
	pronouns   textsig.WordSet
	entities   *textsig.EntityLexicon
	verbs      textsig.VerbLexicon
	classifier *Classifier
	abbrevs    map[string]bool
}

// NewExtractor creates an extractor from validated configuration.
func NewExtractor(cfg *model.Config) *Extractor {
	abbrevs := make(map[string]bool, len(cfg.Lexicon.Abbreviations))
	for _, a := range cfg.Lexicon.Abbreviations {
		abbrevs[a] = true
	}
	return &Extractor{
		cfg:        cfg,
		dangling:   textsig.NewWordSet(cfg.Lexicon.DanglingStarts),
		pronouns:   textsig.NewWordSet(cfg.Lexicon.SubjectPronouns),
		entities:   textsig.NewEntityLexicon(cfg.Lexicon.OrgSuffixes, cfg.Lexicon.KnownEntities),
		verbs:      textsig.NewVerbLexicon(cfg.Lexicon.AssertionVerbs),
		classifier: NewClassifier(cfg),
		abbrevs:    abbrevs,
	}
}

// window is a stitched run of segments with its time span
type window struct {
	text   string
	startS float64
	endS   float64
}

// Extract runs the full pipeline: validate → stitch → split → gate →
// filter → detect → classify → dedup. ingestedAt stamps the claims so
// the output is reproducible for a given source.
func (e *Extractor) Extract(sourceID string, segments []model.TimedSegment, ingestedAt time.Time) ([]model.Claim, error) {
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}

	var claims []model.Claim
	dedup := newDeduper(e.cfg.Extract.DedupThreshold)

	for _, win := range e.stitch(segments) {
		sentences := e.splitSentences(win.text)
		for i, sent := range sentences {
			startS, endS := apportionSpan(win, i, len(sentences))

			if !e.passesLengthGate(sent) {
				continue
			}
			if e.isFragment(sent) {
				continue
			}
			signals, ok := e.detectCandidate(sent)
			if !ok {
				continue
			}

			conf := e.classifier.Confidence(sent, signals)
			if conf != model.ConfidenceUnknown {
				signals = append(signals, "confidence:"+string(conf))
			}
			cat := e.classifier.Category(sent)
			if cat != model.CategoryGeneral {
				signals = append(signals, "category:"+string(cat))
			}

			hash := textsig.Hash(sent)
			if !dedup.admit(hash, sent) {
				continue
			}

			claims = append(claims, model.Claim{
				ID:                 claimID(sourceID, hash),
				SourceID:           sourceID,
				Text:               sent,
				StartS:             startS,
				EndS:               endS,
				ContentHash:        hash,
				GlobalHash:         hash,
				ConfidenceLanguage: conf,
				Category:           cat,
				SignalLog:          signals,
				Status:             model.StatusUnknown,
				CreatedAt:          ingestedAt,
			})
		}
	}
	return claims, nil
}

// ValidateSegments rejects empty, unordered, or overlapping streams.
func ValidateSegments(segments []model.TimedSegment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: no segments", model.ErrInput)
	}
	for i, s := range segments {
		if strings.TrimSpace(s.Text) == "" && s.EndS <= s.StartS {
			return fmt.Errorf("%w: segment %d is empty", model.ErrInput, i)
		}
		if i > 0 {
			prev := segments[i-1]
			if s.StartS < prev.StartS {
				return fmt.Errorf("%w: segment %d out of order (%.3f < %.3f)", model.ErrInput, i, s.StartS, prev.StartS)
			}
			if s.StartS < prev.EndS {
				return fmt.Errorf("%w: segment %d overlaps previous (%.3f < %.3f)", model.ErrInput, i, s.StartS, prev.EndS)
			}
		}
	}
	return nil
}

// stitch merges segments into windows: a window closes once it ends in
// sentence-terminal punctuation with at least StitchMinChars accumulated,
// or when it reaches the StitchMaxChars cap.
func (e *Extractor) stitch(segments []model.TimedSegment) []window {
	var windows []window
	var buf strings.Builder
	var startS, endS float64
	open := false

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			windows = append(windows, window{text: text, startS: startS, endS: endS})
		}
		buf.Reset()
		open = false
	}

	for _, seg := range segments {
		t := strings.TrimSpace(seg.Text)
		if t == "" {
			continue
		}
		if !open {
			startS = seg.StartS
			open = true
		} else {
			buf.WriteByte(' ')
		}
		buf.WriteString(t)
		endS = seg.EndS

		if buf.Len() >= e.cfg.Extract.StitchMaxChars {
			flush()
			continue
		}
		if endsTerminal(t) && buf.Len() >= e.cfg.Extract.StitchMinChars {
			flush()
		}
	}
	flush()
	return windows
}

func endsTerminal(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '.', '!', '?', ';':
		return true
	}
	return false
}

// splitSentences splits a window at terminal punctuation followed by
// whitespace and an uppercase letter, or at the end of the window. The
// terminator stays with its sentence. Abbreviations and single-letter
// initials never split.
func (e *Extractor) splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	segStart := 0

	emit := func(end int) {
		s := strings.TrimSpace(string(runes[segStart:end]))
		if s != "" {
			sentences = append(sentences, s)
		}
		segStart = end
	}

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' && r != ';' {
			continue
		}
		// Split only before whitespace + uppercase, or at end of window.
		atEnd := i == len(runes)-1
		splitOK := atEnd
		if !atEnd && unicode.IsSpace(runes[i+1]) {
			for j := i + 1; j < len(runes); j++ {
				if unicode.IsSpace(runes[j]) {
					continue
				}
				splitOK = unicode.IsUpper(runes[j])
				break
			}
		}
		if !splitOK {
			continue
		}
		if r == '.' && e.guardedPeriod(runes, i) {
			continue
		}
		emit(i + 1)
	}
	if segStart < len(runes) {
		emit(len(runes))
	}
	return sentences
}

// guardedPeriod reports whether the period at index i belongs to a known
// abbreviation or sits between single capital letters ("J. K.").
func (e *Extractor) guardedPeriod(runes []rune, i int) bool {
	// Word ending at the period, inclusive.
	start := i
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	word := string(runes[start : i+1])
	if e.abbrevs[word] {
		return true
	}
	// Single capital before the period, capital after: initials.
	if i-start == 1 && unicode.IsUpper(runes[start]) {
		for j := i + 1; j < len(runes); j++ {
			if unicode.IsSpace(runes[j]) {
				continue
			}
			return unicode.IsUpper(runes[j])
		}
	}
	return false
}

func apportionSpan(win window, idx, total int) (float64, float64) {
	if total <= 1 {
		return win.startS, win.endS
	}
	slice := (win.endS - win.startS) / float64(total)
	start := win.startS + slice*float64(idx)
	return start, start + slice
}

func (e *Extractor) passesLengthGate(sent string) bool {
	if len(sent) < e.cfg.Extract.MinChars || len(sent) > e.cfg.Extract.MaxChars {
		return false
	}
	return len(strings.Fields(sent)) >= e.cfg.Extract.MinWords
}

// isFragment rejects dangling clauses, boilerplate, and bare questions.
func (e *Extractor) isFragment(sent string) bool {
	fields := strings.Fields(sent)
	if len(fields) == 0 {
		return true
	}
	first := strings.ToLower(strings.TrimRight(fields[0], ","))
	if e.dangling[first] {
		return true
	}
	lower := strings.ToLower(sent)
	for _, pat := range e.cfg.Lexicon.Boilerplate {
		if strings.Contains(lower, strings.ToLower(pat)) {
			return true
		}
	}
	return strings.HasSuffix(sent, "?")
}

// detectCandidate checks the two-part candidate rule (at least one signal
// plus a subject-like anchor) and returns the ordered signal log.
func (e *Extractor) detectCandidate(sent string) ([]string, bool) {
	var signals []string

	nums := textsig.DetectNumbers(sent)
	for _, n := range nums {
		signals = append(signals, "num="+textsig.FormatNumber(n.Value))
		if n.Currency != "" {
			signals = append(signals, "currency="+n.Currency)
		}
		if n.Unit != "" {
			signals = append(signals, "unit="+n.Unit)
		}
	}
	for _, d := range textsig.DetectDates(sent) {
		signals = append(signals, "date="+d.Surface)
	}
	ents := e.entities.Detect(sent)
	for _, ent := range ents {
		signals = append(signals, "entity:"+ent.Kind+"="+ent.Name)
	}
	if v := e.verbs.First(sent); v != "" {
		signals = append(signals, "verb:assert="+v)
	}

	if len(signals) == 0 {
		return nil, false
	}

	anchor := e.anchor(sent, ents, nums)
	if anchor == "" {
		return nil, false
	}
	signals = append(signals, "anchor:"+anchor)
	return signals, true
}

// anchor finds the subject-like token: a proper noun inside the first 40%
// of the sentence, a pronoun at the start, or a leading number. All-caps
// acronyms ("LDL", "GDP") anchor even at the sentence start, where the
// entity detector ignores ordinary capitalization.
func (e *Extractor) anchor(sent string, ents []textsig.Entity, nums []textsig.Number) string {
	cutoff := int(float64(len(sent)) * 0.4)
	for _, ent := range ents {
		if idx := strings.Index(strings.ToLower(sent), strings.ToLower(ent.Name)); idx >= 0 && idx < cutoff {
			return "proper"
		}
	}
	for _, tok := range textsig.Tokenize(sent) {
		if tok.Start >= cutoff {
			break
		}
		if isAcronym(tok.Text) {
			return "proper"
		}
	}
	fields := strings.Fields(sent)
	if len(fields) > 0 && e.pronouns[strings.ToLower(strings.TrimRight(fields[0], ","))] {
		return "pronoun"
	}
	if len(fields) > 0 && len(nums) > 0 {
		first := fields[0]
		if strings.Contains(nums[0].Surface, strings.TrimRight(first, ",.")) ||
			(first[0] >= '0' && first[0] <= '9') || first[0] == '$' {
			return "number"
		}
	}
	return ""
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// claimID derives a stable id from the source and content hash, so
// re-running extraction reproduces identical claims.
func claimID(sourceID, contentHash string) string {
	sum := sha256.Sum256([]byte(sourceID + "|" + contentHash))
	return hex.EncodeToString(sum[:])[:12]
}
