// Package route selects and orders evidence sources for a claim from
// deterministic content signals. Routing is a pure function of the claim
// text, its category, and the static routing tables.
package route

import (
	"sort"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

// Router computes the ordered source list for a claim
type Router struct {
	cfg      *model.Config
	signals  []compiledSignal
	entities *textsig.EntityLexicon
	orderIdx map[string]int
}

type compiledSignal struct {
	name    string
	words   textsig.WordSet
	phrases []string
	minHits int
	boosts  map[string]int
}

// NewRouter compiles the routing signal bags. The company-mention signal
// draws its phrase list from the known-entity lexicon; the date, number,
// and entity presence signals use the shared detectors instead of bags.
func NewRouter(cfg *model.Config) *Router {
	orderIdx := make(map[string]int, len(cfg.Routing.SourceOrder))
	for i, s := range cfg.Routing.SourceOrder {
		orderIdx[s] = i
	}
	signals := make([]compiledSignal, 0, len(cfg.Routing.Signals))
	for _, s := range cfg.Routing.Signals {
		cs := compiledSignal{
			name:    s.Name,
			words:   textsig.NewWordSet(s.Words),
			phrases: s.Phrases,
			minHits: s.MinHits,
			boosts:  s.Boosts,
		}
		if s.Name == "company_mention" && len(s.Words) == 0 && len(s.Phrases) == 0 {
			cs.phrases = cfg.Lexicon.KnownEntities
		}
		signals = append(signals, cs)
	}
	return &Router{
		cfg:      cfg,
		signals:  signals,
		entities: textsig.NewEntityLexicon(cfg.Lexicon.OrgSuffixes, cfg.Lexicon.KnownEntities),
		orderIdx: orderIdx,
	}
}

// Route returns the ordered evidence-source ids for the claim, capped at
// the configured maximum. The category's first default source always
// survives the cap.
func (r *Router) Route(claim *model.Claim) []string {
	defaults, ok := r.cfg.Routing.DefaultSources[claim.Category]
	if !ok {
		defaults = r.cfg.Routing.DefaultSources[model.CategoryGeneral]
	}

	inList := make(map[string]bool, len(defaults))
	scores := make(map[string]int, len(defaults))
	for _, s := range defaults {
		inList[s] = true
		scores[s] = 0
	}

	for _, sig := range r.fired(claim.Text) {
		for src, boost := range sig.boosts {
			if inList[src] {
				scores[src] += boost
			}
		}
	}

	ordered := make([]string, len(defaults))
	copy(ordered, defaults)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := scores[ordered[i]], scores[ordered[j]]
		if si != sj {
			return si > sj
		}
		return r.orderIdx[ordered[i]] < r.orderIdx[ordered[j]]
	})

	if len(ordered) > r.cfg.Routing.MaxSources {
		ordered = ordered[:r.cfg.Routing.MaxSources]
	}

	// The category's lead source is never capped away.
	lead := defaults[0]
	found := false
	for _, s := range ordered {
		if s == lead {
			found = true
			break
		}
	}
	if !found {
		ordered[len(ordered)-1] = lead
	}
	return ordered
}

// fired evaluates all 13 content signals against the claim text.
func (r *Router) fired(text string) []compiledSignal {
	lower := strings.ToLower(text)
	var out []compiledSignal
	for _, sig := range r.signals {
		hits := 0
		switch sig.name {
		case "date_present":
			if textsig.HasDate(text) {
				hits = 1
			}
		case "number_present":
			hits = len(textsig.DetectNumbers(text))
		case "entity_present":
			hits = len(r.entities.Detect(text))
		default:
			hits = textsig.CountHits(lower, sig.words, sig.phrases)
		}
		if hits >= sig.minHits {
			out = append(out, sig)
		}
	}
	return out
}

// FiredNames lists the names of the signals that fire for the claim
// text, for diagnostics and tests.
func (r *Router) FiredNames(text string) []string {
	fired := r.fired(text)
	names := make([]string, len(fired))
	for i, s := range fired {
		names[i] = s.name
	}
	return names
}
