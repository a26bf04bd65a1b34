package sources

import (
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/textsig"
)

// defaultEntityLexicon mirrors the extractor's entity rules so candidate
// normalization and claim extraction agree on what an entity is.
var defaultEntityLexicon = textsig.NewEntityLexicon(
	model.DefaultConfig().Lexicon.OrgSuffixes,
	model.DefaultConfig().Lexicon.KnownEntities,
)

// finishCandidate populates entities, numbers, and keyphrases from the
// candidate's title + snippet using the shared detectors.
func finishCandidate(c model.EvidenceCandidate) model.EvidenceCandidate {
	text := strings.TrimSpace(c.Title + " " + c.Snippet)
	c.Entities = defaultEntityLexicon.Names(text)
	c.Numbers = textsig.NumberValues(text)
	c.Keyphrases = keyphrases(text, 10)
	return c
}

// keyphrases lists up to max distinct normalized trigrams.
func keyphrases(text string, max int) []string {
	words := strings.Fields(textsig.Normalize(text))
	var out []string
	seen := make(map[string]bool)
	for i := 0; i+3 <= len(words) && len(out) < max; i++ {
		gram := strings.Join(words[i:i+3], " ")
		if !seen[gram] {
			seen[gram] = true
			out = append(out, gram)
		}
	}
	return out
}

// StripHTML drops markup from API payload fragments (Wikipedia search
// snippets carry <span class="searchmatch"> highlights).
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}

// parseDate tries the layouts structured APIs commonly return.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{
		"2006-01-02", "2006-01", "2006",
		"2006-01-02T15:04:05Z07:00", "2006 Jan 2", "2006 Jan",
		"Jan 2, 2006", "January 2, 2006",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
