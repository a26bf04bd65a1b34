package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const wikipediaAPI = "https://en.wikipedia.org/w/api.php"

// Wikipedia verifies entity-level facts via the MediaWiki Action API:
// a search pass finds matching articles, an extracts pass pulls intro
// summaries with the actual figures.
type Wikipedia struct {
	client *Client
	max    int
}

// NewWikipedia creates the wikipedia adapter.
func NewWikipedia(c *Client) *Wikipedia { return &Wikipedia{client: c, max: 5} }

func (w *Wikipedia) ID() string                       { return "wikipedia" }
func (w *Wikipedia) EvidenceType() model.EvidenceType { return model.EvidenceSecondary }

type wikiSearchResp struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			PageID  int    `json:"pageid"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResp struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
			Touched string `json:"touched"`
		} `json:"pages"`
	} `json:"query"`
}

// Fetch searches for matching articles and attaches intro extracts.
func (w *Wikipedia) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	if q.Terms == "" {
		return nil
	}
	var search wikiSearchResp
	err := w.client.GetJSON(ctx, w.ID(), wikipediaAPI, url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {q.Terms},
		"srlimit":  {strconv.Itoa(w.max)},
		"format":   {"json"},
		"utf8":     {"1"},
	}, &search)
	if err != nil {
		logFetchError(w.ID(), q, err)
		return nil
	}
	hits := search.Query.Search
	if len(hits) == 0 {
		return nil
	}

	pageIDs := make([]string, 0, len(hits))
	for _, h := range hits {
		pageIDs = append(pageIDs, strconv.Itoa(h.PageID))
	}
	var extracts wikiExtractResp
	err = w.client.GetJSON(ctx, w.ID(), wikipediaAPI, url.Values{
		"action":      {"query"},
		"pageids":     {strings.Join(pageIDs, "|")},
		"prop":        {"extracts|info"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"exlimit":     {strconv.Itoa(len(pageIDs))},
		"inprop":      {"url"},
		"format":      {"json"},
		"utf8":        {"1"},
	}, &extracts)

	var out []model.EvidenceCandidate
	for _, h := range hits {
		cand := model.EvidenceCandidate{
			SourceAPI:    w.ID(),
			EvidenceType: w.EvidenceType(),
			Title:        h.Title,
			Snippet:      StripHTML(h.Snippet),
			URL:          "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(h.Title, " ", "_")),
		}
		if err == nil {
			if page, ok := extracts.Query.Pages[strconv.Itoa(h.PageID)]; ok {
				if page.Extract != "" {
					cand.Snippet = trimSnippet(page.Extract, 500)
				}
				if page.FullURL != "" {
					cand.URL = page.FullURL
				}
			}
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= w.max {
			break
		}
	}
	return out
}

func trimSnippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
