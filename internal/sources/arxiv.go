package sources

import (
	"context"
	"encoding/xml"
	"net/url"
	"strconv"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const arxivAPI = "http://export.arxiv.org/api/query"

// Arxiv searches preprints via the arXiv Atom feed.
type Arxiv struct {
	client *Client
	max    int
}

// NewArxiv creates the arxiv adapter.
func NewArxiv(c *Client) *Arxiv { return &Arxiv{client: c, max: 5} }

func (a *Arxiv) ID() string                       { return "arxiv" }
func (a *Arxiv) EvidenceType() model.EvidenceType { return model.EvidencePaper }

type arxivFeed struct {
	Entries []struct {
		ID        string `xml:"id"`
		Title     string `xml:"title"`
		Summary   string `xml:"summary"`
		Published string `xml:"published"`
	} `xml:"entry"`
}

// Fetch queries the Atom API with an all-fields search.
func (a *Arxiv) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	if q.Terms == "" {
		return nil
	}
	terms := strings.ReplaceAll(q.Terms, `"`, "")
	body, err := a.client.GetBytes(ctx, a.ID(), arxivAPI, url.Values{
		"search_query": {"all:" + terms},
		"max_results":  {strconv.Itoa(a.max)},
	})
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, e := range feed.Entries {
		title := strings.Join(strings.Fields(e.Title), " ")
		if title == "" || e.ID == "" {
			continue
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        title,
			Snippet:      trimSnippet(e.Summary, 500),
			URL:          e.ID,
			Identifier:   strings.TrimPrefix(e.ID, "http://arxiv.org/abs/"),
		}
		if len(e.Published) >= 10 {
			cand.PublishedAt = parseDate(e.Published[:10])
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
