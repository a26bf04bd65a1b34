package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/veritaslabs/veritas/internal/model"
)

const crossrefAPI = "https://api.crossref.org/works"

// Crossref searches scholarly metadata: peer-reviewed papers and the
// occasional registered dataset.
type Crossref struct {
	client *Client
	max    int
}

// NewCrossref creates the crossref adapter.
func NewCrossref(c *Client) *Crossref { return &Crossref{client: c, max: 5} }

func (a *Crossref) ID() string                       { return "crossref" }
func (a *Crossref) EvidenceType() model.EvidenceType { return model.EvidencePaper }

type crossrefResp struct {
	Message struct {
		Items []struct {
			Title    []string `json:"title"`
			Abstract string   `json:"abstract"`
			DOI      string   `json:"DOI"`
			Type     string   `json:"type"`
			Issued   struct {
				DateParts [][]int `json:"date-parts"`
			} `json:"issued"`
		} `json:"items"`
	} `json:"message"`
}

// Fetch queries the works endpoint; dataset-typed records keep their
// dataset evidence type, everything else is a paper.
func (a *Crossref) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	if q.Terms == "" {
		return nil
	}
	var resp crossrefResp
	err := a.client.GetJSON(ctx, a.ID(), crossrefAPI, url.Values{
		"query": {q.Terms},
		"rows":  {strconv.Itoa(a.max)},
	}, &resp)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, item := range resp.Message.Items {
		if len(item.Title) == 0 || item.DOI == "" {
			continue
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        item.Title[0],
			Snippet:      trimSnippet(StripHTML(item.Abstract), 500),
			URL:          "https://doi.org/" + item.DOI,
			Identifier:   item.DOI,
		}
		if item.Type == "dataset" {
			cand.EvidenceType = model.EvidenceDataset
		}
		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
			parts := item.Issued.DateParts[0]
			dateStr := strconv.Itoa(parts[0])
			if len(parts) > 1 {
				dateStr = fmt.Sprintf("%04d-%02d", parts[0], parts[1])
			}
			cand.PublishedAt = parseDate(dateStr)
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
