package sources

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const govInfoSearchAPI = "https://api.govinfo.gov/search"

// CBO searches Congressional Budget Office reports through the GovInfo
// search API. Requires GOVINFO_API_KEY; without it a single search-link
// candidate is returned so budget claims still carry a pointer.
type CBO struct {
	client *Client
	max    int
}

// NewCBO creates the cbo adapter.
func NewCBO(c *Client) *CBO { return &CBO{client: c, max: 3} }

func (a *CBO) ID() string                       { return "cbo" }
func (a *CBO) EvidenceType() model.EvidenceType { return model.EvidenceGov }

type govInfoResp struct {
	Results []struct {
		Title      string `json:"title"`
		PackageID  string `json:"packageId"`
		DateIssued string `json:"dateIssued"`
		Download   struct {
			PDFLink string `json:"pdfLink"`
		} `json:"download"`
	} `json:"results"`
}

// Fetch searches GovInfo's CBO-report collection.
func (a *CBO) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	terms := strings.ReplaceAll(q.Terms, `"`, "")
	if terms == "" {
		return nil
	}
	apiKey := os.Getenv("GOVINFO_API_KEY")
	if apiKey == "" {
		return []model.EvidenceCandidate{finishCandidate(model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        "CBO publications search: " + terms,
			Snippet:      "Congressional Budget Office cost estimates and budget projections matching the claim terms.",
			URL:          "https://www.cbo.gov/search/results?query=" + url.QueryEscape(terms),
		})}
	}
	payload := map[string]any{
		"query":      "collection:(CPRT) AND " + terms,
		"pageSize":   strconv.Itoa(a.max),
		"offsetMark": "*",
	}
	var resp govInfoResp
	if err := a.client.PostJSON(ctx, a.ID(), govInfoSearchAPI+"?api_key="+url.QueryEscape(apiKey), payload, &resp); err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, r := range resp.Results {
		if r.Title == "" {
			continue
		}
		link := r.Download.PDFLink
		if link == "" {
			link = "https://www.govinfo.gov/app/details/" + r.PackageID
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        r.Title,
			Snippet:      "GovInfo package " + r.PackageID + " issued " + r.DateIssued,
			URL:          link,
			Identifier:   r.PackageID,
			PublishedAt:  parseDate(firstN(r.DateIssued, 10)),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
