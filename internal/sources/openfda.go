package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const openFDALabelAPI = "https://api.fda.gov/drug/label.json"

// OpenFDA searches drug labeling records: approvals, warnings, adverse
// reaction text.
type OpenFDA struct {
	client *Client
	max    int
}

// NewOpenFDA creates the openfda adapter.
func NewOpenFDA(c *Client) *OpenFDA { return &OpenFDA{client: c, max: 3} }

func (a *OpenFDA) ID() string                       { return "openfda" }
func (a *OpenFDA) EvidenceType() model.EvidenceType { return model.EvidenceGov }

type openFDAResp struct {
	Results []struct {
		ID                  string   `json:"id"`
		EffectiveTime       string   `json:"effective_time"`
		Description         []string `json:"description"`
		IndicationsAndUsage []string `json:"indications_and_usage"`
		OpenFDA             struct {
			BrandName   []string `json:"brand_name"`
			GenericName []string `json:"generic_name"`
		} `json:"openfda"`
	} `json:"results"`
}

// Fetch searches drug labels by the claim's key terms.
func (a *OpenFDA) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	terms := strings.ReplaceAll(q.Terms, `"`, "")
	if terms == "" {
		return nil
	}
	var resp openFDAResp
	err := a.client.GetJSON(ctx, a.ID(), openFDALabelAPI, url.Values{
		"search": {terms},
		"limit":  {strconv.Itoa(a.max)},
	}, &resp)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, r := range resp.Results {
		title := ""
		if len(r.OpenFDA.BrandName) > 0 {
			title = r.OpenFDA.BrandName[0]
		} else if len(r.OpenFDA.GenericName) > 0 {
			title = r.OpenFDA.GenericName[0]
		}
		if title == "" {
			continue
		}
		snippet := ""
		if len(r.IndicationsAndUsage) > 0 {
			snippet = r.IndicationsAndUsage[0]
		} else if len(r.Description) > 0 {
			snippet = r.Description[0]
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        title + " drug labeling",
			Snippet:      trimSnippet(snippet, 500),
			URL:          "https://open.fda.gov/apis/drug/label/",
			Identifier:   r.ID,
			PublishedAt:  parseDate(formatFDATime(r.EffectiveTime)),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}

// formatFDATime converts openFDA's YYYYMMDD stamps to ISO.
func formatFDATime(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:]
}
