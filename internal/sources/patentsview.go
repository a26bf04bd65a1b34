package sources

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const patentsViewAPI = "https://search.patentsview.org/api/v1/patent/"

// PatentsView searches USPTO patent grants by title text. Requires
// PATENTSVIEW_API_KEY; without it a search-link candidate is returned.
type PatentsView struct {
	client *Client
	max    int
}

// NewPatentsView creates the patentsview adapter.
func NewPatentsView(c *Client) *PatentsView { return &PatentsView{client: c, max: 3} }

func (a *PatentsView) ID() string                       { return "patentsview" }
func (a *PatentsView) EvidenceType() model.EvidenceType { return model.EvidenceGov }

type patentsViewResp struct {
	Patents []struct {
		PatentID    string `json:"patent_id"`
		PatentTitle string `json:"patent_title"`
		PatentDate  string `json:"patent_date"`
		Assignees   []struct {
			AssigneeOrganization string `json:"assignee_organization"`
		} `json:"assignees"`
	} `json:"patents"`
}

// Fetch runs a title text search against the PatentsView search API.
func (a *PatentsView) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	terms := strings.ReplaceAll(q.Terms, `"`, "")
	if terms == "" {
		return nil
	}
	apiKey := os.Getenv("PATENTSVIEW_API_KEY")
	if apiKey == "" {
		return []model.EvidenceCandidate{finishCandidate(model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        "USPTO patent search: " + terms,
			Snippet:      "Granted United States patents matching the claim terms.",
			URL:          "https://patentsview.org/search/?q=" + url.QueryEscape(terms),
		})}
	}
	payload := map[string]any{
		"q": map[string]any{"_text_any": map[string]any{"patent_title": terms}},
		"f": []string{"patent_id", "patent_title", "patent_date", "assignees.assignee_organization"},
		"o": map[string]any{"size": a.max},
	}
	var resp patentsViewResp
	if err := a.client.PostJSON(ctx, a.ID(), patentsViewAPI+"?api_key="+url.QueryEscape(apiKey), payload, &resp); err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, p := range resp.Patents {
		if p.PatentTitle == "" {
			continue
		}
		assignee := ""
		if len(p.Assignees) > 0 {
			assignee = p.Assignees[0].AssigneeOrganization
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        p.PatentTitle,
			Snippet:      "US patent " + p.PatentID + " granted " + p.PatentDate + " to " + assignee,
			URL:          "https://patents.google.com/patent/US" + p.PatentID,
			Identifier:   p.PatentID,
			PublishedAt:  parseDate(p.PatentDate),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
