package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const usaSpendingAwardAPI = "https://api.usaspending.gov/api/v2/search/spending_by_award/"

// USASpending searches federal award records by keyword. No key needed.
type USASpending struct {
	client *Client
	max    int
}

// NewUSASpending creates the usaspending adapter.
func NewUSASpending(c *Client) *USASpending { return &USASpending{client: c, max: 3} }

func (a *USASpending) ID() string                       { return "usaspending" }
func (a *USASpending) EvidenceType() model.EvidenceType { return model.EvidenceGov }

type usaSpendingResp struct {
	Results []struct {
		AwardID       string  `json:"generated_internal_id"`
		RecipientName string  `json:"Recipient Name"`
		Amount        float64 `json:"Award Amount"`
		Agency        string  `json:"Awarding Agency"`
		StartDate     string  `json:"Start Date"`
		Description   string  `json:"Description"`
	} `json:"results"`
}

// Fetch posts a keyword filter against the award search endpoint.
func (a *USASpending) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	keywords := strings.Fields(strings.ReplaceAll(q.Terms, `"`, ""))
	if len(q.Entities) > 0 {
		keywords = append([]string{q.Entities[0]}, keywords...)
	}
	if len(keywords) == 0 {
		return nil
	}
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	payload := map[string]any{
		"filters": map[string]any{
			"keywords":         keywords,
			"award_type_codes": []string{"A", "B", "C", "D"},
		},
		"fields": []string{
			"Award ID", "Recipient Name", "Award Amount",
			"Awarding Agency", "Start Date", "Description",
		},
		"limit": a.max,
		"page":  1,
	}
	var resp usaSpendingResp
	if err := a.client.PostJSON(ctx, a.ID(), usaSpendingAwardAPI, payload, &resp); err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, r := range resp.Results {
		if r.RecipientName == "" {
			continue
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        fmt.Sprintf("%s federal award to %s", r.Agency, r.RecipientName),
			Snippet:      fmt.Sprintf("Award amount $%.0f starting %s. %s", r.Amount, r.StartDate, trimSnippet(r.Description, 300)),
			URL:          "https://www.usaspending.gov/award/" + r.AwardID,
			Identifier:   r.AwardID,
			PublishedAt:  parseDate(r.StartDate),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
