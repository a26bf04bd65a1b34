package sources

import (
	"context"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const blsAPI = "https://api.bls.gov/publicAPI/v2/timeseries/data/"

// blsSeries maps labor vocabulary to BLS series ids.
var blsSeries = []struct {
	keyword  string
	seriesID string
	title    string
}{
	{"unemployment", "LNS14000000", "Unemployment Rate (Seasonally Adjusted)"},
	{"payroll", "CES0000000001", "Total Nonfarm Employment"},
	{"nonfarm", "CES0000000001", "Total Nonfarm Employment"},
	{"hourly earnings", "CES0500000003", "Average Hourly Earnings, Total Private"},
	{"wages", "CES0500000003", "Average Hourly Earnings, Total Private"},
	{"labor force", "LNS11300000", "Labor Force Participation Rate"},
	{"participation rate", "LNS11300000", "Labor Force Participation Rate"},
	{"job openings", "JTS000000000000000JOL", "Job Openings: Total Nonfarm"},
	{"cpi", "CUUR0000SA0", "Consumer Price Index, All Urban Consumers"},
}

// BLS pulls employment and price series from the Bureau of Labor
// Statistics public timeseries API.
type BLS struct {
	client *Client
	max    int
}

// NewBLS creates the bls adapter.
func NewBLS(c *Client) *BLS { return &BLS{client: c, max: 3} }

func (a *BLS) ID() string                       { return "bls" }
func (a *BLS) EvidenceType() model.EvidenceType { return model.EvidenceGov }

type blsResp struct {
	Status  string `json:"status"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year       string `json:"year"`
				PeriodName string `json:"periodName"`
				Value      string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// Fetch resolves labor vocabulary to series and pulls the latest points.
func (a *BLS) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	lower := strings.ToLower(q.ClaimText)
	var out []model.EvidenceCandidate
	seen := make(map[string]bool)
	for _, s := range blsSeries {
		if !strings.Contains(lower, s.keyword) || seen[s.seriesID] {
			continue
		}
		seen[s.seriesID] = true

		var resp blsResp
		err := a.client.GetJSON(ctx, a.ID(), blsAPI+s.seriesID, nil, &resp)
		if err != nil {
			logFetchError(a.ID(), q, err)
			continue
		}
		if resp.Status != "REQUEST_SUCCEEDED" || len(resp.Results.Series) == 0 {
			continue
		}
		series := resp.Results.Series[0]
		if len(series.Data) == 0 {
			continue
		}
		var parts []string
		for i, d := range series.Data {
			if i >= 6 {
				break
			}
			parts = append(parts, d.PeriodName+" "+d.Year+": "+d.Value)
		}
		latest := series.Data[0]
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        s.title + " (" + s.seriesID + ")",
			Snippet:      strings.Join(parts, "; "),
			URL:          "https://data.bls.gov/timeseries/" + s.seriesID,
			Identifier:   s.seriesID,
			PublishedAt:  parseDate(latest.Year),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
