package sources

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const (
	fredObsAPI = "https://api.stlouisfed.org/fred/series/observations"
	fredWebURL = "https://fred.stlouisfed.org/series/"
)

// fredSeries maps macroeconomic vocabulary to FRED series ids.
var fredSeries = []struct {
	keyword  string
	seriesID string
	title    string
}{
	{"gdp", "GDP", "Gross Domestic Product"},
	{"inflation", "CPIAUCSL", "Consumer Price Index for All Urban Consumers"},
	{"cpi", "CPIAUCSL", "Consumer Price Index for All Urban Consumers"},
	{"unemployment", "UNRATE", "Unemployment Rate"},
	{"interest rate", "FEDFUNDS", "Federal Funds Effective Rate"},
	{"federal funds", "FEDFUNDS", "Federal Funds Effective Rate"},
	{"mortgage rate", "MORTGAGE30US", "30-Year Fixed Rate Mortgage Average"},
	{"payroll", "PAYEMS", "All Employees, Total Nonfarm"},
	{"housing starts", "HOUST", "New Privately-Owned Housing Units Started"},
	{"national debt", "GFDEBTN", "Federal Debt: Total Public Debt"},
	{"trade deficit", "BOPGSTB", "Trade Balance: Goods and Services"},
}

// FRED pulls macroeconomic series observations from the St. Louis Fed.
// Requires FRED_API_KEY; without it the adapter stays silent.
type FRED struct {
	client *Client
	max    int
}

// NewFRED creates the fred adapter.
func NewFRED(c *Client) *FRED { return &FRED{client: c, max: 3} }

func (a *FRED) ID() string                       { return "fred" }
func (a *FRED) EvidenceType() model.EvidenceType { return model.EvidenceDataset }

type fredObsResp struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Fetch maps claim vocabulary onto series ids and pulls the most recent
// observations for each.
func (a *FRED) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	apiKey := os.Getenv("FRED_API_KEY")
	if apiKey == "" {
		return nil
	}
	lower := strings.ToLower(q.ClaimText)
	var out []model.EvidenceCandidate
	seen := make(map[string]bool)
	for _, s := range fredSeries {
		if !strings.Contains(lower, s.keyword) || seen[s.seriesID] {
			continue
		}
		seen[s.seriesID] = true

		var resp fredObsResp
		err := a.client.GetJSON(ctx, a.ID(), fredObsAPI, url.Values{
			"series_id":  {s.seriesID},
			"api_key":    {apiKey},
			"file_type":  {"json"},
			"sort_order": {"desc"},
			"limit":      {"8"},
		}, &resp)
		if err != nil {
			logFetchError(a.ID(), q, err)
			continue
		}
		if len(resp.Observations) == 0 {
			continue
		}
		var parts []string
		for _, obs := range resp.Observations {
			if obs.Value != "." {
				parts = append(parts, obs.Date+": "+obs.Value)
			}
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        s.title + " (" + s.seriesID + ")",
			Snippet:      strings.Join(parts, "; "),
			URL:          fredWebURL + s.seriesID,
			Identifier:   s.seriesID,
			PublishedAt:  parseDate(resp.Observations[0].Date),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
