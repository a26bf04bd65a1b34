package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

// censusTopics maps demographic vocabulary to ACS variables.
var censusTopics = []struct {
	keyword     string
	dataset     string
	variable    string
	description string
}{
	{"median income", "2023/acs/acs1", "B19013_001E", "Median Household Income"},
	{"household income", "2023/acs/acs1", "B19013_001E", "Median Household Income"},
	{"poverty", "2023/acs/acs1", "B17001_002E", "Population Below Poverty Level"},
	{"population", "2023/acs/acs1", "B01003_001E", "Total Population"},
	{"homeownership", "2023/acs/acs1", "B25003_002E", "Owner-Occupied Housing Units"},
	{"uninsured", "2023/acs/acs1", "B27010_017E", "Population Without Health Insurance"},
	{"bachelor", "2023/acs/acs1", "B15003_022E", "Population With Bachelor's Degree"},
}

const censusAPIBase = "https://api.census.gov/data/"

// Census pulls national ACS estimates for demographic claims.
type Census struct {
	client *Client
	max    int
}

// NewCensus creates the census adapter.
func NewCensus(c *Client) *Census { return &Census{client: c, max: 3} }

func (a *Census) ID() string                       { return "census" }
func (a *Census) EvidenceType() model.EvidenceType { return model.EvidenceGov }

// Fetch maps claim vocabulary to ACS variables and fetches the US-level
// estimate. The Census API answers with a JSON array-of-arrays.
func (a *Census) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	lower := strings.ToLower(q.ClaimText)
	var out []model.EvidenceCandidate
	seen := make(map[string]bool)
	for _, topic := range censusTopics {
		if !strings.Contains(lower, topic.keyword) || seen[topic.variable] {
			continue
		}
		seen[topic.variable] = true

		var rows [][]string
		err := a.client.GetJSON(ctx, a.ID(), censusAPIBase+topic.dataset, url.Values{
			"get": {"NAME," + topic.variable},
			"for": {"us:1"},
		}, &rows)
		if err != nil {
			logFetchError(a.ID(), q, err)
			continue
		}
		if len(rows) < 2 || len(rows[1]) < 2 {
			continue
		}
		value := rows[1][1]
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        topic.description + " (ACS)",
			Snippet:      topic.description + " for the United States: " + value,
			URL:          "https://data.census.gov/table?q=" + url.QueryEscape(topic.description),
			Identifier:   topic.variable,
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
