package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

// worldBankIndicators maps development vocabulary to indicator codes.
var worldBankIndicators = []struct {
	keyword   string
	indicator string
	title     string
}{
	{"gdp", "NY.GDP.MKTP.CD", "GDP (current US$)"},
	{"gni", "NY.GNP.PCAP.CD", "GNI per capita (current US$)"},
	{"life expectancy", "SP.DYN.LE00.IN", "Life expectancy at birth"},
	{"infant mortality", "SP.DYN.IMRT.IN", "Infant mortality rate"},
	{"literacy", "SE.ADT.LITR.ZS", "Adult literacy rate"},
	{"co2", "EN.ATM.CO2E.PC", "CO2 emissions per capita"},
	{"carbon emissions", "EN.ATM.CO2E.PC", "CO2 emissions per capita"},
	{"renewable", "EG.FEC.RNEW.ZS", "Renewable energy consumption share"},
	{"inequality", "SI.POV.GINI", "Gini index"},
	{"exports", "NE.EXP.GNFS.CD", "Exports of goods and services"},
	{"external debt", "DT.DOD.DECT.CD", "External debt stocks"},
}

const worldBankAPIBase = "https://api.worldbank.org/v2/country/"

// WorldBank pulls development indicators. World-scoped unless the claim
// names the United States, which is the common case in the corpus.
type WorldBank struct {
	client *Client
	max    int
}

// NewWorldBank creates the worldbank adapter.
func NewWorldBank(c *Client) *WorldBank { return &WorldBank{client: c, max: 3} }

func (a *WorldBank) ID() string                       { return "worldbank" }
func (a *WorldBank) EvidenceType() model.EvidenceType { return model.EvidenceDataset }

// worldBankObs is the second element of the API's [metadata, rows] reply.
type worldBankObs struct {
	Date    string   `json:"date"`
	Value   *float64 `json:"value"`
	Country struct {
		Value string `json:"value"`
	} `json:"country"`
}

// Fetch resolves indicator codes from the claim vocabulary and pulls the
// most recent non-empty value.
func (a *WorldBank) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	lower := strings.ToLower(q.ClaimText)
	country := "WLD"
	if strings.Contains(lower, "united states") || strings.Contains(lower, "u.s.") || strings.Contains(lower, " us ") {
		country = "USA"
	}
	var out []model.EvidenceCandidate
	seen := make(map[string]bool)
	for _, ind := range worldBankIndicators {
		if !strings.Contains(lower, ind.keyword) || seen[ind.indicator] {
			continue
		}
		seen[ind.indicator] = true

		endpoint := worldBankAPIBase + country + "/indicator/" + ind.indicator
		body, err := a.client.GetBytes(ctx, a.ID(), endpoint, url.Values{
			"format":   {"json"},
			"mrnev":    {"3"},
			"per_page": {"3"},
		})
		if err != nil {
			logFetchError(a.ID(), q, err)
			continue
		}
		var raw []json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil || len(raw) < 2 {
			continue
		}
		var obs []worldBankObs
		if err := json.Unmarshal(raw[1], &obs); err != nil || len(obs) == 0 {
			continue
		}
		var parts []string
		for _, o := range obs {
			if o.Value != nil {
				parts = append(parts, fmt.Sprintf("%s: %.2f", o.Date, *o.Value))
			}
		}
		if len(parts) == 0 {
			continue
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        fmt.Sprintf("%s — %s", ind.title, obs[0].Country.Value),
			Snippet:      strings.Join(parts, "; "),
			URL:          "https://data.worldbank.org/indicator/" + ind.indicator + "?locations=" + country,
			Identifier:   ind.indicator,
			PublishedAt:  parseDate(obs[0].Date),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
