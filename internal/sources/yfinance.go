package sources

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
)

const yahooQuoteAPI = "https://query1.finance.yahoo.com/v7/finance/quote"

// tickerMap resolves well-known company names to symbols, mirroring the
// known-entity allow-list.
var tickerMap = map[string]string{
	"alphabet": "GOOGL", "google": "GOOGL", "microsoft": "MSFT",
	"apple": "AAPL", "amazon": "AMZN", "meta": "META", "nvidia": "NVDA",
	"tesla": "TSLA", "ibm": "IBM", "intel": "INTC", "oracle": "ORCL",
	"netflix": "NFLX", "boeing": "BA", "lockheed martin": "LMT",
	"pfizer": "PFE", "moderna": "MRNA", "johnson & johnson": "JNJ",
	"goldman sachs": "GS", "jpmorgan": "JPM", "berkshire hathaway": "BRK-B",
	"exxonmobil": "XOM", "chevron": "CVX", "walmart": "WMT",
	"samsung": "005930.KS", "tsmc": "TSM",
}

// YFinance resolves company mentions to market data: price, market cap,
// and trailing financials from the Yahoo Finance quote endpoint.
type YFinance struct {
	client *Client
	max    int
}

// NewYFinance creates the yfinance adapter.
func NewYFinance(c *Client) *YFinance { return &YFinance{client: c, max: 3} }

func (a *YFinance) ID() string                       { return "yfinance" }
func (a *YFinance) EvidenceType() model.EvidenceType { return model.EvidenceDataset }

type yahooQuoteResp struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			LongName           string  `json:"longName"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
			MarketCap          float64 `json:"marketCap"`
			TrailingPE         float64 `json:"trailingPE"`
			EpsTrailing        float64 `json:"epsTrailingTwelveMonths"`
			RegularMarketTime  int64   `json:"regularMarketTime"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Fetch looks up every ticker the claim mentions and renders the quote
// figures into a snippet the scorer can number-match against.
func (a *YFinance) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	symbols := resolveTickers(q.ClaimText, q.Entities)
	if len(symbols) == 0 {
		return nil
	}
	var resp yahooQuoteResp
	err := a.client.GetJSON(ctx, a.ID(), yahooQuoteAPI, url.Values{
		"symbols": {strings.Join(symbols, ",")},
	}, &resp)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, r := range resp.QuoteResponse.Result {
		name := r.LongName
		if name == "" {
			name = r.Symbol
		}
		snippet := fmt.Sprintf(
			"%s (%s): price $%.2f, market cap $%.0f, trailing P/E %.2f, trailing EPS $%.2f",
			name, r.Symbol, r.RegularMarketPrice, r.MarketCap, r.TrailingPE, r.EpsTrailing,
		)
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        name + " market data",
			Snippet:      snippet,
			URL:          "https://finance.yahoo.com/quote/" + url.PathEscape(r.Symbol),
			Identifier:   r.Symbol,
		}
		if r.RegularMarketTime > 0 {
			t := time.Unix(r.RegularMarketTime, 0).UTC()
			cand.PublishedAt = &t
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}

// resolveTickers collects symbols for every known company the claim or
// its entities mention: entity matches first, in entity order, then
// names found in the claim text, in alphabetical order. At most three
// symbols are returned.
func resolveTickers(claimText string, entities []string) []string {
	lower := strings.ToLower(claimText)
	var symbols []string
	seen := make(map[string]bool)
	add := func(sym string) {
		if sym != "" && !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
	}
	for _, e := range entities {
		add(tickerMap[strings.ToLower(e)])
	}
	names := make([]string, 0, len(tickerMap))
	for name := range tickerMap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(lower, name) {
			add(tickerMap[name])
		}
	}
	if len(symbols) > 3 {
		symbols = symbols[:3]
	}
	return symbols
}
