package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const edgarSearchAPI = "https://efts.sec.gov/LATEST/search-index"

// SECEdgar searches the SEC full-text filing index. Filings carry the
// hard revenue and earnings figures finance claims assert.
type SECEdgar struct {
	client *Client
	max    int
}

// NewSECEdgar creates the sec_edgar adapter.
func NewSECEdgar(c *Client) *SECEdgar { return &SECEdgar{client: c, max: 5} }

func (a *SECEdgar) ID() string                       { return "sec_edgar" }
func (a *SECEdgar) EvidenceType() model.EvidenceType { return model.EvidenceFiling }

type edgarResp struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				DisplayNames []string `json:"display_names"`
				FileType     string   `json:"file_type"`
				FileDate     string   `json:"file_date"`
				RootForms    []string `json:"root_forms"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Fetch runs a full-text search restricted to the periodic report forms.
// The query leads with the claim's entities so the issuer match stays
// tight even when the claim text is noisy.
func (a *SECEdgar) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	terms := q.Terms
	if len(q.Entities) > 0 {
		terms = `"` + q.Entities[0] + `" ` + terms
	}
	if terms == "" {
		return nil
	}
	var resp edgarResp
	err := a.client.GetJSON(ctx, a.ID(), edgarSearchAPI, url.Values{
		"q":     {terms},
		"forms": {"10-K,10-Q,8-K,20-F"},
	}, &resp)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, hit := range resp.Hits.Hits {
		src := hit.Source
		title := strings.Join(src.DisplayNames, ", ")
		if title == "" {
			title = strings.Join(src.RootForms, ", ") + " filing"
		}
		accession, _, _ := strings.Cut(hit.ID, ":")
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        title,
			Snippet:      strings.Join(src.RootForms, " ") + " filed " + src.FileDate,
			URL:          "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&filenum=" + url.QueryEscape(accession),
			Identifier:   accession,
			PublishedAt:  parseDate(src.FileDate),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
