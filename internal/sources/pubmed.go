package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const (
	pubmedSearchAPI  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedSummaryAPI = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
)

// PubMed searches biomedical literature via NCBI E-utilities: esearch
// for PMIDs, esummary for titles and publication dates.
type PubMed struct {
	client *Client
	max    int
}

// NewPubMed creates the pubmed adapter.
func NewPubMed(c *Client) *PubMed { return &PubMed{client: c, max: 5} }

func (a *PubMed) ID() string                       { return "pubmed" }
func (a *PubMed) EvidenceType() model.EvidenceType { return model.EvidencePaper }

type pubmedSearchResp struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedSummaryResp struct {
	Result map[string]struct {
		Title   string `json:"title"`
		Source  string `json:"source"`
		PubDate string `json:"pubdate"`
	} `json:"result"`
}

// Fetch resolves PMIDs then their summaries.
func (a *PubMed) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	if q.Terms == "" {
		return nil
	}
	var search pubmedSearchResp
	err := a.client.GetJSON(ctx, a.ID(), pubmedSearchAPI, url.Values{
		"db":      {"pubmed"},
		"term":    {strings.ReplaceAll(q.Terms, `"`, "")},
		"retmax":  {strconv.Itoa(a.max)},
		"retmode": {"json"},
		"sort":    {"relevance"},
	}, &search)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	pmids := search.ESearchResult.IDList
	if len(pmids) == 0 {
		return nil
	}
	var summary pubmedSummaryResp
	err = a.client.GetJSON(ctx, a.ID(), pubmedSummaryAPI, url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"json"},
	}, &summary)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, pmid := range pmids {
		doc, ok := summary.Result[pmid]
		if !ok || doc.Title == "" {
			continue
		}
		cand := model.EvidenceCandidate{
			SourceAPI:    a.ID(),
			EvidenceType: a.EvidenceType(),
			Title:        doc.Title,
			Snippet:      doc.Source,
			URL:          "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
			Identifier:   pmid,
			PublishedAt:  parseDate(doc.PubDate),
		}
		out = append(out, finishCandidate(cand))
		if len(out) >= a.max {
			break
		}
	}
	return out
}
