package sources

import (
	"context"
	"net/url"
	"os"
	"strconv"

	"github.com/veritaslabs/veritas/internal/model"
)

const factCheckAPI = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// GoogleFactCheck searches accredited fact-check verdicts via the Fact
// Check Tools API. Requires GOOGLE_FACTCHECK_API_KEY.
type GoogleFactCheck struct {
	client *Client
	max    int
}

// NewGoogleFactCheck creates the google_factcheck adapter.
func NewGoogleFactCheck(c *Client) *GoogleFactCheck {
	return &GoogleFactCheck{client: c, max: 5}
}

func (a *GoogleFactCheck) ID() string                       { return "google_factcheck" }
func (a *GoogleFactCheck) EvidenceType() model.EvidenceType { return model.EvidenceFactcheck }

type factCheckResp struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			ReviewDate    string `json:"reviewDate"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Fetch searches reviewed claims; each review becomes one candidate with
// the publisher's verdict in the snippet.
func (a *GoogleFactCheck) Fetch(ctx context.Context, q Query) []model.EvidenceCandidate {
	apiKey := os.Getenv("GOOGLE_FACTCHECK_API_KEY")
	if apiKey == "" || q.Terms == "" {
		return nil
	}
	var resp factCheckResp
	err := a.client.GetJSON(ctx, a.ID(), factCheckAPI, url.Values{
		"query":        {q.Terms},
		"key":          {apiKey},
		"pageSize":     {strconv.Itoa(a.max)},
		"languageCode": {"en"},
	}, &resp)
	if err != nil {
		logFetchError(a.ID(), q, err)
		return nil
	}
	var out []model.EvidenceCandidate
	for _, claim := range resp.Claims {
		for _, review := range claim.ClaimReview {
			if review.URL == "" {
				continue
			}
			title := review.Title
			if title == "" {
				title = claim.Text
			}
			snippet := review.Publisher.Name + " rated this claim: " + review.TextualRating
			if claim.Claimant != "" {
				snippet += " (claimant: " + claim.Claimant + ")"
			}
			cand := model.EvidenceCandidate{
				SourceAPI:    a.ID(),
				EvidenceType: a.EvidenceType(),
				Title:        title,
				Snippet:      snippet,
				URL:          review.URL,
				PublishedAt:  parseDate(firstN(review.ReviewDate, 10)),
			}
			out = append(out, finishCandidate(cand))
			if len(out) >= a.max {
				return out
			}
		}
	}
	return out
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
