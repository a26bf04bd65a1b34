package sources

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/veritaslabs/veritas/internal/logger"
	"github.com/veritaslabs/veritas/internal/metrics"
	"github.com/veritaslabs/veritas/internal/model"
)

const maxResponseBytes = 4 << 20

// Client is the shared HTTP layer all adapters fetch through. Each
// source id owns an independent token bucket; responses are cached in
// memory so repeated assist runs stay cheap and idempotent.
type Client struct {
	httpClient *http.Client
	cache      *gocache.Cache
	userAgent  string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewClient builds the shared client from adapter configuration.
func NewClient(cfg *model.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTP.Timeout},
		cache:      gocache.New(cfg.Adapters.CacheTTL, 2*cfg.Adapters.CacheTTL),
		userAgent:  cfg.HTTP.UserAgent,
		limiters:   make(map[string]*rate.Limiter),
		rps:        rate.Limit(cfg.Adapters.RatePerSec),
		burst:      cfg.Adapters.Burst,
	}
}

// limiter returns the token bucket for a source, creating it on first use.
func (c *Client) limiter(sourceID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[sourceID]
	if !ok {
		l = rate.NewLimiter(c.rps, c.burst)
		c.limiters[sourceID] = l
	}
	return l
}

// GetJSON fetches and decodes a JSON endpoint. The context deadline
// bounds rate-limit waiting and the request together, so an exhausted
// bucket can never block past the adapter timeout.
func (c *Client) GetJSON(ctx context.Context, sourceID, rawURL string, params url.Values, out any) error {
	body, err := c.get(ctx, sourceID, rawURL, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// GetBytes fetches a raw endpoint body (XML feeds, CSV).
func (c *Client) GetBytes(ctx context.Context, sourceID, rawURL string, params url.Values) ([]byte, error) {
	return c.get(ctx, sourceID, rawURL, params)
}

// PostJSON posts a JSON payload and decodes the JSON response. POST
// responses are not cached.
func (c *Client) PostJSON(ctx context.Context, sourceID, rawURL string, payload, out any) error {
	if err := c.limiter(sourceID).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	respBody, err := c.do(sourceID, req)
	if err != nil {
		return err
	}
	return json.Unmarshal(respBody, out)
}

func (c *Client) get(ctx context.Context, sourceID, rawURL string, params url.Values) ([]byte, error) {
	full := rawURL
	if len(params) > 0 {
		full = rawURL + "?" + params.Encode()
	}
	key := cacheKey(sourceID, full)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	if err := c.limiter(sourceID).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	body, err := c.do(sourceID, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, body, gocache.DefaultExpiration)
	return body, nil
}

func (c *Client) do(sourceID string, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues(sourceID, "network").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := "http_error"
		if resp.StatusCode == http.StatusTooManyRequests {
			reason = "rate_limited"
		}
		metrics.AdapterFailures.WithLabelValues(sourceID, reason).Inc()
		return nil, fmt.Errorf("%s: HTTP %d", sourceID, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.AdapterFailures.WithLabelValues(sourceID, "read").Inc()
		return nil, err
	}
	return body, nil
}

// logFetchError records an absorbed adapter failure; it never propagates.
func logFetchError(sourceID string, q Query, err error) {
	logger.Warn("adapter fetch failed",
		zap.String("source_api", sourceID),
		zap.String("claim_excerpt", excerpt(q.ClaimText, 60)),
		zap.Error(err),
	)
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func cacheKey(sourceID, url string) string {
	sum := sha256.Sum256([]byte(sourceID + "|" + url))
	return "veritas:v1:" + hex.EncodeToString(sum[:])
}
