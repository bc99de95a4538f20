package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// Client fetches Context7 knowledge bundles from the external broker.
// Lookups are rate limited and cached; every failure degrades to a nil
// bundle so analysis and generation proceed on static knowledge.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *ResponseCache
	logger     *slog.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		transport := c.httpClient.Transport
		c.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}
}

func WithRateLimit(requestsPerMinute, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
	}
}

func WithCache(cache *ResponseCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		baseURL: "http://localhost:8700",
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		logger:  slog.Default().With("component", "insight_client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("insight client initialized",
		"base_url", c.baseURL,
		"rate_limit", fmt.Sprintf("%v req/s", c.limiter.Limit()),
		"cached", c.cache != nil)

	return c
}

// Fetch retrieves the knowledge bundle for a technology. A nil bundle
// with a nil error means the broker had nothing (or was unreachable);
// callers treat that as the degraded, static-only path.
func (c *Client) Fetch(ctx context.Context, technology string) (*engine.Context7Data, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, technology); ok {
			return data, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	endpoint := fmt.Sprintf("%s/insights?technology=%s", c.baseURL, url.QueryEscape(technology))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building insight request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("insight broker unreachable, degrading to static knowledge",
			"technology", technology,
			"error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("insight broker returned non-OK status",
			"technology", technology,
			"status", resp.StatusCode)
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.logger.Warn("reading insight response failed", "error", err)
		return nil, nil
	}

	var data engine.Context7Data
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Warn("decoding insight response failed", "error", err)
		return nil, nil
	}

	c.logger.Debug("insight fetch completed",
		"technology", technology,
		"duration_ms", time.Since(start).Milliseconds(),
		"patterns", patternCount(&data))

	if c.cache != nil {
		c.cache.Set(ctx, technology, &data)
	}
	return &data, nil
}

func patternCount(data *engine.Context7Data) int {
	if data == nil || data.Insights == nil {
		return 0
	}
	return len(data.Insights.Patterns)
}
