// Package scraper is the client for the external scrape service that
// supplies raw post JSON. The service itself is a collaborator, not
// part of this system.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/reelscope/reelscope/internal/domain"
)

// ErrScrapeFailed covers network failures and non-2xx responses from
// the scrape service.
var ErrScrapeFailed = errors.New("scrape service request failed")

// Config configures the scrape client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerMinute throttles outbound scrapes; the upstream is
	// rate-sensitive. Zero disables the limiter.
	RequestsPerMinute int
}

// Client fetches post payloads from the scrape service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a scrape client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}
}

// Scrape fetches the post behind a public post URL.
func (c *Client) Scrape(ctx context.Context, postURL string) (*domain.Post, error) {
	if postURL == "" {
		return nil, fmt.Errorf("%w: empty post url", domain.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScrapeFailed, err)
	}

	endpoint := fmt.Sprintf("%s/scrape?url=%s", c.baseURL, url.QueryEscape(postURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build scrape request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScrapeFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrScrapeFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrScrapeFailed, resp.StatusCode)
	}

	var post domain.Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrScrapeFailed, err)
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	log.Info().Str("shortcode", post.Shortcode).
		Int("comments", len(post.Comments)).
		Dur("latency", time.Since(start)).
		Msg("Post scraped")

	return &post, nil
}
