// Package statsapi fetches the full player set from the external baseball
// statistics feed.
//
// The feed is a single unauthenticated endpoint returning a JSON array of
// flat objects with inconsistent field names; internal/model owns the
// mapping onto the canonical record.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

// Client is the HTTP client for the statistics feed.
type Client struct {
	httpClient *http.Client
	feedURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a feed client with a bounded request timeout.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		feedURL:    feedURL,
		// The feed has no published quota; one request per second is far
		// more than sync ever issues and keeps repeated CLI runs polite.
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		logger:  logger,
	}
}

// SetTransport overrides the underlying HTTP transport. Test hook.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// FetchPlayers retrieves and decodes the complete player set.
//
// The whole fetch fails on a request-level error, and a single malformed
// element aborts the fetch rather than being skipped.
func (c *Client) FetchPlayers(ctx context.Context) ([]model.Player, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternalService, "stats feed request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternalService, "read stats feed body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.KindExternalService,
			"stats feed returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperr.Wrap(apperr.KindExternalService, "decode stats feed", err)
	}

	players := make([]model.Player, 0, len(raw))
	for i, obj := range raw {
		p, err := model.ParseExternal(obj)
		if err != nil {
			return nil, fmt.Errorf("feed element %d: %w", i, err)
		}
		players = append(players, p)
	}

	c.logger.Debug("fetched stats feed", "players", len(players))
	return players, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
