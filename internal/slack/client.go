// Package slack is the HTTP client for the workspace sidebar API.
//
// The core organizing engine never speaks HTTP; it consumes this client
// through small interfaces. The client owns transport-level concerns:
// bearer auth, bounded retries with backoff, honoring HTTP 429 Retry-After
// (a recoverable condition at this boundary, distinct from the executor's
// own rate limiter), response size limits and coarse request pacing.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"chorg/internal/logging"
)

const (
	// defaultMaxBodySize caps how much of a response body is read
	defaultMaxBodySize = 10 << 20
	// defaultRetryBaseDelay is the initial backoff step
	defaultRetryBaseDelay = 250 * time.Millisecond
	// defaultRetryMaxDelay caps the backoff
	defaultRetryMaxDelay = 5 * time.Second
	// defaultRateLimitDelay applies when a 429 carries no Retry-After
	defaultRateLimitDelay = 1 * time.Second
)

// HTTPDoer performs HTTP requests. *http.Client implements it; tests
// substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int

	// PacePerMinute and PaceBurst bound raw request throughput.
	PacePerMinute int
	PaceBurst     int

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient HTTPDoer

	Logger *logging.Logger
}

// Client talks to the workspace API.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPDoer
	pacer      *rate.Limiter
	maxRetries int
	logger     *logging.Logger
}

// New creates a workspace API client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if opts.Token == "" {
		return nil, fmt.Errorf("api token is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}

	perMinute := opts.PacePerMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	burst := opts.PaceBurst
	if burst <= 0 {
		burst = 5
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		httpClient: httpClient,
		pacer:      rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// APIError is a not-ok response from the workspace API.
type APIError struct {
	StatusCode int
	Code       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: %s", e.Code)
	}
	return fmt.Sprintf("api error: HTTP %d", e.StatusCode)
}

// IsNotFound reports a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == "section_not_found" || e.Code == "channel_not_found"
}

// doRequest performs one API call with retry on network errors, 5xx and 429.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := defaultRetryBaseDelay * time.Duration(1<<uint(attempt-1))
			if delay > defaultRetryMaxDelay {
				delay = defaultRetryMaxDelay
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			c.logger.Debug("Retrying request", map[string]interface{}{
				"attempt": attempt + 1,
				"url":     u,
			})
		}

		if err := c.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("transport pacing wait: %w", err)
		}

		var bodyReader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request body: %w", err)
			}
			bodyReader = strings.NewReader(string(data))
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := retryAfter(resp)
			_ = resp.Body.Close()
			c.logger.Debug("Rate limited by API, backing off", map[string]interface{}{
				"delay": delay.String(),
			})
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			continue
		}

		if resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodySize))
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Code: strings.TrimSpace(string(data))}
		}

		return data, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, lastErr)
}

// retryAfter reads the Retry-After header of a 429, in whole seconds.
func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if sec, err := strconv.Atoi(s); err == nil && sec >= 0 {
			return time.Duration(sec) * time.Second
		}
	}
	return defaultRateLimitDelay
}

// call performs a request and decodes the enveloped response into dest.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body interface{}, dest envelope) error {
	data, err := c.doRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	if ok, apiErr := dest.status(); !ok {
		return &APIError{StatusCode: http.StatusOK, Code: apiErr}
	}
	return nil
}

// ListSections returns the workspace's standard sidebar sections. Sections
// of other types (starred, default groupings) are filtered out before the
// planner ever sees them.
func (c *Client) ListSections(ctx context.Context) ([]SidebarSection, error) {
	var resp sectionsListResponse
	if err := c.call(ctx, http.MethodGet, "sidebar.sections.list", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	standard := make([]SidebarSection, 0, len(resp.Sections))
	for _, s := range resp.Sections {
		if s.Type == "standard" {
			standard = append(standard, s)
		}
	}
	return standard, nil
}

// ListChannels returns every channel the user is a member of, fully
// paginated with an explicit cursor loop, deduplicated by id and sorted by
// name. Archived channels are dropped.
func (c *Client) ListChannels(ctx context.Context) ([]Channel, error) {
	seen := make(map[string]bool)
	var channels []Channel

	cursor := ""
	for {
		query := url.Values{}
		query.Set("limit", "200")
		query.Set("types", "public_channel,private_channel")
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var resp conversationsListResponse
		if err := c.call(ctx, http.MethodGet, "conversations.list", query, nil, &resp); err != nil {
			return nil, fmt.Errorf("list channels: %w", err)
		}

		for _, ch := range resp.Channels {
			if ch.IsArchived || seen[ch.ID] {
				continue
			}
			seen[ch.ID] = true
			channels = append(channels, ch)
		}

		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			break
		}
	}

	sort.Slice(channels, func(i, j int) bool { return channels[i].Name < channels[j].Name })
	return channels, nil
}

// MoveChannel relocates a channel into toSectionID, removing it from
// fromSectionID when set.
func (c *Client) MoveChannel(ctx context.Context, channelID, fromSectionID, toSectionID string) error {
	req := moveRequest{
		ChannelID:     channelID,
		ToSectionID:   toSectionID,
		FromSectionID: fromSectionID,
	}
	var resp struct{ apiEnvelope }
	if err := c.call(ctx, http.MethodPost, "sidebar.sections.move", nil, req, &resp); err != nil {
		return fmt.Errorf("move channel %s: %w", channelID, err)
	}
	return nil
}

// MuteChannel mutes a channel.
func (c *Client) MuteChannel(ctx context.Context, channelID string) error {
	req := muteRequest{ChannelID: channelID}
	var resp struct{ apiEnvelope }
	if err := c.call(ctx, http.MethodPost, "conversations.mute", nil, req, &resp); err != nil {
		return fmt.Errorf("mute channel %s: %w", channelID, err)
	}
	return nil
}
