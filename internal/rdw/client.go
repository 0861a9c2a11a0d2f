// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package rdw

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/metrics"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	retryBaseDelay    = 1 * time.Second
	maxResponseSize   = 10 * 1024 * 1024 // 10MB guard against runaway upstream payloads
)

// StatsAPI is the surface the HTTP handlers consume. Client implements it
// directly; BreakerClient wraps the derived-data path with a circuit breaker.
type StatsAPI interface {
	// Forward performs a single pass-through request and returns the upstream
	// response verbatim. It never retries.
	Forward(ctx context.Context, car, endpoint string) (*Response, error)

	// FetchRecords fetches a statistics endpoint and unwraps its payload into
	// rows, retrying on upstream rate limiting.
	FetchRecords(ctx context.Context, car, endpoint string) ([]Record, error)
}

// Response carries an upstream reply for verbatim relay to the caller.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte

	// retryAfter is populated from the Retry-After header on 429 replies
	// only. Relays never surface it.
	retryAfter time.Duration
}

// IsJSON reports whether the upstream declared a JSON body.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Client talks to the upstream vehicle-registration statistics API. All
// requests are GETs of the form {base}/{car}/stats/{endpoint} authenticated
// with an x-api-key header.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an upstream client. Trailing slashes on the base URL are
// stripped so path joining never produces double slashes.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: defaultMaxRetries,
		retryDelay: retryBaseDelay,
	}
}

// endpointURL builds the upstream URL for a car's statistics endpoint. Both
// path segments are validated against allowlists before reaching this point,
// so no escaping beyond that is applied.
func (c *Client) endpointURL(car, endpoint string) string {
	return fmt.Sprintf("%s/%s/stats/%s", c.baseURL, car, endpoint)
}

// Forward performs exactly one upstream request and returns the response
// regardless of its status code. The gateway relays upstream errors to the
// caller rather than masking them, so a non-2xx reply is not an error here;
// only transport failures are.
func (c *Client) Forward(ctx context.Context, car, endpoint string) (*Response, error) {
	return c.do(ctx, car, endpoint)
}

// FetchRecords fetches a statistics endpoint, retrying with backoff when the
// upstream rate-limits, and unwraps its payload into rows. A non-2xx final
// status is an error on this path because the caller needs rows, not a relay.
func (c *Client) FetchRecords(ctx context.Context, car, endpoint string) ([]Record, error) {
	resp, err := c.doWithRateLimit(ctx, car, endpoint)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned status %d for %s/%s", resp.StatusCode, car, endpoint)
	}

	var raw any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode upstream payload: %w", err)
	}
	return ExtractArray(raw), nil
}

// doWithRateLimit wraps do with exponential backoff on 429 responses. The
// Retry-After header is honored when present and sane; otherwise the delay
// starts at one second and doubles per attempt.
func (c *Client) doWithRateLimit(ctx context.Context, car, endpoint string) (*Response, error) {
	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.do(ctx, car, endpoint)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if attempt == c.maxRetries {
			return nil, fmt.Errorf("upstream rate limit persisted after %d retries", c.maxRetries)
		}

		wait := delay
		if ra := resp.retryAfter; ra > 0 && ra <= 60*time.Second {
			wait = ra
		}

		logging.Ctx(ctx).Warn().
			Str("car", car).
			Str("endpoint", endpoint).
			Dur("wait", wait).
			Int("attempt", attempt+1).
			Msg("Upstream rate limited, backing off")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("upstream rate limit retry loop exhausted")
}

// do performs one GET against the upstream and drains the body.
func (c *Client) do(ctx context.Context, car, endpoint string) (*Response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(car, endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestErrors.WithLabelValues(car, endpoint, "transport").Inc()
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		metrics.UpstreamRequestErrors.WithLabelValues(car, endpoint, "read").Inc()
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	metrics.RecordUpstreamRequest(car, endpoint, httpResp.StatusCode, time.Since(start))

	resp := &Response{
		StatusCode:  httpResp.StatusCode,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        body,
	}
	if httpResp.StatusCode == http.StatusTooManyRequests {
		resp.retryAfter = parseRetryAfter(httpResp.Header.Get("Retry-After"))
	}
	return resp, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
