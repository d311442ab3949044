package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/metrics"
)

const (
	// RequestIDHeader correlates a call with the upstream access log.
	RequestIDHeader = "X-Request-ID"

	maxErrorBodyBytes = 4 << 10
)

// Config describes the upstream insured events API.
type Config struct {
	BaseURL string
	// Timeout bounds a single request. Zero leaves the request bounded only by its context.
	Timeout time.Duration
	// Headers are sent with every request, e.g. an API gateway key.
	Headers map[string]string
}

// Client performs GET requests against the upstream API and decodes JSON bodies.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	settings  atomic.Pointer[requestSettings]
	requestID func() string
}

// requestSettings can change while the client is in use.
type requestSettings struct {
	headers map[string]string
	timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	return NewClientWithHTTP(cfg, &http.Client{})
}

// NewClientWithHTTP uses httpClient as the transport. cfg.Timeout is applied per request.
func NewClientWithHTTP(cfg Config, httpClient *http.Client) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, errs.Wrapf(err, "parse api base url %q", raw)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", raw)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := &Client{
		baseURL:   base,
		http:      httpClient,
		requestID: uuid.NewString,
	}
	client.Reconfigure(cfg.Headers, cfg.Timeout)
	return client, nil
}

// Reconfigure swaps the headers and timeout used by subsequent requests.
// Requests already in flight keep the values they started with.
func (c *Client) Reconfigure(headers map[string]string, timeout time.Duration) {
	c.settings.Store(&requestSettings{
		headers: maps.Clone(headers),
		timeout: max(timeout, 0),
	})
}

// getJSON requests path (already escaped, relative to the base url) and decodes the body into out.
// endpoint labels metrics and logs.
func (c *Client) getJSON(ctx context.Context, endpoint string, path string, query url.Values, out any) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}

	settings := c.settings.Load()
	if settings.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.timeout)
		defer cancel()
	}

	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return errs.Wrap(err, "build request")
	}
	requestID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	for k, v := range settings.headers {
		req.Header.Set(k, v)
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "httpapi.client"),
		slog.String("endpoint", endpoint),
		slog.String("request_id", requestID),
	)
	logging.Debug(logCtx, "upstream request", slog.String("url", target.String()))

	started := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return errs.Wrapf(err, "get %s", endpoint)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logging.Warn(logCtx, "upstream request failed", slog.Int("status_code", resp.StatusCode))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			URL:        target.String(),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrapf(err, "decode %s response", endpoint)
	}
	return nil
}
