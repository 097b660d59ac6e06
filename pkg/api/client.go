package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmiguel/workers-sdk/pkg/config"
	pkgerrors "github.com/pmiguel/workers-sdk/pkg/errors"
	"github.com/pmiguel/workers-sdk/pkg/logger"
	"github.com/pmiguel/workers-sdk/pkg/metrics"
)

var (
	errTokenRequired  = errors.New("api token is required")
	errLoggerRequired = errors.New("api logger is required")
)

// Client is the HTTP implementation of Transport, with centralized auth,
// request correlation, structured logging, and metrics. It performs no
// retries and enforces no timeout beyond the configured http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	logger     *logger.Logger
	metrics    *metrics.RequestMetrics
}

// NewClient validates the configuration and builds the HTTP transport.
func NewClient(ctx context.Context, cfg config.APIConfig, logg *logger.Logger, m *metrics.RequestMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errTokenRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
		userAgent:  cfg.UserAgent,
		logger:     logg,
		metrics:    m,
	}

	logg.Info(ctx, "api client initialized")
	return c, nil
}

// Do performs one round trip and returns the response body. The body is
// handed back regardless of HTTP status; interpreting the envelope inside is
// the fetch layer's concern.
func (c *Client) Do(ctx context.Context, resource string, init RequestInit, params []QueryParam) (json.RawMessage, error) {
	resp, err := c.roundTrip(ctx, resource, init, params)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

// DoRaw performs one round trip and returns the undecoded response.
func (c *Client) DoRaw(ctx context.Context, resource string, init RequestInit, params []QueryParam) (*RawResponse, error) {
	return c.roundTrip(ctx, resource, init, params)
}

func (c *Client) roundTrip(ctx context.Context, resource string, init RequestInit, params []QueryParam) (*RawResponse, error) {
	method := init.Method
	if method == "" {
		method = http.MethodGet
	}

	requestID := uuid.NewString()
	ctx = c.logger.WithRequestID(ctx, requestID)
	ctx = c.logger.WithResource(ctx, resource)
	c.log(ctx, "request", method, resource, map[string]any{"query": queryLogFields(params)})

	var body io.Reader
	if len(init.Body) > 0 {
		body = bytes.NewReader(init.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(resource, params), body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", resource, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-Id", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if len(init.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range init.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(resource, method, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(resource, method)
		c.log(ctx, "error", method, resource, map[string]any{"error": err.Error()})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeCancelled, err, fmt.Sprintf("request to %s cancelled", resource))
		}
		// Transport failures propagate unwrapped.
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(resource, method)
		c.log(ctx, "error", method, resource, map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("read response from %s: %w", resource, err)
	}

	c.metrics.IncSuccess(resource, method)
	c.log(ctx, "response", method, resource, map[string]any{
		"status": resp.StatusCode,
		"bytes":  len(payload),
	})

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}

// requestURL joins the base URL, resource path, and query parameters,
// preserving the caller's parameter order on the wire.
func (c *Client) requestURL(resource string, params []QueryParam) string {
	target := c.baseURL + resource
	if len(params) == 0 {
		return target
	}
	var q strings.Builder
	for i, p := range params {
		if i > 0 {
			q.WriteByte('&')
		}
		q.WriteString(url.QueryEscape(p.Key))
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(p.Value))
	}
	return target + "?" + q.String()
}

func (c *Client) log(ctx context.Context, phase, method, resource string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"phase":  phase,
		"method": method,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("api %s %s", method, resource), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Debug(ctx, fmt.Sprintf("api %s", phase))
	}
}

func queryLogFields(params []QueryParam) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.Key+"="+redactQueryValue(p.Key, p.Value))
	}
	return out
}

func redactQueryValue(key, value string) string {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "key", "secret", "signature"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}
