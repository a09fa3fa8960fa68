package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aetheris-dev/aetheris"
)

// Interface compliance checks.
var (
	_ aetheris.ChatStreamer  = (*Client)(nil)
	_ aetheris.ChatService   = (*Client)(nil)
	_ aetheris.SystemService = (*Client)(nil)
	_ aetheris.ToolService   = (*Client)(nil)
	_ aetheris.CodeService   = (*Client)(nil)
)

// Client talks to an Aetheris server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	timeout    time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL, including the /api prefix.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for requests and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds each REST call. Streaming calls are bounded only by
// the caller's context. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
		timeout:    30 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// getJSON performs a GET and decodes the envelope data into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// postJSON performs a POST with in as the JSON body and decodes the envelope
// data into out.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, "application/json", body, out)
}

// do sends one REST request and unwraps the response envelope. out may be
// nil when the caller does not need the data.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := parseHTTPError(resp)
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	if env.Code != 0 {
		msg := env.Message
		if msg == "" {
			msg = "Error"
		}
		c.logger.Warn("api error",
			zap.String("path", path),
			zap.Int("code", env.Code),
			zap.String("message", msg))
		return &Error{Code: env.Code, Message: msg}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decode data: %w", err)
	}
	return nil
}

// parseHTTPError builds an *Error from a non-2xx response. The message is
// taken from a FastAPI-style detail field or an envelope message when the
// body carries one.
func parseHTTPError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil && detail != "" {
		apiErr.Message = detail
		return apiErr
	}
	if len(eb.Detail) > 0 {
		apiErr.Message = string(eb.Detail)
		return apiErr
	}
	apiErr.Message = eb.Message
	return apiErr
}

// isCanceled reports whether err stems from the caller cancelling ctx.
// Deadlines are failures, not cancellations.
func isCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}
