// Package api is the HTTP client for the LLM Practice backend. It covers
// the full wire contract: blocking chat, streaming chat over SSE-style
// frames, and the models/status/health read endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ladlehq/ladle/pkg/logger"
	"github.com/ladlehq/ladle/pkg/stream"
)

// DefaultTarget is the default base URL of the backend's API router.
const DefaultTarget = "http://localhost:8000/api/v1"

// ErrStreamClosed indicates the streaming connection closed before the
// backend delivered a terminal event.
var ErrStreamClosed = errors.New("stream closed before completion")

// Client talks to one backend target. It is safe for sequential reuse
// across requests; streams are consumed one at a time.
type Client struct {
	target     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client created with New.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for request and frame diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout overrides the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New returns a Client for the given base target URL, e.g.
// "http://localhost:8000/api/v1".
func New(target string, opts ...Option) *Client {
	c := &Client{
		target: strings.TrimRight(target, "/"),
		httpClient: &http.Client{
			// LLM responses can be slow
			Timeout: 5 * time.Minute,
		},
		logger: logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Chat sends a blocking chat completion request.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, errorDetail(resp.Body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &chatResp, nil
}

// ChatStream sends a streaming chat completion request and dispatches every
// framed event through h until the backend delivers a terminal event.
//
// A server-side "error" event reaches h.OnError and ChatStream returns nil:
// the protocol completed, the outcome is in the callback. Transport-level
// failures (request error, non-200 status, read error, connection closed
// without a terminal event) also fire h.OnError exactly once with a
// human-readable message, and are additionally returned as the error.
// No failure is ever retried; a new stream requires a fresh call.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest, h stream.Handlers) error {
	streaming := true
	req.Stream = &streaming

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/chat/stream", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("opening chat stream",
		"model", req.Model,
		"request_id", httpReq.Header.Get("X-Request-ID"),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return failStream(h, fmt.Errorf("sending request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failStream(h, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, errorDetail(resp.Body)))
	}

	r := stream.NewReader(resp.Body).WithLogger(c.logger)

	terminal, err := stream.Consume(r, h)
	if err != nil {
		return failStream(h, fmt.Errorf("reading stream: %w", err))
	}
	if terminal == "" {
		return failStream(h, ErrStreamClosed)
	}

	c.logger.Debug("chat stream finished", "terminal", string(terminal))
	return nil
}

// Models fetches the list of available models.
func (c *Client) Models(ctx context.Context) (*ModelsResponse, error) {
	var out ModelsResponse
	if err := c.get(ctx, "/models", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status fetches the backend's dependency status report.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.get(ctx, "/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the backend's liveness report.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.target+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, errorDetail(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// failStream routes a transport-level failure through the error callback,
// matching how server-side error events surface, then returns it.
func failStream(h stream.Handlers, err error) error {
	if h.OnError != nil {
		h.OnError(&stream.Event{
			Type:  stream.EventError,
			Error: err.Error(),
		})
	}
	return err
}

// errorDetail extracts the FastAPI-style {"detail": ...} message from an
// error response body, falling back to the raw body text.
func errorDetail(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))

	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Detail != "" {
		return e.Detail
	}

	return strings.TrimSpace(string(data))
}
