// Package feedbackapi is the HTTP/JSON client for the remote feedback API.
package feedbackapi

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
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/platform/timeouts"
)

// DefaultBaseURL is the hosted feedback API.
const DefaultBaseURL = "https://tech-hub-server-2iz9.onrender.com/api"

const maxResponseBytes = 4 << 20

// maxServerMessage bounds the raw error text kept in errors and logs.
const maxServerMessage = 200

// Operation names used in errors and spans.
const (
	OpCreateAttendee    = "create attendee"
	OpGetAttendeeByCode = "get attendee"
	OpSubmitFeedback    = "submit feedback"
	OpListFeedback      = "list feedback"
)

// Config configures the client.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero uses timeouts.APIRequest.
	Timeout time.Duration
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
}

// Client calls the remote API. It performs no retries and no caching.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

var _ feedback.Client = (*Client)(nil)

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("feedback api: base url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("feedback api: parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("feedback api: base url scheme %q is not http(s)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("feedback api: base url host is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.APIRequest
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{baseURL: base, timeout: timeout, http: httpClient}, nil
}

// CreateAttendee registers a new attendee.
func (c *Client) CreateAttendee(ctx context.Context, name, email string) (feedback.Attendee, error) {
	body := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{Name: name, Email: email}
	var out feedback.Attendee
	if err := c.do(ctx, OpCreateAttendee, http.MethodPost, "/attendees", body, &out); err != nil {
		return feedback.Attendee{}, err
	}
	return out, nil
}

// GetAttendeeByCode looks up a returning attendee by lookup code.
func (c *Client) GetAttendeeByCode(ctx context.Context, code string) (feedback.Attendee, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return feedback.Attendee{}, &Error{Op: OpGetAttendeeByCode, Kind: feedback.ErrNotFound, Message: "empty attendee code"}
	}
	var out feedback.Attendee
	if err := c.do(ctx, OpGetAttendeeByCode, http.MethodGet, "/attendees/"+url.PathEscape(code), nil, &out); err != nil {
		return feedback.Attendee{}, err
	}
	return out, nil
}

// SubmitFeedback stores one feedback submission.
func (c *Client) SubmitFeedback(ctx context.Context, submission feedback.Submission) (feedback.Record, error) {
	var out feedback.Record
	if err := c.do(ctx, OpSubmitFeedback, http.MethodPost, "/feedback", submission, &out); err != nil {
		return feedback.Record{}, err
	}
	return out, nil
}

// ListFeedback returns every stored feedback record in server order.
func (c *Client) ListFeedback(ctx context.Context) ([]feedback.Record, error) {
	var out []feedback.Record
	if err := c.do(ctx, OpListFeedback, http.MethodGet, "/feedback", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []feedback.Record{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: feedback.ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Kind: feedback.ErrNetwork, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Kind: classifyStatus(op, resp.StatusCode), Message: serverMessage(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Kind: feedback.ErrNetwork, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func classifyStatus(op string, status int) error {
	switch {
	case status == http.StatusNotFound && op == OpGetAttendeeByCode:
		return feedback.ErrNotFound
	case status >= 400 && status < 500:
		return feedback.ErrValidation
	default:
		return feedback.ErrNetwork
	}
}

// serverMessage extracts a message from a JSON error body, falling back to
// the trimmed raw text.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	return truncate(strings.TrimSpace(string(data)), maxServerMessage)
}

// truncate cuts text to at most limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
