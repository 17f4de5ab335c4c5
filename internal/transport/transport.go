package transport

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request made by the default HTTP client.
const DefaultTimeout = 10 * time.Second

const maxErrorBody = 512

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestInterceptor may inspect or modify a request before it is sent.
// Returning an error aborts the call.
type RequestInterceptor func(req *http.Request) error

func passThrough(*http.Request) error { return nil }

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Method, e.URL, e.Status, e.Body)
}

// Transport is a configured HTTP client bound to one base URL.
type Transport struct {
	baseURL   string
	client    Doer
	timeout   time.Duration
	log       *zap.Logger
	onRequest RequestInterceptor
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(d Doer) Option {
	return func(t *Transport) {
		if d != nil {
			t.client = d
		}
	}
}

// WithTimeout bounds each request made by the default client. It has no
// effect when WithHTTPClient supplies the client.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.log = l
		}
	}
}

// WithRequestInterceptor installs a hook run on every outbound request,
// e.g. to attach an Authorization header.
func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(t *Transport) {
		if fn != nil {
			t.onRequest = fn
		}
	}
}

// New creates a Transport for baseURL.
func New(baseURL string, opts ...Option) *Transport {
	t := &Transport{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		log:       zap.NewNop(),
		onRequest: passThrough,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{
			Timeout:   t.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return t
}

// BaseURL returns the URL every request path is resolved against.
func (t *Transport) BaseURL() string { return t.baseURL }

// Get fetches path and decodes the JSON response into out.
func (t *Transport) Get(ctx context.Context, path string, out any) error {
	return t.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends in as JSON and decodes the response into out, if out is non-nil.
func (t *Transport) Post(ctx context.Context, path string, in, out any) error {
	return t.do(ctx, http.MethodPost, path, in, out)
}

// Put sends in as JSON and decodes the response into out, if out is non-nil.
func (t *Transport) Put(ctx context.Context, path string, in, out any) error {
	return t.do(ctx, http.MethodPut, path, in, out)
}

// Delete issues a DELETE and discards any response body.
func (t *Transport) Delete(ctx context.Context, path string) error {
	return t.do(ctx, http.MethodDelete, path, nil, nil)
}

func (t *Transport) do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	err := t.roundTrip(ctx, method, path, in, out)
	if err != nil {
		t.log.Error("request failed",
			zap.String("method", method),
			zap.String("url", t.baseURL+path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
	t.log.Debug("request done",
		zap.String("method", method),
		zap.String("url", t.baseURL+path),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (t *Transport) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := t.onRequest(req); err != nil {
		return err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
