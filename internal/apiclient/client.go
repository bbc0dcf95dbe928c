// Package apiclient is the typed client for the Palm Beach Resort REST
// backend. It handles authentication, error message extraction, the
// availability retry and the development mock fallback.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/palm-beach-resort/internal/logging"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// Client talks to the resort backend rooted at BaseURL.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	auth     Authenticator
	fallback Fallback
	retry    RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithAuth sets the authenticator used for every call.
func WithAuth(a Authenticator) Option { return func(c *Client) { c.auth = a } }

// WithMockFallback enables fixture substitution for the calls that allow it.
func WithMockFallback(f Fallback) Option { return func(c *Client) { c.fallback = f } }

// WithRetry overrides the availability retry policy.
func WithRetry(p RetryPolicy) Option { return func(c *Client) { c.retry = p } }

// New builds a client. baseURL may carry a path prefix; endpoint paths are
// appended to it.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		auth:    NoAuth{},
		retry:   DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithAuthenticator returns a copy of c that authenticates with a. The
// copy shares the transport, fallback and retry policy.
func (c *Client) WithAuthenticator(a Authenticator) *Client {
	cp := *c
	if a == nil {
		a = NoAuth{}
	}
	cp.auth = a
	return &cp
}

// Auth returns the authenticator in use.
func (c *Client) Auth() Authenticator { return c.auth }

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// call describes one backend request.
type call struct {
	method   string
	path     string
	query    url.Values
	body     any
	anon     bool
	fallback bool
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do runs cl and decodes a JSON answer into out when out is not nil.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	payload, err := encodeBody(cl.body)
	if err != nil {
		return err
	}
	raw, err := c.send(ctx, cl, payload, true)
	if err != nil {
		return err
	}
	return decodeInto(cl, raw, out)
}

// send performs the request and returns the raw successful body. It
// substitutes fixtures and retries once after a token refresh.
func (c *Client) send(ctx context.Context, cl call, payload []byte, mayRefresh bool) ([]byte, error) {
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl.path, cl.query), bodyReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !cl.anon {
		if err := c.auth.Apply(ctx, req); err != nil {
			return nil, fmt.Errorf("authenticate %s %s: %w", cl.method, cl.path, err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if data, ok := c.lookupFallback(cl, payload); ok {
			log.Warn().Err(err).Str("method", cl.method).Str("path", cl.path).Msg("backend unreachable, serving mock data")
			return data, nil
		}
		return nil, &TransportError{Method: cl.method, Path: cl.path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Method: cl.method, Path: cl.path, Err: fmt.Errorf("read body: %w", err)}
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		if data, ok := c.lookupFallback(cl, payload); ok {
			log.Warn().Int("status", resp.StatusCode).Str("method", cl.method).Str("path", cl.path).Msg("backend answered HTML, serving mock data")
			return data, nil
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, &APIError{StatusCode: resp.StatusCode, Method: cl.method, Path: cl.path,
				Message: "backend answered with HTML instead of JSON", Err: ErrUnexpectedBody}
		}
	}

	if resp.StatusCode == http.StatusUnauthorized && mayRefresh && !cl.anon {
		if r, ok := c.auth.(Refresher); ok {
			rerr := r.Refresh(ctx)
			if rerr == nil {
				log.Debug().Str("path", cl.path).Msg("access token refreshed, retrying")
				return c.send(ctx, cl, payload, false)
			}
			log.Debug().Err(rerr).Msg("token refresh failed")
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp.StatusCode, body),
			Method:     cl.method,
			Path:       cl.path,
		}
	}
	return body, nil
}

func (c *Client) lookupFallback(cl call, payload []byte) ([]byte, bool) {
	if c.fallback == nil || !cl.fallback {
		return nil, false
	}
	return c.fallback.Lookup(cl.method, cl.path, payload)
}

func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return b, nil
}

func bodyReader(b []byte) io.Reader {
	if b == nil {
		return nil
	}
	return bytes.NewReader(b)
}

func decodeInto(cl call, raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: http.StatusOK, Method: cl.method, Path: cl.path,
			Message: "could not read the response", Err: errors.Join(ErrUnexpectedBody, err)}
	}
	return nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "text/html")
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
