// Package ols speaks the MIT Recreation booking site's private protocol:
// server-rendered ASP.NET forms plus the OlsService AJAX endpoints.
package ols

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

const (
	defaultTimeout = 30 * time.Second

	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeForm = "application/x-www-form-urlencoded"
)

type Client struct {
	base      *url.URL
	transport http.RoundTripper
	timeout   time.Duration
	userAgent string
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*Client)

func WithTransport(rt http.RoundTripper) Option { return func(c *Client) { c.transport = rt } }

func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.logger = l } }

func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("booking site url: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("booking site url %q must be absolute", baseURL)
	}

	c := &Client{
		base:      base,
		transport: http.DefaultTransport,
		timeout:   defaultTimeout,
		userAgent: DefaultUserAgent,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string { return "ols" }

// BaseURL is the site root cookies are scoped to.
func (c *Client) BaseURL() *url.URL { return c.base }

// httpClient builds a client bound to one session's cookies. A nil session
// means an anonymous request.
func (c *Client) httpClient(sess *Session) *http.Client {
	hc := &http.Client{Transport: c.transport, Timeout: c.timeout}
	if sess != nil {
		hc.Jar = sess.jar
	}
	return hc
}

func (c *Client) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	return c.base.ResolveReference(u), nil
}

// send issues one request and reads the whole body. Redirects are followed by
// net/http, carrying the session's cookies on every hop.
func (c *Client) send(ctx context.Context, hc *http.Client, method, ref, contentType string, body []byte) (*http.Response, []byte, error) {
	u, err := c.resolve(ref)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("user-agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s %s: %v", reservation.ErrTransport, method, u.Path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("%w: read %s: %v", reservation.ErrTransport, u.Path, err)
	}
	return res, b, nil
}

// do is send plus a 2xx check on the final response.
func (c *Client) do(ctx context.Context, hc *http.Client, method, ref, contentType string, body []byte) (*http.Response, []byte, error) {
	res, b, err := c.send(ctx, hc, method, ref, contentType, body)
	if err != nil {
		return res, b, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, b, fmt.Errorf("%w: %s %s http %d", reservation.ErrTransport, method, res.Request.URL.Path, res.StatusCode)
	}
	return res, b, nil
}
