package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/navigation"
	"github.com/trayshop/storefront/pkg/requestid"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "storefront-client/1.0"
	maxErrorBody     = 64 * 1024
	maxRawMessage    = 200
)

// Client sends authorized JSON requests to the API.
type Client struct {
	baseURL   *url.URL
	tokens    TokenStore
	nav       Navigator
	http      *http.Client
	timeout   time.Duration
	loginView string
	userAgent string
	expire    UnauthorizedFunc
	log       *slog.Logger
}

// New creates a client for the API at baseURL.
func New(baseURL string, tokens TokenStore, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, ErrNilTokenStore
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:   u,
		tokens:    tokens,
		http:      &http.Client{},
		timeout:   defaultTimeout,
		loginView: navigation.LoginView,
		userAgent: defaultUserAgent,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	hc.Transport = requestid.Transport(hc.Transport)
	c.http = &hc
	c.log = c.log.With(logger.Component("apiclient"))

	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, in, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, in, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do sends a request. in is JSON encoded when non-nil; a successful response
// body is decoded into out when out is non-nil. Failures are *Error.
func (c *Client) Do(ctx context.Context, method, path string, in, out any, opts ...RequestOption) error {
	ro := &requestOptions{query: url.Values{}, headers: http.Header{}}
	for _, opt := range opts {
		opt(ro)
	}

	ctx, reqID := requestid.Ensure(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, sent, err := c.newRequest(ctx, method, path, in, ro)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "request failed",
			logger.Method(method), logger.Path(path), logger.RequestID(reqID), logger.Error(err))
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.DebugContext(ctx, "request completed",
		logger.Method(method), logger.Path(path), logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.decode(resp, method, path, out)
	}

	apiErr := c.responseError(resp, method, path)
	if apiErr.Kind == KindAuth {
		c.recoverSession(ctx, sent)
	}
	return apiErr
}

// newRequest builds the request and returns the bearer token it carries,
// empty when none was stored.
func (c *Client) newRequest(ctx context.Context, method, path string, in any, ro *requestOptions) (*http.Request, string, error) {
	target, err := c.resolve(path, ro.query)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, "", &Error{Kind: KindValidation, Method: method, Path: path, Err: fmt.Errorf("%w: %w", ErrEncodeRequest, err)}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range ro.headers {
		req.Header[k] = vs
	}

	token, ok := c.tokens.Get(ctx)
	if ok {
		tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
		tok.SetAuthHeader(req)
	}

	return req, token, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}

	// Join escaped forms so encoded separators in ids survive.
	escaped := strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(ref.EscapedPath(), "/")
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return "", err
	}

	u := *c.baseURL
	u.Path = unescaped
	u.RawPath = escaped

	q := ref.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) decode(resp *http.Response, method, path string, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Err:        fmt.Errorf("%w: %w", ErrDecodeResponse, err),
		}
	}
	return nil
}

func (c *Client) responseError(resp *http.Response, method, path string) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	e := &Error{
		StatusCode: resp.StatusCode,
		Message:    extractMessage(body),
		Method:     method,
		Path:       path,
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		e.Kind = KindAuth
	case resp.StatusCode == http.StatusNotFound:
		e.Kind = KindNotFound
	case resp.StatusCode >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindValidation
	}
	return e
}

// recoverSession runs the 401 recovery protocol for a request sent with
// token. A 401 for a token that has since been replaced is ignored.
func (c *Client) recoverSession(ctx context.Context, token string) {
	var expired bool
	if c.expire != nil {
		expired = c.expire(ctx, token)
	} else {
		expired = c.clearToken(ctx, token)
	}
	if !expired {
		c.log.DebugContext(ctx, "ignoring 401 for a replaced token")
		return
	}

	if c.nav == nil {
		return
	}
	if view := c.nav.Current(); view != c.loginView {
		c.log.InfoContext(ctx, "session expired, redirecting to login", logger.View(view))
		c.nav.Redirect(c.loginView)
	}
}

// clearToken clears the stored token if it is still token.
func (c *Client) clearToken(ctx context.Context, token string) bool {
	if current, _ := c.tokens.Get(ctx); current != token {
		return false
	}
	if token == "" {
		return true
	}
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.ErrorContext(ctx, "failed to clear token after 401", logger.Error(err))
	}
	return true
}

// extractMessage reads a bare JSON string or a "message"/"error" field from
// an error body, falling back to the trimmed raw body.
func extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var text string
	if json.Unmarshal(body, &text) == nil {
		return strings.TrimSpace(text)
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}

	if body[0] == '{' || body[0] == '[' || body[0] == '<' {
		return ""
	}
	msg := strings.Join(strings.Fields(string(body)), " ")
	if len(msg) > maxRawMessage {
		msg = msg[:maxRawMessage] + "..."
	}
	return msg
}
