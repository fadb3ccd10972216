package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// TokenStore is the token dependency of the client. The client only reads
// the token and clears it during 401 recovery.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// Navigator exposes the current view and performs forced navigation.
type Navigator interface {
	Current() string
	Redirect(view string)
}

// UnauthorizedFunc takes over the token half of 401 recovery. token is the
// bearer the rejected request carried, empty when it had none. It reports
// whether that token was expired; false suppresses the redirect.
type UnauthorizedFunc func(ctx context.Context, token string) bool

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is still
// wrapped to add request ids.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Default is 15 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNavigator enables the redirect half of the 401 recovery protocol.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) {
		c.nav = nav
	}
}

// WithOnUnauthorized hands 401 token handling to fn, typically the session
// owner, so that session state and the token store change together.
func WithOnUnauthorized(fn UnauthorizedFunc) Option {
	return func(c *Client) {
		c.expire = fn
	}
}

// WithLoginView overrides the login view path. Default is "/login".
func WithLoginView(view string) Option {
	return func(c *Client) {
		if view != "" {
			c.loginView = view
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

type requestOptions struct {
	query   url.Values
	headers http.Header
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithQuery adds query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if key != "" && value != "" {
			o.headers.Set(key, value)
		}
	}
}
