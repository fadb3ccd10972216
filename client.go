package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/async"
	"github.com/trayshop/storefront/pkg/cart"
	"github.com/trayshop/storefront/pkg/catalog"
	"github.com/trayshop/storefront/pkg/checkout"
	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/navigation"
	"github.com/trayshop/storefront/pkg/orders"
	"github.com/trayshop/storefront/pkg/rbac"
	"github.com/trayshop/storefront/pkg/requestid"
	"github.com/trayshop/storefront/pkg/routeguard"
	"github.com/trayshop/storefront/pkg/session"
	"github.com/trayshop/storefront/pkg/tokenstore"
)

// Client is the assembled storefront core.
type Client struct {
	Config    Config
	Log       *slog.Logger
	Storage   kvstore.Storage
	Tokens    *tokenstore.Store
	Cart      *cart.Store
	Navigator *navigation.History
	API       *apiclient.Client
	Session   *session.Manager
	Roles     *rbac.Authorizer
	Guard     *routeguard.Guard
	Catalog   *catalog.Service
	Orders    *orders.Service
	Checkout  *checkout.Coordinator

	backend backend
}

type options struct {
	log         *slog.Logger
	storage     kvstore.Storage
	httpClient  *http.Client
	initialView string
	roles       rbac.RoleSource
}

type Option func(*options)

// WithLogger replaces the logger built from Config.Environment.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithStorage bypasses Config.Storage and uses s for the token and cart.
func WithStorage(s kvstore.Storage) Option {
	return func(o *options) { o.storage = s }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithInitialView sets the view the client starts on. Defaults to the home view.
func WithInitialView(view string) Option {
	return func(o *options) { o.initialView = view }
}

// WithRoleSource replaces both the default roles and Config.RolesFile.
func WithRoleSource(src rbac.RoleSource) Option {
	return func(o *options) { o.roles = src }
}

// New builds a Client. The stored cart is loaded immediately; the session is
// restored only when Start is called.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	o := options{initialView: navigation.HomeView}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		log = logger.New(
			logger.WithEnvironment(cfg.Environment, cfg.ServiceName),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)
	}

	c := &Client{Config: cfg, Log: log}

	if o.storage != nil {
		c.backend = backend{storage: o.storage, close: noop, healthcheck: noop}
	} else {
		b, err := openStorage(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		c.backend = b
	}
	c.Storage = c.backend.storage

	if err := c.wire(ctx, o); err != nil {
		_ = c.backend.close(context.WithoutCancel(ctx))
		return nil, err
	}

	log.InfoContext(ctx, "storefront client ready",
		slog.String("api", c.API.BaseURL()),
		slog.String("storage", string(cfg.Storage)))
	return c, nil
}

func (c *Client) wire(ctx context.Context, o options) error {
	log := c.Log

	c.Tokens = tokenstore.New(c.Storage, tokenstore.WithLogger(log))
	c.Cart = cart.Load(ctx, c.Storage, cart.WithLogger(log))
	c.Navigator = navigation.NewHistory(o.initialView)

	apiOpts := []apiclient.Option{
		apiclient.WithNavigator(c.Navigator),
		apiclient.WithLoginView(navigation.LoginView),
		apiclient.WithOnUnauthorized(func(ctx context.Context, token string) bool {
			return c.Session.Expire(ctx, token)
		}),
		apiclient.WithTimeout(c.Config.RequestTimeout),
		apiclient.WithLogger(log),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	if c.Config.UserAgent != "" {
		apiOpts = append(apiOpts, apiclient.WithUserAgent(c.Config.UserAgent))
	}
	api, err := apiclient.New(c.Config.APIBaseURL, c.Tokens, apiOpts...)
	if err != nil {
		return err
	}
	c.API = api

	if c.Session, err = session.NewManager(api, c.Tokens, session.WithLogger(log)); err != nil {
		return err
	}

	src := o.roles
	if src == nil {
		if c.Config.RolesFile != "" {
			src = rbac.NewYAMLFileRoleSource(c.Config.RolesFile)
		} else {
			src = rbac.NewInMemRoleSource(rbac.DefaultRoles())
		}
	}
	if c.Roles, err = rbac.NewAuthorizer(ctx, src); err != nil {
		return errors.Join(ErrRolesLoad, err)
	}
	c.Guard = routeguard.New(routeguard.WithAuthorizer(c.Roles), routeguard.WithLogger(log))

	if c.Catalog, err = catalog.NewService(api,
		catalog.WithCacheSize(c.Config.CatalogCacheSize),
		catalog.WithCacheTTL(c.Config.CatalogCacheTTL),
		catalog.WithLogger(log),
	); err != nil {
		return err
	}
	if c.Orders, err = orders.NewService(api, orders.WithLogger(log)); err != nil {
		return err
	}
	if c.Checkout, err = checkout.New(c.Cart, c.Orders, checkout.WithLogger(log)); err != nil {
		return err
	}

	// A logout or expiry invalidates admin edits seen under the old identity.
	c.Navigator.OnRedirect(func(view string) {
		if view == navigation.LoginView {
			c.Catalog.InvalidateAll()
		}
	})
	return nil
}

// Start restores the stored session for the current view.
func (c *Client) Start(ctx context.Context) *async.Future[session.Session] {
	return c.Session.Start(ctx, c.Navigator.Current())
}

// Check evaluates req against the current session.
func (c *Client) Check(req routeguard.Requirement) routeguard.Decision {
	return c.Guard.Check(c.Session.Current(), req)
}

// Logout ends the session and empties the catalog cache.
func (c *Client) Logout(ctx context.Context) {
	c.Session.Logout(ctx)
	c.Catalog.InvalidateAll()
}

// Healthcheck pings the storage backend.
func (c *Client) Healthcheck(ctx context.Context) error {
	if err := c.backend.healthcheck(ctx); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

// Close releases subscribers and the storage connection.
func (c *Client) Close() error {
	ctx := context.Background()
	return errors.Join(
		c.Session.Close(),
		c.Cart.Close(),
		c.backend.close(ctx),
	)
}
