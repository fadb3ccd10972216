package storefront_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront"
	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/cart"
	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/navigation"
	"github.com/trayshop/storefront/pkg/rbac"
	"github.com/trayshop/storefront/pkg/routeguard"
	"github.com/trayshop/storefront/pkg/session"
	"github.com/trayshop/storefront/pkg/tokenstore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearer(r *http.Request) string {
	return r.Header.Get("Authorization")
}

func newClient(t *testing.T, storage kvstore.Storage, view string, routes func(r chi.Router)) *storefront.Client {
	t.Helper()

	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := storefront.Config{
		APIBaseURL:       srv.URL,
		Storage:          storefront.StorageMemory,
		RequestTimeout:   5 * time.Second,
		CatalogCacheSize: 16,
	}
	c, err := storefront.New(context.Background(), cfg,
		storefront.WithStorage(storage),
		storefront.WithLogger(logger.Discard()),
		storefront.WithHTTPClient(srv.Client()),
		storefront.WithInitialView(view),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func storeToken(t *testing.T, storage kvstore.Storage, token string) {
	t.Helper()
	require.NoError(t, tokenstore.New(storage).Set(context.Background(), token))
}

func TestClient_RestoreAndGuard(t *testing.T) {
	t.Parallel()

	storage := kvstore.NewMemoryStorage()
	storeToken(t, storage, "tok-shipper")

	release := make(chan struct{})
	c := newClient(t, storage, "/shipping", func(r chi.Router) {
		r.Get("/api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
			<-release
			assert.Equal(t, "Bearer tok-shipper", bearer(r))
			writeJSON(w, http.StatusOK, map[string]any{"id": 3, "name": "Bình", "role": "SHIPPER"})
		})
	})

	future := c.Start(context.Background())
	assert.Equal(t, routeguard.Suspend, c.Check(routeguard.AnyUser()).Action, "restoring suspends guarded views")
	close(release)

	s, err := future.AwaitWithTimeout(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, session.StatusAuthenticated, s.Status)
	assert.True(t, c.Session.IsShipper())

	d := c.Check(routeguard.RequireRoles(session.RoleAdmin))
	assert.Equal(t, routeguard.RedirectUnauthorized, d.Action)
	assert.Equal(t, navigation.UnauthorizedView, d.Target)

	d = c.Check(routeguard.Requirement{Permissions: []string{rbac.PermOrdersUpdateStatus, rbac.PermOrdersRead}})
	assert.Equal(t, routeguard.Render, d.Action, "shipper inherits customer permissions")

	d = c.Check(routeguard.Requirement{Permissions: []string{rbac.PermCatalogWrite}})
	assert.Equal(t, routeguard.RedirectUnauthorized, d.Action)

	require.NoError(t, c.Healthcheck(context.Background()))
}

func TestClient_UnauthorizedRecovery(t *testing.T) {
	t.Parallel()

	routes := func(r chi.Router) {
		r.Get("/api/auth/profile", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		})
		r.Get("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		})
	}

	t.Run("redirects from a guarded view", func(t *testing.T) {
		t.Parallel()

		storage := kvstore.NewMemoryStorage()
		storeToken(t, storage, "stale")
		c := newClient(t, storage, "/orders", routes)

		s, err := c.Start(context.Background()).AwaitWithTimeout(2 * time.Second)
		require.Error(t, err)
		assert.True(t, apiclient.IsAuthError(err))
		assert.Equal(t, session.StatusAnonymous, s.Status)
		assert.Equal(t, session.StatusAnonymous, c.Session.Current().Status)

		_, ok := c.Tokens.Get(context.Background())
		assert.False(t, ok, "token cleared")
		assert.Equal(t, []string{navigation.LoginView}, c.Navigator.Redirects())
		assert.Equal(t, navigation.LoginView, c.Navigator.Current())
	})

	t.Run("no second navigation on the login view", func(t *testing.T) {
		t.Parallel()

		storage := kvstore.NewMemoryStorage()
		c := newClient(t, storage, navigation.LoginView, routes)
		storeToken(t, storage, "stale")

		_, err := c.Orders.List(context.Background())
		assert.True(t, apiclient.IsAuthError(err))

		_, ok := c.Tokens.Get(context.Background())
		assert.False(t, ok, "token cleared")
		assert.Empty(t, c.Navigator.Redirects())
	})
}

func TestClient_UnauthorizedEndsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := kvstore.NewMemoryStorage()
	c := newClient(t, storage, "/orders", func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"token": "tok", "id": 1, "name": "Hoa", "role": "ADMIN"})
		})
		r.Get("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		})
	})

	require.True(t, c.Session.Login(ctx, session.Credentials{Email: "hoa@example.com", Password: "pw"}).Success)
	require.Equal(t, routeguard.Render, c.Check(routeguard.RequireRoles(session.RoleAdmin)).Action)

	_, err := c.Orders.List(ctx)
	require.True(t, apiclient.IsAuthError(err))

	s := c.Session.Current()
	assert.Equal(t, session.StatusAnonymous, s.Status)
	assert.Empty(t, s.Token)
	assert.Nil(t, s.User)
	_, ok := c.Tokens.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, []string{navigation.LoginView}, c.Navigator.Redirects())
	assert.Equal(t, routeguard.RedirectLogin, c.Check(routeguard.RequireRoles(session.RoleAdmin)).Action)
}

func TestClient_StaleUnauthorizedAfterLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := kvstore.NewMemoryStorage()
	storeToken(t, storage, "old")

	received := make(chan struct{})
	release := make(chan struct{})
	c := newClient(t, storage, "/", func(r chi.Router) {
		r.Get("/api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer old", bearer(r))
			close(received)
			<-release
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		})
		r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"token": "fresh", "id": 2, "name": "Lan", "role": "CUSTOMER"})
		})
	})

	future := c.Start(ctx)
	<-received
	require.True(t, c.Session.Login(ctx, session.Credentials{Email: "lan@example.com", Password: "pw"}).Success)
	close(release)

	_, err := future.AwaitWithTimeout(2 * time.Second)
	assert.ErrorIs(t, err, session.ErrSuperseded)

	s := c.Session.Current()
	require.Equal(t, session.StatusAuthenticated, s.Status)
	assert.Equal(t, "fresh", s.Token)
	token, ok := c.Tokens.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "fresh", token)
	assert.Empty(t, c.Navigator.Redirects())
}

func TestClient_LoginAndCheckout(t *testing.T) {
	t.Parallel()

	var orderCalls atomic.Int32
	storage := kvstore.NewMemoryStorage()
	c := newClient(t, storage, "/checkout", func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["password"] != "secret" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid email or password"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok-1", "id": 9, "name": "Lan", "email": in["email"],
				"phone": "0901234567", "address": "12 Hàng Bạc, Hà Nội", "role": "CUSTOMER",
			})
		})
		r.Post("/api/orders", func(w http.ResponseWriter, r *http.Request) {
			orderCalls.Add(1)
			assert.Equal(t, "Bearer tok-1", bearer(r))
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			assert.Equal(t, []any{"p1"}, in["trayIds"])
			assert.Equal(t, float64(200000), in["totalPrice"])
			assert.Equal(t, "Lan", in["customerName"])
			writeJSON(w, http.StatusOK, map[string]any{"id": 77, "status": "PENDING"})
		})
	})
	ctx := context.Background()

	bad := c.Session.Login(ctx, session.Credentials{Email: "lan@example.com", Password: "nope"})
	assert.False(t, bad.Success)
	assert.Equal(t, "Invalid email or password", bad.Message)
	assert.Equal(t, session.StatusError, c.Session.Current().Status)

	res := c.Session.Login(ctx, session.Credentials{Email: "lan@example.com", Password: "secret"})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, routeguard.Render, c.Check(routeguard.RequireRoles(session.RoleCustomer)).Action)

	c.Cart.AddItem(ctx, cart.Item{ProductID: "p1", Name: "Mâm ngũ quả", UnitPrice: 100000})
	c.Cart.AddItem(ctx, cart.Item{ProductID: "p1", Name: "Mâm ngũ quả", UnitPrice: 100000})
	require.Equal(t, 2, c.Cart.TotalItems())

	out := c.Checkout.Submit(ctx, c.Checkout.Prefill(c.Session.Current()))
	require.True(t, out.Success, out.Message)
	assert.Equal(t, apiclient.ID("77"), out.OrderID)
	assert.Equal(t, 0, c.Cart.Len())
	assert.Equal(t, int32(1), orderCalls.Load())

	reloaded := cart.Load(ctx, storage, cart.WithLogger(logger.Discard()))
	assert.Equal(t, 0, reloaded.Len(), "cleared cart is persisted")

	c.Logout(ctx)
	_, ok := c.Tokens.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, routeguard.RedirectLogin, c.Check(routeguard.AnyUser()).Action)
}

func TestClient_CartSurvivesRestart(t *testing.T) {
	t.Parallel()

	storage := kvstore.NewMemoryStorage()
	noRoutes := func(chi.Router) {}

	first := newClient(t, storage, navigation.HomeView, noRoutes)
	first.Cart.AddItem(context.Background(), cart.Item{ProductID: "t-1", UnitPrice: 250000})
	first.Cart.AddItem(context.Background(), cart.Item{ProductID: "t-2", UnitPrice: 90000})
	first.Cart.SetQuantity(context.Background(), "t-2", 3)
	want := first.Cart.Snapshot()

	second := newClient(t, storage, navigation.HomeView, noRoutes)
	assert.Equal(t, want, second.Cart.Snapshot())
	assert.Equal(t, int64(520000), second.Cart.TotalPrice())
}

func TestNew_Storage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := storefront.New(ctx, storefront.Config{APIBaseURL: "http://localhost", Storage: "s3"},
		storefront.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, storefront.ErrUnknownStorage)

	dir := t.TempDir()
	cfg := storefront.Config{APIBaseURL: "http://localhost", Storage: storefront.StorageFile, StorageDir: dir}
	c, err := storefront.New(ctx, cfg, storefront.WithLogger(logger.Discard()))
	require.NoError(t, err)
	c.Cart.AddItem(ctx, cart.Item{ProductID: "p1", UnitPrice: 1})
	require.NoError(t, c.Close())

	c, err = storefront.New(ctx, cfg, storefront.WithLogger(logger.Discard()))
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 1, c.Cart.Len())

	_, err = storefront.New(ctx, storefront.Config{APIBaseURL: "localhost", Storage: storefront.StorageMemory},
		storefront.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL)

	_, err = storefront.New(ctx, storefront.Config{APIBaseURL: "http://localhost", Storage: storefront.StorageMemory},
		storefront.WithLogger(logger.Discard()),
		storefront.WithRoleSource(rbac.NewInMemRoleSource(map[string]rbac.Role{
			"a": {Inherits: []string{"b"}},
			"b": {Inherits: []string{"a"}},
		})))
	assert.ErrorIs(t, err, storefront.ErrRolesLoad)
}
