package orders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/orders"
	"github.com/trayshop/storefront/pkg/validator"
	"github.com/trayshop/storefront/pkg/tokenstore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newService(t *testing.T, routes func(r chi.Router)) *orders.Service {
	t.Helper()

	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	api, err := apiclient.New(srv.URL, tokenstore.New(kvstore.NewMemoryStorage()),
		apiclient.WithHTTPClient(srv.Client()),
		apiclient.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)

	svc, err := orders.NewService(api, orders.WithLogger(logger.Discard()))
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Parallel()

	_, err := orders.NewService(nil)
	assert.ErrorIs(t, err, orders.ErrNilAPI)
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	keys := make(chan string, 2)
	bodies := make(chan map[string]any, 2)
	svc := newService(t, func(r chi.Router) {
		r.Post("/api/orders", func(w http.ResponseWriter, r *http.Request) {
			keys <- r.Header.Get(orders.IdempotencyHeader)
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			bodies <- in
			writeJSON(w, http.StatusOK, map[string]any{"id": 501, "status": "PENDING", "totalPrice": in["totalPrice"]})
		})
	})
	ctx := context.Background()

	o := orders.NewOrder{
		TrayIDs:         []apiclient.ID{"12", "sku-7"},
		TotalPrice:      200000,
		CustomerName:    "Nguyễn Văn A",
		CustomerEmail:   "a@example.com",
		CustomerPhone:   "0901234567",
		CustomerAddress: "12 Hàng Bạc, Hà Nội",
		PaymentMethod:   orders.PaymentCOD,
	}

	created, err := svc.Create(ctx, o, "key-1")
	require.NoError(t, err)
	assert.Equal(t, apiclient.ID("501"), created.ID)
	assert.Equal(t, orders.StatusPending, created.Status)
	assert.Equal(t, int64(200000), created.TotalPrice)
	assert.Equal(t, "key-1", <-keys)

	body := <-bodies
	assert.Equal(t, []any{float64(12), "sku-7"}, body["trayIds"])
	assert.Equal(t, "COD", body["paymentMethod"])
	assert.Equal(t, "", body["notes"])

	_, err = svc.Create(ctx, o, "")
	require.NoError(t, err)
	_, err = uuid.Parse(<-keys)
	assert.NoError(t, err, "missing key is generated")

	_, err = svc.Create(ctx, orders.NewOrder{PaymentMethod: orders.PaymentCOD}, "k")
	assert.ErrorIs(t, err, orders.ErrEmptyOrder)
	assert.True(t, validator.ExtractValidationErrors(err).Has("trayIds"))

	bad := o
	bad.TotalPrice = -1
	bad.PaymentMethod = "CASH"
	_, err = svc.Create(ctx, bad, "k")
	assert.ErrorIs(t, err, orders.ErrInvalidOrder)
	assert.Equal(t, []string{"totalPrice", "paymentMethod"}, validator.ExtractValidationErrors(err).Fields())
	assert.Empty(t, keys, "invalid orders never reach the API")
}

func TestService_Queries(t *testing.T) {
	t.Parallel()

	svc := newService(t, func(r chi.Router) {
		r.Get("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1}})
		})
		r.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "status": "SHIPPING"})
		})
		r.Put("/api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "status": r.URL.Query().Get("status")})
		})
		r.Get("/api/orders/admin/all", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1}, {"id": 2}, {"id": 3}})
		})
		r.Get("/api/orders/admin/status/{status}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "status") != "DELIVERED" {
				writeJSON(w, http.StatusOK, nil)
				return
			}
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 9, "status": "DELIVERED"}})
		})
	})
	ctx := context.Background()

	mine, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	o, err := svc.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, apiclient.ID("42"), o.ID)
	assert.Equal(t, orders.StatusShipping, o.Status)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, orders.ErrMissingID)

	updated, err := svc.UpdateStatus(ctx, "42", orders.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusDelivered, updated.Status)

	_, err = svc.UpdateStatus(ctx, "42", "LOST")
	assert.ErrorIs(t, err, orders.ErrInvalidStatus)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	delivered, err := svc.ListByStatus(ctx, orders.StatusDelivered)
	require.NoError(t, err)
	require.Len(t, delivered, 1)

	pending, err := svc.ListByStatus(ctx, orders.StatusPending)
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}

func TestPaymentMethodAndStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, orders.PaymentEWallet.Valid())
	assert.False(t, orders.PaymentMethod("CASH").Valid())
	assert.True(t, orders.StatusCancelled.Valid())
	assert.False(t, orders.Status("pending").Valid())
}
