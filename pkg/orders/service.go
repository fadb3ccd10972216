package orders

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/logger"
)

const (
	ordersPath = "/api/orders"

	// IdempotencyHeader carries the client generated key for order creation.
	IdempotencyHeader = "Idempotency-Key"
)

// API is the subset of *apiclient.Client the service uses.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
	Post(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error
	Put(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error
}

type Service struct {
	api API
	log *slog.Logger
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(api API, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	s := &Service{api: api, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("orders"))
	return s, nil
}

// Create places an order. The idempotency key lets the server drop a
// duplicate of the same submission; an empty key gets a fresh one.
func (s *Service) Create(ctx context.Context, o NewOrder, idempotencyKey string) (Order, error) {
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	var created Order
	if err := s.api.Post(ctx, ordersPath, o, &created, apiclient.WithHeader(IdempotencyHeader, idempotencyKey)); err != nil {
		return Order{}, err
	}
	s.log.InfoContext(ctx, "order created", logger.OrderID(created.ID.String()))
	return created, nil
}

// List returns the current user's orders.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.list(ctx, ordersPath)
}

func (s *Service) Get(ctx context.Context, id apiclient.ID) (Order, error) {
	if id == "" {
		return Order{}, ErrMissingID
	}
	var o Order
	if err := s.api.Get(ctx, ordersPath+"/"+url.PathEscape(id.String()), &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// UpdateStatus moves an order to status. Shipper or admin only.
func (s *Service) UpdateStatus(ctx context.Context, id apiclient.ID, status Status) (Order, error) {
	if id == "" {
		return Order{}, ErrMissingID
	}
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}

	var o Order
	path := ordersPath + "/" + url.PathEscape(id.String()) + "/status"
	q := url.Values{"status": {string(status)}}
	if err := s.api.Put(ctx, path, nil, &o, apiclient.WithQuery(q)); err != nil {
		return Order{}, err
	}
	s.log.InfoContext(ctx, "order status updated", logger.OrderID(id.String()), logger.Status(status))
	return o, nil
}

// ListAll returns every order. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.list(ctx, ordersPath+"/admin/all")
}

// ListByStatus returns every order in status. Admin only.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.list(ctx, ordersPath+"/admin/status/"+url.PathEscape(string(status)))
}

func (s *Service) list(ctx context.Context, path string) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Order{}
	}
	return out, nil
}
