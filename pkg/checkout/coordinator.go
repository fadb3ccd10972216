package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/cart"
	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/navigation"
	"github.com/trayshop/storefront/pkg/orders"
	"github.com/trayshop/storefront/pkg/session"
	"github.com/trayshop/storefront/pkg/validator"
)

// Cart is the part of *cart.Store checkout reads and clears.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear(ctx context.Context)
}

// OrderPlacer is implemented by *orders.Service.
type OrderPlacer interface {
	Create(ctx context.Context, o orders.NewOrder, idempotencyKey string) (orders.Order, error)
}

// Result is the outcome of Submit. Redirect, when set, is the view the
// caller should navigate to.
type Result struct {
	Success  bool
	OrderID  apiclient.ID
	Order    *orders.Order
	Message  string
	Redirect string
	Err      error
}

// FieldErrors returns per-field validation failures, if any.
func (r Result) FieldErrors() validator.ValidationErrors {
	return validator.ExtractValidationErrors(r.Err)
}

type Coordinator struct {
	cart        Cart
	orders      OrderPlacer
	log         *slog.Logger
	catalogView string
	successView string
	newKey      func() string

	submitting atomic.Bool
}

type Option func(*Coordinator)

func WithLogger(log *slog.Logger) Option {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithViews sets where an empty cart and a placed order send the user.
func WithViews(catalog, success string) Option {
	return func(c *Coordinator) {
		if catalog != "" {
			c.catalogView = catalog
		}
		if success != "" {
			c.successView = success
		}
	}
}

// WithIdempotencyKeys replaces the uuid generator for order keys.
func WithIdempotencyKeys(fn func() string) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

func New(c Cart, placer OrderPlacer, opts ...Option) (*Coordinator, error) {
	if c == nil {
		return nil, ErrNilCart
	}
	if placer == nil {
		return nil, ErrNilOrders
	}
	co := &Coordinator{
		cart:        c,
		orders:      placer,
		log:         slog.Default(),
		catalogView: navigation.CatalogView,
		successView: navigation.HomeView,
		newKey:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(co)
	}
	co.log = co.log.With(logger.Component("checkout"))
	return co, nil
}

// Prefill is shorthand for the package level Prefill.
func (c *Coordinator) Prefill(s session.Session) Form {
	return Prefill(s)
}

// Submitting reports whether a submission is pending.
func (c *Coordinator) Submitting() bool {
	return c.submitting.Load()
}

// Submit places an order for the current cart contents.
func (c *Coordinator) Submit(ctx context.Context, form Form) Result {
	if !c.submitting.CompareAndSwap(false, true) {
		c.log.WarnContext(ctx, "duplicate checkout submission rejected")
		return Result{Message: MsgInProgress, Err: ErrSubmissionInProgress}
	}
	defer c.submitting.Store(false)

	snap := c.cart.Snapshot()
	if snap.IsEmpty() {
		return Result{Message: MsgEmptyCart, Redirect: c.catalogView, Err: ErrEmptyCart}
	}

	form = form.Sanitized()
	if err := form.Validate(); err != nil {
		return Result{Message: MsgInvalidForm, Err: err}
	}

	ids := make([]apiclient.ID, 0, len(snap.Items))
	for _, id := range snap.ProductIDs() {
		ids = append(ids, apiclient.ID(id))
	}

	order, err := c.orders.Create(ctx, orders.NewOrder{
		TrayIDs:         ids,
		TotalPrice:      snap.TotalPrice,
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		CustomerAddress: form.CustomerAddress,
		PaymentMethod:   form.PaymentMethod,
		Notes:           form.Notes,
	}, c.newKey())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.log.ErrorContext(ctx, "order submission failed", logger.Error(err))
		}
		return Result{Message: apiclient.Message(err, MsgOrderFailed), Err: err}
	}

	c.cart.Clear(ctx)
	c.log.InfoContext(ctx, "order placed", logger.OrderID(order.ID.String()))
	return Result{
		Success:  true,
		OrderID:  order.ID,
		Order:    &order,
		Message:  MsgOrderCreated,
		Redirect: c.successView,
	}
}
