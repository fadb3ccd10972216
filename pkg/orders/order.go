package orders

import (
	"errors"
	"slices"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/validator"
)

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "COD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentEWallet      PaymentMethod = "E_WALLET"
)

// PaymentMethods lists accepted methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCOD, PaymentBankTransfer, PaymentEWallet}
}

func (m PaymentMethod) Valid() bool {
	return slices.Contains(PaymentMethods(), m)
}

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusShipping, StatusDelivered, StatusCancelled}
}

func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// NewOrder is the order creation payload. TrayIDs has one entry per cart
// line; quantities are reflected only in TotalPrice.
type NewOrder struct {
	TrayIDs         []apiclient.ID `json:"trayIds"`
	TotalPrice      int64          `json:"totalPrice"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone"`
	CustomerAddress string         `json:"customerAddress"`
	PaymentMethod   PaymentMethod  `json:"paymentMethod"`
	Notes           string         `json:"notes"`
}

// Validate checks the fields the server cannot default. An order without
// trays fails with ErrEmptyOrder.
func (o NewOrder) Validate() error {
	err := validator.Apply(
		validator.RequiredSlice("trayIds", o.TrayIDs),
		validator.MinNum("totalPrice", o.TotalPrice, 0),
		validator.OneOf("paymentMethod", o.PaymentMethod, PaymentMethods()),
	)
	if err == nil {
		return nil
	}
	if len(o.TrayIDs) == 0 {
		return errors.Join(ErrEmptyOrder, err)
	}
	return errors.Join(ErrInvalidOrder, err)
}

// Order is an order as returned by the server.
type Order struct {
	ID apiclient.ID `json:"id"`
	NewOrder
	Status    Status `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
