package checkout

import "errors"

var (
	ErrNilCart              = errors.New("checkout.nil_cart")
	ErrNilOrders            = errors.New("checkout.nil_orders")
	ErrEmptyCart            = errors.New("checkout.empty_cart")
	ErrSubmissionInProgress = errors.New("checkout.submission_in_progress")
)

// Messages shown to the user.
const (
	MsgEmptyCart    = "Your cart is empty"
	MsgInProgress   = "Your order is already being submitted"
	MsgInvalidForm  = "Please check the highlighted fields"
	MsgOrderFailed  = "Could not place the order. Please try again."
	MsgOrderCreated = "Order placed. We will contact you shortly."
)
