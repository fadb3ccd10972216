package orders

import "errors"

var (
	ErrNilAPI        = errors.New("orders.nil_api")
	ErrMissingID     = errors.New("orders.missing_id")
	ErrInvalidStatus = errors.New("orders.invalid_status")
	ErrEmptyOrder    = errors.New("orders.empty_order")
	ErrInvalidOrder  = errors.New("orders.invalid_order")
)
