package cart

import "errors"

// ErrMalformed is logged when persisted cart data is discarded.
var ErrMalformed = errors.New("cart.malformed")
