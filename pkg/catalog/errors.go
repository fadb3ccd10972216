package catalog

import "errors"

var (
	ErrNilAPI            = errors.New("catalog.nil_api")
	ErrMissingID         = errors.New("catalog.missing_id")
	ErrMissingQuery      = errors.New("catalog.missing_query")
	ErrInvalidPriceRange = errors.New("catalog.invalid_price_range")
)
