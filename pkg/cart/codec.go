package cart

import (
	"encoding/json"
	"fmt"
)

// decode parses a persisted cart and rejects data that breaks the cart
// invariants. Nil or empty input is an empty cart.
func decode(raw []byte) ([]Item, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		switch {
		case it.ProductID == "":
			return nil, fmt.Errorf("%w: empty product id", ErrMalformed)
		case it.Quantity <= 0:
			return nil, fmt.Errorf("%w: quantity %d for %q", ErrMalformed, it.Quantity, it.ProductID)
		case it.UnitPrice < 0:
			return nil, fmt.Errorf("%w: negative price for %q", ErrMalformed, it.ProductID)
		}
		if _, dup := seen[it.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrMalformed, it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
	}

	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
