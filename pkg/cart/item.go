package cart

// Item is one product line. Quantity is always at least 1 inside a Store.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"` // minor currency units
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Subtotal returns UnitPrice * Quantity.
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Snapshot is a consistent read of the cart.
type Snapshot struct {
	Items      []Item
	TotalPrice int64
	TotalItems int
}

// ProductIDs lists the product id of every line in cart order.
func (s Snapshot) ProductIDs() []string {
	ids := make([]string, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.ProductID
	}
	return ids
}

// IsEmpty reports whether the snapshot has no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

func totals(items []Item) (price int64, count int) {
	for _, it := range items {
		price += it.Subtotal()
		count += it.Quantity
	}
	return price, count
}
