package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/trayshop/storefront/pkg/broadcast"
	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/logger"
)

// Key is the storage key holding the serialized cart.
const Key = "cart"

// Store is the single owner of the cart and its storage key.
type Store struct {
	mu      sync.Mutex
	items   []Item
	storage kvstore.Storage
	log     *slog.Logger
	events  *broadcast.MemoryBroadcaster[Snapshot]
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Load creates a Store hydrated from storage. It never fails: unreadable or
// inconsistent persisted data yields an empty cart.
func Load(ctx context.Context, storage kvstore.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     slog.Default(),
		events:  broadcast.NewMemoryBroadcaster[Snapshot](1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("cart"))

	raw, err := storage.Get(ctx, Key)
	if err != nil {
		s.log.WarnContext(ctx, "failed to read persisted cart", logger.Error(err))
		return s
	}
	items, err := decode(raw)
	if err != nil {
		s.log.WarnContext(ctx, "discarding persisted cart", logger.Error(err))
		return s
	}
	s.items = items
	return s
}

// AddItem increments the quantity of an existing line by one, ignoring the
// other fields of item, or appends item with quantity 1.
func (s *Store) AddItem(ctx context.Context, item Item) {
	if item.ProductID == "" || item.UnitPrice < 0 {
		s.log.DebugContext(ctx, "ignoring invalid cart item", logger.ProductID(item.ProductID))
		return
	}

	s.mutate(ctx, func(items []Item) []Item {
		if i := index(items, item.ProductID); i >= 0 {
			items[i].Quantity++
			return items
		}
		item.Quantity = 1
		return append(items, item)
	})
}

// RemoveItem deletes the line for productID if present.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mutate(ctx, func(items []Item) []Item {
		if i := index(items, productID); i >= 0 {
			return slices.Delete(items, i, i+1)
		}
		return items
	})
}

// SetQuantity sets the quantity of an existing line. n <= 0 removes the
// line. An absent productID is a no-op.
func (s *Store) SetQuantity(ctx context.Context, productID string, n int) {
	if n <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}
	s.mutate(ctx, func(items []Item) []Item {
		if i := index(items, productID); i >= 0 {
			items[i].Quantity = n
		}
		return items
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, func([]Item) []Item { return nil })
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Snapshot returns the lines and totals read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalPrice is the sum of UnitPrice * Quantity, computed on every call.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	price, _ := totals(s.items)
	return price
}

// TotalItems is the sum of quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, count := totals(s.items)
	return count
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe returns a subscriber that receives a Snapshot after each
// mutation until ctx is done.
func (s *Store) Subscribe(ctx context.Context) broadcast.Subscriber[Snapshot] {
	return s.events.Subscribe(ctx)
}

// Close releases subscribers.
func (s *Store) Close() error {
	return s.events.Close()
}

func (s *Store) mutate(ctx context.Context, fn func([]Item) []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = fn(s.items)
	s.persistLocked(ctx)

	_ = s.events.Broadcast(ctx, broadcast.Message[Snapshot]{Data: s.snapshotLocked()})
}

func (s *Store) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.itemsOrEmpty())
	if err != nil {
		s.log.ErrorContext(ctx, "failed to encode cart", logger.Error(err))
		return
	}
	if err := s.storage.Set(ctx, Key, raw); err != nil {
		s.log.ErrorContext(ctx, "failed to persist cart", logger.Error(err))
	}
}

func (s *Store) itemsOrEmpty() []Item {
	if s.items == nil {
		return []Item{}
	}
	return s.items
}

func (s *Store) snapshotLocked() Snapshot {
	price, count := totals(s.items)
	return Snapshot{Items: slices.Clone(s.items), TotalPrice: price, TotalItems: count}
}

func index(items []Item, productID string) int {
	return slices.IndexFunc(items, func(it Item) bool { return it.ProductID == productID })
}
