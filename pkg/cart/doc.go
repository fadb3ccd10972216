// Package cart is the durable shopping cart.
//
// A Store owns an ordered collection of items keyed by product id. Every
// mutation is applied to the latest state under the store lock and the whole
// collection is written to storage under the key "cart" before the call
// returns, so a reload always sees the last mutation.
//
// Cart operations never fail from the caller's point of view. Invalid input
// is a no-op and persistence failures are logged. Hydration from storage
// treats absent, malformed or inconsistent data as an empty cart.
//
//	c := cart.Load(ctx, storage)
//	c.AddItem(ctx, cart.Item{ProductID: "p1", Name: "Mâm ngũ quả", UnitPrice: 100000})
//	c.AddItem(ctx, cart.Item{ProductID: "p1"}) // quantity 2
//	total := c.TotalPrice()
//
// Subscribe delivers a Snapshot after every mutation.
package cart
