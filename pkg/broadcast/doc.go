// Package broadcast fans state snapshots out to subscribers.
//
// Stores (session, cart) publish a full snapshot after each change. A
// subscriber only ever needs the most recent snapshot, so when its buffer is
// full the oldest pending snapshot is discarded to make room for the new one.
// Publishing therefore never blocks the store that owns the state.
//
//	b := broadcast.NewMemoryBroadcaster[cart.Snapshot](4)
//	sub := b.Subscribe(ctx) // unsubscribed automatically when ctx is done
//	for msg := range sub.Receive(ctx) {
//	    render(msg.Data)
//	}
package broadcast
