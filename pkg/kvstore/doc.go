// Package kvstore defines the durable key-value storage that backs the
// client's reload-surviving state (the bearer token and the cart).
//
// Storage is intentionally small: Get, Set and Delete on opaque byte values.
// A missing key is not an error; Get returns (nil, nil). Two backends live
// here: MemoryStorage for tests and short-lived processes, and FileStorage,
// which keeps one file per key and replaces it atomically so that a restarted
// process observes the last completed write. Network backends live in
// pkg/redis, pkg/pg and pkg/mongo and satisfy the same interface.
//
// Each key is expected to have a single writer (the token store owns "token",
// the cart store owns "cart"); Storage implementations are nevertheless safe
// for concurrent use.
package kvstore
