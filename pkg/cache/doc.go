// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// The catalog service uses it to keep recently viewed rituals and trays in
// memory between page loads:
//
//	trays := cache.NewLRU[string, catalog.Tray](256, cache.WithTTL[string, catalog.Tray](5*time.Minute))
//	trays.Put("42", tray)
//	if t, ok := trays.Get("42"); ok { ... }
//	trays.Remove("42") // after an update or delete
//
// When the cache is at capacity the least recently used entry is evicted.
// Expired entries are dropped lazily on access. Get, Put and Remove are O(1).
package cache
