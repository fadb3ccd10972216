// Package scopes matches dotted permission strings with wildcard support.
//
// A scope such as "orders.update_status" is matched by itself, by the global
// wildcard "*" and by any namespace wildcard covering it ("orders.*").
// Role permission sets in package rbac are stored normalized (deduplicated
// and sorted) with Normalize and checked with Has, HasAll and HasAny.
package scopes
