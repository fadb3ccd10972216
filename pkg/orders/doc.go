// Package orders places and tracks storefront orders.
//
// Customers create orders and list their own; shippers and admins move
// orders through the Status lifecycle and list across all customers. Role
// checks are enforced by the server; this package only shapes requests.
package orders
