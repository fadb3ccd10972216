// Package apiclient is the authorized HTTP client for the storefront API.
//
// Every request carries the stored bearer token when one exists, JSON
// content headers and an X-Request-ID. Responses are mapped to a small error
// taxonomy (*Error with a Kind) so callers can branch without inspecting
// status codes:
//
//	KindNetwork     transport failure, no response
//	KindAuth        401, after the recovery protocol ran
//	KindValidation  other 4xx with a message payload
//	KindNotFound    404
//	KindServer      5xx or an undecodable success body
//
// # Recovery protocol
//
// A 401 from any endpoint clears the stored token. If a Navigator is
// configured and its current view is not the login view, the client then
// redirects to the login view. On the login view itself no redirect happens,
// which keeps a failing profile fetch there from looping.
//
// The client holds no state of its own beyond the transport and is safe for
// concurrent use.
package apiclient
