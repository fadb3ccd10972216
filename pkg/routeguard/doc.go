// Package routeguard decides whether a protected view may render.
//
// Check is a pure function of the current session and a Requirement:
//
//	Authenticating                      -> Suspend (render nothing yet)
//	Anonymous or Error                  -> RedirectLogin
//	Authenticated, no roles required    -> Render
//	Authenticated, role in the set      -> Render
//	Authenticated, role not in the set  -> RedirectUnauthorized
//
// A Requirement may also list permissions, checked through an rbac
// authorizer; roles (any of) and permissions (all of) must both hold.
package routeguard
