// Package session owns the client's authentication state.
//
// A Manager holds exactly one Session, a tagged value whose Status decides
// which other fields are meaningful:
//
//	Anonymous       no user, no token
//	Authenticating  login in flight, or profile fetch for a stored token
//	Authenticated   user and token present
//	Error           last login failed; LastError holds the message
//
// Status changes go through a state machine, so an operation that would make
// an impossible jump (for example Anonymous to Authenticated without a fetch)
// is refused rather than applied.
//
// # Stale results
//
// Start, Login and Logout bump a generation counter. Asynchronous work
// captures the generation when it is issued and applies its result only if
// the generation is unchanged. A profile fetch that resolves after Logout is
// therefore discarded and cannot bring back the logged out user.
//
// # Startup
//
//	mgr := session.NewManager(api, tokens)
//	f := mgr.Start(ctx, history.Current())
//	s, _ := f.Await() // or ignore the future and Subscribe
//
// With no stored token the session settles at Anonymous immediately. A stored
// token on the login view is cleared without a network call. Otherwise the
// session is Authenticating until the profile fetch resolves.
//
// Failures never escape as panics or bare errors: Login, Register and
// UpdateProfile return a Result with a human readable Message taken from the
// server payload or a generic fallback.
package session
