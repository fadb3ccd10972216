package session

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a signed in user.
	ErrNotAuthenticated = errors.New("session.not_authenticated")

	// ErrSuperseded means a later Start, Login or Logout made the result stale.
	ErrSuperseded = errors.New("session.superseded")

	// ErrMissingToken means a login response carried no token.
	ErrMissingToken = errors.New("session.missing_token")

	ErrNilAPI        = errors.New("session.nil_api")
	ErrNilTokenStore = errors.New("session.nil_token_store")
)
