package session

import (
	"context"
	"errors"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/logger"
)

// Fallback messages used when the server gives none.
const (
	MsgLoginFailed         = "Login failed"
	MsgRegistrationFailed  = "Registration failed"
	MsgProfileUpdateFailed = "Profile update failed"
	MsgNotAuthenticated    = "Please log in to continue"
	MsgSuperseded          = "The request was cancelled by a newer session change"
)

// Credentials identify the account to sign in. The API accepts either an
// email or a username.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	CustomerName string `json:"customerName,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
}

// Result reports the outcome of an operation that can fail.
// Message is set on failure and is safe to show to the user.
type Result struct {
	Success bool
	Message string
	Err     error
}

// LoginResult is a Result carrying the signed in user on success.
type LoginResult struct {
	Result
	User *User
}

func failure(err error, fallback string) Result {
	msg := apiclient.Message(err, fallback)
	switch {
	case errors.Is(err, ErrSuperseded):
		msg = MsgSuperseded
	case errors.Is(err, ErrNotAuthenticated):
		msg = MsgNotAuthenticated
	}
	return Result{Message: msg, Err: err}
}

type loginResponse struct {
	Token string `json:"token"`
	User
}

// Login signs in. On failure the session moves to Error with the server's
// message and the token stays cleared.
func (m *Manager) Login(ctx context.Context, creds Credentials) LoginResult {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.clearToken(ctx)
	err := m.fire(ctx, eventLogin, authenticating(""))
	m.mu.Unlock()
	if err != nil {
		return LoginResult{Result: failure(err, MsgLoginFailed)}
	}

	var resp loginResponse
	err = m.api.Post(ctx, m.endpoints.Login, creds, &resp)
	if err == nil && resp.Token == "" {
		err = ErrMissingToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return LoginResult{Result: failure(ErrSuperseded, MsgLoginFailed)}
	}

	if err == nil {
		err = m.tokens.Set(ctx, resp.Token)
	}
	if err != nil {
		res := failure(err, MsgLoginFailed)
		m.log.InfoContext(ctx, "login failed", logger.Error(err))
		_ = m.fire(ctx, eventFail, failed(res.Message))
		return LoginResult{Result: res}
	}

	if err := m.fire(ctx, eventSucceed, authenticated(resp.Token, resp.User)); err != nil {
		return LoginResult{Result: failure(err, MsgLoginFailed)}
	}
	m.log.InfoContext(ctx, "logged in", logger.UserID(resp.ID.String()), logger.Role(string(resp.Role)))

	return LoginResult{Result: Result{Success: true}, User: m.session.clone().User}
}

// Register creates an account. It does not sign in or change the session.
func (m *Manager) Register(ctx context.Context, reg Registration) Result {
	if err := m.api.Post(ctx, m.endpoints.Register, reg, nil); err != nil {
		m.log.InfoContext(ctx, "registration failed", logger.Error(err))
		return failure(err, MsgRegistrationFailed)
	}
	return Result{Success: true}
}

// UpdateProfile submits fields and replaces the user with the server's
// response. It requires an authenticated session; on failure the session is
// unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, fields ProfileUpdate) Result {
	m.mu.Lock()
	gen := m.gen
	authed := m.session.IsAuthenticated()
	m.mu.Unlock()

	if !authed {
		return failure(ErrNotAuthenticated, MsgProfileUpdateFailed)
	}

	var user User
	if err := m.api.Put(ctx, m.endpoints.UpdateProfile, fields, &user); err != nil {
		m.log.InfoContext(ctx, "profile update failed", logger.Error(err))
		return failure(err, MsgProfileUpdateFailed)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || !m.session.IsAuthenticated() {
		return failure(ErrSuperseded, MsgProfileUpdateFailed)
	}

	next := m.session
	next.User = &user
	next.Generation = m.gen
	m.session = next
	m.publishLocked(ctx)

	return Result{Success: true}
}
