package session

import (
	"strings"

	"github.com/trayshop/storefront/pkg/apiclient"
)

// Status is the authentication state.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusError          Status = "error"
)

// Role is a user role as reported by the API.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
	RoleShipper  Role = "Shipper"
)

// Is compares roles case-insensitively; the API is not consistent about case.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// User is the server's representation of the signed in account.
type User struct {
	ID        apiclient.ID `json:"id"`
	Name      string       `json:"name"`
	Username  string       `json:"username,omitempty"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Address   string       `json:"address,omitempty"`
	Gender    string       `json:"gender,omitempty"`
	BirthDate string       `json:"birthDate,omitempty"`
	Role      Role         `json:"role"`
}

// DisplayName is the name to show for the user.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// Session is a snapshot of the authentication state.
// User is non-nil iff Status is StatusAuthenticated.
type Session struct {
	Status     Status
	Token      string
	User       *User
	LastError  string
	Generation uint64
}

func anonymous() Session {
	return Session{Status: StatusAnonymous}
}

func authenticating(token string) Session {
	return Session{Status: StatusAuthenticating, Token: token}
}

func authenticated(token string, user User) Session {
	return Session{Status: StatusAuthenticated, Token: token, User: &user}
}

func failed(msg string) Session {
	return Session{Status: StatusError, LastError: msg}
}

// IsAuthenticated reports whether a user is present.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// IsResolved reports whether no authentication work is in flight.
func (s Session) IsResolved() bool {
	return s.Status != StatusAuthenticating
}

// Role returns the user's role, or "" when not authenticated.
func (s Session) Role() Role {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.Role
}

// HasRole reports whether the authenticated user has any of roles.
func (s Session) HasRole(roles ...Role) bool {
	role := s.Role()
	if role == "" {
		return false
	}
	for _, r := range roles {
		if role.Is(r) {
			return true
		}
	}
	return false
}

// clone copies the user so callers cannot mutate manager state.
func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
