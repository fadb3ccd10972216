package session

import (
	"log/slog"

	"github.com/trayshop/storefront/pkg/navigation"
)

// Endpoints are the API paths used by the manager.
type Endpoints struct {
	Login         string
	Register      string
	Profile       string
	UpdateProfile string
}

// DefaultEndpoints returns the storefront API paths.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:         "/api/auth/login",
		Register:      "/api/auth/register",
		Profile:       "/api/auth/profile",
		UpdateProfile: "/api/users/profile",
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithEndpoints overrides API paths. Empty fields keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(m *Manager) {
		if e.Login != "" {
			m.endpoints.Login = e.Login
		}
		if e.Register != "" {
			m.endpoints.Register = e.Register
		}
		if e.Profile != "" {
			m.endpoints.Profile = e.Profile
		}
		if e.UpdateProfile != "" {
			m.endpoints.UpdateProfile = e.UpdateProfile
		}
	}
}

// WithLoginView sets the view on which startup skips the profile fetch.
func WithLoginView(view string) Option {
	return func(m *Manager) {
		if view != "" {
			m.loginView = view
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// defaultLoginView matches the API client default.
const defaultLoginView = navigation.LoginView
