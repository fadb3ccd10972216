package routeguard

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/navigation"
	"github.com/trayshop/storefront/pkg/session"
)

// ErrNoAuthorizer is reported when a requirement lists permissions but the
// guard has no authorizer.
var ErrNoAuthorizer = errors.New("routeguard.no_authorizer")

// Action is the outcome of a check.
type Action int

const (
	Suspend Action = iota
	Render
	RedirectLogin
	RedirectUnauthorized
)

func (a Action) String() string {
	switch a {
	case Suspend:
		return "suspend"
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Decision tells the caller what to do. Target is set for redirects.
type Decision struct {
	Action Action
	Target string
	Err    error
}

// Requirement describes who may see a view. The zero value admits any
// authenticated user.
type Requirement struct {
	Roles       []session.Role
	Permissions []string
}

// AnyUser admits every authenticated user.
func AnyUser() Requirement { return Requirement{} }

// RequireRoles admits users holding any of roles.
func RequireRoles(roles ...session.Role) Requirement {
	return Requirement{Roles: slices.Clone(roles)}
}

// Authorizer checks role permissions; *rbac.Authorizer satisfies it.
type Authorizer interface {
	CanAll(role string, permissions ...string) error
}

// Guard evaluates requirements against sessions.
type Guard struct {
	authz            Authorizer
	loginView        string
	unauthorizedView string
	log              *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

func WithAuthorizer(a Authorizer) Option {
	return func(g *Guard) { g.authz = a }
}

// WithViews overrides the redirect targets.
func WithViews(login, unauthorized string) Option {
	return func(g *Guard) {
		if login != "" {
			g.loginView = login
		}
		if unauthorized != "" {
			g.unauthorizedView = unauthorized
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

func New(opts ...Option) *Guard {
	g := &Guard{
		loginView:        navigation.LoginView,
		unauthorizedView: navigation.UnauthorizedView,
		log:              slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("routeguard"))
	return g
}

// Check decides what to do for a view guarded by req.
func (g *Guard) Check(s session.Session, req Requirement) Decision {
	switch {
	case s.Status == session.StatusAuthenticating:
		return Decision{Action: Suspend}
	case !s.IsAuthenticated():
		return Decision{Action: RedirectLogin, Target: g.loginView}
	}

	if len(req.Roles) > 0 && !s.HasRole(req.Roles...) {
		return g.deny(s, nil)
	}

	if len(req.Permissions) > 0 {
		if g.authz == nil {
			return g.deny(s, ErrNoAuthorizer)
		}
		if err := g.authz.CanAll(string(s.Role()), req.Permissions...); err != nil {
			return g.deny(s, err)
		}
	}

	return Decision{Action: Render}
}

func (g *Guard) deny(s session.Session, err error) Decision {
	g.log.Debug("access denied", logger.Role(string(s.Role())), logger.Error(err))
	return Decision{Action: RedirectUnauthorized, Target: g.unauthorizedView, Err: err}
}
