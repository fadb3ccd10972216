package routeguard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/navigation"
	"github.com/trayshop/storefront/pkg/rbac"
	"github.com/trayshop/storefront/pkg/routeguard"
	"github.com/trayshop/storefront/pkg/session"
)

func signedIn(role session.Role) session.Session {
	return session.Session{
		Status: session.StatusAuthenticated,
		Token:  "t",
		User:   &session.User{ID: "1", Name: "U", Role: role},
	}
}

func TestGuard_Check(t *testing.T) {
	t.Parallel()

	g := routeguard.New(routeguard.WithLogger(logger.Discard()))
	admin := routeguard.RequireRoles(session.RoleAdmin)

	tests := []struct {
		name    string
		session session.Session
		req     routeguard.Requirement
		want    routeguard.Action
		target  string
	}{
		{"authenticating suspends", session.Session{Status: session.StatusAuthenticating, Token: "t"}, admin, routeguard.Suspend, ""},
		{"authenticating suspends any user", session.Session{Status: session.StatusAuthenticating}, routeguard.AnyUser(), routeguard.Suspend, ""},
		{"anonymous redirects to login", session.Session{Status: session.StatusAnonymous}, routeguard.AnyUser(), routeguard.RedirectLogin, navigation.LoginView},
		{"error redirects to login", session.Session{Status: session.StatusError, LastError: "x"}, admin, routeguard.RedirectLogin, navigation.LoginView},
		{"any authenticated user renders", signedIn(session.RoleCustomer), routeguard.AnyUser(), routeguard.Render, ""},
		{"role in set renders", signedIn(session.RoleAdmin), admin, routeguard.Render, ""},
		{"role match ignores case", signedIn("ADMIN"), admin, routeguard.Render, ""},
		{"one of several roles renders", signedIn(session.RoleShipper), routeguard.RequireRoles(session.RoleAdmin, session.RoleShipper), routeguard.Render, ""},
		{"shipper on admin view is unauthorized", signedIn(session.RoleShipper), admin, routeguard.RedirectUnauthorized, navigation.UnauthorizedView},
		{"customer on shipper view is unauthorized", signedIn(session.RoleCustomer), routeguard.RequireRoles(session.RoleShipper), routeguard.RedirectUnauthorized, navigation.UnauthorizedView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := g.Check(tt.session, tt.req)
			assert.Equal(t, tt.want, d.Action, d.Action.String())
			assert.Equal(t, tt.target, d.Target)
		})
	}
}

func TestGuard_Permissions(t *testing.T) {
	t.Parallel()

	authz, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(rbac.DefaultRoles()))
	require.NoError(t, err)
	g := routeguard.New(
		routeguard.WithAuthorizer(authz),
		routeguard.WithViews("/signin", "/forbidden"),
		routeguard.WithLogger(logger.Discard()),
	)

	updateStatus := routeguard.Requirement{Permissions: []string{rbac.PermOrdersUpdateStatus}}

	assert.Equal(t, routeguard.Render, g.Check(signedIn(session.RoleShipper), updateStatus).Action)
	assert.Equal(t, routeguard.Render, g.Check(signedIn(session.RoleAdmin), updateStatus).Action)

	d := g.Check(signedIn(session.RoleCustomer), updateStatus)
	assert.Equal(t, routeguard.RedirectUnauthorized, d.Action)
	assert.Equal(t, "/forbidden", d.Target)
	assert.ErrorIs(t, d.Err, rbac.ErrInsufficientPermissions)

	d = g.Check(session.Session{Status: session.StatusAnonymous}, updateStatus)
	assert.Equal(t, "/signin", d.Target)

	both := routeguard.Requirement{Roles: []session.Role{session.RoleCustomer}, Permissions: []string{rbac.PermOrdersUpdateStatus}}
	assert.Equal(t, routeguard.RedirectUnauthorized, g.Check(signedIn(session.RoleShipper), both).Action, "roles and permissions must both hold")

	d = g.Check(signedIn("Guest"), updateStatus)
	assert.ErrorIs(t, d.Err, rbac.ErrInvalidRole)
}

func TestGuard_PermissionsWithoutAuthorizer(t *testing.T) {
	t.Parallel()

	g := routeguard.New(routeguard.WithLogger(logger.Discard()))
	d := g.Check(signedIn(session.RoleAdmin), routeguard.Requirement{Permissions: []string{rbac.PermCatalogWrite}})
	assert.Equal(t, routeguard.RedirectUnauthorized, d.Action)
	assert.ErrorIs(t, d.Err, routeguard.ErrNoAuthorizer)
}
