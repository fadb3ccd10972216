package rbac

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/trayshop/storefront/pkg/scopes"
)

// Authorizer answers permission checks for named roles. It is immutable
// after construction and safe for concurrent use.
type Authorizer struct {
	permissions map[string][]string // lower-cased role name -> flattened permissions
	roles       []string
}

// NewAuthorizer loads roles from source, validates them and precomputes
// every role's effective permissions.
func NewAuthorizer(ctx context.Context, source RoleSource) (*Authorizer, error) {
	if source == nil {
		return nil, ErrInvalidSource
	}
	defs, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	roles := make(map[string]Role, len(defs))
	names := make([]string, 0, len(defs))
	for name, r := range defs {
		key := normalize(name)
		if key == "" {
			return nil, fmt.Errorf("%w: empty role name", ErrInvalidRole)
		}
		if _, dup := roles[key]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", ErrInvalidRole, name)
		}
		for _, p := range r.Permissions {
			if !scopes.Valid(p) {
				return nil, fmt.Errorf("%w: %q in role %q", ErrInvalidPermission, p, name)
			}
		}
		inherits := make([]string, len(r.Inherits))
		for i, parent := range r.Inherits {
			inherits[i] = normalize(parent)
		}
		roles[key] = Role{Permissions: r.Permissions, Inherits: inherits}
		names = append(names, name)
	}

	a := &Authorizer{permissions: make(map[string][]string, len(roles))}
	for key := range roles {
		perms, err := flatten(key, roles, nil)
		if err != nil {
			return nil, err
		}
		a.permissions[key] = scopes.Normalize(perms)
	}

	slices.Sort(names)
	a.roles = names
	return a, nil
}

// Can returns nil if role has permission, directly or inherited.
func (a *Authorizer) Can(role, permission string) error {
	return a.CanAll(role, permission)
}

// CanAll returns nil if role has every permission.
func (a *Authorizer) CanAll(role string, permissions ...string) error {
	granted, ok := a.permissions[normalize(role)]
	if !ok {
		return ErrInvalidRole
	}
	if !scopes.HasAll(granted, permissions) {
		return ErrInsufficientPermissions
	}
	return nil
}

// CanAny returns nil if role has at least one of permissions.
func (a *Authorizer) CanAny(role string, permissions ...string) error {
	granted, ok := a.permissions[normalize(role)]
	if !ok {
		return ErrInvalidRole
	}
	if !scopes.HasAny(granted, permissions) {
		return ErrInsufficientPermissions
	}
	return nil
}

// Permissions returns the effective permissions of role.
func (a *Authorizer) Permissions(role string) []string {
	return slices.Clone(a.permissions[normalize(role)])
}

// VerifyRole returns ErrInvalidRole for unknown roles.
func (a *Authorizer) VerifyRole(role string) error {
	if _, ok := a.permissions[normalize(role)]; !ok {
		return ErrInvalidRole
	}
	return nil
}

// Roles returns the configured role names, sorted.
func (a *Authorizer) Roles() []string {
	return slices.Clone(a.roles)
}

func flatten(key string, roles map[string]Role, path []string) ([]string, error) {
	if slices.Contains(path, key) {
		return nil, errors.Join(ErrCircularInheritance,
			fmt.Errorf("cycle: %s -> %s", strings.Join(path, " -> "), key))
	}
	if len(path) > MaxInheritanceDepth {
		return nil, errors.Join(ErrCircularInheritance,
			fmt.Errorf("inheritance deeper than %d", MaxInheritanceDepth))
	}

	r, ok := roles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q is inherited but not defined", ErrInvalidRole, key)
	}

	path = append(path, key)
	perms := slices.Clone(r.Permissions)
	for _, parent := range r.Inherits {
		inherited, err := flatten(parent, roles, path)
		if err != nil {
			return nil, err
		}
		perms = append(perms, inherited...)
	}
	return perms, nil
}

func normalize(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
