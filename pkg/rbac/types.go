package rbac

import "github.com/trayshop/storefront/pkg/scopes"

// MaxInheritanceDepth bounds role inheritance chains.
const MaxInheritanceDepth = 10

// Storefront permissions.
const (
	PermCatalogRead        = "catalog.read"
	PermCatalogWrite       = "catalog.write"
	PermOrdersCreate       = "orders.create"
	PermOrdersRead         = "orders.read"
	PermOrdersReadAll      = "orders.read_all"
	PermOrdersUpdateStatus = "orders.update_status"
	PermProfileUpdate      = "profile.update"
)

// Role is a set of permissions plus the roles it inherits from.
type Role struct {
	Permissions []string `yaml:"permissions"`
	Inherits    []string `yaml:"inherits"`
}

// Can checks direct permissions only.
func (r Role) Can(permission string) bool {
	return scopes.Has(r.Permissions, permission)
}

// DefaultRoles returns the built-in Customer, Shipper and Admin roles.
func DefaultRoles() map[string]Role {
	return map[string]Role{
		"Customer": {
			Permissions: []string{PermCatalogRead, PermOrdersCreate, PermOrdersRead, PermProfileUpdate},
		},
		"Shipper": {
			Permissions: []string{PermOrdersUpdateStatus, PermOrdersReadAll},
			Inherits:    []string{"Customer"},
		},
		"Admin": {
			Permissions: []string{scopes.Wildcard},
		},
	}
}
