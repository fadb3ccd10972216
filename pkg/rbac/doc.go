// Package rbac maps storefront roles to permissions.
//
// Roles are loaded once from a RoleSource (in memory or YAML) and flattened,
// inheritance included, into normalized permission sets. Permission strings
// use the dotted, wildcard-aware syntax of package scopes.
//
//	auth, err := rbac.NewAuthorizer(ctx, rbac.NewInMemRoleSource(rbac.DefaultRoles()))
//	if err := auth.Can("Shipper", rbac.PermOrdersUpdateStatus); err != nil { ... }
//
// Role names are matched case-insensitively.
//
// YAML sources use the same shape as Role:
//
//	Customer:
//	  permissions: [catalog.read, orders.create, orders.read, profile.update]
//	Shipper:
//	  inherits: [Customer]
//	  permissions: [orders.update_status]
//	Admin:
//	  permissions: ["*"]
package rbac
