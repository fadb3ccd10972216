package rbac

import "errors"

var (
	ErrInvalidRole             = errors.New("rbac.invalid_role")
	ErrInsufficientPermissions = errors.New("rbac.insufficient_permissions")
	ErrCircularInheritance     = errors.New("rbac.circular_inheritance")
	ErrInvalidPermission       = errors.New("rbac.invalid_permission")
	ErrInvalidSource           = errors.New("rbac.invalid_source")
)
