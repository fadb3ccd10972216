package storefront

import "errors"

var (
	ErrUnknownStorage = errors.New("storefront.unknown_storage")
	ErrStorageOpen    = errors.New("storefront.storage_open")
	ErrRolesLoad      = errors.New("storefront.roles_load")
	ErrUnhealthy      = errors.New("storefront.unhealthy")
)
