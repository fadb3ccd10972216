// Package catalog reads and maintains rituals and offering trays through the
// storefront API.
//
// Single-item reads (Ritual, Tray) go through an in-memory LRU so that moving
// between the catalog and a detail view does not refetch. Updates and deletes
// made through the Service invalidate the affected entry; list and search
// calls always hit the API.
//
//	svc, err := catalog.NewService(api)
//	trays, err := svc.TraysByPriceRange(ctx, 100_000, 500_000)
//	tray, err := svc.Tray(ctx, "42")
package catalog
