// Package storefront wires the storefront client core together.
//
// A Client owns the durable state (bearer token and cart), the authorized
// API client, the session manager, the route guard, the catalog and order
// services and the checkout coordinator. Everything is constructed
// explicitly from a Config; nothing is global.
//
//	cfg, err := storefront.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	client, err := storefront.New(ctx, cfg, storefront.WithInitialView("/trays"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	sess, _ := client.Start(ctx).Await()
//	switch d := client.Check(routeguard.RequireRoles(session.RoleAdmin)); d.Action {
//	case routeguard.Render:
//	    // show the admin view
//	default:
//	    client.Navigator.Redirect(d.Target)
//	}
//
// The packages under pkg/ can also be used on their own; the root package
// only picks backends from configuration and connects the pieces.
package storefront
