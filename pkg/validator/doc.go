// Package validator provides rule based input validation.
//
// A Rule pairs a check with the ValidationError reported when it fails.
// Apply runs every rule and returns ValidationErrors, which keeps per-field
// messages and translation keys for the presentation layer:
//
//	err := validator.Apply(
//	    validator.Required("customerName", f.CustomerName),
//	    validator.Email("customerEmail", f.CustomerEmail),
//	    validator.OneOf("paymentMethod", f.PaymentMethod, methods),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs.Has("customerEmail") { ... }
package validator
