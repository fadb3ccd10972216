// Package sanitizer normalizes free-form user input before it is validated
// or sent to the remote API.
//
// Transforms are plain func(string) string values and compose with Apply
// and Compose:
//
//	clean := sanitizer.Compose(sanitizer.StripHTML, sanitizer.SingleLine, sanitizer.Trim)
//	name := clean(form.CustomerName)
package sanitizer
