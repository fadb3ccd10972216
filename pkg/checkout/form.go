package checkout

import (
	"github.com/trayshop/storefront/pkg/orders"
	"github.com/trayshop/storefront/pkg/sanitizer"
	"github.com/trayshop/storefront/pkg/session"
	"github.com/trayshop/storefront/pkg/validator"
)

const (
	maxNameLen    = 100
	maxAddressLen = 500
	maxNotesLen   = 1000
)

// Form holds the shipping and payment fields entered by the customer.
type Form struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   orders.PaymentMethod
	Notes           string
}

// Prefill copies contact details from the signed in user. Without a user it
// returns an empty form with the default payment method.
func Prefill(s session.Session) Form {
	f := Form{PaymentMethod: orders.PaymentCOD}
	if s.User == nil {
		return f
	}
	f.CustomerName = s.User.Name
	f.CustomerEmail = s.User.Email
	f.CustomerPhone = s.User.Phone
	f.CustomerAddress = s.User.Address
	return f
}

var (
	cleanLine  = sanitizer.Compose(sanitizer.StripHTML, sanitizer.RemoveControlChars, sanitizer.SingleLine)
	cleanNotes = sanitizer.Compose(sanitizer.StripHTML, sanitizer.RemoveControlChars, sanitizer.NormalizeNewlines)
)

// Sanitized returns a copy with normalized whitespace, email and phone.
func (f Form) Sanitized() Form {
	out := Form{
		CustomerName:    cleanLine(f.CustomerName),
		CustomerEmail:   sanitizer.NormalizeEmail(f.CustomerEmail),
		CustomerPhone:   sanitizer.NormalizePhone(f.CustomerPhone),
		CustomerAddress: cleanLine(f.CustomerAddress),
		PaymentMethod:   f.PaymentMethod,
		Notes:           cleanNotes(f.Notes),
	}
	if out.PaymentMethod == "" {
		out.PaymentMethod = orders.PaymentCOD
	}
	return out
}

// Validate checks a sanitized form. Field names match the order payload.
func (f Form) Validate() error {
	return validator.Apply(
		validator.Required("customerName", f.CustomerName),
		validator.MaxLen("customerName", f.CustomerName, maxNameLen),
		validator.Required("customerEmail", f.CustomerEmail),
		validator.Email("customerEmail", f.CustomerEmail),
		validator.Required("customerPhone", f.CustomerPhone),
		validator.Phone("customerPhone", f.CustomerPhone),
		validator.Required("customerAddress", f.CustomerAddress),
		validator.MaxLen("customerAddress", f.CustomerAddress, maxAddressLen),
		validator.OneOf("paymentMethod", f.PaymentMethod, orders.PaymentMethods()),
		validator.MaxLen("notes", f.Notes, maxNotesLen),
	)
}
