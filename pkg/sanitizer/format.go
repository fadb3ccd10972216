package sanitizer

import "strings"

// NormalizeEmail lowercases, trims and collapses repeated dots in the local part.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// NormalizePhone keeps digits and a single leading plus.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	plus := strings.HasPrefix(phone, "+")
	digits := phoneNoiseRegex.ReplaceAllString(phone, "")
	if plus && digits != "" {
		return "+" + digits
	}
	return digits
}
