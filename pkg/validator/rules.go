package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Digits with an optional leading plus; covers local (0901234567) and
// international (+84901234567) forms.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// Required fails for empty or whitespace-only strings.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// MaxLen limits the length in characters, not bytes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", max),
			"validation.max_length", map[string]any{"max": max}),
	}
}

// Email checks for a bare address with a dotted domain.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			_, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || !strings.Contains(domain, ".") {
				return false
			}
			return !slices.Contains(strings.Split(domain, "."), "")
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// Phone accepts digits, spaces, dashes, dots and a leading plus.
func Phone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			cleaned := strings.NewReplacer(" ", "", "-", "", ".", "").Replace(value)
			return phoneRegex.MatchString(cleaned)
		},
		Error: newError(field, "must be a valid phone number", "validation.phone", nil),
	}
}

// OneOf requires value to be one of options.
func OneOf[T comparable](field string, value T, options []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(options, value) },
		Error: newError(field, fmt.Sprintf("must be one of: %v", options),
			"validation.in_list", map[string]any{"allowed_values": options}),
	}
}

// MinNum requires value >= min.
func MinNum[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: newError(field, fmt.Sprintf("must be at least %v", min),
			"validation.min", map[string]any{"min": min}),
	}
}

// RequiredSlice fails for an empty slice.
func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Check: func() bool { return len(value) > 0 },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}
