package scopes

import (
	"slices"
	"strings"
)

const (
	Wildcard  = "*"
	Delimiter = "."
)

// Matches reports whether scope is granted by pattern.
func Matches(scope, pattern string) bool {
	if scope == pattern || pattern == Wildcard {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, Delimiter+Wildcard); ok {
		return strings.HasPrefix(scope, prefix+Delimiter)
	}
	return false
}

// Has reports whether any granted pattern matches scope.
func Has(granted []string, scope string) bool {
	return slices.ContainsFunc(granted, func(p string) bool { return Matches(scope, p) })
}

// HasAll reports whether every required scope is granted. An empty
// requirement is always satisfied.
func HasAll(granted, required []string) bool {
	for _, r := range required {
		if !Has(granted, r) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one required scope is granted. An empty
// requirement is always satisfied.
func HasAny(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	return slices.ContainsFunc(required, func(r string) bool { return Has(granted, r) })
}

// Valid reports whether s is a well formed scope: non-empty dotted segments,
// with "*" allowed only as the whole scope or the last segment.
func Valid(s string) bool {
	if s == Wildcard {
		return true
	}
	parts := strings.Split(s, Delimiter)
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\n") {
			return false
		}
		if strings.Contains(p, Wildcard) && (p != Wildcard || i != len(parts)-1) {
			return false
		}
	}
	return true
}

// Normalize returns the sorted, deduplicated scopes, or nil when empty.
func Normalize(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}
	out := slices.Clone(scopes)
	slices.Sort(out)
	return slices.Compact(out)
}
