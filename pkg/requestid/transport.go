package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// New generates a fresh request id.
func New() string {
	return uuid.NewString()
}

type roundTripper struct {
	next http.RoundTripper
}

// Transport sets the request id header on every outgoing request.
// A nil next uses http.DefaultTransport.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &roundTripper{next: next}
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if isValidRequestID(req.Header.Get(Header)) {
		return rt.next.RoundTrip(req)
	}

	_, id := Ensure(req.Context())

	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set(Header, id)
	return rt.next.RoundTrip(clone)
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
