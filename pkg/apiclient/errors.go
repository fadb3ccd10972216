package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidBaseURL = errors.New("apiclient.invalid_base_url")
	ErrNilTokenStore  = errors.New("apiclient.nil_token_store")
	ErrEncodeRequest  = errors.New("apiclient.encode_request_failed")
	ErrDecodeResponse = errors.New("apiclient.decode_response_failed")
)

// Kind classifies a failed request.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindValidation
	KindNotFound
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned for every failed request.
type Error struct {
	Kind       Kind
	StatusCode int    // zero for KindNetwork
	Message    string // server supplied message, may be empty
	Method     string
	Path       string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.StatusCode != 0 {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("apiclient: %s %s: %s (%d): %s", e.Method, e.Path, e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("apiclient: %s %s: %s: %s", e.Method, e.Path, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNetworkError(err error) bool    { return KindOf(err) == KindNetwork }
func IsAuthError(err error) bool       { return KindOf(err) == KindAuth }
func IsValidationError(err error) bool { return KindOf(err) == KindValidation }
func IsNotFoundError(err error) bool   { return KindOf(err) == KindNotFound }
func IsServerError(err error) bool     { return KindOf(err) == KindServer }

// Message returns the server supplied message carried by err, or fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
