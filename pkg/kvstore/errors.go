package kvstore

import "errors"

var (
	ErrEmptyKey   = errors.New("kvstore.empty_key")
	ErrInvalidKey = errors.New("kvstore.invalid_key")
	ErrNoDir      = errors.New("kvstore.no_directory")
)
