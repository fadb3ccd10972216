package mongo

import "errors"

var (
	ErrEmptyURL  = errors.New("mongo.empty_url")
	ErrConnect   = errors.New("mongo.connect_failed")
	ErrUnhealthy = errors.New("mongo.unhealthy")
)
