package api

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many requests")
)

// RejectedError carries the message of an envelope with success=false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}
