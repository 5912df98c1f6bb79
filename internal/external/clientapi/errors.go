package clientapi

import "errors"

var (
	// ErrForbidden is returned when the client session is expired or unknown (HTTP 403)
	ErrForbidden = errors.New("client session rejected")

	// ErrNotFound is returned when the resource is not found (HTTP 404)
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest is returned when the platform rejects the request (HTTP 4xx)
	ErrBadRequest = errors.New("bad request")

	// ErrServiceUnavailable is returned when the client API is unavailable (HTTP 5xx, timeout)
	ErrServiceUnavailable = errors.New("client api unavailable")

	// ErrInvalidSession is returned for session details that cannot address the client API
	ErrInvalidSession = errors.New("invalid session details")
)
