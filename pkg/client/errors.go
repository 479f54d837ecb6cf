package client

import (
	"errors"
	"fmt"
)

// ErrNotFound means the store holds no location yet. It is an expected state
// for a fresh deployment, not a failure.
var ErrNotFound = errors.New("no location recorded yet")

// TransportError means the request never completed: DNS failure, refused
// connection, timeout. The service may not have seen the request at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError means the service was reached but answered with an error
// status.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: service returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: service returned %d", e.Op, e.StatusCode)
}
