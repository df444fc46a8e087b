package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrBusy      = errors.New("submission already in progress")
	ErrNoSession = errors.New("no active session")
)

// ConstraintViolation aborts an operation before any network call.
type ConstraintViolation struct {
	Reason string
	Limit  int64
	Actual int64
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds limit of %d bytes", e.Reason, e.Actual, e.Limit)
}

// KnownServiceError carries a human-readable reason from the remote service.
// Message is shown to the user verbatim.
type KnownServiceError struct {
	Status  int
	Message string
}

func (e *KnownServiceError) Error() string {
	return e.Message
}

// UnknownFailure wraps network failures and unstructured server errors.
// The wrapped error is for diagnostics only and never shown to the user.
type UnknownFailure struct {
	Err error
}

func (e *UnknownFailure) Error() string {
	if e.Err == nil {
		return "unknown failure"
	}
	return fmt.Sprintf("unknown failure: %v", e.Err)
}

func (e *UnknownFailure) Unwrap() error {
	return e.Err
}
