package errs

import (
	"errors"
	"fmt"
)

// Markers for transport failures against the storefront backend.
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendTimeout     = errors.New("backend request timed out")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrConflict           = errors.New("conflict")
)

// ValidationError is a local precondition failure tied to one input field.
// It never reaches the network layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// SyncError reports a mutating call that failed after an optimistic local update.
// By the time a caller sees it, local state has already been re-fetched and
// Reconciled carries that state for the response.
type SyncError struct {
	Op         string
	Err        error
	Reconciled any
}

func (e *SyncError) Error() string {
	if e.Err == nil {
		return "sync failed: " + e.Op
	}
	return fmt.Sprintf("sync failed: %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSync(op string, err error, reconciled any) *SyncError {
	return &SyncError{Op: op, Err: err, Reconciled: reconciled}
}

// AsSync returns the SyncError in err's chain, if any.
func AsSync(err error) (*SyncError, bool) {
	var s *SyncError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsSync(err error) bool {
	var s *SyncError
	return errors.As(err, &s)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Retryable reports whether err came from a transient backend failure.
func Retryable(err error) bool {
	return Is(err, ErrBackendTimeout) || Is(err, ErrBackendUnavailable)
}
