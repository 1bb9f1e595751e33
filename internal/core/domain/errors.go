package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes callers branch on.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// StoreError wraps any failure of a backing store. The cause is kept for
// logging but is not interpreted.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// KindOf classifies err. A nil error is KindUnknown.
func KindOf(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}

	var serr *StoreError
	if errors.As(err, &serr) {
		return KindStore
	}

	return KindUnknown
}
