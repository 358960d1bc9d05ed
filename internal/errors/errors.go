// Package errors provides the structured error type used across the list controller
package errors

// Import as perr to keep the standard library errors package available

import (
	stderrs "errors"
	"fmt"
)

// Kind classifies an error for the controller's state machine
type Kind uint8

const (
	// KindUnknown is for unclassified errors
	KindUnknown Kind = iota

	// KindInvalidFilterInput is for rejected filter, sort or range input; nothing is dispatched
	KindInvalidFilterInput

	// KindTransient is for network and server failures; prior results stay visible
	KindTransient

	// KindSessionInvalid is for 401/403 answers from the Listing Service
	KindSessionInvalid

	// KindCanceled is for fetches abandoned because the controller closed
	KindCanceled

	// KindValidation is for malformed configuration
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFilterInput:
		return "invalid_filter_input"
	case KindTransient:
		return "transient_fetch_error"
	case KindSessionInvalid:
		return "session_invalid"
	case KindCanceled:
		return "canceled"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; any *Error of the same kind matches
var (
	ErrInvalidFilterInput = New(KindInvalidFilterInput, "invalid filter input")
	ErrTransient          = New(KindTransient, "fetch failed")
	ErrSessionInvalid     = New(KindSessionInvalid, "session invalid")
	ErrCanceled           = New(KindCanceled, "canceled")
)

// Error is the structured error type with wrapping and metadata
// msg is human facing; kind is machine facing
// field is optional (for validation); op is optional operation tag
type Error struct {
	orig  error
	msg   string
	kind  Kind
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.msg
	if e.op != "" {
		msg = e.op + ": " + msg
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", msg, e.orig)
	}
	return msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.kind == t.kind
}

// Kind returns the error kind
func (e *Error) Kind() Kind { return e.kind }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Message returns the human facing message without the cause
func (e *Error) Message() string { return e.msg }

// New creates an error of the given kind
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to a cause; nil stays nil
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{orig: err, kind: kind, msg: msg}
}

// InvalidInput reports a rejected filter field
func InvalidInput(field, format string, args ...any) *Error {
	return &Error{kind: KindInvalidFilterInput, field: field, msg: fmt.Sprintf(format, args...)}
}

// WithOp returns a copy tagged with an operation name
func (e *Error) WithOp(op string) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.op = op
	return &cp
}

// WithField returns a copy tagged with an offending field
func (e *Error) WithField(field string) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.field = field
	return &cp
}

// As finds the first *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in the chain
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.kind
	}
	return KindUnknown
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}
