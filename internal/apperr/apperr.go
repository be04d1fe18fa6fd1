// Package apperr defines the error kinds the core exposes to callers.
// Handlers map kinds to HTTP status codes; nothing below the handler layer
// knows about transports.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind int

const (
	// KindUnknown is the zero value; errors without a kind map to it.
	KindUnknown Kind = iota
	// KindMalformedRecord: a source payload is missing or mistypes a
	// required field. The error message names the field.
	KindMalformedRecord
	// KindValidation: caller-supplied input is invalid (missing identity,
	// sort key outside the allow-list, unknown update field).
	KindValidation
	// KindNotFound: a lookup yielded nothing where absence is an error.
	KindNotFound
	// KindStorage: connectivity or constraint failure from the database.
	KindStorage
	// KindExternalService: non-success status, timeout, or undecodable
	// body from an outbound call.
	KindExternalService
	// KindConfiguration: a required credential or setting is absent.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindMalformedRecord:
		return "malformed_record"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindExternalService:
		return "external_service"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a kind and message. Returns nil if err is nil.
func Wrap(kind Kind, msg string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// MalformedField reports a source payload field that is absent or of the
// wrong shape.
func MalformedField(field string) *Error {
	return Newf(KindMalformedRecord, "malformed record: field %q missing or invalid", field)
}

// KindOf extracts the kind from an error chain. Unclassified errors report
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
