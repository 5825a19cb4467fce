package weather

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so callers can match on it
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindConnectivity
	KindUpstream
	KindMalformedResponse
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindConnectivity:
		return "connectivity"
	case KindUpstream:
		return "upstream"
	case KindMalformedResponse:
		return "malformed response"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Error is the single failure type flowing out of the weather pipeline.
// Field is set only for malformed-response failures and names the payload
// field that was missing or invalid.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: missing field %q", msg, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error of the given kind wrapping cause (which may be nil).
func NewError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// MissingField reports a payload that lacks a required field.
func MissingField(name string) *Error {
	return &Error{
		Kind:    KindMalformedResponse,
		Field:   name,
		Message: "invalid weather payload",
	}
}

// KindOf extracts the failure kind from err. Errors that did not originate
// in this package classify as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
