// Package apperr defines the error taxonomy shared by services and handlers.
// Every failure a service returns is one of these kinds, so the HTTP layer
// can map each kind to a distinct status without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidTransition
	KindPublishPrecondition
	KindConstraintViolation
	KindInvalidDuration
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindPublishPrecondition:
		return "publish_precondition"
	case KindConstraintViolation:
		return "constraint_violation"
	case KindInvalidDuration:
		return "invalid_duration"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

func InvalidTransition(format string, args ...any) *Error {
	return newError(KindInvalidTransition, format, args...)
}

func PublishPrecondition(format string, args ...any) *Error {
	return newError(KindPublishPrecondition, format, args...)
}

func ConstraintViolation(format string, args ...any) *Error {
	return newError(KindConstraintViolation, format, args...)
}

func InvalidDuration(format string, args ...any) *Error {
	return newError(KindInvalidDuration, format, args...)
}

func Unauthenticated(format string, args ...any) *Error {
	return newError(KindUnauthenticated, format, args...)
}

// KindOf returns the kind carried by err, or KindUnknown for errors that
// did not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
