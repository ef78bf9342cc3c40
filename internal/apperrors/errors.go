package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the class of a store-layer error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindForbidden
	KindNotFound
	KindAuth
	KindStorage
	KindSizeLimit
)

// Error is a typed store-layer error. Handlers map it to an HTTP status
// with Status and pass the message through unchanged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or missing required input.
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

// Conflict reports a uniqueness violation (duplicate follow edge,
// duplicate storefront, and so on).
func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// Forbidden reports that the actor is not the owner/author of the entity.
func Forbidden(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

// NotFound reports a lookup miss.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Auth reports a credential mismatch. It deliberately does not say
// whether the id or the pin was wrong.
func Auth(format string, args ...interface{}) *Error {
	return newError(KindAuth, format, args...)
}

// Storage reports an upload gateway rejection.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// SizeLimit reports an upload above the configured maximum.
func SizeLimit(format string, args ...interface{}) *Error {
	return newError(KindSizeLimit, format, args...)
}

// KindOf returns the kind of err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is a typed error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Status maps an error to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindSizeLimit:
		return http.StatusRequestEntityTooLarge
	case KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
