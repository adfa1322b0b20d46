// Package apperr defines the failure kinds reported by the job and application services.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindTransient
	KindFatalConfig
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	case KindFatalConfig:
		return "fatal_config"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Field   string
	Message string
	// Retryable is set on conflicts lost to a concurrent writer.
	Retryable bool
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func Validationf(field, format string, args ...any) *Error {
	return Validation(field, fmt.Sprintf(format, args...))
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func RetryableConflict(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Retryable: true, cause: cause}
}

func Transient(message string, cause error) *Error {
	return &Error{Kind: KindTransient, Message: message, Retryable: true, cause: cause}
}

func FatalConfig(cause error) *Error {
	return &Error{Kind: KindFatalConfig, Message: "invalid configuration", cause: cause}
}

// KindOf returns KindUnknown for errors outside the taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FieldOf returns the offending field of a validation failure, if any.
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
