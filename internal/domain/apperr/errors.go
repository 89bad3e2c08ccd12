// Package apperr holds the error taxonomy shared by stores, services and transports.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateEmail
	KindNotFound
	KindInvalidID
	KindUnauthenticated
	KindInvalidCredentials
	KindStorage
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindNotFound:
		return "not_found"
	case KindInvalidID:
		return "invalid_id"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindStorage:
		return "storage"
	case KindConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

// Error is a classified failure. Message is safe to show to callers, Cause is not.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation         = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "email already registered"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidID          = &Error{Kind: KindInvalidID, Message: "invalid id"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	ErrStorage            = &Error{Kind: KindStorage, Message: "storage failure"}
	ErrConfiguration      = &Error{Kind: KindConfiguration, Message: "invalid configuration"}
)

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func DuplicateEmail(cause error) *Error {
	return &Error{Kind: KindDuplicateEmail, Message: ErrDuplicateEmail.Message, Cause: cause}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func InvalidID(id string) *Error {
	return &Error{Kind: KindInvalidID, Message: fmt.Sprintf("invalid id %q", id)}
}

func Unauthenticated(message string, cause error) *Error {
	if message == "" {
		message = ErrUnauthenticated.Message
	}
	return &Error{Kind: KindUnauthenticated, Message: message, Cause: cause}
}

func Storage(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: op + " failed", Cause: cause}
}

func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-safe message of err. Storage and unclassified
// failures collapse to a generic text.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal server error"
	}
	switch e.Kind {
	case KindStorage, KindInternal, KindConfiguration:
		return "internal server error"
	}
	return e.Message
}
