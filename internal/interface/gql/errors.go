package gql

import (
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
)

const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// resolverError carries the caller-safe message and an extensions.code.
type resolverError struct {
	message string
	code    string
	cause   error
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Unwrap() error { return e.cause }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func toGraphQLError(err error) error {
	if err == nil {
		return nil
	}
	return &resolverError{message: apperr.PublicMessage(err), code: CodeOf(err), cause: err}
}

// CodeOf maps an error kind to its GraphQL extensions code.
func CodeOf(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindInvalidID, apperr.KindDuplicateEmail:
		return CodeBadUserInput
	case apperr.KindNotFound:
		return CodeNotFound
	case apperr.KindUnauthenticated, apperr.KindInvalidCredentials:
		return CodeUnauthenticated
	default:
		return CodeInternal
	}
}
