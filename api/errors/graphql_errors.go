package api_errors

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/gqlerror"

	velog_errors "github.com/velog-io/velog-api/errors"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNoPermission    = "NO_PERMISSION"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeBadInput        = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_ERROR"
)

const internalErrorMessage = "Internal server error"

// NewError creates a standardized GraphQL error
func NewError(message string, code string, extensions map[string]interface{}) *gqlerror.Error {
	if extensions == nil {
		extensions = make(map[string]interface{})
	}
	extensions["code"] = code

	return &gqlerror.Error{
		Message:    message,
		Extensions: extensions,
	}
}

// Code returns the client-facing code for err.
func Code(err error) string {
	switch velog_errors.KindOf(err) {
	case velog_errors.KindUnauthenticated:
		return CodeUnauthenticated
	case velog_errors.KindPermissionDenied:
		return CodeNoPermission
	case velog_errors.KindNotFound:
		return CodeNotFound
	case velog_errors.KindConflict:
		return CodeConflict
	case velog_errors.KindAlreadyExists:
		return CodeAlreadyExists
	case velog_errors.KindValidation:
		return CodeBadInput
	default:
		return CodeInternal
	}
}

func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNoPermission:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeAlreadyExists:
		return http.StatusConflict
	case CodeBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message is the client-facing message for err. Internal errors are not described.
func Message(err error) string {
	var domainErr *velog_errors.Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return internalErrorMessage
}

// ResolverError carries a code into the GraphQL response extensions.
type ResolverError struct {
	Code    string
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *ResolverError) Error() string {
	return e.Message
}

func (e *ResolverError) Unwrap() error {
	return e.Err
}

func (e *ResolverError) Extensions() map[string]interface{} {
	extensions := map[string]interface{}{"code": e.Code}
	if len(e.Fields) > 0 {
		extensions["fields"] = e.Fields
	}
	return extensions
}

// FromError converts err into a ResolverError; nil stays nil.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var resolverErr *ResolverError
	if errors.As(err, &resolverErr) {
		return resolverErr
	}

	result := &ResolverError{Code: Code(err), Message: Message(err), Err: err}
	var multiErr *velog_errors.MultiErrors
	if errors.As(err, &multiErr) {
		result.Fields = multiErr.Fields()
	}
	return result
}

// ToGqlError renders err the way GraphQL responses carry errors.
func ToGqlError(err error) *gqlerror.Error {
	resolverErr := FromError(err).(*ResolverError)
	return NewError(resolverErr.Message, resolverErr.Code, resolverErr.Extensions())
}
