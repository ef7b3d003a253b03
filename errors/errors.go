package velog_errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error for clients. Values are stable API codes.
type Kind string

const (
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindPermissionDenied Kind = "NO_PERMISSION"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindValidation       Kind = "BAD_USER_INPUT"
	KindInternal         Kind = "INTERNAL_ERROR"
)

func (k Kind) String() string {
	return string(k)
}

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

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(message string) *Error  { return New(KindUnauthenticated, message) }
func PermissionDenied(message string) *Error { return New(KindPermissionDenied, message) }
func NotFound(message string) *Error         { return New(KindNotFound, message) }
func Conflict(message string) *Error         { return New(KindConflict, message) }
func AlreadyExists(message string) *Error    { return New(KindAlreadyExists, message) }
func Validation(message string) *Error       { return New(KindValidation, message) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

var (
	ErrNotLoggedIn = Unauthenticated("Not Logged In")
)
