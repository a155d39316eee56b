// Package apperr defines the error taxonomy shared by services and handlers.
// Every failure surfaced to a client is an *Error carrying a machine-readable
// code, the field it is attributed to, and a human message.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeNotFound               Code = "not_found"
	CodeConflict               Code = "conflict"
	CodeEmptyCollection        Code = "empty_collection"
	CodeOutOfRange             Code = "out_of_range"
	CodeDuplicateReference     Code = "duplicate_reference"
	CodeSelfReferenceForbidden Code = "self_reference_forbidden"
	CodeInvalidArgument        Code = "invalid_argument"
	CodeAuthenticationRequired Code = "authentication_required"
	CodePermissionDenied       Code = "permission_denied"
	CodeEmptyCart              Code = "empty_cart"
	CodeNotSubscribed          Code = "not_subscribed"
	CodeNotInCart              Code = "not_in_cart"
	CodeNotFollowing           Code = "not_following"
	CodeInternal               Code = "internal"
)

type Error struct {
	Code    Code
	Field   string
	Message string
	cause   error
}

func New(code Code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

func Newf(code Code, field, format string, args ...any) *Error {
	return &Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause so the original store error stays reachable
// through errors.Is/As chains.
func Wrap(code Code, field, message string, cause error) *Error {
	return &Error{Code: code, Field: field, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Status maps the taxonomy onto HTTP status categories: 400 for
// validation/range/duplicate/empty, 401/403 for auth, 404 for missing
// references, 409 for conflicting state.
func (e *Error) Status() int {
	switch e.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeAuthenticationRequired:
		return fiber.StatusUnauthorized
	case CodePermissionDenied:
		return fiber.StatusForbidden
	case CodeInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// CodeOf extracts the taxonomy code from any error, CodeInternal when the
// error did not originate from this package.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
