package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds a not-found error with the given message.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Validation builds a validation error with the given message.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Persistence wraps an underlying store failure.
func Persistence(err error) *Error {
	return New(http.StatusInternalServerError, "Failed to save changes", err)
}

// Common error types
var (
	ErrUnauthorized      = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrInsufficientStock = New(http.StatusBadRequest, "Not enough stock", nil)
	ErrCartConflict      = New(http.StatusConflict, "Cart was modified concurrently", nil)
)

// IsNotFound reports whether err is an application not-found error.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}

// IsInsufficientStock reports whether err is a stock shortage error.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

// Redirect is an intentional navigation signal, not a failure. Handlers
// must re-raise it to the client instead of converting it to an error
// result.
type Redirect struct {
	To      string
	Message string
}

func (r *Redirect) Error() string {
	return "redirect to " + r.To
}

// AsRedirect extracts a redirect signal from err, if any.
func AsRedirect(err error) (*Redirect, bool) {
	var r *Redirect
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// FormatError converts any error into a human-readable message for the
// {success:false, message} result shape. Validation errors list each
// failing field, uniqueness conflicts become "X already exists", and
// everything else falls back to the error's own message.
func FormatError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), messageForTag(fe)))
		}
		return strings.Join(msgs, ". ")
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var appErr *Error
		if errors.As(err, &appErr) {
			return appErr.Message
		}
		return "Record already exists"
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return err.Error()
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "must match " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "price":
		return "must have exactly two decimal places"
	default:
		return "is invalid"
	}
}
