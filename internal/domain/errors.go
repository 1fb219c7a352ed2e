package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNREADABLE   = "document_unreadable"
	ECORRUPT      = "corrupt_store"
	EUNAUTHORIZED = "unauthorized"
	ETRANSLATION  = "translation_unavailable"
)

// Error represents an application-specific error. Message is safe to show to
// end users; the wrapped cause is not.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("errkb error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("errkb error: code=%s message=%s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns an Error with the given code that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var tu *TranslationUnavailable
	if errors.As(err, &tu) {
		return ETRANSLATION
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var tu *TranslationUnavailable
	if errors.As(err, &tu) {
		return tu.Message
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// TranslationUnavailable reports a failed translation. Message is generic and
// user-safe; Diagnostic carries the underlying failure for logs.
type TranslationUnavailable struct {
	Message    string
	Diagnostic string
	Err        error
}

func (e *TranslationUnavailable) Error() string {
	if e.Diagnostic == "" {
		return e.Message
	}
	return e.Message + ": " + e.Diagnostic
}

func (e *TranslationUnavailable) Unwrap() error { return e.Err }

// NewTranslationUnavailable wraps err unless it already is a TranslationUnavailable.
func NewTranslationUnavailable(err error) *TranslationUnavailable {
	var tu *TranslationUnavailable
	if errors.As(err, &tu) {
		return tu
	}
	tu = &TranslationUnavailable{Message: "Translation is currently unavailable.", Err: err}
	if err != nil {
		tu.Diagnostic = err.Error()
	}
	return tu
}
