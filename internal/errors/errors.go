// Package errors defines the coded errors shared by the calculator, its
// storage and its loaders.
package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Code categorizes an error
type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeInvalidArgument  Code = "invalid_argument"
	CodeNotFound         Code = "not_found"
	CodeAlreadyExists    Code = "already_exists"
	CodeInternal         Code = "internal"
	CodeValidation       Code = "validation"
	CodeInvalidNumber    Code = "invalid_number"
	CodeUnknownWeaponSet Code = "unknown_weapon_set"
)

// Error carries a code, an optional cause and metadata such as the
// character or stat key involved
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a metadata value and returns the same error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a message. The code and metadata of a wrapped *Error
// carry over; foreign errors get CodeUnknown.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeUnknown, Message: message, Cause: err}
	var calcErr *Error
	if errors.As(err, &calcErr) {
		wrapped.Code = calcErr.Code
		wrapped.Meta = maps.Clone(calcErr.Meta)
	}
	return wrapped
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and forces code
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

func InvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

func InvalidArgumentf(format string, args ...any) *Error {
	return newf(CodeInvalidArgument, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return newf(CodeAlreadyExists, format, args...)
}

func Internalf(format string, args ...any) *Error {
	return newf(CodeInternal, format, args...)
}

func Validationf(format string, args ...any) *Error {
	return newf(CodeValidation, format, args...)
}

func InvalidNumberf(format string, args ...any) *Error {
	return newf(CodeInvalidNumber, format, args...)
}

func UnknownWeaponSetf(format string, args ...any) *Error {
	return newf(CodeUnknownWeaponSet, format, args...)
}

// GetCode returns the code of the outermost *Error in err's chain, or
// CodeUnknown
func GetCode(err error) Code {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the metadata of the outermost *Error in err's chain
func GetMeta(err error) map[string]any {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Meta
	}
	return nil
}

func IsNotFound(err error) bool         { return GetCode(err) == CodeNotFound }
func IsInvalidArgument(err error) bool  { return GetCode(err) == CodeInvalidArgument }
func IsAlreadyExists(err error) bool    { return GetCode(err) == CodeAlreadyExists }
func IsValidation(err error) bool       { return GetCode(err) == CodeValidation }
func IsInvalidNumber(err error) bool    { return GetCode(err) == CodeInvalidNumber }
func IsUnknownWeaponSet(err error) bool { return GetCode(err) == CodeUnknownWeaponSet }
