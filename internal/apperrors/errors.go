package apperrors

import (
	"errors"
	"fmt"
)

type ErrorCode int

// System errors (1000-1999)
const (
	ErrInternal ErrorCode = 1000 + iota
	ErrStore
)

// Authentication errors (2000-2999)
const (
	ErrUnauthorized ErrorCode = 2000 + iota
	ErrForbidden
)

// Request errors (3000-3999)
const (
	ErrValidation ErrorCode = 3000 + iota
	ErrNotFound
	ErrConflict
	ErrRateLimited
)

type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NotFound(message string) *AppError     { return New(ErrNotFound, message) }
func Validation(message string) *AppError   { return New(ErrValidation, message) }
func Unauthorized(message string) *AppError { return New(ErrUnauthorized, message) }
func Forbidden(message string) *AppError    { return New(ErrForbidden, message) }
func Conflict(message string) *AppError     { return New(ErrConflict, message) }

func Store(message string, err error) *AppError {
	return Wrap(ErrStore, message, err)
}

// CodeOf returns the code of the first AppError in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
