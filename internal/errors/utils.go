package errors

import (
	"context"
	"errors"
	"os"
	"strings"
)

// standard error codes
const (
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeValidationError = "validation_error"
	CodeServerError     = "server_error"
	CodeBadRequest      = "bad_request"
	CodeConflict        = "conflict"
)

// error categories for classification
const (
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryConflict   = "conflict"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

// analyzes an error and returns its code, category and sanitized message
func Classify(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CodeServerError, CategoryUnknown, ""}
	}

	isProduction := os.Getenv("ENVIRONMENT") == "production"

	switch {
	case errors.Is(err, ErrValidation):
		return ErrorInfo{CodeValidationError, CategoryValidation, ternary(isProduction, "validation failed", err.Error())}

	case errors.Is(err, ErrAuthorization):
		return ErrorInfo{CodeForbidden, CategoryAuth, ternary(isProduction, "permission denied", err.Error())}

	case errors.Is(err, ErrNotFound):
		return ErrorInfo{CodeNotFound, CategoryNotFound, ternary(isProduction, "resource not found", err.Error())}

	case errors.Is(err, ErrConflict):
		return ErrorInfo{CodeConflict, CategoryConflict, ternary(isProduction, "resource conflict", err.Error())}

	case errors.Is(err, context.DeadlineExceeded):
		return ErrorInfo{CodeServerError, CategoryTimeout, ternary(isProduction, "request timed out", err.Error())}

	case errors.Is(err, context.Canceled):
		return ErrorInfo{CodeServerError, CategoryTimeout, ternary(isProduction, "request canceled", err.Error())}
	}

	// fallback to string matching for errors from outside the taxonomy
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return ErrorInfo{CodeServerError, CategoryTimeout, ternary(isProduction, "request timed out", err.Error())}
	}

	return ErrorInfo{CodeServerError, CategoryUnknown, ternary(isProduction, "an error occurred", err.Error())}
}

// reports whether err belongs to the locally recoverable taxonomy
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrAuthorization) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict)
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
