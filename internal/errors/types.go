package errors

import "errors"

// chat state taxonomy; wrap with fmt.Errorf("%w: ...") to add context
var (
	ErrValidation    = errors.New("validation failed")
	ErrAuthorization = errors.New("not permitted")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
)

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "forbidden", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

type ErrorInfo struct {
	Code      string
	Category  string
	Sanitized string
}
