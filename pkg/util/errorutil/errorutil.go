package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Error codes surfaced in JSON error bodies.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewDuplicateEmail is a 400, not a 409: existing web clients check for 400.
func NewDuplicateEmail(err error) error {
	de := NewDomainError(CodeDuplicateEmail, "email already registered", http.StatusBadRequest, nil)
	de.Err = err
	return de
}

// NewInvalidCredentials never says which half of the credentials was wrong.
func NewInvalidCredentials(err error) error {
	de := NewDomainError(CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized, nil)
	de.Err = err
	return de
}

func NewTooManyAttempts(retryAfterSeconds int) error {
	var details map[string]any
	if retryAfterSeconds > 0 {
		details = map[string]any{"retry_after_seconds": retryAfterSeconds}
	}
	return NewDomainError(CodeTooManyAttempts, "too many failed login attempts", http.StatusTooManyRequests, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything unrecognized
// becomes an INTERNAL_ERROR so store details never reach the client.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		nf := NewNotFound("resource", nil).(*DomainError)
		nf.Err = err
		return nf
	}
	return NewInternalError(err).(*DomainError)
}
