package domain

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrDuplicateSlug      = errors.New("a product with this slug already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized covers a missing, malformed, expired or non-admin
	// credential. Callers never learn which.
	ErrUnauthorized = errors.New("authentication required or insufficient permissions")
)

// Validation error codes reported to API callers.
const (
	CodeMissingField    = "MISSING_REQUIRED_FIELD"
	CodeMissingFields   = "MISSING_REQUIRED_FIELDS"
	CodeInvalidPrice    = "INVALID_PRICE"
	CodeInvalidCategory = "INVALID_CATEGORY"
	CodeInvalidField    = "INVALID_FIELD"
	CodeInvalidID       = "INVALID_ID"
	CodeInvalidQuantity = "INVALID_QUANTITY"
)

// ValidationError reports a missing or malformed field. No mutation is
// attempted when one is returned.
type ValidationError struct {
	Field string
	Code  string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(field, code, msg string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Msg: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
