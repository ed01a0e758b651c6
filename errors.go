package pasetox

import "fmt"

// ErrorCode represents token error categories.
type ErrorCode string

const (
	ErrCodeInvalidValue      ErrorCode = "invalid_value"
	ErrCodeSerialization     ErrorCode = "serialization_error"
	ErrCodeInvalidKey        ErrorCode = "invalid_key"
	ErrCodeInvalidClaim      ErrorCode = "invalid_claim"
	ErrCodeTokenCreation     ErrorCode = "token_creation_failed"
	ErrCodeVerification      ErrorCode = "verification_failed"
	ErrCodeExpired           ErrorCode = "token_expired"
	ErrCodeNotYetValid       ErrorCode = "token_not_yet_valid"
	ErrCodeInvalidIssuer     ErrorCode = "invalid_issuer"
	ErrCodeInvalidAudience   ErrorCode = "invalid_audience"
	ErrCodeSubjectNotAllowed ErrorCode = "subject_not_allowed"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeInvalidValue:      "Invalid claim value",
	ErrCodeSerialization:     "Serialization error",
	ErrCodeInvalidKey:        "Invalid key",
	ErrCodeInvalidClaim:      "Invalid claim",
	ErrCodeTokenCreation:     "Token creation failed",
	ErrCodeVerification:      "Token verification failed",
	ErrCodeExpired:           "Token expired",
	ErrCodeNotYetValid:       "Token not yet valid",
	ErrCodeInvalidIssuer:     "Invalid issuer",
	ErrCodeInvalidAudience:   "Invalid audience",
	ErrCodeSubjectNotAllowed: "Subject not allowed",
}

// Error wraps token errors with a stable code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Message
	if base == "" {
		base = string(e.Code)
	}
	if e.Err == nil {
		return base
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the ErrorCode from an error returned by this package.
// It returns an empty code for nil or foreign errors.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
