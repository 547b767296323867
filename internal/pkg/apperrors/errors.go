package apperrors

import "errors"

// Common errors
var (
	ErrBadRequest = errors.New("bad request")
)

// Event errors
var (
	ErrEventNotFound = errors.New("event not found")
)

// Photo upload errors
var (
	// ErrBucketMissing is returned when the configured storage bucket does not exist.
	ErrBucketMissing = errors.New("storage bucket missing")
	// ErrObjectExists is returned when an upload would overwrite an existing object.
	// Object keys carry a time+random component, so this should never happen.
	ErrObjectExists = errors.New("storage object already exists")
	// ErrUploadFailed covers any other upload failure.
	ErrUploadFailed = errors.New("photo upload failed")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewBucketMissingError creates a custom error carrying the remediation message
// for a missing storage bucket.
func NewBucketMissingError(message string) error {
	return &CustomError{
		Err:     ErrBucketMissing,
		Message: message,
	}
}

// NewUploadFailedError creates a custom error for a generic upload failure.
func NewUploadFailedError(message string) error {
	return &CustomError{
		Err:     ErrUploadFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
