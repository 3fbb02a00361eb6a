package apperrors

import "fmt"

// ErrorType represents different categories of pipeline errors
type ErrorType string

const (
	ErrorTypeStream     ErrorType = "stream"
	ErrorTypeFraming    ErrorType = "framing"
	ErrorTypeProcessing ErrorType = "processing"
	ErrorTypeOCR        ErrorType = "ocr"
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewStreamError creates an error for capture source failures
func NewStreamError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeStream, Message: message, Cause: cause}
}

// NewProcessingError creates an error for frame processing failures
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeProcessing, Message: message, Cause: cause}
}

// NewOCRError creates an error for OCR engine failures
func NewOCRError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeOCR, Message: message, Cause: cause}
}

// NewTransportError creates an error for client delivery failures
func NewTransportError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeTransport, Message: message, Cause: cause}
}

// NewValidationError creates an error for configuration validation failures
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewInternalError creates an error for unexpected internal failures
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Cause: cause}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}
