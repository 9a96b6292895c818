package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds reported to API clients.
const (
	KindParameter = "parameter"
	KindEncoding  = "encoding"
	KindInternal  = "internal"
)

// ParameterError represents a malformed or out-of-range request parameter
type ParameterError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Message)
}

// Parameter builds a ParameterError with a formatted message.
func Parameter(field, format string, args ...any) error {
	return &ParameterError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// EncodingError represents a failure to turn the payload into a QR symbol
type EncodingError struct {
	Message string
	Err     error
}

// Error returns the error message
func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot encode data: %s: %v", e.Message, e.Err)
	}
	return "cannot encode data: " + e.Message
}

// Unwrap returns the underlying encoder error.
func (e *EncodingError) Unwrap() error { return e.Err }

// InternalError represents an unexpected failure while rendering or encoding
// output. Its detail is logged, never returned to clients.
type InternalError struct {
	Op  string
	Err error
}

// Error returns the error message
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *InternalError) Unwrap() error { return e.Err }

// Internal wraps err as an InternalError for operation op.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InternalError{Op: op, Err: err}
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Section string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
}

// Kind classifies err by the first typed error found in its chain.
// Unknown errors are treated as internal.
func Kind(err error) string {
	var pe *ParameterError
	if stderrors.As(err, &pe) {
		return KindParameter
	}
	var ee *EncodingError
	if stderrors.As(err, &ee) {
		return KindEncoding
	}
	return KindInternal
}

// PublicMessage returns the text that may be shown to a client for err.
func PublicMessage(err error) string {
	switch Kind(err) {
	case KindParameter, KindEncoding:
		return err.Error()
	default:
		return "failed to generate QR code"
	}
}
