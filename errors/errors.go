// Package errors provides the tagged error type shared by the relational
// bridge and the transcription service. Every failure carries a code from a
// closed taxonomy and a human-readable message; callers only see the text
// form at the outer boundary.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with the status derived from code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: HTTPStatusForCode(code),
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new AppError whose message is prefixed onto the cause's text.
// A nil cause yields a plain New.
func Wrap(code ErrorCode, message string, cause error) *AppError {
	if cause == nil {
		return New(code, message)
	}
	return New(code, fmt.Sprintf("%s: %v", message, cause)).WithCause(cause)
}

// Is reports whether err is, or wraps, an AppError carrying code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternal if there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// --- Constructors ---

// ResourceUnavailable reports that the application-private data directory is unusable.
func ResourceUnavailable(reason string, cause error) *AppError {
	return Wrap(ErrCodeResourceUnavailable, reason, cause)
}

// IO reports a filesystem or connection-open failure.
func IO(reason string, cause error) *AppError {
	return Wrap(ErrCodeIO, reason, cause)
}

// Query reports a statement preparation, binding, or execution failure.
func Query(reason string, cause error) *AppError {
	return Wrap(ErrCodeQuery, reason, cause)
}

// Value reports a request value that cannot be losslessly coerced.
func Value(reason string) *AppError {
	return New(ErrCodeValue, reason)
}

// Range reports a numeric request value outside the supported range.
func Range(reason string) *AppError {
	return New(ErrCodeRange, reason)
}

// InvalidArgument reports an empty or malformed argument.
func InvalidArgument(field, reason string) *AppError {
	err := New(ErrCodeInvalidArgument, reason)
	if field != "" {
		err.WithDetail("field", field)
	}
	return err
}

// EngineLoad reports a speech model load failure.
func EngineLoad(cause error) *AppError {
	return Wrap(ErrCodeEngineLoad, "speech model could not be loaded", cause)
}

// NotInitialized reports a transcription attempt before any successful load.
func NotInitialized() *AppError {
	return New(ErrCodeNotInitialized, "speech engine has not been initialized")
}

// InvalidAudioFormat reports an audio stream whose encoding violates the contract.
// field names the offending property and actual is the value found.
func InvalidAudioFormat(field string, actual any, message string) *AppError {
	return New(ErrCodeInvalidAudioFormat, message).
		WithDetail("field", field).
		WithDetail("actual", actual)
}

// AudioRead reports an unreadable audio container or sample stream.
func AudioRead(reason string, cause error) *AppError {
	return Wrap(ErrCodeAudioRead, reason, cause)
}

// Inference reports an engine failure during decoding or segment extraction.
func Inference(reason string, cause error) *AppError {
	return Wrap(ErrCodeInference, reason, cause)
}

// Internal reports an unexpected failure.
func Internal(cause error) *AppError {
	return Wrap(ErrCodeInternal, "an unexpected error occurred", cause)
}
