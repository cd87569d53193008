package errors

import "net/http"

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Relational bridge errors
const (
	// ErrCodeResourceUnavailable indicates the application-private data directory
	// could not be resolved or created.
	ErrCodeResourceUnavailable ErrorCode = "RESOURCE_UNAVAILABLE"
	// ErrCodeIO indicates a filesystem or connection-open failure.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeQuery indicates statement preparation, binding, or execution failed.
	ErrCodeQuery ErrorCode = "QUERY_ERROR"
	// ErrCodeValue indicates a request value cannot be coerced to a store value.
	ErrCodeValue ErrorCode = "VALUE_ERROR"
	// ErrCodeRange indicates a numeric request value exceeds the store's range.
	ErrCodeRange ErrorCode = "RANGE_ERROR"
)

// Argument errors
const (
	// ErrCodeInvalidArgument indicates an empty or malformed argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Transcription errors
const (
	// ErrCodeEngineLoad indicates the speech model failed to load.
	ErrCodeEngineLoad ErrorCode = "ENGINE_LOAD_ERROR"
	// ErrCodeNotInitialized indicates transcription was requested before a model was loaded.
	ErrCodeNotInitialized ErrorCode = "NOT_INITIALIZED"
	// ErrCodeInvalidAudioFormat indicates the audio encoding does not match the contract.
	ErrCodeInvalidAudioFormat ErrorCode = "INVALID_AUDIO_FORMAT"
	// ErrCodeAudioRead indicates the audio container or its samples could not be read.
	ErrCodeAudioRead ErrorCode = "AUDIO_READ_ERROR"
	// ErrCodeInference indicates the engine failed during decoding or segment extraction.
	ErrCodeInference ErrorCode = "INFERENCE_ERROR"
)

// ErrCodeInternal indicates an unexpected failure such as a recovered panic.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var httpStatusByCode = map[ErrorCode]int{
	ErrCodeResourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeIO:                  http.StatusInternalServerError,
	ErrCodeQuery:               http.StatusUnprocessableEntity,
	ErrCodeValue:               http.StatusBadRequest,
	ErrCodeRange:               http.StatusBadRequest,
	ErrCodeInvalidArgument:     http.StatusBadRequest,
	ErrCodeEngineLoad:          http.StatusInternalServerError,
	ErrCodeNotInitialized:      http.StatusConflict,
	ErrCodeInvalidAudioFormat:  http.StatusBadRequest,
	ErrCodeAudioRead:           http.StatusInternalServerError,
	ErrCodeInference:           http.StatusInternalServerError,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// HTTPStatusForCode returns the recommended HTTP status for code.
// Unknown codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
