package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an application error category in responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	ErrorCode_TRANSCRIPT_REQUIRED       ErrorCode = 2000
	ErrorCode_TRANSCRIPT_NOT_FOUND      ErrorCode = 2001
	ErrorCode_EXTRACTION_FAILED         ErrorCode = 2002
	ErrorCode_EMBEDDING_FAILED          ErrorCode = 2003
	ErrorCode_TRANSCRIPTION_FAILED      ErrorCode = 2004
	ErrorCode_TRANSCRIPTION_UNAVAILABLE ErrorCode = 2005

	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 3000
	ErrorCode_STORAGE_FAILED        ErrorCode = 3001
)

// String returns the code name used in error envelopes
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_TRANSCRIPT_REQUIRED:
		return "TRANSCRIPT_REQUIRED"
	case ErrorCode_TRANSCRIPT_NOT_FOUND:
		return "TRANSCRIPT_NOT_FOUND"
	case ErrorCode_EXTRACTION_FAILED:
		return "EXTRACTION_FAILED"
	case ErrorCode_EMBEDDING_FAILED:
		return "EMBEDDING_FAILED"
	case ErrorCode_TRANSCRIPTION_FAILED:
		return "TRANSCRIPTION_FAILED"
	case ErrorCode_TRANSCRIPTION_UNAVAILABLE:
		return "TRANSCRIPTION_UNAVAILABLE"
	case ErrorCode_DB_TRANSACTION_FAILED:
		return "DB_TRANSACTION_FAILED"
	case ErrorCode_STORAGE_FAILED:
		return "STORAGE_FAILED"
	default:
		return "UNKNOWN"
	}
}

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid request payload",
	}
}

// Ingestion and retrieval errors

func ErrTranscriptRequired() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_TRANSCRIPT_REQUIRED,
		Message:  "transcript required",
	}
}

func ErrTranscriptNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TRANSCRIPT_NOT_FOUND,
		Message:  "Transcript not found",
	}
}

func ErrExtractionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_EXTRACTION_FAILED,
		Message:  "Insight extraction failed",
	}
}

func ErrEmbeddingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_EMBEDDING_FAILED,
		Message:  "Embedding generation failed",
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

func ErrTranscriptionUnavailable() AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_TRANSCRIPTION_UNAVAILABLE,
		Message:  "Audio transcription is not configured",
	}
}

// Infrastructure errors

func ErrDBTransaction(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TRANSACTION_FAILED,
		Message:  "Database transaction failed",
	}
}

func ErrStorageFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  "Storage operation failed",
	}
}
