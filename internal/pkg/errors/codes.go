package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007
	ErrServiceUnavail  = 1008

	// Ingestion errors (4000-4999)
	ErrIngestEmptyInput       = 4000
	ErrIngestInvalidParams    = 4001
	ErrIngestInvalidFileType  = 4002
	ErrIngestFileTooLarge     = 4003
	ErrIngestExtractionFailed = 4004
	ErrIngestChunkingFailed   = 4005
	ErrIngestValidationFailed = 4006
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	// Ingestion errors
	ErrIngestEmptyInput:       {ErrIngestEmptyInput, http.StatusBadRequest, "No text provided"},
	ErrIngestInvalidParams:    {ErrIngestInvalidParams, http.StatusBadRequest, "Invalid chunking parameters"},
	ErrIngestInvalidFileType:  {ErrIngestInvalidFileType, http.StatusBadRequest, "Unsupported file type"},
	ErrIngestFileTooLarge:     {ErrIngestFileTooLarge, http.StatusRequestEntityTooLarge, "File size exceeds limit"},
	ErrIngestExtractionFailed: {ErrIngestExtractionFailed, http.StatusUnprocessableEntity, "Text extraction failed"},
	ErrIngestChunkingFailed:   {ErrIngestChunkingFailed, http.StatusInternalServerError, "Chunking failed"},
	ErrIngestValidationFailed: {ErrIngestValidationFailed, http.StatusUnprocessableEntity, "Chunk validation failed"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsSuccess checks if the code represents success
func IsSuccess(code int) bool {
	return code == Success
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
