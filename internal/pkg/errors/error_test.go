package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		code    int
		status  int
		message string
	}{
		{Success, http.StatusOK, "Success"},
		{ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
		{ErrIngestEmptyInput, http.StatusBadRequest, "No text provided"},
		{ErrIngestInvalidFileType, http.StatusBadRequest, "Unsupported file type"},
		{ErrIngestFileTooLarge, http.StatusRequestEntityTooLarge, "File size exceeds limit"},
		{ErrIngestExtractionFailed, http.StatusUnprocessableEntity, "Text extraction failed"},
		{ErrIngestValidationFailed, http.StatusUnprocessableEntity, "Chunk validation failed"},
		// unknown codes fall back to internal error
		{999999, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
			assert.Equal(t, tt.message, GetMessage(tt.code))
		})
	}

	assert.True(t, IsSuccess(Success))
	assert.True(t, IsClientError(ErrIngestEmptyInput))
	assert.True(t, IsServerError(ErrIngestChunkingFailed))
	assert.False(t, IsServerError(ErrInvalidParams))
}

func TestAppError(t *testing.T) {
	err := New(ErrIngestInvalidFileType, "xls")
	assert.Equal(t, "[4002] Unsupported file type: xls", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Equal(t, "Unsupported file type: xls", FormatError(err.Code, GetDetails(err)))

	assert.Equal(t, "[1000] Internal server error", New(ErrInternalServer).Error())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternalServer))

	cause := errors.New("failed to open PDF: broken xref")
	err := Wrap(cause, ErrIngestExtractionFailed)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrIngestExtractionFailed))
	assert.False(t, Is(err, ErrInternalServer))
	assert.Equal(t, ErrIngestExtractionFailed, ExtractCode(fmt.Errorf("load: %w", err)))
	assert.Equal(t, cause.Error(), GetDetails(err))

	// rewrapping keeps the code and leaves the inner error untouched
	again := Wrap(fmt.Errorf("batch: %w", err), ErrInternalServer, "devis.pdf")
	assert.Equal(t, ErrIngestExtractionFailed, again.Code)
	assert.Equal(t, "devis.pdf", GetDetails(again))
	assert.Equal(t, cause.Error(), GetDetails(err))
	assert.ErrorIs(t, again, cause)
}

func TestGetDetails(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("plain"), "plain"},
		{"details", New(ErrIngestInvalidFileType, "xls"), "xls"},
		{"cause", Wrap(errors.New("EOF"), ErrIngestExtractionFailed), "EOF"},
		{"bare app error", New(ErrIngestEmptyInput), ""},
		{"wrapped bare app error", fmt.Errorf("upload: %w", New(ErrIngestEmptyInput)), ""},
		{"wrapped app error with details", fmt.Errorf("upload: %w", NewFileTooLargeError(10, 5)), "10 bytes, limit is 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDetails(tt.err))
		})
	}
}

func TestExtractCode_PlainError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, ExtractCode(errors.New("plain")))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		code    int
		details string
	}{
		{"invalid request", NewInvalidRequestError("field 'file' is required"), ErrInvalidParams, "field 'file' is required"},
		{"empty input", NewEmptyInputError(), ErrIngestEmptyInput, ""},
		{"invalid chunking", NewInvalidChunkingError("unknown strategy words"), ErrIngestInvalidParams, "unknown strategy words"},
		{"unsupported file type", NewUnsupportedFileTypeError("xls"), ErrIngestInvalidFileType, "xls"},
		{"file too large", NewFileTooLargeError(2048, 1024), ErrIngestFileTooLarge, "2048 bytes, limit is 1024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, GetMessage(tt.code), tt.err.Message)
			assert.Equal(t, tt.details, tt.err.Details)
		})
	}
}

func TestNewExtractionError(t *testing.T) {
	cause := errors.New("invalid JSON format")
	err := NewExtractionError("json", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus())
	assert.Equal(t, "json: invalid JSON format", GetDetails(err))
	assert.Equal(t, "Text extraction failed: json: invalid JSON format", FormatError(err.Code, GetDetails(err)))
}
