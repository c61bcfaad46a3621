package errors

import (
	"errors"
	"fmt"
)

// AppError is a coded ingestion error. Code selects the HTTP status and the
// public message from the code table; Details and Err carry the specifics.
type AppError struct {
	Code    int
	Message string
	Err     error
	Details string
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	case e.Details != "":
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status the code maps to.
func (e *AppError) HTTPStatus() int {
	return GetHTTPStatus(e.Code)
}

// New creates an AppError for code with optional details.
func New(code int, details ...string) *AppError {
	return &AppError{
		Code:    code,
		Message: GetMessage(code),
		Details: firstDetail(details),
	}
}

// Wrap attaches code to err. An err that already carries an AppError keeps
// its code; given details replace the existing ones on a copy.
func Wrap(err error, code int, details ...string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		wrapped := *appErr
		if d := firstDetail(details); d != "" {
			wrapped.Details = d
		}
		return &wrapped
	}

	return &AppError{
		Code:    code,
		Message: GetMessage(code),
		Err:     err,
		Details: firstDetail(details),
	}
}

// Is reports whether err carries an AppError with code.
func Is(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ExtractCode returns the code err carries, ErrInternalServer otherwise.
func ExtractCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServer
}

// GetDetails returns the client-facing details of err. For an AppError
// anywhere in the chain that is its details or cause only; text added by
// outer wrappers is never exposed.
func GetDetails(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Details != "" {
			return appErr.Details
		}
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
		return ""
	}
	return err.Error()
}

func firstDetail(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

// NewInvalidRequestError reports a request body or form that cannot be read.
func NewInvalidRequestError(details string) *AppError {
	return New(ErrInvalidParams, details)
}

// NewEmptyInputError reports a request without text to process.
func NewEmptyInputError() *AppError {
	return New(ErrIngestEmptyInput)
}

// NewInvalidChunkingError reports chunker settings that cannot be honored.
func NewInvalidChunkingError(details string) *AppError {
	return New(ErrIngestInvalidParams, details)
}

// NewUnsupportedFileTypeError reports a file type no loader handles.
func NewUnsupportedFileTypeError(fileType string) *AppError {
	return New(ErrIngestInvalidFileType, fileType)
}

// NewFileTooLargeError reports an upload above limit bytes.
func NewFileTooLargeError(size, limit int64) *AppError {
	return New(ErrIngestFileTooLarge, fmt.Sprintf("%d bytes, limit is %d", size, limit))
}

// NewExtractionError tags a loader failure for fileType.
func NewExtractionError(fileType string, err error) *AppError {
	return &AppError{
		Code:    ErrIngestExtractionFailed,
		Message: GetMessage(ErrIngestExtractionFailed),
		Err:     err,
		Details: fmt.Sprintf("%s: %v", fileType, err),
	}
}
