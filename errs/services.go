package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Asset upload errors
var (
	ErrNoFileUploaded      = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUploadFailed        = errors.New("upload failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

func NewNoFileUploadedError(field string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNoFileUploaded,
		Details:    "No file uploaded",
		Field:      field,
	}
}

func NewFileTooLargeError(maxBytes int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrFileTooLarge,
		Details:    fmt.Sprintf("File exceeds the %d MB limit", maxBytes/(1<<20)),
		Field:      "file",
	}
}

func NewUnsupportedFileTypeError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsupportedFileType,
		Details:    message,
		Field:      "file",
	}
}

// NewUploadFailedError hides the asset host's error from the client; cause is
// only logged.
func NewUploadFailedError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUploadFailed,
		Details:    message,
		Cause:      cause,
	}
}

// Configuration & Environment Error Constructors
func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s must be set", key),
		Field:      key,
	}
}

func NewConfigInvalidError(key, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("%s is invalid: %s", key, reason),
		Field:      key,
	}
}
