package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnknownTemplate indicates a template id outside the supported set.
var ErrUnknownTemplate = errors.New("unknown invoice template")

// ErrExportInProgress is returned when an export is requested while another is still running.
var ErrExportInProgress = errors.New("an export is already in progress")

// ErrExportFailed wraps capture or encoding failures of the export pipeline.
var ErrExportFailed = errors.New("invoice export failed")

// ErrSubmissionFailed wraps backend rejections and transport failures on submit.
var ErrSubmissionFailed = errors.New("invoice submission failed")

// ErrUploadFailed wraps logo upload failures.
var ErrUploadFailed = errors.New("upload failed")

// ErrNotConfigured indicates an optional collaborator (backend, mailer) was not configured.
var ErrNotConfigured = errors.New("not configured")

// AppError carries an HTTP status alongside a user-facing message.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldError describes one invalid field, addressed by its JSON path (e.g. "client.email").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is an ordered set of field errors. It matches ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the errors keyed by field path, for inline display.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		if _, exists := out[fe.Field]; !exists {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
