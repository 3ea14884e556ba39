package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/internal/schema"
)

// Error codes for MCP tool responses.
const (
	ErrCodeUnsupportedVersion = "UNSUPPORTED_VERSION"
	ErrCodeUnsupportedFeed    = "UNSUPPORTED_FEED"
	ErrCodeDocumentDecode     = "DOCUMENT_DECODE"
	ErrCodeSchemaLoad         = "SCHEMA_LOAD"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternal           = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapValidationError converts a registry or document error to a coded error.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var uv *registry.UnsupportedVersionError
	var uf *registry.UnsupportedFeedError
	switch {
	case errors.As(err, &uv):
		msg := fmt.Sprintf("GBFS version %q is not supported", uv.Version)
		if len(uv.Supported) > 0 {
			msg += " (supported: " + strings.Join(uv.Supported, ", ") + ")"
		}
		coded = &CodedError{Code: ErrCodeUnsupportedVersion, Message: msg}
	case errors.As(err, &uf):
		coded = &CodedError{
			Code:    ErrCodeUnsupportedFeed,
			Message: fmt.Sprintf("GBFS %s has no schema for feed %q; call gbfs_list_versions for the available feeds", uf.Version, uf.Feed),
		}
	case errors.Is(err, schema.ErrDocumentDecode):
		coded = &CodedError{Code: ErrCodeDocumentDecode, Message: "document could not be decoded as a GBFS feed file", Cause: err}
	case errors.Is(err, registry.ErrSchemaLoad):
		coded = &CodedError{Code: ErrCodeSchemaLoad, Message: "schemas could not be loaded", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
	}

	slog.Warn("validation request failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
