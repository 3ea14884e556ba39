package tools

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/internal/schema"
)

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"unsupported version", &registry.UnsupportedVersionError{Version: "9.9", Supported: []string{"2.3", "3.0"}}, ErrCodeUnsupportedVersion},
		{"unsupported feed", &registry.UnsupportedFeedError{Version: "3.0", Feed: "free_bike_status"}, ErrCodeUnsupportedFeed},
		{"decode", &schema.DocumentDecodeError{Cause: errors.New("unexpected EOF")}, ErrCodeDocumentDecode},
		{"schema load", fmt.Errorf("resolving: %w", &registry.SchemaLoadError{Version: "2.3", Feed: "gbfs", Cause: errors.New("bad json")}), ErrCodeSchemaLoad},
		{"other", errors.New("boom"), ErrCodeInternal},
		{"already coded", ErrInvalidInput("nope"), ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapValidationError(tt.err)
			var coded *CodedError
			require.ErrorAs(t, err, &coded)
			assert.Equal(t, tt.code, coded.Code)
		})
	}
}

func TestWrapValidationError_Nil(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))
}

func TestWrapValidationError_ListsSupportedVersions(t *testing.T) {
	err := WrapValidationError(&registry.UnsupportedVersionError{Version: "9.9", Supported: []string{"2.3", "3.0"}})
	assert.Contains(t, err.Error(), "supported: 2.3, 3.0")
}

func TestCodedError_Unwrap(t *testing.T) {
	cause := &schema.DocumentDecodeError{Cause: errors.New("unexpected EOF")}
	err := WrapValidationError(cause)
	assert.True(t, errors.Is(err, schema.ErrDocumentDecode))
}
