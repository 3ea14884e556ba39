package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const freeBikeStatusWithErrors = `{
  "last_updated": 1640887163,
  "ttl": 0,
  "version": "2.3",
  "data": {
    "bikes": [
      {"bike_id": "ghi799", "is_reserved": false, "is_disabled": false},
      {"bike_id": "jkl012", "lat": 12.34, "lon": 56.78, "is_reserved": "no", "is_disabled": false}
    ]
  }
}`

const freeBikeStatusValid = `{
  "last_updated": 1640887163,
  "ttl": 0,
  "version": "2.3",
  "data": {
    "bikes": [
      {"bike_id": "ghi799", "lat": 12.34, "lon": 56.78, "is_reserved": false, "is_disabled": false}
    ]
  }
}`

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var coded *CodedError
	require.True(t, errors.As(err, &coded), "expected CodedError, got %T: %v", err, err)
	assert.Equal(t, code, coded.Code)
}

func TestToolValidateFile_ReportsErrors(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Version:  "2.3",
		Feed:     "free_bike_status",
		Document: freeBikeStatusWithErrors,
	})
	require.NoError(t, err)

	assert.Equal(t, "2.3", out.Version)
	assert.Equal(t, "free_bike_status", out.Feed)
	assert.False(t, out.Valid)
	assert.False(t, out.VersionDetected)
	require.NotNil(t, out.Result)
	assert.Equal(t, 3, out.Result.ErrorsCount)
	for _, e := range out.Result.Errors {
		assert.NotEmpty(t, e.SchemaPath)
	}
	assert.Nil(t, out.Filtered)
}

func TestToolValidateFile_Valid(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Version:  "v2.3.0",
		Feed:     "free_bike_status.json",
		Document: freeBikeStatusValid,
	})
	require.NoError(t, err)

	assert.True(t, out.Valid)
	assert.Equal(t, "2.3", out.Version)
	assert.Equal(t, "free_bike_status", out.Feed)
	assert.Equal(t, 0, out.Result.ErrorsCount)
	assert.NotNil(t, out.Result.Errors)
}

func TestToolValidateFile_DetectsVersion(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Feed:     "free_bike_status",
		Document: freeBikeStatusValid,
	})
	require.NoError(t, err)
	assert.Equal(t, "2.3", out.Version)
	assert.True(t, out.VersionDetected)
	assert.True(t, out.Valid)
}

func TestToolValidateFile_DefaultVersion(t *testing.T) {
	d := newTestDeps(t)
	d.Config.DefaultVersion = "3.0"

	// the document's own version field wins over the configured default
	_, out, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Feed:     "free_bike_status",
		Document: freeBikeStatusValid,
	})
	require.NoError(t, err)
	assert.Equal(t, "2.3", out.Version)
	assert.True(t, out.VersionDetected)
	assert.True(t, out.Valid)

	// the default applies when the document declares none
	_, out, err = ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Feed:     "station_status",
		Document: `{"ttl": 0}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "3.0", out.Version)
	assert.False(t, out.VersionDetected)
	assert.False(t, out.Valid)
}

func TestToolValidateFile_NonObjectDocument(t *testing.T) {
	d := newTestDeps(t)

	_, _, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Feed:     "free_bike_status",
		Document: `[{"version": "2.3"}]`,
	})
	requireCode(t, err, ErrCodeDocumentDecode)
}

func TestToolValidateFile_LegacyDocumentUnsupported(t *testing.T) {
	d := newTestDeps(t)

	_, _, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Feed:     "free_bike_status",
		Document: `{"last_updated": 1434054678, "ttl": 0, "data": {"bikes": []}}`,
	})
	requireCode(t, err, ErrCodeUnsupportedVersion)
	assert.Contains(t, err.Error(), `"1.0"`)
}

func TestToolValidateFile_ErrorsFilter(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Version:      "2.3",
		Feed:         "free_bike_status",
		Document:     freeBikeStatusWithErrors,
		ErrorsFilter: `.[] | select(.keyword == "type") | .violationPath`,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"#/data/bikes/1/is_reserved"}, out.Filtered)
	assert.Empty(t, out.FilterErrors)
	assert.Equal(t, 3, out.Result.ErrorsCount)
}

func TestToolValidateFile_ErrorsFilterLimit(t *testing.T) {
	d := newTestDeps(t)
	d.Config.FilterMaxResults = 1

	_, out, err := ToolValidateFile(d)(context.Background(), nil, ValidateFileInput{
		Version:      "2.3",
		Feed:         "free_bike_status",
		Document:     freeBikeStatusWithErrors,
		ErrorsFilter: `.[] | .keyword`,
	})
	require.NoError(t, err)
	assert.Len(t, out.Filtered, 1)
	assert.True(t, out.FilterTruncated)
}

func TestToolValidateFile_InvalidInput(t *testing.T) {
	d := newTestDeps(t)

	tests := []struct {
		name  string
		input ValidateFileInput
		code  string
	}{
		{"missing feed", ValidateFileInput{Version: "2.3", Document: `{}`}, ErrCodeInvalidInput},
		{"missing document", ValidateFileInput{Version: "2.3", Feed: "free_bike_status"}, ErrCodeInvalidInput},
		{"bad filter", ValidateFileInput{Version: "2.3", Feed: "free_bike_status", Document: `{}`, ErrorsFilter: ".[] |"}, ErrCodeInvalidInput},
		{"unsupported version", ValidateFileInput{Version: "9.9", Feed: "free_bike_status", Document: `{}`}, ErrCodeUnsupportedVersion},
		{"unsupported feed", ValidateFileInput{Version: "3.0", Feed: "free_bike_status", Document: `{}`}, ErrCodeUnsupportedFeed},
		{"not json", ValidateFileInput{Version: "2.3", Feed: "free_bike_status", Document: `{"bikes": [`}, ErrCodeDocumentDecode},
		{"not json without version", ValidateFileInput{Feed: "free_bike_status", Document: `{"bikes": [`}, ErrCodeDocumentDecode},
		{"version of wrong type", ValidateFileInput{Feed: "free_bike_status", Document: `{"version": true}`}, ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ToolValidateFile(d)(context.Background(), nil, tt.input)
			requireCode(t, err, tt.code)
		})
	}
}
