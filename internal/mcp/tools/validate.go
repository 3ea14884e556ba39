package tools

import (
	"context"
	"errors"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gbfs-validator/internal/config"
	"github.com/usestring/gbfs-validator/internal/schema"
	"github.com/usestring/gbfs-validator/internal/validator"
	"github.com/usestring/gbfs-validator/pkg/types"
)

// ValidateFileInput is the input for gbfs_validate_file.
type ValidateFileInput struct {
	Version      string `json:"version,omitempty" jsonschema:"GBFS version such as 2.3 or 3.0 (default: the document's version field, else server DEFAULT_VERSION)"`
	Feed         string `json:"feed" jsonschema:"required,Feed file name without extension, e.g. free_bike_status or station_information"`
	Document     string `json:"document" jsonschema:"required,Feed file content as JSON text"`
	ErrorsFilter string `json:"errors_filter,omitempty" jsonschema:"Optional jq expression evaluated over the errors array, e.g. [.[] | select(.keyword == \"required\")]"`
}

// ValidateFileOutput is the output for gbfs_validate_file.
type ValidateFileOutput struct {
	Version         string                      `json:"version"`
	Feed            string                      `json:"feed"`
	Valid           bool                        `json:"valid"`
	VersionDetected bool                        `json:"version_detected,omitempty"`
	Result          *types.FileValidationResult `json:"result"`
	Filtered        []any                       `json:"filtered,omitempty"`
	FilterErrors    []string                    `json:"filter_errors,omitempty"`
	FilterTruncated bool                        `json:"filter_truncated,omitempty"`
}

// ToolValidateFile validates one GBFS feed file.
func ToolValidateFile(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateFileInput) (*sdkmcp.CallToolResult, ValidateFileOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateFileInput) (*sdkmcp.CallToolResult, ValidateFileOutput, error) {
		feed := strings.TrimSuffix(strings.TrimSpace(input.Feed), ".json")
		if feed == "" {
			return nil, ValidateFileOutput{}, ErrInvalidInput("feed is required")
		}
		if strings.TrimSpace(input.Document) == "" {
			return nil, ValidateFileOutput{}, ErrInvalidInput("document is required")
		}
		if input.ErrorsFilter != "" {
			if err := d.Query.ValidateExpression(input.ErrorsFilter); err != nil {
				return nil, ValidateFileOutput{}, ErrInvalidInput("errors_filter: " + err.Error())
			}
		}

		version, detected, err := resolveVersion(d, input)
		if err != nil {
			return nil, ValidateFileOutput{}, err
		}

		fv, err := d.Validator.FileValidator(version)
		if err != nil {
			return nil, ValidateFileOutput{}, WrapValidationError(err)
		}

		result, err := fv.ValidateFile(feed, strings.NewReader(input.Document))
		if err != nil {
			return nil, ValidateFileOutput{}, WrapValidationError(err)
		}

		output := ValidateFileOutput{
			Version:         fv.Version(),
			Feed:            feed,
			Valid:           result.Valid(),
			VersionDetected: detected,
			Result:          &result,
		}

		if input.ErrorsFilter != "" {
			errs, err := types.ToAny(result.Errors)
			if err != nil {
				return nil, ValidateFileOutput{}, WrapValidationError(err)
			}
			qr, err := d.Query.QueryValue(errs, input.ErrorsFilter, filterLimit(d.Config))
			if err != nil {
				return nil, ValidateFileOutput{}, ErrInvalidInput("errors_filter: " + err.Error())
			}
			output.Filtered = qr.Values
			output.FilterErrors = qr.Errors
			output.FilterTruncated = qr.Truncated
		}

		return nil, output, nil
	}
}

// resolveVersion picks the explicit version, then the version the document
// declares, then the configured default. A document with no version field
// and no default is GBFS 1.0.
func resolveVersion(d *Deps, input ValidateFileInput) (string, bool, error) {
	if v := strings.TrimSpace(input.Version); v != "" {
		return v, false, nil
	}

	v, err := d.Validator.DeclaredVersion([]byte(input.Document))
	if err != nil {
		if errors.Is(err, schema.ErrDocumentDecode) {
			return "", false, WrapValidationError(err)
		}
		return "", false, ErrInvalidInput("cannot detect version: " + err.Error())
	}
	if v != "" {
		return v, true, nil
	}
	if d.Config != nil && d.Config.DefaultVersion != "" {
		return d.Config.DefaultVersion, false, nil
	}
	return validator.LegacyVersion, true, nil
}

func filterLimit(cfg *config.Config) int {
	if cfg == nil || cfg.FilterMaxResults <= 0 {
		return config.DefaultFilterMaxResults
	}
	return cfg.FilterMaxResults
}
