package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gbfs-validator/pkg/types"
)

// ListVersionsInput is the input for gbfs_list_versions.
type ListVersionsInput struct{}

// ListVersionsOutput is the output for gbfs_list_versions.
type ListVersionsOutput struct {
	Versions []types.VersionInfo `json:"versions,omitzero"`
}

// ToolListVersions lists the supported GBFS versions and their feed files.
func ToolListVersions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListVersionsInput) (*sdkmcp.CallToolResult, ListVersionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListVersionsInput) (*sdkmcp.CallToolResult, ListVersionsOutput, error) {
		versions, err := d.Registry.Versions()
		if err != nil {
			return nil, ListVersionsOutput{}, WrapValidationError(err)
		}
		return nil, ListVersionsOutput{Versions: versions}, nil
	}
}
