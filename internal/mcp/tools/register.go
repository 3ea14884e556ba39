package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: gbfs_validate_file
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gbfs_validate_file",
		Description: "Validate one GBFS feed file against the JSON Schema of its GBFS version. Returns {version, feed, valid, result: {errors: [{schemaPath, violationPath, message, keyword}], errorsCount}}. Every error is an atomic violation: oneOf/anyOf failures are expanded into the failures of each branch. schemaPath points into the schema (readable via gbfs://schema/{version}/{feed}), violationPath into the document. Omit version to read it from the document. Use errors_filter (jq over the errors array) to narrow large reports.",
	}, ToolValidateFile(d))

	// Tool 2: gbfs_list_versions
	AddTool(srv, &sdkmcp.Tool{
		Name:        "gbfs_list_versions",
		Description: "List the supported GBFS versions and the feed files each version has schemas for. Returns {versions: [{version, feeds}]}.",
	}, ToolListVersions(d))
}
