package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gbfs-validator/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking its input and
// output types against the schemas the SDK infers. It panics at startup when
// an input tag cannot be parsed by the SDK, or when the zero value of Out
// fails its own schema (a nil slice marshals as null where "array" is
// expected). The panic message names the field to fix.
//
// Use this instead of [sdkmcp.AddTool] to get the additional checks.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
