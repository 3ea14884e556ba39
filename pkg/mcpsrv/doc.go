// Package mcpsrv provides an extensible MCP server for GBFS feed validation.
//
// This package exposes a high-level API for creating and running an MCP server
// with the builtin validation tools, prompts, and resources. Users can extend
// the server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools that use the validator:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type CountInput struct {
//	    Feed     string `json:"feed"`
//	    Document string `json:"document"`
//	}
//
//	type CountOutput struct {
//	    Errors int `json:"errors"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(
//	        &mcp.Tool{Name: "count_errors", Description: "Count validation errors"},
//	        func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	                res, err := d.Validator.ValidateFile("2.3", in.Feed, strings.NewReader(in.Document))
//	                if err != nil {
//	                    return nil, CountOutput{}, err
//	                }
//	                return nil, CountOutput{Errors: res.ErrorsCount}, nil
//	            }
//	        },
//	    ),
//	)
//
// # Configuration
//
// Configuration is read from environment variables (SCHEMA_DIR,
// PRELOAD_VERSIONS, METRICS_ADDR, LOG_LEVEL, ...). Options override it:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/gbfs-validator-mcp.log"),
//	    mcpsrv.WithSchemaFS(os.DirFS("/srv/gbfs/schemas")),
//	)
package mcpsrv
