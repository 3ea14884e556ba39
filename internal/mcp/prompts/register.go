package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Triage validation errors of a feed file
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "triage_validation_errors",
		Description: "RECOMMENDED: Validate a GBFS feed file and explain its errors. Start here - provides workflow guidance, the shape of the validation report, and how to read schemaPath/violationPath.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "feed",
				Description: "Feed file name (e.g., 'free_bike_status', 'station_information')",
				Required:    false,
			},
			{
				Name:        "version",
				Description: "GBFS version (e.g., '2.3'); read from the document when omitted",
				Required:    false,
			},
		},
	}, HandleTriageValidationErrors(cfg))
}
