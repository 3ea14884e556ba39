// Package prompts contains MCP prompt implementations for GBFS validation.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultVersion string
}
