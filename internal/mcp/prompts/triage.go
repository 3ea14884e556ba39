package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleTriageValidationErrors implements the validation triage workflow.
func HandleTriageValidationErrors(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		feed := ""
		version := ""
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			args := req.Params.Arguments
			if v, ok := args["feed"]; ok {
				feed = v
			}
			if v, ok := args["version"]; ok {
				version = v
			}
		}
		if version == "" && cfg != nil {
			version = cfg.DefaultVersion
		}

		var sb strings.Builder

		// 1. Role/Persona
		sb.WriteString("# Triage GBFS Validation Errors\n\n")
		sb.WriteString("You are a GBFS (General Bikeshare Feed Specification) conformance expert. Your goal is to validate ")
		sb.WriteString("a feed file, group its violations by root cause, and propose concrete fixes to the producer.\n\n")

		// 2. Report shape
		sb.WriteString("## Reading the Report\n\n")
		sb.WriteString("`gbfs_validate_file` returns `result: {errors: [...], errorsCount}`. Each error has:\n")
		sb.WriteString("- `violationPath`: JSON pointer into the feed document (`#/data/bikes/3/lat`). `#` is the document root.\n")
		sb.WriteString("- `schemaPath`: JSON pointer into the schema (`#/properties/data/required`). Never empty.\n")
		sb.WriteString("- `keyword`: the failed JSON Schema keyword (`required`, `type`, `minimum`, ...)\n")
		sb.WriteString("- `message`: human-readable description\n\n")
		sb.WriteString("**oneOf/anyOf**: a failed combinator is reported as the failures of each of its branches, ")
		sb.WriteString("all with the same `violationPath`. Only one branch has to be fixed; pick the branch closest to the data.\n\n")

		// 3. Workflow
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Validate** the document\n")
		sb.WriteString("2. **Group** errors by `keyword` and by `violationPath` with array indices removed\n")
		sb.WriteString("   - Use `errors_filter` to narrow large reports instead of reading every error\n")
		sb.WriteString("3. **Read the rule** for each group from `gbfs://schema/{version}/{feed}` at `schemaPath`\n")
		sb.WriteString("4. **Explain** each group with one example location and the fix\n\n")

		// 4. Suggested Tools
		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: Validate\n")
		switch {
		case feed != "" && version != "":
			fmt.Fprintf(&sb, "gbfs_validate_file(version=%q, feed=%q, document=<file content>)\n\n", version, feed)
		case feed != "":
			fmt.Fprintf(&sb, "gbfs_validate_file(feed=%q, document=<file content>)\n\n", feed)
		default:
			sb.WriteString("gbfs_list_versions()\n")
			sb.WriteString("gbfs_validate_file(feed=\"<feed name>\", document=<file content>)\n\n")
		}
		sb.WriteString("# Step 2: Count errors per keyword\n")
		sb.WriteString("gbfs_validate_file(..., errors_filter=\"group_by(.keyword) | map({keyword: .[0].keyword, count: length})\")\n\n")
		sb.WriteString("# Step 3: Distinct failing locations, indices collapsed\n")
		sb.WriteString("gbfs_validate_file(..., errors_filter=\"map(.violationPath | gsub(\\\"/[0-9]+\\\"; \\\"/*\\\")) | unique\")\n")
		sb.WriteString("```\n\n")

		// 5. Output Format
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("1. **Summary**: version, feed, valid or not, errorsCount\n")
		sb.WriteString("2. **Root causes**: one entry per group with keyword, example violationPath, schema rule, affected count\n")
		sb.WriteString("3. **Fixes**: what the producer must change\n\n")

		// 6. Error Recovery
		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **UNSUPPORTED_VERSION?** Call `gbfs_list_versions` and pass `version` explicitly. Files without a version field are GBFS 1.0.\n")
		sb.WriteString("- **UNSUPPORTED_FEED?** The feed may have been renamed (free_bike_status became vehicle_status in 3.0).\n")
		sb.WriteString("- **DOCUMENT_DECODE?** The file is not a single JSON object; report that before anything else.\n\n")

		// 7. Constraints
		sb.WriteString("## Constraints\n\n")
		sb.WriteString("- Do NOT fix the document yourself unless asked; report the fixes\n")
		sb.WriteString("- Do NOT list every error of a large report; group first\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for triaging GBFS validation errors",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
