package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gbfs-validator/internal/mcp/tools"
	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/pkg/jsonschema"
)

// Resource URI scheme: gbfs://
// Supported URIs:
//   gbfs://schema/{version}/{feed}
//   gbfs://result-schema

const (
	resourceScheme    = "gbfs://"
	resultSchemaURI   = "gbfs://result-schema"
	schemaURITemplate = "gbfs://schema/{version}/{feed}"
)

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: schemaURITemplate,
		Name:        "GBFS Feed Schema",
		Description: "JSON Schema document of one feed file in one GBFS version. The schemaPath of a gbfs_validate_file error is a JSON pointer into this document.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         resultSchemaURI,
		Name:        "Validation Result Schema",
		Description: "JSON Schema of the result object returned by gbfs_validate_file.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceResultSchema)
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	raw, err := s.deps.Registry.SchemaDocument(params["version"], params["feed"])
	if err != nil {
		if errors.Is(err, registry.ErrUnsupportedVersion) || errors.Is(err, registry.ErrUnsupportedFeed) {
			return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, tools.WrapValidationError(err)
	}

	return textResourceResult(req.Params.URI, raw), nil
}

func (s *Server) handleResourceResultSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	data, err := jsonschema.ResultSchemaJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}
	return textResourceResult(req.Params.URI, data), nil
}

// parseResourceURI extracts parameters from a gbfs:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected gbfs://")
	}

	path := strings.TrimPrefix(uri, resourceScheme)
	parts := strings.Split(path, "/")

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "schema":
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return nil, tools.ErrInvalidInput("schema URI requires version and feed")
		}
		params["version"] = parts[1]
		params["feed"] = strings.TrimSuffix(parts[2], ".json")

	case "":
		return nil, tools.ErrInvalidInput("empty resource path")

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

func textResourceResult(uri string, data []byte) *sdkmcp.ReadResourceResult {
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}
}
