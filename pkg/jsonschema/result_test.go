package jsonschema

import (
	"bytes"
	"encoding/json"
	"testing"

	santhosh "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/gbfs-validator/pkg/types"
)

func TestResultSchema_Shape(t *testing.T) {
	data, err := ResultSchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, "gbfs://result-schema", doc["$id"])
	assert.ElementsMatch(t, []any{"errors", "errorsCount"}, doc["required"])

	props := doc["properties"].(map[string]any)
	errs := props["errors"].(map[string]any)
	assert.Equal(t, "array", errs["type"])

	item := errs["items"].(map[string]any)
	assert.ElementsMatch(t, []any{"schemaPath", "violationPath", "message", "keyword"}, item["required"])
	assert.Contains(t, item["properties"], "schemaPath")
}

func TestResultSchema_Shared(t *testing.T) {
	assert.Same(t, ResultSchema(), ResultSchema())
}

func TestResultSchema_AcceptsResults(t *testing.T) {
	data, err := ResultSchemaJSON()
	require.NoError(t, err)

	schemaDoc, err := santhosh.UnmarshalJSON(bytes.NewReader(data))
	require.NoError(t, err)

	c := santhosh.NewCompiler()
	require.NoError(t, c.AddResource("gbfs://result-schema", schemaDoc))
	sch, err := c.Compile("gbfs://result-schema")
	require.NoError(t, err)

	results := []types.FileValidationResult{
		types.NewFileValidationResult(nil),
		types.NewFileValidationResult([]types.FileValidationError{
			{SchemaPath: "#/required", ViolationPath: "#", Message: "missing property 'data'", Keyword: "required"},
		}),
	}
	for _, r := range results {
		v, err := types.ToAny(r)
		require.NoError(t, err)
		assert.NoError(t, sch.Validate(v))
	}

	assert.Error(t, sch.Validate(map[string]any{"errors": []any{}}))
}
