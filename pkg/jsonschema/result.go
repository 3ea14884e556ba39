// Package jsonschema publishes JSON Schema documents describing the shapes
// this module emits.
package jsonschema

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/usestring/gbfs-validator/pkg/types"
)

var (
	resultOnce   sync.Once
	resultSchema *jsonschema.Schema
)

// ResultSchema returns the JSON Schema (Draft 2020-12) of a
// types.FileValidationResult. The returned schema is shared; do not mutate it.
func ResultSchema() *jsonschema.Schema {
	resultOnce.Do(func() {
		r := &jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		}
		resultSchema = r.Reflect(&types.FileValidationResult{})
		resultSchema.Title = "GBFS file validation result"
		resultSchema.ID = "gbfs://result-schema"
	})
	return resultSchema
}

// ResultSchemaJSON returns ResultSchema encoded as indented JSON.
func ResultSchemaJSON() ([]byte, error) {
	return json.MarshalIndent(ResultSchema(), "", "  ")
}
