package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the SDK can infer schemas for
// its input and output types and that the output's zero value conforms.
// Failures panic at registration instead of surfacing on the first call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckInputSchema[In](t.Name)
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckInputSchema panics when the SDK cannot infer a schema for T.
//
// The SDK reads the whole `jsonschema` tag as the property description and
// rejects tags that look like key=value pairs. Result types shared with the
// gbfs://result-schema reflector carry their descriptions in
// `jsonschema_description` instead.
func CheckInputSchema[T any](toolName string) {
	rt, ok := structType[T]()
	if !ok {
		return
	}
	if _, err := jsonschema.ForType(rt, &jsonschema.ForOptions{}); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: cannot infer input schema for %s: %v\n"+
				"  Fix: write the jsonschema tag as a plain description, or use jsonschema_description",
			toolName, rt, err,
		))
	}
}

// CheckOutputSchema panics when the zero value of T fails the schema the SDK
// infers for it.
//
// A nil slice marshals as null while the inferred schema says "array", so
// report fields such as FileValidationResult.Errors must either be non-nil or
// sit behind omitempty/omitzero or a pointer. json.RawMessage fields are
// rejected outright: schema inference sees []byte, the wire carries raw JSON.
func CheckOutputSchema[T any](toolName string) {
	rt, ok := structType[T]()
	if !ok {
		return
	}

	if paths := rawMessagePaths(rt, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s contains json.RawMessage at %s\n"+
				"  Fix: declare the field as any and fill it with types.ToAny",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	sch, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return // the SDK reports inference errors from AddTool
	}
	resolved, err := sch.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var zero map[string]any
	if err := json.Unmarshal(data, &zero); err != nil {
		return
	}

	if err := resolved.Validate(&zero); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails its schema: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add omitzero to slice fields, or hold nested results by pointer",
			toolName, rt, err, data,
		))
	}
}

// structType returns the type the SDK infers a schema from, following one
// pointer like the SDK does. The untyped "any" is skipped.
func structType[T any]() (reflect.Type, bool) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return nil, false
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt, true
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the dotted field paths under t that hold a json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, visited map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, append(slices.Clone(path), f.Name), visited)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, rawMessagePaths(t.Elem(), append(slices.Clone(path), "[]"), visited)...)
	case reflect.Map:
		found = append(found, rawMessagePaths(t.Elem(), append(slices.Clone(path), "[value]"), visited)...)
	}
	return found
}
