package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/gbfs-validator/pkg/types"
)

func TestFlatten_NullSchemaLocation(t *testing.T) {
	v := &Violation{
		PointerToViolation: "#/data/bikes/0",
		Message:            "Test error message",
		Keyword:            "required",
		Causes:             []*Violation{},
	}

	errs := Flatten(v)

	require.Len(t, errs, 1)
	assert.Equal(t, types.FileValidationError{
		SchemaPath:    "#",
		ViolationPath: "#/data/bikes/0",
		Message:       "Test error message",
		Keyword:       "required",
	}, errs[0])
}

func TestFlatten_ValidSchemaLocation(t *testing.T) {
	v := &Violation{
		SchemaLocation:     "#/properties/data/properties/bikes/items",
		PointerToViolation: "#/data/bikes/0",
		Message:            "Test error message",
		Keyword:            "type",
	}

	errs := Flatten(v)

	require.Len(t, errs, 1)
	assert.Equal(t, "#/properties/data/properties/bikes/items", errs[0].SchemaPath)
	assert.Equal(t, "#/data/bikes/0", errs[0].ViolationPath)
	assert.Equal(t, "Test error message", errs[0].Message)
	assert.Equal(t, "type", errs[0].Keyword)
}

func TestFlatten_FallbackToViolatedSchemaLocation(t *testing.T) {
	v := &Violation{
		ViolatedSchema:     &SubSchema{Location: "#/properties/data/oneOf/0"},
		PointerToViolation: "#/data",
		Message:            "no subschema matched",
		Keyword:            "oneOf",
	}

	errs := Flatten(v)

	require.Len(t, errs, 1)
	assert.Equal(t, "#/properties/data/oneOf/0", errs[0].SchemaPath)
	assert.Equal(t, "#/data", errs[0].ViolationPath)
	assert.Equal(t, "no subschema matched", errs[0].Message)
	assert.Equal(t, "oneOf", errs[0].Keyword)
}

func TestFlatten_CombinatorEmitsOnlyLeaves(t *testing.T) {
	v := &Violation{
		SchemaLocation:     "#/properties/data/oneOf",
		PointerToViolation: "#/data",
		Message:            "oneOf failed",
		Keyword:            "oneOf",
		Causes: []*Violation{
			{SchemaLocation: "#/oneOf/0/required", PointerToViolation: "#/data", Message: "m1", Keyword: "required"},
			{SchemaLocation: "#/oneOf/1/type", PointerToViolation: "#/data", Message: "m2", Keyword: "type"},
			{PointerToViolation: "#/data/x", Message: "m3", Keyword: "enum"},
		},
	}

	errs := Flatten(v)

	require.Len(t, errs, 3)
	assert.Equal(t, []types.FileValidationError{
		{SchemaPath: "#/oneOf/0/required", ViolationPath: "#/data", Message: "m1", Keyword: "required"},
		{SchemaPath: "#/oneOf/1/type", ViolationPath: "#/data", Message: "m2", Keyword: "type"},
		{SchemaPath: "#", ViolationPath: "#/data/x", Message: "m3", Keyword: "enum"},
	}, errs)
	for _, e := range errs {
		assert.NotEqual(t, "oneOf", e.Keyword)
	}
}

func TestFlatten_NestedDepthFirstOrder(t *testing.T) {
	leaf := func(msg string) *Violation {
		return &Violation{SchemaLocation: "#/" + msg, Message: msg, Keyword: "type"}
	}
	v := &Violation{
		Keyword: "anyOf",
		Causes: []*Violation{
			{
				Keyword: "allOf",
				Causes:  []*Violation{leaf("a"), leaf("b")},
			},
			leaf("c"),
			{
				Keyword: "oneOf",
				Causes: []*Violation{
					{Keyword: "anyOf", Causes: []*Violation{leaf("d")}},
				},
			},
		},
	}

	errs := Flatten(v)

	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, msgs)
}

func TestFlatten_SkipsNilCauses(t *testing.T) {
	v := &Violation{
		Keyword: "anyOf",
		Causes:  []*Violation{nil, {Message: "only", Keyword: "type"}},
	}

	errs := Flatten(v)

	require.Len(t, errs, 1)
	assert.Equal(t, "only", errs[0].Message)
}

func TestFlatten_Nil(t *testing.T) {
	errs := Flatten(nil)

	assert.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestFlatten_SchemaPathNeverEmpty(t *testing.T) {
	v := &Violation{
		Causes: []*Violation{
			{},
			{ViolatedSchema: &SubSchema{}},
			{Causes: []*Violation{{}, {ViolatedSchema: &SubSchema{Location: "#/x"}}}},
		},
	}

	errs := Flatten(v)

	require.Len(t, errs, 4)
	for _, e := range errs {
		assert.NotEmpty(t, e.SchemaPath)
	}
	assert.Equal(t, "#/x", errs[3].SchemaPath)
}
