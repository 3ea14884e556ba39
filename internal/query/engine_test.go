package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Query_Version(t *testing.T) {
	engine := NewEngine()

	data := []byte(`{"last_updated": 1640887163, "ttl": 0, "version": "2.3", "data": {}}`)

	result, err := engine.Query(data, ".version", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"2.3"}, result.Values)
	assert.Equal(t, 1, result.RawCount)
}

func TestEngine_Query_SkipsNull(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query([]byte(`{"data": {}}`), ".version", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	assert.Equal(t, 0, result.RawCount)
}

func TestEngine_Query_InvalidJSON(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Query([]byte(`{"version": `), ".version", 0)
	assert.Error(t, err)
}

func TestEngine_Query_InvalidExpression(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Query([]byte(`{}`), ".version[", 0)
	assert.Error(t, err)
}

func TestEngine_Query_MaxResults(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query([]byte(`{"items": [1, 2, 3, 4, 5]}`), ".items[]", 3)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, result.Values)
	assert.True(t, result.Truncated)
}

func TestEngine_Query_ReturnsErrors(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query([]byte(`{"data": null}`), ".data[]", 0)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "cannot iterate over: null")
	assert.Contains(t, result.Errors[0], "path may not exist")
}

func TestEngine_QueryValue_FilterErrors(t *testing.T) {
	engine := NewEngine()

	input := []any{
		map[string]any{"keyword": "required", "violationPath": "#/data/bikes/0"},
		map[string]any{"keyword": "type", "violationPath": "#/data/bikes/1/lat"},
		map[string]any{"keyword": "required", "violationPath": "#/data/bikes/2"},
	}

	result, err := engine.QueryValue(input, `.[] | select(.keyword == "required") | .violationPath`, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"#/data/bikes/0", "#/data/bikes/2"}, result.Values)
}

func TestEngine_First(t *testing.T) {
	engine := NewEngine()

	v, err := engine.First([]byte(`{"version": "3.0"}`), ".version // empty")
	require.NoError(t, err)
	assert.Equal(t, "3.0", v)

	v, err = engine.First([]byte(`{"data": {}}`), ".version // empty")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEngine_First_ReturnsRuntimeError(t *testing.T) {
	engine := NewEngine()

	v, err := engine.First([]byte(`[1, 2]`), ".version")
	require.Error(t, err)
	assert.Nil(t, v)
	assert.Contains(t, err.Error(), "query:")
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine()

	assert.NoError(t, engine.ValidateExpression(".errors[] | .keyword"))
	assert.Error(t, engine.ValidateExpression(".errors[ | .keyword"))
	assert.Error(t, engine.ValidateExpression("undefined_function(1)"))
}

func TestEngine_Query_Halt(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Query([]byte(`{}`), `"stop" | halt_error`, 0)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "query halted")
}
