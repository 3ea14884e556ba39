// Package query provides jq evaluation over feed documents and validation reports.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Engine executes jq queries against JSON data.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// QueryResult contains the results of a jq query.
type QueryResult struct {
	Values    []any    `json:"values"`           // Extracted values
	Errors    []string `json:"errors,omitempty"` // Runtime errors (e.g., type mismatch)
	RawCount  int      `json:"raw_count"`        // Count of non-null values produced
	Truncated bool     `json:"truncated,omitempty"`
}

// Query executes a jq expression against raw JSON data.
func (e *Engine) Query(data []byte, expression string, maxResults int) (*QueryResult, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}

	return run(code, input, maxResults), nil
}

// QueryValue executes a jq expression against an already-decoded value.
// The value must use the generic JSON shapes (map[string]any, []any, float64, ...).
func (e *Engine) QueryValue(input any, expression string, maxResults int) (*QueryResult, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return run(code, input, maxResults), nil
}

// First returns the first non-null value produced by expression, or nil.
// Unlike Query, a runtime error is returned rather than collected.
func (e *Engine) First(data []byte, expression string) (any, error) {
	result, err := e.Query(data, expression, 1)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, errors.New(strings.Join(result.Errors, "; "))
	}
	if len(result.Values) == 0 {
		return nil, nil
	}
	return result.Values[0], nil
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

func run(code *gojq.Code, input any, maxResults int) *QueryResult {
	result := &QueryResult{
		Values: make([]any, 0),
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, formatJQError("query", err))
			continue
		}

		// Skip nil values
		if v == nil {
			continue
		}

		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			break
		}

		result.RawCount++
		result.Values = append(result.Values, v)
	}

	return result
}

// formatJQError creates a helpful error message for jq execution errors.
//
// Runtime jq errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so string matching is used for hints.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}
