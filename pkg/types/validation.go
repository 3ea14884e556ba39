package types

// FileValidationError is a single atomic conformance violation of a feed file.
type FileValidationError struct {
	SchemaPath    string `json:"schemaPath" jsonschema_description:"JSON pointer into the schema document of the violated rule"` // never empty
	ViolationPath string `json:"violationPath" jsonschema_description:"JSON pointer into the feed document"`
	Message       string `json:"message" jsonschema_description:"Human-readable description of the violation"`
	Keyword       string `json:"keyword" jsonschema_description:"JSON Schema keyword that failed"`
}

// FileValidationResult is the report for one validated feed file.
// ErrorsCount always equals len(Errors).
type FileValidationResult struct {
	Errors      []FileValidationError `json:"errors" jsonschema_description:"Atomic violations in depth-first order"`
	ErrorsCount int                   `json:"errorsCount"`
}

// NewFileValidationResult builds a result from flattened errors, preserving
// their order. The slice is copied so the result does not alias the caller's.
func NewFileValidationResult(errs []FileValidationError) FileValidationResult {
	out := make([]FileValidationError, len(errs))
	copy(out, errs)
	return FileValidationResult{
		Errors:      out,
		ErrorsCount: len(out),
	}
}

// Valid reports whether the file had no conformance violations.
func (r FileValidationResult) Valid() bool {
	return r.ErrorsCount == 0
}
