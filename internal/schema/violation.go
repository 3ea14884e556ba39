// Package schema maps JSON Schema engine output onto flat, caller-facing
// validation errors.
package schema

// RootPointer is the JSON pointer of a document root. It is the schema path
// reported when no location information is available.
const RootPointer = "#"

// Violation is a read-only view of one node of the engine's violation tree.
// Empty strings mean "absent".
type Violation struct {
	SchemaLocation     string       // Location of the violated keyword, if the engine reported one
	ViolatedSchema     *SubSchema   // Sub-schema the instance failed against, if known
	PointerToViolation string       // Location within the data document
	Message            string       // Human-readable message
	Keyword            string       // Violated schema keyword (required, type, oneOf, ...)
	Causes             []*Violation // Nested violations, in engine order
}

// SubSchema identifies a schema object inside a schema document.
type SubSchema struct {
	Location string
}

// IsLeaf reports whether v has no nested causing violations.
// The keyword plays no part: a oneOf without causes is a leaf.
func (v *Violation) IsLeaf() bool {
	return len(v.Causes) == 0
}
