package schema

import (
	"github.com/usestring/gbfs-validator/pkg/types"
)

// Flatten walks the violation tree depth-first and returns one error per
// leaf, in traversal order. A node with causes contributes only the errors of
// its causes. A nil violation yields an empty, non-nil slice.
func Flatten(v *Violation) []types.FileValidationError {
	errs := make([]types.FileValidationError, 0)
	if v == nil {
		return errs
	}
	return flattenInto(errs, v)
}

func flattenInto(dst []types.FileValidationError, v *Violation) []types.FileValidationError {
	if v.IsLeaf() {
		return append(dst, toFileValidationError(v))
	}
	for _, cause := range v.Causes {
		if cause == nil {
			continue
		}
		dst = flattenInto(dst, cause)
	}
	return dst
}

// toFileValidationError maps a leaf. Everything but the schema path is copied verbatim.
func toFileValidationError(v *Violation) types.FileValidationError {
	return types.FileValidationError{
		SchemaPath:    ResolveSchemaPath(v),
		ViolationPath: v.PointerToViolation,
		Message:       v.Message,
		Keyword:       v.Keyword,
	}
}
