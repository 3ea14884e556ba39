package schema

import (
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrDocumentDecode matches any *DocumentDecodeError via errors.Is.
var ErrDocumentDecode = errors.New("document decode failed")

// DocumentDecodeError is returned when the input is not a single JSON value
// or, for version detection, not a JSON object.
type DocumentDecodeError struct {
	Cause error
}

func (e *DocumentDecodeError) Error() string {
	return fmt.Sprintf("decoding document: %v", e.Cause)
}

func (e *DocumentDecodeError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrDocumentDecode) true.
func (e *DocumentDecodeError) Is(target error) bool {
	return target == ErrDocumentDecode
}

// DecodeDocument parses r into the generic JSON value the engine validates.
// Numbers are kept as json.Number so integer constraints are exact.
func DecodeDocument(r io.Reader) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return nil, &DocumentDecodeError{Cause: err}
	}
	return doc, nil
}

// Validate runs the compiled schema against doc. It returns nil when doc
// conforms, otherwise the root of the violation tree.
func Validate(sch *jsonschema.Schema, doc any) *Violation {
	err := sch.Validate(doc)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return FromValidationError(validationErr)
	}

	// Engine failures that are not conformance reports (e.g. a $ref loop)
	// still surface as one violation at the document root.
	return &Violation{
		PointerToViolation: RootPointer,
		Message:            err.Error(),
	}
}
