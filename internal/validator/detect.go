package validator

import (
	"fmt"
	"strconv"

	"github.com/usestring/gbfs-validator/internal/schema"
)

// LegacyVersion is reported for documents without a top-level version field.
// GBFS introduced the field in 1.1.
const LegacyVersion = "1.0"

// versionExpression yields the version field, nothing when it is absent, and
// fails for any top-level value that is not an object.
const versionExpression = `if type == "object" then .version // empty else error("top-level value must be an object, got \(type)") end`

// DetectVersion reads the GBFS version a document declares, reporting
// LegacyVersion when it declares none.
func (v *Validator) DetectVersion(document []byte) (string, error) {
	version, err := v.DeclaredVersion(document)
	if err != nil {
		return "", err
	}
	if version == "" {
		return LegacyVersion, nil
	}
	return version, nil
}

// DeclaredVersion returns the document's version field, or "" when the field
// is absent, null or empty. A document that is not a JSON object is a
// decode error.
func (v *Validator) DeclaredVersion(document []byte) (string, error) {
	value, err := v.query.First(document, versionExpression)
	if err != nil {
		return "", &schema.DocumentDecodeError{Cause: err}
	}

	switch val := value.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("version field has unexpected type %T", val)
	}
}
