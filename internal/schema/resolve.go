package schema

// schemaPathLookups are tried in order; the first non-empty result wins.
var schemaPathLookups = []func(*Violation) string{
	ownSchemaLocation,
	violatedSchemaLocation,
}

// ResolveSchemaPath returns the schema pointer to report for v.
//
// The violation's own location wins. Engines sometimes omit it for
// combinator branches while still attaching the location to the sub-schema
// that failed, so that is consulted next (one level only). Anything else
// reports the root pointer. The result is never empty.
func ResolveSchemaPath(v *Violation) string {
	if v == nil {
		return RootPointer
	}
	for _, lookup := range schemaPathLookups {
		if loc := lookup(v); loc != "" {
			return loc
		}
	}
	return RootPointer
}

func ownSchemaLocation(v *Violation) string {
	return v.SchemaLocation
}

func violatedSchemaLocation(v *Violation) string {
	if v.ViolatedSchema == nil {
		return ""
	}
	return v.ViolatedSchema.Location
}
