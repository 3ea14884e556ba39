package schema

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// pointerEscaper applies RFC 6901 escaping to a single reference token.
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// FromValidationError converts the engine's error tree into a Violation tree.
// The engine error is not retained.
//
// The engine collects sibling errors while ranging over maps, so causes are
// sorted by data location and then schema location to keep reports stable
// across runs.
func FromValidationError(err *jsonschema.ValidationError) *Violation {
	if err == nil {
		return nil
	}

	schemaLoc := fragment(err.SchemaURL)
	v := &Violation{
		ViolatedSchema:     &SubSchema{Location: schemaLoc},
		PointerToViolation: Pointer(err.InstanceLocation),
	}

	if err.ErrorKind != nil {
		keywordPath := err.ErrorKind.KeywordPath()
		if len(keywordPath) > 0 {
			v.Keyword = keywordPath[0]
			v.SchemaLocation = appendPointer(schemaLoc, keywordPath)
		}
		v.Message = err.ErrorKind.LocalizedString(printer)
	} else {
		v.Message = err.Error()
	}

	if len(err.Causes) > 0 {
		v.Causes = make([]*Violation, 0, len(err.Causes))
		for _, cause := range err.Causes {
			if cause == nil {
				continue
			}
			v.Causes = append(v.Causes, FromValidationError(cause))
		}
		slices.SortStableFunc(v.Causes, compareViolations)
	}

	return v
}

// Pointer renders a list of reference tokens as a fragment JSON pointer.
// An empty list is the document root ("#").
func Pointer(tokens []string) string {
	return appendPointer(RootPointer, tokens)
}

func appendPointer(base string, tokens []string) string {
	if len(tokens) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, tok := range tokens {
		sb.WriteByte('/')
		sb.WriteString(pointerEscaper.Replace(tok))
	}
	return sb.String()
}

// fragment returns the "#..." part of an absolute schema URL.
// A URL without a fragment addresses the resource root.
//
// The resource itself is dropped: a location reached through a $ref into
// another schema file reads as a pointer into that file with no file name.
// The bundled GBFS schemas keep every $ref inside the feed's own file.
func fragment(url string) string {
	i := strings.IndexByte(url, '#')
	if i < 0 {
		return RootPointer
	}
	frag := url[i:]
	// "#/" and "#" both name the root
	if frag == "#/" {
		return RootPointer
	}
	return frag
}

func compareViolations(a, b *Violation) int {
	if c := comparePointers(a.PointerToViolation, b.PointerToViolation); c != 0 {
		return c
	}
	if c := comparePointers(sortLocation(a), sortLocation(b)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Keyword, b.Keyword); c != 0 {
		return c
	}
	return strings.Compare(a.Message, b.Message)
}

func sortLocation(v *Violation) string {
	if v.SchemaLocation != "" {
		return v.SchemaLocation
	}
	if v.ViolatedSchema != nil {
		return v.ViolatedSchema.Location
	}
	return ""
}

// comparePointers orders pointers token by token, with array indexes
// compared as numbers so "#/bikes/2" sorts before "#/bikes/10".
func comparePointers(a, b string) int {
	at, bt := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(at) && i < len(bt); i++ {
		if c := compareTokens(at[i], bt[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(at), len(bt))
}

func compareTokens(a, b string) int {
	ai, aerr := index(a)
	bi, berr := index(b)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(ai, bi)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func index(tok string) (uint64, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseUint(tok, 10, 64)
}
