package shape

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// maxDepth bounds nesting so that recursive CUE definitions fail instead of
// expanding forever.
const maxDepth = 32

// Attribute values recognised in @shape(...) field attributes.
const (
	attrTimestamp = "timestamp"
	attrSet       = "set"
	attrUnknown   = "unknown"
)

// SchemaError reports a CUE value that cannot be described as a Shape.
type SchemaError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// FromCUE converts a CUE value, typically a definition such as #Order, into
// a Shape. Struct fields keep their declaration order.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`#Order: { id: string, tags: [...string] }`)
//	s, err := shape.FromCUE(v.LookupPath(cue.ParsePath("#Order")))
func FromCUE(v cue.Value) (Shape, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return fromCUE(v, "", 0)
}

func fromCUE(v cue.Value, attr string, depth int) (Shape, error) {
	if depth > maxDepth {
		return nil, schemaErr(v, fmt.Sprintf("nesting deeper than %d levels (recursive definition?)", maxDepth))
	}

	kind := v.IncompleteKind()
	if kind != cue.NullKind && kind != cue.TopKind {
		kind &^= cue.NullKind
	}

	switch kind {
	case cue.StringKind:
		if attr == attrTimestamp {
			return Timestamp(), nil
		}
		return String(), nil
	case cue.IntKind:
		return Integer(), nil
	case cue.FloatKind, cue.NumberKind:
		return Number(), nil
	case cue.BoolKind:
		return Bool(), nil
	case cue.BytesKind:
		return Binary(), nil
	case cue.NullKind:
		return Nothing(), nil
	case cue.TopKind:
		if attr == attrUnknown {
			return Unknown(), nil
		}
		return Any(), nil
	case cue.ListKind:
		items, err := fromCUE(v.LookupPath(cue.MakePath(cue.AnyIndex)), "", depth+1)
		if err != nil {
			return nil, err
		}
		if attr == attrSet {
			return SetOf(items), nil
		}
		return ArrayOf(items), nil
	case cue.StructKind:
		return structFromCUE(v, depth)
	default:
		return nil, schemaErr(v, fmt.Sprintf("unsupported type kind: %v", v.IncompleteKind()))
	}
}

// structFromCUE builds a record from regular fields, or a map when the
// struct only declares a [string]: T pattern.
func structFromCUE(v cue.Value, depth int) (Shape, error) {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, formatCUEError(err)
	}

	var members []Member
	for iter.Next() {
		fv := iter.Value()
		fieldShape, err := fromCUE(fv, shapeAttr(fv), depth+1)
		if err != nil {
			return nil, err
		}
		k := fv.IncompleteKind()
		members = append(members, Member{
			Name:     iter.Label(),
			Shape:    fieldShape,
			Optional: iter.IsOptional() || nullable(k),
			Doc:      docText(fv),
		})
	}

	if len(members) == 0 {
		pattern := v.LookupPath(cue.MakePath(cue.AnyString))
		if pattern.Exists() {
			items, err := fromCUE(pattern, "", depth+1)
			if err != nil {
				return nil, err
			}
			return MapOf(items), nil
		}
	}

	rec, err := NewRecord(recordName(v), members...)
	if err != nil {
		return nil, schemaErr(v, err.Error())
	}
	return rec, nil
}

// nullable reports whether k admits null alongside some other kind.
func nullable(k cue.Kind) bool {
	return k != cue.NullKind && k != cue.TopKind && k&cue.NullKind != 0
}

// recordName prefers the referenced definition name (nested: #Nested), then
// the value's own definition label.
func recordName(v cue.Value) string {
	if _, ref := v.ReferencePath(); len(ref.Selectors()) > 0 {
		if name, ok := definitionName(ref.Selectors()); ok {
			return name
		}
	}
	name, _ := definitionName(v.Path().Selectors())
	return name
}

func definitionName(sels []cue.Selector) (string, bool) {
	if len(sels) == 0 {
		return "", false
	}
	last := sels[len(sels)-1]
	if !last.IsDefinition() {
		return "", false
	}
	return strings.TrimPrefix(last.String(), "#"), true
}

func shapeAttr(v cue.Value) string {
	a := v.Attribute("shape")
	if a.Err() != nil {
		return ""
	}
	return strings.TrimSpace(a.Contents())
}

func docText(v cue.Value) string {
	var parts []string
	for _, cg := range v.Doc() {
		if text := strings.TrimSpace(cg.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func schemaErr(v cue.Value, msg string) *SchemaError {
	return &SchemaError{Path: v.Path().String(), Message: msg, Pos: v.Pos()}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &SchemaError{Path: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
