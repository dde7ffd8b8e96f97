package jsonpath

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/shapepath/internal/shape"
)

// Root is the token every query starts from.
const Root = "$"

// DomainQuery namespaces query IDs. The version suffix allows the ID
// scheme to change without colliding with earlier IDs.
const DomainQuery = "shapepath/query/v1"

var queryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(DomainQuery))

// Of builds the accessor tree for s, rooted at the document root ($).
// The tree is built eagerly and is immutable; it may be shared between
// goroutines.
func Of(s shape.Shape) (Node, error) {
	return dispatch(s, NewIdentifier(s, Root))
}

// OfRecord is Of for record shapes, returning the Struct accessor directly.
func OfRecord(r *shape.RecordShape) (*Struct, error) {
	n, err := Of(r)
	if err != nil {
		return nil, err
	}
	return As[*Struct](n)
}

// And returns (a && b && ...). Nested Ands are kept as written.
func And(operands ...*Bool) *Bool {
	return newBool(&Conjunction{operands: boolNodes(operands)})
}

// Or returns (a || b || ...).
func Or(operands ...*Bool) *Bool {
	return newBool(&Disjunction{operands: boolNodes(operands)})
}

// Not returns (!b).
func Not(b *Bool) *Bool {
	var operand Node
	if b != nil {
		operand = b
	}
	return newBool(&Negation{operand: operand})
}

// boolNodes converts to nodes, keeping nil entries as untyped nil so that
// Validate reports them.
func boolNodes(bs []*Bool) []Node {
	nodes := make([]Node, len(bs))
	for i, b := range bs {
		if b != nil {
			nodes[i] = b
		}
	}
	return nodes
}

// As asserts that n is the accessor type T.
//
// Example:
//
//	count, err := jsonpath.As[*jsonpath.Number](n)
func As[T Node](n Node) (T, error) {
	t, ok := n.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: expected %T, got %T", ErrTypeMismatch, zero, n)
	}
	return t, nil
}

// FieldAs looks up a record member and asserts its accessor type.
func FieldAs[T Node](s *Struct, name string) (T, error) {
	var zero T
	if s == nil {
		return zero, fmt.Errorf("%w: nil struct", ErrInvalidExpression)
	}
	f, err := s.Field(name)
	if err != nil {
		return zero, err
	}
	t, err := As[T](f)
	if err != nil {
		return zero, fmt.Errorf("field %q: %w", name, err)
	}
	return t, nil
}

// ItemAs adapts a typed predicate for Array.Filter and Map.Filter.
//
// Example:
//
//	tags.Filter(jsonpath.ItemAs(func(s *jsonpath.String) (*jsonpath.Bool, error) {
//		return s.Equals("a")
//	}))
func ItemAs[T Node](pred func(T) (*Bool, error)) func(Node) (*Bool, error) {
	return func(item Node) (*Bool, error) {
		t, err := As[T](item)
		if err != nil {
			return nil, fmt.Errorf("item: %w", err)
		}
		return pred(t)
	}
}

// QueryID returns a stable identifier for a compiled query string.
// Equal strings always produce the same ID.
func QueryID(path string) string {
	return uuid.NewSHA1(queryNamespace, []byte(path)).String()
}

// PathEntry describes one record member reachable from a root accessor.
type PathEntry struct {
	Path     string
	Shape    shape.Shape
	Optional bool
	Doc      string
}

// Paths lists the compiled path of every record member reachable through
// nested records, depth first in declaration order. Members inside
// collections are not listed; they are only addressable through Get or
// Filter.
func Paths(root Node) ([]PathEntry, error) {
	st, ok := root.(*Struct)
	if !ok {
		return nil, nil
	}
	var entries []PathEntry
	if err := collectPaths(st, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func collectPaths(st *Struct, entries *[]PathEntry) error {
	for _, m := range st.record.Members {
		f, err := st.Field(m.Name)
		if err != nil {
			return err
		}
		path, err := Compile(f)
		if err != nil {
			return fmt.Errorf("field %q: %w", m.Name, err)
		}
		*entries = append(*entries, PathEntry{
			Path:     path,
			Shape:    m.Shape,
			Optional: m.Optional,
			Doc:      m.Doc,
		})
		if nested, ok := f.(*Struct); ok {
			if err := collectPaths(nested, entries); err != nil {
				return err
			}
		}
	}
	return nil
}
