package jsonpath

import (
	"fmt"

	"github.com/roach88/shapepath/internal/shape"
)

// object is the part shared by the typed accessors: the shape they were
// dispatched for and the expression they render as.
type object struct {
	shape shape.Shape
	expr  Node
}

func (o *object) Shape() shape.Shape { return o.shape }

// Expression returns the node this accessor renders as.
func (o *object) Expression() Node { return o.expr }

func (*object) node() {}

func compare(left Node, op Operator, family shape.Family, x any) (*Bool, error) {
	right, err := operand(family, x)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", family, op, err)
	}
	return newBool(&Comparison{op: op, left: left, right: right}), nil
}

// String is a string (or timestamp) value.
type String struct{ object }

func (*String) Kind() Kind { return KindValue }

// Equals compares against another string node or a string literal.
func (s *String) Equals(x any) (*Bool, error) {
	return compare(s, OpEquals, shape.FamilyString, x)
}

// NotEquals is the negation of Equals.
func (s *String) NotEquals(x any) (*Bool, error) {
	return compare(s, OpNotEquals, shape.FamilyString, x)
}

// Match tests the value against a regular expression. The pattern is
// emitted as given and must already be valid in the target dialect,
// e.g. "/^abc/i".
func (s *String) Match(pattern string) *Bool {
	return newBool(&StringMatch{operand: s, pattern: pattern})
}

// Number is a number or integer value.
type Number struct{ object }

func (*Number) Kind() Kind { return KindValue }

// Equals compares against another numeric node or a number literal.
func (n *Number) Equals(x any) (*Bool, error) {
	return compare(n, OpEquals, shape.FamilyNumeric, x)
}

// NotEquals is the negation of Equals.
func (n *Number) NotEquals(x any) (*Bool, error) {
	return compare(n, OpNotEquals, shape.FamilyNumeric, x)
}

// GreaterThan renders <value> > x.
func (n *Number) GreaterThan(x any) (*Bool, error) {
	return compare(n, OpGreaterThan, shape.FamilyNumeric, x)
}

// GreaterThanOrEqual renders <value> >= x.
func (n *Number) GreaterThanOrEqual(x any) (*Bool, error) {
	return compare(n, OpGreaterThanOrEqual, shape.FamilyNumeric, x)
}

// LessThan renders <value> < x.
func (n *Number) LessThan(x any) (*Bool, error) {
	return compare(n, OpLessThan, shape.FamilyNumeric, x)
}

// LessThanOrEqual renders <value> <= x.
func (n *Number) LessThanOrEqual(x any) (*Bool, error) {
	return compare(n, OpLessThanOrEqual, shape.FamilyNumeric, x)
}

// Bool is a boolean value: a bool field or the result of a comparison.
type Bool struct{ object }

func newBool(expr Node) *Bool {
	return &Bool{object{shape: shape.Bool(), expr: expr}}
}

func (*Bool) Kind() Kind { return KindValue }

// And groups b with others. Calling And on the result wraps another level;
// operands are never flattened.
func (b *Bool) And(others ...*Bool) *Bool {
	return And(append([]*Bool{b}, others...)...)
}

// Or groups b with others as a disjunction.
func (b *Bool) Or(others ...*Bool) *Bool {
	return Or(append([]*Bool{b}, others...)...)
}

// Not negates b.
func (b *Bool) Not() *Bool {
	return &Bool{object{shape: b.shape, expr: &Negation{operand: b}}}
}

// Equals compares against another boolean node or a bool literal.
func (b *Bool) Equals(x any) (*Bool, error) {
	return compare(b, OpEquals, shape.FamilyBool, x)
}

// NotEquals is the negation of Equals.
func (b *Bool) NotEquals(x any) (*Bool, error) {
	return compare(b, OpNotEquals, shape.FamilyBool, x)
}

// Binary is an opaque byte value. It supports no comparisons.
type Binary struct{ object }

func (*Binary) Kind() Kind { return KindValue }

// Value is a value of the nothing shape.
type Value struct{ object }

func (*Value) Kind() Kind { return KindValue }

// Dynamic is an untyped value. As narrows it to a known shape.
type Dynamic struct{ object }

func (*Dynamic) Kind() Kind { return KindValue }

// As re-dispatches the value as s, returning the accessor for that shape.
func (d *Dynamic) As(s shape.Shape) (Node, error) {
	return dispatch(s, d)
}

// Struct is a record value with one accessor per member.
type Struct struct {
	object
	record *shape.RecordShape
	fields map[string]Node
}

func (*Struct) Kind() Kind { return KindStruct }

// Record returns the record shape this accessor was built from.
func (s *Struct) Record() *shape.RecordShape { return s.record }

// Names returns member names in declaration order.
func (s *Struct) Names() []string { return s.record.Names() }

// Field returns the accessor for the named member.
func (s *Struct) Field(name string) (Node, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: record %s has no field %q", ErrInvalidKey, s.record, name)
	}
	return f, nil
}

// Array is a list value (array or set).
type Array struct {
	object
	items shape.Shape
	item  Node
}

func (*Array) Kind() Kind { return KindArray }

// Items returns the element shape.
func (a *Array) Items() shape.Shape { return a.items }

// Item returns the accessor for the element under evaluation in a filter.
func (a *Array) Item() Node { return a.item }

// Get returns the accessor for the element at index.
func (a *Array) Get(index int) (Node, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrInvalidKey, index)
	}
	return dispatch(a.items, &ArrayElement{shape: a.items, parent: a, index: index})
}

// Filter narrows the array to elements for which pred holds. pred is
// called once with the Item accessor. The result keeps the array shape.
func (a *Array) Filter(pred func(item Node) (*Bool, error)) (*Array, error) {
	f, err := filter(a, a.item, pred)
	if err != nil {
		return nil, err
	}
	return newArray(a.shape, a.items, f)
}

// Map is a string-keyed dictionary value.
type Map struct {
	object
	items shape.Shape
	item  Node
}

func (*Map) Kind() Kind { return KindMap }

// Items returns the value shape.
func (m *Map) Items() shape.Shape { return m.items }

// Item returns the accessor for the value under evaluation in a filter.
func (m *Map) Item() Node { return m.item }

// Get returns the accessor for the value stored under key.
func (m *Map) Get(key string) (Node, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty map key", ErrInvalidKey)
	}
	return dispatch(m.items, &MapElement{shape: m.items, parent: m, key: key})
}

// Filter narrows the map to values for which pred holds.
func (m *Map) Filter(pred func(item Node) (*Bool, error)) (*Map, error) {
	f, err := filter(m, m.item, pred)
	if err != nil {
		return nil, err
	}
	return newMap(m.shape, m.items, f)
}

func filter(parent, item Node, pred func(Node) (*Bool, error)) (*Filter, error) {
	if pred == nil {
		return nil, fmt.Errorf("%w: nil filter predicate", ErrInvalidExpression)
	}
	cond, err := pred(item)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if cond == nil {
		return nil, fmt.Errorf("%w: filter predicate returned no condition", ErrInvalidExpression)
	}
	return &Filter{parent: parent, condition: cond}, nil
}
