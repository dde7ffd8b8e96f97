package jsonpath

import (
	"github.com/roach88/shapepath/internal/shape"
)

// Kind is the discriminant of a Node.
type Kind int

const (
	KindIdentifier Kind = iota
	KindFieldAccess
	KindArrayElement
	KindMapElement
	KindComparison
	KindAnd
	KindOr
	KindNot
	KindStringMatch
	KindFilter
	KindFilterItem
	KindStruct
	KindArray
	KindMap
	KindValue
)

var kindNames = [...]string{
	KindIdentifier:   "identifier",
	KindFieldAccess:  "field-access",
	KindArrayElement: "array-element",
	KindMapElement:   "map-element",
	KindComparison:   "comparison",
	KindAnd:          "and",
	KindOr:           "or",
	KindNot:          "not",
	KindStringMatch:  "string-match",
	KindFilter:       "filter",
	KindFilterItem:   "filter-item",
	KindStruct:       "struct",
	KindArray:        "array",
	KindMap:          "map",
	KindValue:        "value",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is an immutable query expression term.
//
// This is a sealed interface - only types in this package implement it, so
// Compile and Validate can switch over every node type exhaustively.
//
// Node types:
//   - Identifier, Field, ArrayElement, MapElement, Item: value references
//   - Comparison, Conjunction, Disjunction, Negation, StringMatch: boolean terms
//   - Filter: a collection narrowed by a boolean condition
//   - String, Number, Bool, Binary, Dynamic, Value, Struct, Array, Map:
//     typed accessors produced by the dispatcher
type Node interface {
	Kind() Kind
	// Shape is the shape of the value this node evaluates to.
	Shape() shape.Shape
	node() // Marker method - seals interface to this package
}

// Identifier is a literal token: the document root ($) or a quoted literal.
type Identifier struct {
	shape shape.Shape
	value string
}

// NewIdentifier returns an identifier rendered verbatim as value.
func NewIdentifier(s shape.Shape, value string) *Identifier {
	return &Identifier{shape: s, value: value}
}

func (*Identifier) Kind() Kind           { return KindIdentifier }
func (i *Identifier) Shape() shape.Shape { return i.shape }
func (i *Identifier) Value() string      { return i.value }
func (*Identifier) node()                {}

// Field is <parent>['<name>'].
type Field struct {
	shape  shape.Shape
	parent Node
	name   string
}

func (*Field) Kind() Kind           { return KindFieldAccess }
func (f *Field) Shape() shape.Shape { return f.shape }
func (f *Field) Parent() Node       { return f.parent }
func (f *Field) Name() string       { return f.name }
func (*Field) node()                {}

// ArrayElement is <parent>[<index>].
type ArrayElement struct {
	shape  shape.Shape
	parent Node
	index  int
}

func (*ArrayElement) Kind() Kind           { return KindArrayElement }
func (e *ArrayElement) Shape() shape.Shape { return e.shape }
func (e *ArrayElement) Parent() Node       { return e.parent }
func (e *ArrayElement) Index() int         { return e.index }
func (*ArrayElement) node()                {}

// MapElement is <parent>['<key>'].
type MapElement struct {
	shape  shape.Shape
	parent Node
	key    string
}

func (*MapElement) Kind() Kind           { return KindMapElement }
func (e *MapElement) Shape() shape.Shape { return e.shape }
func (e *MapElement) Parent() Node       { return e.parent }
func (e *MapElement) Key() string        { return e.key }
func (*MapElement) node()                {}

// Operator is a comparison operator.
type Operator string

const (
	OpEquals             Operator = "=="
	OpNotEquals          Operator = "!="
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="
)

// ordering reports whether op needs numeric operands.
func (op Operator) ordering() bool {
	switch op {
	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		return true
	}
	return false
}

// Comparison is <left> <op> <right>.
type Comparison struct {
	op          Operator
	left, right Node
}

func (*Comparison) Kind() Kind           { return KindComparison }
func (*Comparison) Shape() shape.Shape   { return shape.Bool() }
func (c *Comparison) Operator() Operator { return c.op }
func (c *Comparison) Left() Node         { return c.left }
func (c *Comparison) Right() Node        { return c.right }
func (*Comparison) node()                {}

// Conjunction is (<a> && <b> && ...). Nested conjunctions are not flattened.
type Conjunction struct {
	operands []Node
}

func (*Conjunction) Kind() Kind         { return KindAnd }
func (*Conjunction) Shape() shape.Shape { return shape.Bool() }
func (a *Conjunction) Operands() []Node { return append([]Node(nil), a.operands...) }
func (*Conjunction) node()              {}

// Disjunction is (<a> || <b> || ...).
type Disjunction struct {
	operands []Node
}

func (*Disjunction) Kind() Kind         { return KindOr }
func (*Disjunction) Shape() shape.Shape { return shape.Bool() }
func (o *Disjunction) Operands() []Node { return append([]Node(nil), o.operands...) }
func (*Disjunction) node()              {}

// Negation is (!<operand>).
type Negation struct {
	operand Node
}

func (*Negation) Kind() Kind         { return KindNot }
func (*Negation) Shape() shape.Shape { return shape.Bool() }
func (n *Negation) Operand() Node    { return n.operand }
func (*Negation) node()              {}

// StringMatch is <operand> =~ <pattern>. The pattern is emitted verbatim.
type StringMatch struct {
	operand Node
	pattern string
}

func (*StringMatch) Kind() Kind         { return KindStringMatch }
func (*StringMatch) Shape() shape.Shape { return shape.Bool() }
func (m *StringMatch) Operand() Node    { return m.operand }
func (m *StringMatch) Pattern() string  { return m.pattern }
func (*StringMatch) node()              {}

// Filter is <parent>[?(<condition>)]. Its shape is the parent's shape.
type Filter struct {
	parent    Node
	condition Node
}

func (*Filter) Kind() Kind        { return KindFilter }
func (f *Filter) Parent() Node    { return f.parent }
func (f *Filter) Condition() Node { return f.condition }
func (*Filter) node()             {}

func (f *Filter) Shape() shape.Shape {
	if f.parent == nil {
		return nil
	}
	return f.parent.Shape()
}

// Item is the element currently under evaluation inside a filter (@).
type Item struct {
	shape shape.Shape
}

func (*Item) Kind() Kind           { return KindFilterItem }
func (i *Item) Shape() shape.Shape { return i.shape }
func (*Item) node()                {}
