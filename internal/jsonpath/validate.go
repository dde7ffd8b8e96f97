package jsonpath

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/roach88/shapepath/internal/shape"
)

// Validate checks that a tree is well formed.
//
// Trees produced by the builder API always validate. Validate exists for
// zero-value accessors and trees assembled from parts of failed builds:
//  1. No nil nodes or operands
//  2. And / Or have at least one operand, all boolean
//  3. Comparison operands share a comparable value family
//  4. Ordering operators take numeric operands only
//  5. Filters apply to arrays or maps, with a boolean condition
//
// All problems are reported; the result wraps ErrInvalidExpression,
// ErrTypeMismatch or ErrInvalidKey and can be matched with errors.Is.
func Validate(n Node) error {
	v := &validator{}
	v.validateNode(n)
	return errors.Join(v.errs...)
}

// validator accumulates errors during traversal.
type validator struct {
	errs []error
}

func (v *validator) addError(sentinel error, k Kind, format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%s: %w: %s", k, sentinel, fmt.Sprintf(format, args...)))
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// validateNode recursively validates a node. It returns false when n is
// nil, so callers can skip checks that read n's shape.
func (v *validator) validateNode(n Node) bool {
	if isNil(n) {
		v.errs = append(v.errs, fmt.Errorf("%w: nil node", ErrInvalidExpression))
		return false
	}

	switch node := n.(type) {
	case *Identifier:
		if node.value == "" {
			v.addError(ErrInvalidExpression, node.Kind(), "empty identifier")
		}
	case *Field:
		if node.name == "" {
			v.addError(ErrInvalidKey, node.Kind(), "empty field name")
		}
		v.validateNode(node.parent)
	case *ArrayElement:
		if node.index < 0 {
			v.addError(ErrInvalidKey, node.Kind(), "negative index %d", node.index)
		}
		v.validateNode(node.parent)
	case *MapElement:
		if node.key == "" {
			v.addError(ErrInvalidKey, node.Kind(), "empty map key")
		}
		v.validateNode(node.parent)
	case *Comparison:
		v.validateComparison(node)
	case *Conjunction:
		v.validateOperands(node.Kind(), node.operands)
	case *Disjunction:
		v.validateOperands(node.Kind(), node.operands)
	case *Negation:
		v.validateBoolean(node.Kind(), node.operand)
	case *StringMatch:
		if node.pattern == "" {
			v.addError(ErrInvalidExpression, node.Kind(), "empty pattern")
		}
		if v.validateNode(node.operand) {
			if f := shape.FamilyOf(node.operand.Shape()); f != shape.FamilyString {
				v.addError(ErrTypeMismatch, node.Kind(), "match needs a string operand, got %s", f)
			}
		}
	case *Filter:
		v.validateFilter(node)
	case *Item:
		// @ carries no children.
	case *String:
		v.validateAccessor(node.Kind(), node.expr)
	case *Number:
		v.validateAccessor(node.Kind(), node.expr)
	case *Bool:
		v.validateAccessor(node.Kind(), node.expr)
	case *Binary:
		v.validateAccessor(node.Kind(), node.expr)
	case *Dynamic:
		v.validateAccessor(node.Kind(), node.expr)
	case *Value:
		v.validateAccessor(node.Kind(), node.expr)
	case *Struct:
		v.validateAccessor(node.Kind(), node.expr)
	case *Array:
		v.validateAccessor(node.Kind(), node.expr)
	case *Map:
		v.validateAccessor(node.Kind(), node.expr)
	default:
		v.errs = append(v.errs, fmt.Errorf("%w: unsupported node type %T", ErrInvalidExpression, n))
	}
	return true
}

func (v *validator) validateAccessor(k Kind, expr Node) {
	if isNil(expr) {
		v.addError(ErrInvalidExpression, k, "accessor has no expression")
		return
	}
	v.validateNode(expr)
}

func (v *validator) validateComparison(c *Comparison) {
	switch c.op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
	default:
		v.addError(ErrInvalidExpression, c.Kind(), "unknown operator %q", c.op)
	}

	leftOK := v.validateNode(c.left)
	rightOK := v.validateNode(c.right)
	if !leftOK || !rightOK {
		return
	}

	lf := shape.FamilyOf(c.left.Shape())
	rf := shape.FamilyOf(c.right.Shape())
	switch {
	case lf == shape.FamilyOther:
		v.addError(ErrTypeMismatch, c.Kind(), "%s is not comparable", describeShape(c.left.Shape()))
	case lf != rf:
		v.addError(ErrTypeMismatch, c.Kind(), "%s %s %s", lf, c.op, rf)
	case c.op.ordering() && lf != shape.FamilyNumeric:
		v.addError(ErrTypeMismatch, c.Kind(), "operator %s needs numeric operands, got %s", c.op, lf)
	}
}

func (v *validator) validateOperands(k Kind, operands []Node) {
	if len(operands) == 0 {
		v.addError(ErrInvalidExpression, k, "no operands")
		return
	}
	for _, op := range operands {
		v.validateBoolean(k, op)
	}
}

func (v *validator) validateBoolean(k Kind, n Node) {
	if !v.validateNode(n) {
		return
	}
	if f := shape.FamilyOf(n.Shape()); f != shape.FamilyBool {
		v.addError(ErrTypeMismatch, k, "operand must be boolean, got %s", describeShape(n.Shape()))
	}
}

func (v *validator) validateFilter(f *Filter) {
	if v.validateNode(f.parent) {
		switch s := f.parent.Shape(); {
		case s == nil:
			v.addError(ErrInvalidExpression, f.Kind(), "filter parent has no shape")
		case s.Kind() != shape.KindArray && s.Kind() != shape.KindSet && s.Kind() != shape.KindMap:
			v.addError(ErrTypeMismatch, f.Kind(), "cannot filter %s", s)
		}
	}
	v.validateBoolean(f.Kind(), f.condition)
}
