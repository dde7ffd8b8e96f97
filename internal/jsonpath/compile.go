package jsonpath

import (
	"fmt"
	"strconv"
)

// Compile renders n as a JSONPath string.
//
// The tree is validated first, so a tree that Compile accepts always
// renders. Output is deterministic: equal trees produce byte-identical
// strings.
//
// Example:
//
//	root, _ := jsonpath.OfRecord(myType)
//	id, _ := jsonpath.FieldAs[*jsonpath.String](root, "id")
//	cond, _ := id.Equals("x")
//	s, _ := jsonpath.Compile(cond) // $['id'] == 'x'
func Compile(n Node) (string, error) {
	if err := Validate(n); err != nil {
		return "", err
	}
	w := NewWriter()
	if err := synthesize(w, n); err != nil {
		return "", err
	}
	return w.String(), nil
}

// MustCompile is like Compile but panics on error. Intended for fixtures
// and package-level query variables.
func MustCompile(n Node) string {
	s, err := Compile(n)
	if err != nil {
		panic(fmt.Sprintf("jsonpath: compile: %v", err))
	}
	return s
}

// synthesize writes n into w. Every node type is handled; the default case
// exists only for foreign implementations, which the sealed interface rules
// out.
func synthesize(w *Writer, n Node) error {
	switch node := n.(type) {
	case *Identifier:
		w.WriteToken(node.value)

	case *Field:
		if err := synthesize(w, node.parent); err != nil {
			return err
		}
		w.WriteToken("[" + quote(node.name) + "]")

	case *ArrayElement:
		if err := synthesize(w, node.parent); err != nil {
			return err
		}
		w.WriteToken("[" + strconv.Itoa(node.index) + "]")

	case *MapElement:
		if err := synthesize(w, node.parent); err != nil {
			return err
		}
		w.WriteToken("[" + quote(node.key) + "]")

	case *Comparison:
		if err := synthesize(w, node.left); err != nil {
			return err
		}
		w.WriteToken(" " + string(node.op) + " ")
		return synthesize(w, node.right)

	case *Conjunction:
		return synthesizeOperands(w, node.operands, " && ")

	case *Disjunction:
		return synthesizeOperands(w, node.operands, " || ")

	case *Negation:
		w.WriteToken("(!")
		if err := synthesize(w, node.operand); err != nil {
			return err
		}
		w.WriteToken(")")

	case *StringMatch:
		if err := synthesize(w, node.operand); err != nil {
			return err
		}
		w.WriteToken(" =~ ")
		w.WriteToken(node.pattern)

	case *Filter:
		if err := synthesize(w, node.parent); err != nil {
			return err
		}
		w.WriteToken("[?(")
		if err := synthesize(w, node.condition); err != nil {
			return err
		}
		w.WriteToken(")]")

	case *Item:
		w.WriteToken("@")

	// Typed accessors render as the expression they wrap.
	case *String:
		return synthesize(w, node.expr)
	case *Number:
		return synthesize(w, node.expr)
	case *Bool:
		return synthesize(w, node.expr)
	case *Binary:
		return synthesize(w, node.expr)
	case *Dynamic:
		return synthesize(w, node.expr)
	case *Value:
		return synthesize(w, node.expr)
	case *Struct:
		return synthesize(w, node.expr)
	case *Array:
		return synthesize(w, node.expr)
	case *Map:
		return synthesize(w, node.expr)

	default:
		return fmt.Errorf("%w: unsupported node type %T", ErrInvalidExpression, n)
	}
	return nil
}

// synthesizeOperands writes (a<sep>b<sep>...). Each operand is followed by
// a separator and the trailing one is popped before closing.
func synthesizeOperands(w *Writer, operands []Node, sep string) error {
	w.WriteToken("(")
	for _, op := range operands {
		if err := synthesize(w, op); err != nil {
			return err
		}
		w.WriteSeparator(sep)
	}
	w.Pop()
	w.WriteToken(")")
	return nil
}
