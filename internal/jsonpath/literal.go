package jsonpath

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/shapepath/internal/shape"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote renders s single-quoted. Member names and map keys are matched code
// point by code point, so s is emitted as given.
func quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}

// quoteText renders a string literal. Literals are NFC normalized so that
// equal text always produces the same query.
func quoteText(s string) string {
	return quote(norm.NFC.String(s))
}

// Literal lifts a native Go value into an Identifier.
//
// Supported values:
//   - string: quoted ('value')
//   - signed and unsigned integers: bare digits
//   - float32, float64, decimal.Decimal: shortest exact decimal, no exponent
//   - bool: true / false
func Literal(x any) (*Identifier, error) {
	switch v := x.(type) {
	case string:
		return NewIdentifier(shape.String(), quoteText(v)), nil
	case int:
		return integerLiteral(strconv.FormatInt(int64(v), 10)), nil
	case int8:
		return integerLiteral(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return integerLiteral(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return integerLiteral(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return integerLiteral(strconv.FormatInt(v, 10)), nil
	case uint:
		return integerLiteral(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return integerLiteral(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return integerLiteral(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return integerLiteral(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return integerLiteral(strconv.FormatUint(v, 10)), nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("%w: non-finite number %v", ErrTypeMismatch, v)
		}
		return NewIdentifier(shape.Number(), decimal.NewFromFloat32(v).String()), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite number %v", ErrTypeMismatch, v)
		}
		return NewIdentifier(shape.Number(), decimal.NewFromFloat(v).String()), nil
	case decimal.Decimal:
		return NewIdentifier(shape.Number(), v.String()), nil
	case bool:
		return NewIdentifier(shape.Bool(), strconv.FormatBool(v)), nil
	case nil:
		return nil, fmt.Errorf("%w: nil literal", ErrTypeMismatch)
	default:
		return nil, fmt.Errorf("%w: unsupported literal type %T", ErrTypeMismatch, x)
	}
}

func integerLiteral(digits string) *Identifier {
	return NewIdentifier(shape.Integer(), digits)
}

// operand resolves x into a node of the given family. x is either a Node
// built by this package or a native literal accepted by Literal.
func operand(want shape.Family, x any) (Node, error) {
	var n Node
	if node, ok := x.(Node); ok {
		if isNil(node) {
			return nil, fmt.Errorf("%w: nil %T operand", ErrTypeMismatch, node)
		}
		n = node
	} else {
		lit, err := Literal(x)
		if err != nil {
			return nil, err
		}
		n = lit
	}
	if got := shape.FamilyOf(n.Shape()); got != want {
		return nil, fmt.Errorf("%w: expected %s operand, got %s (%s)", ErrTypeMismatch, want, got, describeShape(n.Shape()))
	}
	return n, nil
}

func describeShape(s shape.Shape) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
