package shape

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned by Visit when a shape has no handler.
var ErrUnsupportedKind = errors.New("unsupported shape kind")

// Visitor handles one shape kind per method. A is the argument threaded
// through the walk and R is the result produced for each shape.
type Visitor[A, R any] interface {
	StringShape(s *StringShape, arg A) (R, error)
	NumberShape(s *NumberShape, arg A) (R, error)
	IntegerShape(s *IntegerShape, arg A) (R, error)
	BoolShape(s *BoolShape, arg A) (R, error)
	BinaryShape(s *BinaryShape, arg A) (R, error)
	TimestampShape(s *TimestampShape, arg A) (R, error)
	DynamicShape(s *DynamicShape, arg A) (R, error)
	NothingShape(s *NothingShape, arg A) (R, error)
	ArrayShape(s *ArrayShape, arg A) (R, error)
	SetShape(s *SetShape, arg A) (R, error)
	MapShape(s *MapShape, arg A) (R, error)
	RecordShape(s *RecordShape, arg A) (R, error)
}

// Visit dispatches s to the Visitor method matching its kind.
func Visit[A, R any](s Shape, v Visitor[A, R], arg A) (R, error) {
	var zero R
	switch sh := s.(type) {
	case *StringShape:
		return v.StringShape(sh, arg)
	case *NumberShape:
		return v.NumberShape(sh, arg)
	case *IntegerShape:
		return v.IntegerShape(sh, arg)
	case *BoolShape:
		return v.BoolShape(sh, arg)
	case *BinaryShape:
		return v.BinaryShape(sh, arg)
	case *TimestampShape:
		return v.TimestampShape(sh, arg)
	case *DynamicShape:
		return v.DynamicShape(sh, arg)
	case *NothingShape:
		return v.NothingShape(sh, arg)
	case *ArrayShape:
		if sh.Items == nil {
			return zero, fmt.Errorf("%w: array without item shape", ErrUnsupportedKind)
		}
		return v.ArrayShape(sh, arg)
	case *SetShape:
		if sh.Items == nil {
			return zero, fmt.Errorf("%w: set without item shape", ErrUnsupportedKind)
		}
		return v.SetShape(sh, arg)
	case *MapShape:
		if sh.Items == nil {
			return zero, fmt.Errorf("%w: map without item shape", ErrUnsupportedKind)
		}
		return v.MapShape(sh, arg)
	case *RecordShape:
		return v.RecordShape(sh, arg)
	case nil:
		return zero, fmt.Errorf("%w: nil shape", ErrUnsupportedKind)
	default:
		return zero, fmt.Errorf("%w: %T", ErrUnsupportedKind, s)
	}
}
