package jsonpath

import (
	"errors"

	"github.com/roach88/shapepath/internal/shape"
)

var (
	// ErrUnsupportedShapeKind is returned when the dispatcher meets a shape
	// it has no handler for. It is the same value as shape.ErrUnsupportedKind
	// so either can be matched with errors.Is.
	ErrUnsupportedShapeKind = shape.ErrUnsupportedKind

	// ErrTypeMismatch is returned when an operand's value family disagrees
	// with the receiver, e.g. comparing a string field to a number.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidKey is returned for field names not declared by a record,
	// negative array indexes and empty map keys.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidExpression is returned by Validate for trees that were not
	// produced by the builder API (nil operands, empty combinators).
	ErrInvalidExpression = errors.New("invalid expression")
)
