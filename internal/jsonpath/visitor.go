package jsonpath

import (
	"fmt"

	"github.com/roach88/shapepath/internal/shape"
)

// dispatcher builds the typed accessor for a shape on top of a base
// expression, recursing into record members and collection items.
type dispatcher struct{}

var _ shape.Visitor[Node, Node] = dispatcher{}

func dispatch(s shape.Shape, base Node) (Node, error) {
	return shape.Visit[Node, Node](s, dispatcher{}, base)
}

func (dispatcher) StringShape(s *shape.StringShape, base Node) (Node, error) {
	return &String{object{shape: s, expr: base}}, nil
}

func (dispatcher) NumberShape(s *shape.NumberShape, base Node) (Node, error) {
	return &Number{object{shape: s, expr: base}}, nil
}

func (dispatcher) IntegerShape(s *shape.IntegerShape, base Node) (Node, error) {
	return &Number{object{shape: s, expr: base}}, nil
}

func (dispatcher) BoolShape(s *shape.BoolShape, base Node) (Node, error) {
	return &Bool{object{shape: s, expr: base}}, nil
}

func (dispatcher) BinaryShape(s *shape.BinaryShape, base Node) (Node, error) {
	return &Binary{object{shape: s, expr: base}}, nil
}

// Timestamps are exposed as strings: equality and regex matching only.
func (dispatcher) TimestampShape(_ *shape.TimestampShape, base Node) (Node, error) {
	return &String{object{shape: shape.String(), expr: base}}, nil
}

func (dispatcher) DynamicShape(s *shape.DynamicShape, base Node) (Node, error) {
	return &Dynamic{object{shape: s, expr: base}}, nil
}

func (dispatcher) NothingShape(s *shape.NothingShape, base Node) (Node, error) {
	return &Value{object{shape: s, expr: base}}, nil
}

func (dispatcher) ArrayShape(s *shape.ArrayShape, base Node) (Node, error) {
	return newArray(s, s.Items, base)
}

// Sets are represented as arrays; uniqueness is not tracked in expressions.
func (dispatcher) SetShape(s *shape.SetShape, base Node) (Node, error) {
	return newArray(shape.ArrayOf(s.Items), s.Items, base)
}

func (dispatcher) MapShape(s *shape.MapShape, base Node) (Node, error) {
	return newMap(s, s.Items, base)
}

func (dispatcher) RecordShape(s *shape.RecordShape, base Node) (Node, error) {
	st := &Struct{
		object: object{shape: s, expr: base},
		record: s,
		fields: make(map[string]Node, len(s.Members)),
	}
	for _, m := range s.Members {
		f, err := dispatch(m.Shape, &Field{shape: m.Shape, parent: st, name: m.Name})
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", m.Name, err)
		}
		st.fields[m.Name] = f
	}
	return st, nil
}

func newArray(s shape.Shape, items shape.Shape, base Node) (*Array, error) {
	item, err := dispatch(items, &Item{shape: items})
	if err != nil {
		return nil, fmt.Errorf("array item: %w", err)
	}
	return &Array{object: object{shape: s, expr: base}, items: items, item: item}, nil
}

func newMap(s shape.Shape, items shape.Shape, base Node) (*Map, error) {
	item, err := dispatch(items, &Item{shape: items})
	if err != nil {
		return nil, fmt.Errorf("map item: %w", err)
	}
	return &Map{object: object{shape: s, expr: base}, items: items, item: item}, nil
}
