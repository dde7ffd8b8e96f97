package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shapepath/internal/shape"
)

func TestValidate_BuiltTreesAreValid(t *testing.T) {
	root := myType(t)
	id := field[*String](t, root, "id")
	tags := field[*Array](t, root, "array")

	filtered := must(tags.Filter(ItemAs(func(s *String) (*Bool, error) { return s.Equals("a") })))
	cond := And(must(id.Equals("x")), id.Match("/x/").Not())

	assert.NoError(t, Validate(root))
	assert.NoError(t, Validate(filtered))
	assert.NoError(t, Validate(cond))
}

func TestValidate_Rejects(t *testing.T) {
	str := NewIdentifier(shape.String(), "'a'")
	num := NewIdentifier(shape.Integer(), "1")
	bin := NewIdentifier(shape.Binary(), "b")
	cond := newBool(&Comparison{op: OpEquals, left: str, right: str})

	tests := []struct {
		name string
		node Node
		want error
	}{
		{"nil", nil, ErrInvalidExpression},
		{"typed nil", (*Bool)(nil), ErrInvalidExpression},
		{"zero accessor", &String{}, ErrInvalidExpression},
		{"empty and", And(), ErrInvalidExpression},
		{"empty or", Or(), ErrInvalidExpression},
		{"nil and operand", And(cond, nil), ErrInvalidExpression},
		{"nil not operand", Not(nil), ErrInvalidExpression},
		{"mixed families", &Comparison{op: OpEquals, left: str, right: num}, ErrTypeMismatch},
		{"ordering strings", &Comparison{op: OpLessThan, left: str, right: str}, ErrTypeMismatch},
		{"binary comparison", &Comparison{op: OpEquals, left: bin, right: bin}, ErrTypeMismatch},
		{"unknown operator", &Comparison{op: "<>", left: num, right: num}, ErrInvalidExpression},
		{"non-boolean and operand", &Conjunction{operands: []Node{str}}, ErrTypeMismatch},
		{"match on number", &StringMatch{operand: num, pattern: "/x/"}, ErrTypeMismatch},
		{"empty pattern", &StringMatch{operand: str}, ErrInvalidExpression},
		{"filter on string", &Filter{parent: str, condition: cond}, ErrTypeMismatch},
		{"filter without condition", &Filter{parent: NewIdentifier(shape.ArrayOf(shape.String()), "$")}, ErrInvalidExpression},
		{"negative index", &ArrayElement{shape: shape.String(), parent: str, index: -1}, ErrInvalidKey},
		{"empty key", &MapElement{shape: shape.String(), parent: str}, ErrInvalidKey},
		{"empty field", &Field{shape: shape.String(), parent: str}, ErrInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			_, err = Compile(tt.node)
			assert.ErrorIs(t, err, tt.want, "Compile must validate first")
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	str := NewIdentifier(shape.String(), "'a'")
	num := NewIdentifier(shape.Integer(), "1")

	n := &Conjunction{operands: []Node{
		&Comparison{op: OpEquals, left: str, right: num},
		nil,
	}}
	err := Validate(n)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, err, ErrInvalidExpression)
}
