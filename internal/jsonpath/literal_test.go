package jsonpath

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shapepath/internal/shape"
)

func nanValue() float64 { return math.NaN() }

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  string
		shape shape.Kind
	}{
		{"string", "abc", "'abc'", shape.KindString},
		{"empty string", "", "''", shape.KindString},
		{"single quote", "it's", `'it\'s'`, shape.KindString},
		{"backslash", `a\b`, `'a\\b'`, shape.KindString},
		{"nfc normalized", "e\u0301", "'\u00e9'", shape.KindString},
		{"int", 42, "42", shape.KindInteger},
		{"negative int", -7, "-7", shape.KindInteger},
		{"int8", int8(-8), "-8", shape.KindInteger},
		{"int64", int64(math.MaxInt64), "9223372036854775807", shape.KindInteger},
		{"uint64", uint64(math.MaxUint64), "18446744073709551615", shape.KindInteger},
		{"uint8", uint8(255), "255", shape.KindInteger},
		{"float", 2.5, "2.5", shape.KindNumber},
		{"float tenth", 0.1, "0.1", shape.KindNumber},
		{"float whole", 3.0, "3", shape.KindNumber},
		{"float large", 1e21, "1000000000000000000000", shape.KindNumber},
		{"float32", float32(0.5), "0.5", shape.KindNumber},
		{"decimal", decimal.RequireFromString("12.340"), "12.34", shape.KindNumber},
		{"true", true, "true", shape.KindBool},
		{"false", false, "false", shape.KindBool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Literal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.Value())
			assert.Equal(t, tt.shape, id.Shape().Kind())
			assert.Equal(t, tt.want, MustCompile(id))
		})
	}
}

func TestLiteral_Rejected(t *testing.T) {
	for name, in := range map[string]any{
		"nil":      nil,
		"NaN":      math.NaN(),
		"+Inf":     math.Inf(1),
		"-Inf32":   float32(math.Inf(-1)),
		"slice":    []int{1},
		"struct":   struct{}{},
		"byte ptr": new(byte),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Literal(in)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestCompile_NamesKeepCodePoints(t *testing.T) {
	decomposed := "e\u0301"
	root, err := OfRecord(shape.Record("Accents",
		shape.Field(decomposed, shape.String()),
		shape.Field("byKey", shape.MapOf(shape.String())),
	))
	require.NoError(t, err)

	f, err := root.Field(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "$['e\u0301']", MustCompile(f))

	m, err := FieldAs[*Map](root, "byKey")
	require.NoError(t, err)
	v, err := m.Get(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "$['byKey']['e\u0301']", MustCompile(v))

	s, err := As[*String](f)
	require.NoError(t, err)
	eq, err := s.Equals(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "$['e\u0301'] == '\u00e9'", MustCompile(eq))
}

func TestCompare_TypedNilOperand(t *testing.T) {
	root := myType(t)
	flag := field[*Bool](t, root, "bool")
	id := field[*String](t, root, "id")

	var nilBool *Bool
	_, err := flag.Equals(nilBool)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var nilString *String
	_, err = id.NotEquals(nilString)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
