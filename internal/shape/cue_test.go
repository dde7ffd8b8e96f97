package shape

import (
	"errors"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockSchema = `
#Nested: {
	// This is a nested string.
	a: string
}

#MyType: {
	// Field documentation.
	id:     string
	count?: number
	integer: int
	"bool":  bool
	ts:      string @shape(timestamp)

	nested:       #Nested
	array:        [...string]
	complexArray: [...#Nested]
	stringSet:    [...string] @shape(set)
	numberSet:    [...number] @shape(set)
	map:          {[string]: string}
	complexMap:   {[string]: #Nested}

	binaryField:  bytes
	anyField:     _
	unknownField: _ @shape(unknown)
	maybe:        int | null
}
`

func compileDefinition(t *testing.T, src, path string) cue.Value {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return v.LookupPath(cue.ParsePath(path))
}

func TestFromCUE_MockRecord(t *testing.T) {
	s, err := FromCUE(compileDefinition(t, mockSchema, "#MyType"))
	require.NoError(t, err)

	rec, ok := s.(*RecordShape)
	require.True(t, ok, "expected record, got %T", s)
	assert.Equal(t, "MyType", rec.Name)
	assert.Equal(t, []string{
		"id", "count", "integer", "bool", "ts",
		"nested", "array", "complexArray", "stringSet", "numberSet", "map", "complexMap",
		"binaryField", "anyField", "unknownField", "maybe",
	}, rec.Names())

	want := map[string]string{
		"id":           "string",
		"count":        "number",
		"integer":      "integer",
		"bool":         "bool",
		"ts":           "timestamp",
		"array":        "array<string>",
		"stringSet":    "set<string>",
		"numberSet":    "set<number>",
		"map":          "map<string>",
		"binaryField":  "binary",
		"anyField":     "any",
		"unknownField": "unknown",
		"maybe":        "integer",
	}
	for _, m := range rec.Members {
		if expected, ok := want[m.Name]; ok {
			assert.Equal(t, expected, m.Shape.String(), "member %s", m.Name)
		}
	}

	complexArray, _ := rec.Member("complexArray")
	arr, ok := complexArray.Shape.(*ArrayShape)
	require.True(t, ok)
	assert.Equal(t, KindRecord, arr.Items.Kind())

	complexMap, _ := rec.Member("complexMap")
	m, ok := complexMap.Shape.(*MapShape)
	require.True(t, ok)
	assert.Equal(t, KindRecord, m.Items.Kind())
}

func TestFromCUE_OptionalAndDocs(t *testing.T) {
	s, err := FromCUE(compileDefinition(t, mockSchema, "#MyType"))
	require.NoError(t, err)
	rec := s.(*RecordShape)

	count, _ := rec.Member("count")
	assert.True(t, count.Optional)

	maybe, _ := rec.Member("maybe")
	assert.True(t, maybe.Optional)

	id, _ := rec.Member("id")
	assert.False(t, id.Optional)
	assert.Equal(t, "Field documentation.", id.Doc)
}

func TestFromCUE_NestedRecordMembers(t *testing.T) {
	s, err := FromCUE(compileDefinition(t, mockSchema, "#MyType"))
	require.NoError(t, err)
	rec := s.(*RecordShape)

	nested, _ := rec.Member("nested")
	inner, ok := nested.Shape.(*RecordShape)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, inner.Names())
	assert.Equal(t, KindString, inner.Members[0].Shape.Kind())
}

func TestFromCUE_Primitives(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
	}{
		{`x: string`, KindString},
		{`x: int`, KindInteger},
		{`x: float`, KindNumber},
		{`x: number`, KindNumber},
		{`x: bool`, KindBool},
		{`x: bytes`, KindBinary},
		{`x: null`, KindNothing},
		{`x: _`, KindDynamic},
		{`x: "fixed"`, KindString},
		{`x: 3`, KindInteger},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s, err := FromCUE(compileDefinition(t, tt.src, "x"))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
		})
	}
}

func TestFromCUE_UnsupportedKind(t *testing.T) {
	_, err := FromCUE(compileDefinition(t, `x: string | int`, "x"))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Message, "unsupported type kind")
}

func TestFromCUE_InvalidValue(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`x: 1 & 2`)

	_, err := FromCUE(v.LookupPath(cue.ParsePath("x")))
	require.Error(t, err)
}

func TestSchemaErrorFormat(t *testing.T) {
	err := &SchemaError{Path: "#T.x", Message: "bad"}
	assert.Equal(t, "#T.x: bad", err.Error())
}
