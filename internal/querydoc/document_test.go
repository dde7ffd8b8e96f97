package querydoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
schema: "#MyType"
queries:
  - name: first-tag
    description: First element of the array field.
    select:
      - field: array
      - index: 0
  - name: big
    where:
      and:
        - {path: [{field: count}], gt: 5}
        - {path: [{field: id}], match: "/^x/"}
`

func TestParse_Valid(t *testing.T) {
	doc, err := Parse([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, "#MyType", doc.Schema)
	require.Len(t, doc.Queries, 2)

	first := doc.Queries[0]
	assert.Equal(t, "first-tag", first.Name)
	require.Len(t, first.Select, 2)
	assert.Equal(t, "array", first.Select[0].Field)
	require.NotNil(t, first.Select[1].Index)
	assert.Equal(t, 0, *first.Select[1].Index)

	big := doc.Queries[1]
	require.NotNil(t, big.Where)
	require.Len(t, big.Where.And, 2)
	assert.Equal(t, 5, big.Where.And[0].GT)
	assert.Equal(t, "/^x/", big.Where.And[1].Match)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Queries, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read query file")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`
schema: "#MyType"
query:
  - name: typo
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing schema",
			doc:  "queries: [{name: a, select: [{field: id}]}]",
			want: "schema is required",
		},
		{
			name: "no queries",
			doc:  `schema: "#MyType"`,
			want: "queries list is required",
		},
		{
			name: "missing name",
			doc:  `{schema: "#MyType", queries: [{select: [{field: id}]}]}`,
			want: "name is required",
		},
		{
			name: "duplicate name",
			doc:  `{schema: "#MyType", queries: [{name: a, select: [{field: id}]}, {name: a, select: [{field: id}]}]}`,
			want: `duplicate query name "a"`,
		},
		{
			name: "select and where",
			doc:  `{schema: "#MyType", queries: [{name: a, select: [{field: id}], where: {path: [{field: id}], equals: x}}]}`,
			want: "mutually exclusive",
		},
		{
			name: "neither select nor where",
			doc:  `{schema: "#MyType", queries: [{name: a}]}`,
			want: "one of select or where is required",
		},
		{
			name: "ambiguous step",
			doc:  `{schema: "#MyType", queries: [{name: a, select: [{field: id, key: k}]}]}`,
			want: "exactly one of field, index, key, filter, as",
		},
		{
			name: "two operators",
			doc:  `{schema: "#MyType", queries: [{name: a, where: {path: [{field: count}], gt: 1, lt: 5}}]}`,
			want: "exactly one operator",
		},
		{
			name: "path without operator",
			doc:  `{schema: "#MyType", queries: [{name: a, where: {path: [{field: count}]}}]}`,
			want: "path given without a comparison operator",
		},
		{
			name: "combinator and comparison",
			doc:  `{schema: "#MyType", queries: [{name: a, where: {not: {path: [{field: bool}], equals: true}, equals: 1}}]}`,
			want: "exactly one of and, or, not or a comparison",
		},
		{
			name: "nested invalid",
			doc:  `{schema: "#MyType", queries: [{name: a, where: {or: [{path: [{field: id}]}]}}]}`,
			want: "or: path given without a comparison operator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
