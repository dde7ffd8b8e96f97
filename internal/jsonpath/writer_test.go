package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_PopRemovesSeparatorOnly(t *testing.T) {
	w := NewWriter()
	w.WriteToken("(")
	w.WriteToken("a")
	w.WriteSeparator(" && ")
	w.WriteToken("b")
	w.WriteSeparator(" && ")

	assert.True(t, w.Pop())
	assert.False(t, w.Pop(), "content must not be popped")
	w.WriteToken(")")

	assert.Equal(t, "(a && b)", w.String())
	assert.Equal(t, 5, w.Len())
}

func TestWriter_PopEmpty(t *testing.T) {
	w := NewWriter()
	assert.False(t, w.Pop())
	assert.Equal(t, "", w.String())
}

func TestWriter_StringIsRepeatable(t *testing.T) {
	w := NewWriter()
	w.WriteToken("$")
	w.WriteToken("['id']")

	assert.Equal(t, "$['id']", w.String())
	assert.Equal(t, "$['id']", w.String())
	assert.Equal(t, 2, w.Len())
}
