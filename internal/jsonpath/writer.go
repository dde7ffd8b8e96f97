package jsonpath

import "strings"

type token struct {
	text      string
	separator bool
}

// Writer collects the tokens of a query as nodes are synthesized.
//
// Separators are tracked apart from content so that n-ary combinators can
// write "<operand><sep>" for every operand and Pop the trailing separator
// before closing the group. A Writer is used for a single compilation.
type Writer struct {
	tokens []token
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteToken appends content.
func (w *Writer) WriteToken(s string) {
	w.tokens = append(w.tokens, token{text: s})
}

// WriteSeparator appends a separator that a following Pop may remove.
func (w *Writer) WriteSeparator(s string) {
	w.tokens = append(w.tokens, token{text: s, separator: true})
}

// Pop removes the most recently written token if it is a separator and
// reports whether it did. Content is never removed.
func (w *Writer) Pop() bool {
	n := len(w.tokens)
	if n == 0 || !w.tokens[n-1].separator {
		return false
	}
	w.tokens = w.tokens[:n-1]
	return true
}

// Len returns the number of buffered tokens.
func (w *Writer) Len() int {
	return len(w.tokens)
}

// String concatenates the buffered tokens. It does not modify the Writer.
func (w *Writer) String() string {
	var b strings.Builder
	for _, t := range w.tokens {
		b.WriteString(t.text)
	}
	return b.String()
}
