package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for documents that parse but are not
// well formed: missing names, duplicate queries, ambiguous steps.
var ErrInvalidDocument = errors.New("invalid query document")

// Document is a set of named queries against one record definition.
type Document struct {
	// Schema is the CUE definition the queries are written against
	// (e.g. "#Order").
	Schema string `yaml:"schema"`

	// Queries are compiled in order.
	Queries []Query `yaml:"queries"`
}

// Query is one named query. Exactly one of Select and Where is set.
type Query struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Select walks from the root and yields the node reached.
	Select []Step `yaml:"select,omitempty"`

	// Where yields a boolean expression evaluated against the root.
	Where *Predicate `yaml:"where,omitempty"`
}

// Step moves from one accessor to another. Exactly one field is set.
type Step struct {
	Field  string     `yaml:"field,omitempty"`
	Index  *int       `yaml:"index,omitempty"`
	Key    string     `yaml:"key,omitempty"`
	Filter *Predicate `yaml:"filter,omitempty"`

	// As re-types a dynamic value: string, number, integer, bool, binary,
	// timestamp, any, unknown or nothing.
	As string `yaml:"as,omitempty"`
}

// Predicate is a boolean expression.
//
// Either one combinator (And, Or, Not) is set, or Path plus exactly one
// comparison operator.
type Predicate struct {
	And []Predicate `yaml:"and,omitempty"`
	Or  []Predicate `yaml:"or,omitempty"`
	Not *Predicate  `yaml:"not,omitempty"`

	Path      []Step `yaml:"path,omitempty"`
	Equals    any    `yaml:"equals,omitempty"`
	NotEquals any    `yaml:"not_equals,omitempty"`
	GT        any    `yaml:"gt,omitempty"`
	GTE       any    `yaml:"gte,omitempty"`
	LT        any    `yaml:"lt,omitempty"`
	LTE       any    `yaml:"lte,omitempty"`
	Match     string `yaml:"match,omitempty"`
}

// Load reads and parses a query document file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields, or fails validation.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a query document with strict field checking.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validateDocument(doc *Document) error {
	if doc.Schema == "" {
		return fmt.Errorf("%w: schema is required", ErrInvalidDocument)
	}
	if len(doc.Queries) == 0 {
		return fmt.Errorf("%w: queries list is required and must be non-empty", ErrInvalidDocument)
	}

	seen := make(map[string]bool, len(doc.Queries))
	for i, q := range doc.Queries {
		if q.Name == "" {
			return fmt.Errorf("%w: query %d: name is required", ErrInvalidDocument, i)
		}
		if seen[q.Name] {
			return fmt.Errorf("%w: duplicate query name %q", ErrInvalidDocument, q.Name)
		}
		seen[q.Name] = true

		if err := validateQuery(q); err != nil {
			return &Error{Query: q.Name, Err: fmt.Errorf("%w: %w", ErrInvalidDocument, err)}
		}
	}
	return nil
}

func validateQuery(q Query) error {
	switch {
	case len(q.Select) > 0 && q.Where != nil:
		return errors.New("select and where are mutually exclusive")
	case len(q.Select) == 0 && q.Where == nil:
		return errors.New("one of select or where is required")
	case q.Where != nil:
		return validatePredicate(*q.Where)
	}
	return validateSteps(q.Select)
}

func validateSteps(steps []Step) error {
	for i, s := range steps {
		n := 0
		if s.Field != "" {
			n++
		}
		if s.Index != nil {
			n++
		}
		if s.Key != "" {
			n++
		}
		if s.Filter != nil {
			n++
		}
		if s.As != "" {
			n++
		}
		if n != 1 {
			return fmt.Errorf("step %d: exactly one of field, index, key, filter, as is required", i)
		}
		if s.Filter != nil {
			if err := validatePredicate(*s.Filter); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}

func validatePredicate(p Predicate) error {
	forms := 0
	if len(p.And) > 0 {
		forms++
	}
	if len(p.Or) > 0 {
		forms++
	}
	if p.Not != nil {
		forms++
	}
	ops := len(p.operators())
	if ops > 0 {
		forms++
	}

	switch {
	case ops == 0 && len(p.Path) > 0:
		return errors.New("path given without a comparison operator")
	case forms != 1:
		return errors.New("predicate needs exactly one of and, or, not or a comparison")
	case ops > 1:
		return errors.New("comparison needs exactly one operator")
	}

	for _, sub := range p.And {
		if err := validatePredicate(sub); err != nil {
			return fmt.Errorf("and: %w", err)
		}
	}
	for _, sub := range p.Or {
		if err := validatePredicate(sub); err != nil {
			return fmt.Errorf("or: %w", err)
		}
	}
	if p.Not != nil {
		if err := validatePredicate(*p.Not); err != nil {
			return fmt.Errorf("not: %w", err)
		}
	}
	return validateSteps(p.Path)
}

// operator is one comparison named in a predicate.
type operator struct {
	name  string
	value any
}

// operators lists the comparison operators set on p, in a fixed order.
func (p Predicate) operators() []operator {
	var ops []operator
	for _, op := range []operator{
		{"equals", p.Equals},
		{"not_equals", p.NotEquals},
		{"gt", p.GT},
		{"gte", p.GTE},
		{"lt", p.LT},
		{"lte", p.LTE},
	} {
		if op.value != nil {
			ops = append(ops, op)
		}
	}
	if p.Match != "" {
		ops = append(ops, operator{"match", p.Match})
	}
	return ops
}
