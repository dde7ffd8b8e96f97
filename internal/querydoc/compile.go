package querydoc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/shapepath/internal/jsonpath"
	"github.com/roach88/shapepath/internal/shape"
)

// Error reports a query that failed to compile.
type Error struct {
	Query string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("query %q: %v", e.Query, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is one compiled query.
type Result struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	ID   string `json:"id" yaml:"id"`
}

// Compiler turns query documents into path strings.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler returns a Compiler. A nil logger discards output.
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compiler{logger: logger}
}

// Compile compiles every query of doc against root, the accessor tree for
// doc.Schema. It stops at the first failing query.
func (c *Compiler) Compile(doc *Document, root jsonpath.Node) ([]Result, error) {
	results := make([]Result, 0, len(doc.Queries))
	for _, q := range doc.Queries {
		r, err := c.CompileQuery(q, root)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// CompileQuery compiles a single query. Errors are *Error values wrapping
// the jsonpath sentinel that caused them.
func (c *Compiler) CompileQuery(q Query, root jsonpath.Node) (Result, error) {
	n, err := c.build(q, root)
	if err != nil {
		return Result{}, &Error{Query: q.Name, Err: err}
	}
	path, err := jsonpath.Compile(n)
	if err != nil {
		return Result{}, &Error{Query: q.Name, Err: err}
	}

	r := Result{Name: q.Name, Path: path, ID: jsonpath.QueryID(path)}
	c.logger.Debug("query compiled",
		"query", r.Name,
		"path", r.Path,
		"id", r.ID,
	)
	return r, nil
}

func (c *Compiler) build(q Query, root jsonpath.Node) (jsonpath.Node, error) {
	if q.Where != nil {
		return predicate(root, *q.Where)
	}
	return walk(root, q.Select)
}

func walk(n jsonpath.Node, steps []Step) (jsonpath.Node, error) {
	for i, s := range steps {
		next, err := step(n, s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		n = next
	}
	return n, nil
}

func step(n jsonpath.Node, s Step) (jsonpath.Node, error) {
	switch {
	case s.Field != "":
		st, err := jsonpath.As[*jsonpath.Struct](n)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", s.Field, err)
		}
		return st.Field(s.Field)

	case s.Index != nil:
		arr, err := jsonpath.As[*jsonpath.Array](n)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", *s.Index, err)
		}
		return arr.Get(*s.Index)

	case s.Key != "":
		m, err := jsonpath.As[*jsonpath.Map](n)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", s.Key, err)
		}
		return m.Get(s.Key)

	case s.Filter != nil:
		pred := func(item jsonpath.Node) (*jsonpath.Bool, error) {
			return predicate(item, *s.Filter)
		}
		switch coll := n.(type) {
		case *jsonpath.Array:
			return coll.Filter(pred)
		case *jsonpath.Map:
			return coll.Filter(pred)
		default:
			return nil, fmt.Errorf("%w: cannot filter %T", jsonpath.ErrTypeMismatch, n)
		}

	case s.As != "":
		d, err := jsonpath.As[*jsonpath.Dynamic](n)
		if err != nil {
			return nil, fmt.Errorf("as %s: %w", s.As, err)
		}
		target, err := primitive(s.As)
		if err != nil {
			return nil, err
		}
		return d.As(target)
	}
	return nil, fmt.Errorf("%w: empty step", ErrInvalidDocument)
}

// primitive resolves the shape named by an as step.
func primitive(name string) (shape.Shape, error) {
	switch name {
	case "string":
		return shape.String(), nil
	case "number":
		return shape.Number(), nil
	case "integer":
		return shape.Integer(), nil
	case "bool":
		return shape.Bool(), nil
	case "binary":
		return shape.Binary(), nil
	case "timestamp":
		return shape.Timestamp(), nil
	case "any":
		return shape.Any(), nil
	case "unknown":
		return shape.Unknown(), nil
	case "nothing":
		return shape.Nothing(), nil
	}
	return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidDocument, name)
}

func predicate(n jsonpath.Node, p Predicate) (*jsonpath.Bool, error) {
	switch {
	case len(p.And) > 0:
		operands, err := predicates(n, p.And)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}
		return jsonpath.And(operands...), nil

	case len(p.Or) > 0:
		operands, err := predicates(n, p.Or)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}
		return jsonpath.Or(operands...), nil

	case p.Not != nil:
		operand, err := predicate(n, *p.Not)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return jsonpath.Not(operand), nil
	}

	ops := p.operators()
	if len(ops) != 1 {
		return nil, fmt.Errorf("%w: comparison needs exactly one operator", ErrInvalidDocument)
	}
	target, err := walk(n, p.Path)
	if err != nil {
		return nil, err
	}
	cond, err := compare(target, ops[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ops[0].name, err)
	}
	return cond, nil
}

func predicates(n jsonpath.Node, ps []Predicate) ([]*jsonpath.Bool, error) {
	out := make([]*jsonpath.Bool, 0, len(ps))
	for _, p := range ps {
		b, err := predicate(n, p)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// equatable is satisfied by every accessor with equality operators.
type equatable interface {
	Equals(x any) (*jsonpath.Bool, error)
	NotEquals(x any) (*jsonpath.Bool, error)
}

var errNotComparable = errors.New("value does not support this operator")

func compare(target jsonpath.Node, op operator) (*jsonpath.Bool, error) {
	switch op.name {
	case "equals", "not_equals":
		c, ok := target.(equatable)
		if !ok {
			return nil, fmt.Errorf("%w: %w (%T)", jsonpath.ErrTypeMismatch, errNotComparable, target)
		}
		if op.name == "equals" {
			return c.Equals(op.value)
		}
		return c.NotEquals(op.value)

	case "gt", "gte", "lt", "lte":
		num, err := jsonpath.As[*jsonpath.Number](target)
		if err != nil {
			return nil, err
		}
		switch op.name {
		case "gt":
			return num.GreaterThan(op.value)
		case "gte":
			return num.GreaterThanOrEqual(op.value)
		case "lt":
			return num.LessThan(op.value)
		default:
			return num.LessThanOrEqual(op.value)
		}

	case "match":
		s, err := jsonpath.As[*jsonpath.String](target)
		if err != nil {
			return nil, err
		}
		return s.Match(op.value.(string)), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidDocument, op.name)
}
