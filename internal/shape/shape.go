package shape

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Shape.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBool
	KindBinary
	KindTimestamp
	KindDynamic
	KindNothing
	KindArray
	KindSet
	KindMap
	KindRecord
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalidShape",
	KindString:    "stringShape",
	KindNumber:    "numberShape",
	KindInteger:   "integerShape",
	KindBool:      "boolShape",
	KindBinary:    "binaryShape",
	KindTimestamp: "timestampShape",
	KindDynamic:   "dynamicShape",
	KindNothing:   "nothingShape",
	KindArray:     "arrayShape",
	KindSet:       "setShape",
	KindMap:       "mapShape",
	KindRecord:    "recordShape",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is a sealed interface implemented by the shape types in this package.
type Shape interface {
	Kind() Kind
	String() string
	shape() // Marker method - seals interface to this package
}

// DynamicTag distinguishes the two flavors of dynamic shape.
type DynamicTag string

const (
	TagAny     DynamicTag = "any"
	TagUnknown DynamicTag = "unknown"
)

type StringShape struct{}

func (*StringShape) Kind() Kind     { return KindString }
func (*StringShape) String() string { return "string" }
func (*StringShape) shape()         {}

type NumberShape struct{}

func (*NumberShape) Kind() Kind     { return KindNumber }
func (*NumberShape) String() string { return "number" }
func (*NumberShape) shape()         {}

type IntegerShape struct{}

func (*IntegerShape) Kind() Kind     { return KindInteger }
func (*IntegerShape) String() string { return "integer" }
func (*IntegerShape) shape()         {}

type BoolShape struct{}

func (*BoolShape) Kind() Kind     { return KindBool }
func (*BoolShape) String() string { return "bool" }
func (*BoolShape) shape()         {}

type BinaryShape struct{}

func (*BinaryShape) Kind() Kind     { return KindBinary }
func (*BinaryShape) String() string { return "binary" }
func (*BinaryShape) shape()         {}

type TimestampShape struct{}

func (*TimestampShape) Kind() Kind     { return KindTimestamp }
func (*TimestampShape) String() string { return "timestamp" }
func (*TimestampShape) shape()         {}

// NothingShape is the shape of a value that is always absent (null).
type NothingShape struct{}

func (*NothingShape) Kind() Kind     { return KindNothing }
func (*NothingShape) String() string { return "nothing" }
func (*NothingShape) shape()         {}

// DynamicShape is an untyped value whose structure is only known at runtime.
type DynamicShape struct {
	Tag DynamicTag
}

func (*DynamicShape) Kind() Kind       { return KindDynamic }
func (s *DynamicShape) String() string { return string(s.Tag) }
func (*DynamicShape) shape()           {}

// ArrayShape is an ordered list of Items.
type ArrayShape struct {
	Items Shape
}

func (*ArrayShape) Kind() Kind       { return KindArray }
func (s *ArrayShape) String() string { return "array<" + describe(s.Items) + ">" }
func (*ArrayShape) shape()           {}

// SetShape is a list of unique Items.
type SetShape struct {
	Items Shape
}

func (*SetShape) Kind() Kind       { return KindSet }
func (s *SetShape) String() string { return "set<" + describe(s.Items) + ">" }
func (*SetShape) shape()           {}

// MapShape is a string-keyed dictionary of Items.
type MapShape struct {
	Items Shape
}

func (*MapShape) Kind() Kind       { return KindMap }
func (s *MapShape) String() string { return "map<" + describe(s.Items) + ">" }
func (*MapShape) shape()           {}

// Member is a named field of a record.
type Member struct {
	Name     string
	Shape    Shape
	Optional bool
	Doc      string
}

// RecordShape is a structure with a fixed, ordered set of members.
type RecordShape struct {
	Name    string
	Members []Member
}

func (*RecordShape) Kind() Kind { return KindRecord }
func (*RecordShape) shape()     {}

func (s *RecordShape) String() string {
	if s.Name != "" {
		return s.Name
	}
	parts := make([]string, len(s.Members))
	for i, m := range s.Members {
		parts[i] = m.Name + ": " + describe(m.Shape)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Member looks up a member by name.
func (s *RecordShape) Member(name string) (Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Names returns member names in declaration order.
func (s *RecordShape) Names() []string {
	names := make([]string, len(s.Members))
	for i, m := range s.Members {
		names[i] = m.Name
	}
	return names
}

func describe(s Shape) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}

// Family groups shapes whose values can be compared with each other.
type Family string

const (
	FamilyString  Family = "string"
	FamilyNumeric Family = "numeric"
	FamilyBool    Family = "bool"
	FamilyOther   Family = "other"
)

// FamilyOf returns the comparison family of s. Timestamps compare as strings.
func FamilyOf(s Shape) Family {
	if s == nil {
		return FamilyOther
	}
	switch s.Kind() {
	case KindString, KindTimestamp:
		return FamilyString
	case KindNumber, KindInteger:
		return FamilyNumeric
	case KindBool:
		return FamilyBool
	default:
		return FamilyOther
	}
}
