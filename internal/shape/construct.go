package shape

import "fmt"

func String() *StringShape       { return &StringShape{} }
func Number() *NumberShape       { return &NumberShape{} }
func Integer() *IntegerShape     { return &IntegerShape{} }
func Bool() *BoolShape           { return &BoolShape{} }
func Binary() *BinaryShape       { return &BinaryShape{} }
func Timestamp() *TimestampShape { return &TimestampShape{} }
func Nothing() *NothingShape     { return &NothingShape{} }

// Any returns a dynamic shape tagged "any".
func Any() *DynamicShape { return &DynamicShape{Tag: TagAny} }

// Unknown returns a dynamic shape tagged "unknown".
func Unknown() *DynamicShape { return &DynamicShape{Tag: TagUnknown} }

func ArrayOf(items Shape) *ArrayShape { return &ArrayShape{Items: items} }
func SetOf(items Shape) *SetShape     { return &SetShape{Items: items} }
func MapOf(items Shape) *MapShape     { return &MapShape{Items: items} }

// Field declares a required record member.
func Field(name string, s Shape) Member {
	return Member{Name: name, Shape: s}
}

// OptionalField declares a member that may be absent from a document.
func OptionalField(name string, s Shape) Member {
	return Member{Name: name, Shape: s, Optional: true}
}

// Record builds a record shape and panics on invalid members.
// Use NewRecord when members come from untrusted input.
func Record(name string, members ...Member) *RecordShape {
	r, err := NewRecord(name, members...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRecord builds a record shape, rejecting empty or duplicate member
// names and members without a shape.
func NewRecord(name string, members ...Member) (*RecordShape, error) {
	seen := make(map[string]bool, len(members))
	for i, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("record %q: member %d has no name", name, i)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("record %q: duplicate member %q", name, m.Name)
		}
		if m.Shape == nil {
			return nil, fmt.Errorf("record %q: member %q has no shape", name, m.Name)
		}
		seen[m.Name] = true
	}
	copied := make([]Member, len(members))
	copy(copied, members)
	return &RecordShape{Name: name, Members: copied}, nil
}
