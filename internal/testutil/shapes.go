// Package testutil holds fixtures shared by the tests of every package.
package testutil

import "github.com/roach88/shapepath/internal/shape"

// Nested is a record with a single string member.
//
//	#Nested: { a: string }
func Nested() *shape.RecordShape {
	return shape.Record("Nested",
		shape.Field("a", shape.String()),
	)
}

// MyType covers every shape kind once, with nested records inside each
// collection kind. Member kinds match the #MyType definition in
// testdata/schema/schema.cue of the cli package.
func MyType() *shape.RecordShape {
	nested := Nested()
	return shape.Record("MyType",
		shape.Field("id", shape.String()),
		shape.OptionalField("count", shape.Number()),
		shape.Field("integer", shape.Integer()),
		shape.Field("bool", shape.Bool()),
		shape.Field("ts", shape.Timestamp()),
		shape.Field("nested", nested),
		shape.Field("array", shape.ArrayOf(shape.String())),
		shape.Field("complexArray", shape.ArrayOf(nested)),
		shape.Field("stringSet", shape.SetOf(shape.String())),
		shape.Field("numberSet", shape.SetOf(shape.Number())),
		shape.Field("map", shape.MapOf(shape.String())),
		shape.Field("complexMap", shape.MapOf(nested)),
		shape.Field("binaryField", shape.Binary()),
		shape.Field("anyField", shape.Any()),
		shape.Field("unknownField", shape.Unknown()),
		shape.OptionalField("maybe", shape.Integer()),
	)
}
