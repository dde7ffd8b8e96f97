// Package shape describes the structure of documents that path queries are
// written against.
//
// A Shape is an immutable, tagged description of a data type. Primitive
// shapes (string, number, integer, bool, binary, timestamp, dynamic,
// nothing) carry no children; collection shapes (array, set, map) carry an
// item shape; record shapes carry an ordered list of named members.
//
// Shape is a sealed interface. Consumers walk shapes through Visit, which
// dispatches to one Visitor method per kind:
//
//	n, err := shape.Visit(s, visitor, arg)
//
// Shapes are normally declared in CUE and converted with FromCUE, or built
// directly with the constructors in this package:
//
//	order := shape.Record("Order",
//	    shape.Field("id", shape.String()),
//	    shape.Field("tags", shape.ArrayOf(shape.String())),
//	)
package shape
