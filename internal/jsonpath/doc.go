// Package jsonpath builds typed query expressions over a shape and renders
// them as JSONPath-style query strings.
//
// ARCHITECTURE:
//
//	[shape.Shape] → dispatcher → [accessor tree] → caller composes → Compile → string
//
// Of walks a shape once and returns an immutable accessor tree: a Struct per
// record (one accessor per member), an Array per array or set, a Map per map,
// and a typed leaf (String, Number, Bool, Binary, Dynamic, Value) per
// primitive. Leaves expose only the operations their value family supports,
// so a string can never be compared with a number:
//
//	root, _ := jsonpath.OfRecord(order)
//	count, _ := jsonpath.FieldAs[*jsonpath.Number](root, "count")
//	big, _ := count.GreaterThan(5)
//	jsonpath.MustCompile(big) // $['count'] > 5
//
// OUTPUT GRAMMAR:
//
//	$                  document root
//	['name']           field or map key
//	[3]                array index
//	@                  element under evaluation in a filter
//	[?(<cond>)]        filter
//	<a> == <b>         also != > >= < <=
//	<a> =~ <regex>     regex match, pattern emitted verbatim
//	(<a> && <b>)       also ||
//	(!<a>)             negation
//
// String literals are single-quoted with ' and \ escaped. Numeric literals
// are bare.
//
// SEALED INTERFACE:
//
// Node is sealed with an unexported marker method. Compile and Validate
// switch over every node type; there are no other implementations.
//
// Trees are immutable and safe for concurrent use. Each Compile call uses
// its own Writer.
package jsonpath
