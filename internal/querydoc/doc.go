// Package querydoc compiles declarative YAML query documents.
//
// A document names a record definition and lists queries against it. Each
// query is either a selection (a chain of steps from the root) or a boolean
// predicate. Queries are built through the typed jsonpath builder API, so
// a document can only describe queries the accessor tree allows:
//
//	schema: "#Order"
//	queries:
//	  - name: first-tag
//	    select:
//	      - field: tags
//	      - index: 0
//	  - name: big
//	    where:
//	      and:
//	        - {path: [{field: count}], gt: 5}
//	        - {path: [{field: id}], match: "/^x/"}
//
// Steps and predicates:
//   - step: exactly one of field, index, key, filter, as
//   - predicate: exactly one of and, or, not, or a comparison
//     {path, <op>: value} with op one of equals, not_equals, gt, gte,
//     lt, lte, match
//
// An empty path addresses the current node: the root in a where clause and
// the element under evaluation inside a filter.
package querydoc
