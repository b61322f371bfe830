// Package ir provides the textual tree document model used by docshape.
//
// A document is a tree of *Node values. Each node carries a Type and the
// payload for that type:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Int64 or Float64, with the source text in Number
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields and Values, where Fields[i] is the key of Values[i]
//
// Nodes keep parent links so that Path can name any location in a document.
//
// # Narrowing
//
// ToObject and ToArray narrow a node to a container kind. They never fail:
// a node of any other kind yields a fresh empty container, the same leniency
// as the JSON value types of most document libraries. Use KindOf to check the
// kind before narrowing when the difference matters.
//
//	obj := ir.FromString("hello").ToObject() // empty object
//	arr := ir.FromSlice(nil).ToArray()       // the same array
package ir
