// Package shape classifies Go types for serialization and resolves the
// document shape each serializable type maps to.
//
// # Descriptors
//
// A Descriptor is the classification of one type. FromType and Of derive
// descriptors from Go types:
//
//	*T                      Pointer(T)
//	unsafe.Pointer          Pointer(<opaque>)
//	Shared[T]               Shared(T)
//	weak.Pointer[T]         Weak(T)
//	[]T, [N]T               List(T), except []byte which is a scalar
//	map[K]V, K string kind  Map(V); maps with other keys are scalars
//	Pair[A, B]              Pair(A, B)
//	Tuple1..Tuple5          Tuple(T1..Tn)
//	dyn.Value               Dynamic
//	chan, func              excluded scalars
//	reflectable records     Record (see package introspect)
//	anything else           Scalar
//
// Descriptors can also be built by hand with NewScalar, NewPointer and the
// other constructors. The shapecheck analyzer fills Descriptor values
// directly from go/types, leaving Type unset, and checks them with the
// same Check.
//
// # Serializability
//
// Check decides whether a descriptor is serializable:
//
//   - a reference (pointer, shared owner or weak reference) is serializable
//     exactly when its target is a reflectable record;
//   - a list, map, pair or tuple is serializable exactly when all of its
//     elements are;
//   - scalars, records and dynamic values are serializable unless excluded.
//
// A failure is a *ClassError whose chain leads from the outer type to the
// element that violates a rule. Recursive types are accepted where they
// refer back to themselves.
//
// # Shapes
//
// Every serializable type has one of three shapes, the same in the textual
// (package ir) and the binary (package cborv) encodings:
//
//	records, references, maps  Object   ir.ObjectType  cborv.MapKind
//	lists, pairs, tuples       Array    ir.ArrayType   cborv.ArrayKind
//	everything else            ScalarValue, any value
//
// A Resolver carries the shape of a type together with narrowing functions.
// Narrowing is lenient: a value of the wrong kind becomes an empty container
// rather than an error.
//
//	var pointShape = shape.MustResolve[Point]()
//
//	obj := pointShape.NarrowText(node) // node, or an empty object
//
// The Strict variants report a *NarrowError instead.
//
// Resolving a type that is not serializable fails at run time. Running the
// shapecheck analyzer (cmd/shapecheck) reports the same failure when the
// type argument is known statically, before the program is built.
//
// # Dynamic values
//
// ToDynamic and FromDynamic move values in and out of dyn.Value. When the
// static type is already dyn.Value both are the identity.
package shape
