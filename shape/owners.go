package shape

import "reflect"

// wrapper is implemented by the generic composite types of this package so
// that FromType can recover their element types from a reflect.Type.
type wrapper interface {
	shapeElems() (Kind, []reflect.Type)
}

var (
	wrapperType = reflect.TypeFor[wrapper]()
	shapePkg    = reflect.TypeFor[Pair[int, int]]().PkgPath()
)

// Shared is an owner of a *T that may be held by several owners at once.
// Only the ownership relation matters for classification; Shared does no
// reference counting of its own.
type Shared[T any] struct {
	p *T
}

func Share[T any](p *T) Shared[T] {
	return Shared[T]{p: p}
}

func (s Shared[T]) Get() *T { return s.p }
func (s Shared[T]) IsNil() bool { return s.p == nil }

func (Shared[T]) shapeElems() (Kind, []reflect.Type) {
	return SharedKind, []reflect.Type{reflect.TypeFor[T]()}
}

// Pair holds two values, serialized as a two element array.
type Pair[A, B any] struct {
	First  A
	Second B
}

func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (Pair[A, B]) shapeElems() (Kind, []reflect.Type) {
	return PairKind, []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

// Tuple1 through Tuple5 are fixed arity heterogeneous tuples, serialized
// as arrays of their elements in order.
type Tuple1[A any] struct {
	V1 A
}

type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

type Tuple5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

func (Tuple1[A]) shapeElems() (Kind, []reflect.Type) {
	return TupleKind, []reflect.Type{reflect.TypeFor[A]()}
}

func (Tuple2[A, B]) shapeElems() (Kind, []reflect.Type) {
	return TupleKind, []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

func (Tuple3[A, B, C]) shapeElems() (Kind, []reflect.Type) {
	return TupleKind, []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

func (Tuple4[A, B, C, D]) shapeElems() (Kind, []reflect.Type) {
	return TupleKind, []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](),
	}
}

func (Tuple5[A, B, C, D, E]) shapeElems() (Kind, []reflect.Type) {
	return TupleKind, []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](), reflect.TypeFor[E](),
	}
}
