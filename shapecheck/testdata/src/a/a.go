package a // want package:`registrations\(reflectable=a\.Foreign excluded=a\.Banned\)`

import (
	"weak"

	"github.com/signadot/tony-format/docshape/dyn"
	"github.com/signadot/tony-format/docshape/introspect"
	"github.com/signadot/tony-format/docshape/shape"
)

type Point struct{ X, Y int }

func (p Point) ReflectFields() []introspect.Field { return nil }

type Node struct{ Kids []*Node }

func (n *Node) ReflectFields() []introspect.Field { return nil }

type Opaque struct{ n int }

type Foreign struct{ s string }

type Banned struct{}

func init() {
	introspect.Register[Foreign]()
	introspect.Exclude[Banned]()
}

var (
	_ = shape.MustResolve[Point]()
	_ = shape.MustResolve[*Point]()
	_ = shape.MustResolve[shape.Shared[Point]]()
	_ = shape.MustResolve[weak.Pointer[Point]]()
	_ = shape.MustResolve[*Foreign]()
	_ = shape.MustResolve[[]*Node]()
	_ = shape.MustResolve[shape.Pair[int, Point]]()
	_ = shape.MustResolve[map[string][]int]()
	_ = shape.MustResolve[map[int]*Opaque]()
	_ = shape.MustResolve[dyn.Value]()
	_ = shape.Serializable[*int]()

	_ = shape.MustResolve[shape.Shared[Opaque]]() // want `unserializable type argument: shape\.Shared\[a\.Opaque\]: shared owner of non-reflectable type a\.Opaque`
	_ = shape.MustResolve[weak.Pointer[Opaque]]() // want `weak reference to non-reflectable type a\.Opaque`
	_ = shape.MustResolve[[]Banned]()             // want `unserializable element: a\.Banned: type is marked unserializable`
	_ = shape.MustResolve[*dyn.Value]()           // want `pointer to non-reflectable type dyn\.Value`
)

func use(n any) {
	if _, err := shape.Resolve[*int](); err != nil { // want `\*int: pointer to non-reflectable type int`
		return
	}
	_, _ = shape.ShapeFor[[]chan int]()                  // want `\[\]chan int: unserializable element: chan int: type is marked unserializable`
	_ = shape.NarrowText[map[string]*Opaque](n)          // want `unserializable element: \*a\.Opaque: pointer to non-reflectable type a\.Opaque`
	_ = shape.NarrowBinary[shape.Tuple2[int, func()]](n) // want `unserializable element: func\(\): type is marked unserializable`
	_ = shape.NarrowText[shape.Tuple2[Point, *Node]](n)
}

func generic[T any](n any) any { // want generic:`requires serializable T, \[\]\*T`
	_ = shape.MustResolve[T]()
	_ = shape.MustResolve[[]*T]()
	return shape.NarrowText[T](n)
}

func Wrap[T any]() *shape.Resolver { // want Wrap:`requires serializable T`
	return shape.MustResolve[T]()
}
