package c // want package:`registrations\(reflectable=c\.Extern,c\.Alt excluded=c\.Secret\)`

import (
	"reflect"

	"a"

	"github.com/signadot/tony-format/docshape/introspect"
	"github.com/signadot/tony-format/docshape/shape"
)

type Extern struct{ s string }

type Alt struct{ s string }

type Secret struct{}

func init() {
	introspect.RegisterType(reflect.TypeFor[Extern]())
	introspect.RegisterType(reflect.TypeOf((*Alt)(nil)).Elem())
	introspect.ExcludeType(reflect.TypeOf(Secret{}))
}

var (
	resolveIntPtr = shape.MustResolve[*int] // want `\*int: pointer to non-reflectable type int`
	resolveExtern = shape.MustResolve[*Extern]
	resolveAlt    = shape.MustResolve[shape.Shared[Alt]]
	narrowSecrets = shape.NarrowText[[]Secret] // want `\[\]c\.Secret: unserializable element: c\.Secret: type is marked unserializable`
)

func resolve[T any]() *shape.Resolver { // want resolve:`requires serializable T`
	return shape.MustResolve[T]()
}

func resolveSlice[U any]() *shape.Resolver { // want resolveSlice:`requires serializable \[\]U`
	return resolve[[]U]()
}

func pairOf[T any]() { // want pairOf:`requires serializable shape\.Pair\[T, \*int\]`
	_ = shape.MustResolve[shape.Pair[T, *int]]() // want `unserializable element: \*int: pointer to non-reflectable type int`
}

func unused[T any]() {
	_ = shape.MustResolve[*Extern]()
}

func Inst() {
	resolve[*int]() // want `unserializable type argument to resolve: \*int: pointer to non-reflectable type int`
	resolve[*Extern]()
	resolveSlice[*a.Opaque]() // want `unserializable type argument to resolveSlice: \[\]U: unserializable element: \*a\.Opaque: pointer to non-reflectable type a\.Opaque`
	resolveSlice[a.Point]()
	pairOf[*int]() // want `unserializable type argument to pairOf: .*pointer to non-reflectable type int`
	pairOf[a.Point]()
	f := resolve[chan int] // want `to resolve: chan int: type is marked unserializable`
	_ = f
	_ = a.Wrap[*a.Opaque]() // want `unserializable type argument to Wrap: \*a\.Opaque: pointer to non-reflectable type a\.Opaque`
	_ = a.Wrap[*Alt]()
	_ = resolveIntPtr
	_ = resolveExtern
	_ = resolveAlt
	_ = narrowSecrets
}
