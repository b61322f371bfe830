package b

import (
	"a"

	"github.com/signadot/tony-format/docshape/shape"
)

var (
	_ = shape.MustResolve[*a.Foreign]()
	_ = shape.MustResolve[shape.Shared[a.Point]]()
	_ = shape.MustResolve[*a.Opaque]()  // want `pointer to non-reflectable type a\.Opaque`
	_ = shape.MustResolve[[]a.Banned]() // want `type is marked unserializable`
)
