// Package registry registers types for the fixture package from outside
// of it.
package registry

import (
	"reflect"

	"github.com/signadot/tony-format/docshape/introspect"
)

type Foreign struct{ S string }

type Banned struct{ N int }

func init() {
	introspect.Register[Foreign]()
	introspect.ExcludeType(reflect.TypeFor[Banned]())
}
