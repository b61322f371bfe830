package shape

import (
	"reflect"

	"github.com/signadot/tony-format/docshape/dyn"
)

// ToDynamic stores v in a dynamic value under its static type T. When T is
// dyn.Value itself, v is returned unchanged rather than boxed again.
func ToDynamic[T any](v T) dyn.Value {
	if reflect.TypeFor[T]() == dynType {
		return any(v).(dyn.Value)
	}
	return dyn.ValueOf(v)
}

// FromDynamic retrieves a T from v. When T is dyn.Value, v is returned
// unchanged. Otherwise a stored value that is not a T yields a
// *dyn.TypeMismatchError.
func FromDynamic[T any](v dyn.Value) (T, error) {
	if reflect.TypeFor[T]() == dynType {
		return any(v).(T), nil
	}
	return dyn.As[T](v)
}
