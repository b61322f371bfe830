// Package dyn provides Value, a type-erased container holding one typed Go
// value, with typed retrieval that reports mismatches as errors.
package dyn

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is matched by every *TypeMismatchError.
var ErrTypeMismatch = errors.New("dynamic value type mismatch")

// Value holds a single value together with its static type. The zero Value
// holds nothing and is not valid.
type Value struct {
	v any
	t reflect.Type
}

// New stores v under its dynamic type. New(nil) is the zero Value.
func New(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{v: v, t: reflect.TypeOf(v)}
}

// ValueOf stores v under the static type T, which may be an interface type.
func ValueOf[T any](v T) Value {
	return Value{v: v, t: reflect.TypeFor[T]()}
}

func (v Value) IsValid() bool { return v.t != nil }
func (v Value) Type() reflect.Type { return v.t }
func (v Value) Interface() any { return v.v }

// Equal reports whether v and o hold the same type and deeply equal values.
func (v Value) Equal(o Value) bool {
	return v.t == o.t && reflect.DeepEqual(v.v, o.v)
}

func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%v(%v)", v.t, v.v)
}

// As retrieves the stored value as a T. It succeeds when the stored type is
// T, or when T is an interface implemented by the stored value. An invalid
// Value yields the zero T only when T is an interface type.
func As[T any](v Value) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if v.t == want {
		if v.v == nil {
			return zero, nil
		}
		return v.v.(T), nil
	}
	if want.Kind() == reflect.Interface {
		if !v.IsValid() || v.v == nil {
			return zero, nil
		}
		if x, ok := v.v.(T); ok {
			return x, nil
		}
	}
	return zero, &TypeMismatchError{Want: want, Got: v.t}
}

// TypeMismatchError is returned by As when the stored type is not usable
// as the requested one.
type TypeMismatchError struct {
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	got := "<invalid>"
	if e.Got != nil {
		got = e.Got.String()
	}
	return fmt.Sprintf("%s: want %s, have %s", ErrTypeMismatch, e.Want, got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
