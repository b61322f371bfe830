package introspect

import "reflect"

type Field struct {
	Name  string
	Value any
}

type Reflectable interface {
	ReflectFields() []Field
}

func Register[T any]() {}

func RegisterType(t reflect.Type) {}

func Exclude[T any]() {}

func ExcludeType(t reflect.Type) {}
