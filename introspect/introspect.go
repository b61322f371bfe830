// Package introspect decides whether a Go type is a reflectable record: a
// value type that exposes its field names and values for generic
// introspection.
//
// A type opts in either by implementing Reflectable (on the value or the
// pointer receiver) or by being registered with Register. Nothing is
// inferred from the shape of a type: a plain struct is not reflectable.
//
//	type Point struct{ X, Y int }
//
//	func (p Point) ReflectFields() []introspect.Field {
//		return []introspect.Field{{Name: "x", Value: p.X}, {Name: "y", Value: p.Y}}
//	}
//
// Types can also be excluded from serialization entirely with Exclude.
package introspect

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Field is one named field of a reflectable record.
type Field struct {
	Name  string
	Value any
}

// Reflectable is implemented by records that list their fields.
type Reflectable interface {
	ReflectFields() []Field
}

var reflectableType = reflect.TypeFor[Reflectable]()

type registry struct {
	mu          sync.RWMutex
	reflectable map[reflect.Type]bool
	excluded    map[reflect.Type]bool
}

var (
	reg = &registry{
		reflectable: map[reflect.Type]bool{},
		excluded:    map[reflect.Type]bool{},
	}
	generation atomic.Uint64
)

// Register marks T as a reflectable record.
func Register[T any]() {
	RegisterType(reflect.TypeFor[T]())
}

// RegisterType marks t as a reflectable record. Pointer and interface types
// cannot be records and are ignored.
func RegisterType(t reflect.Type) {
	if t == nil || !isValueType(t) {
		return
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.reflectable[t] {
		return
	}
	reg.reflectable[t] = true
	generation.Add(1)
}

// Exclude marks T as never serializable.
func Exclude[T any]() {
	ExcludeType(reflect.TypeFor[T]())
}

// ExcludeType marks t as never serializable.
func ExcludeType(t reflect.Type) {
	if t == nil {
		return
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.excluded[t] {
		return
	}
	reg.excluded[t] = true
	generation.Add(1)
}

// IsReflectable reports whether t is a reflectable record.
func IsReflectable(t reflect.Type) bool {
	if t == nil || !isValueType(t) {
		return false
	}
	if t.Implements(reflectableType) || reflect.PointerTo(t).Implements(reflectableType) {
		return true
	}
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.reflectable[t]
}

// IsExcluded reports whether t was marked with Exclude.
func IsExcluded(t reflect.Type) bool {
	if t == nil {
		return false
	}
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.excluded[t]
}

// Generation changes whenever the registry does. Callers caching
// classification results compare it to detect staleness.
func Generation() uint64 {
	return generation.Load()
}

// Reset clears all registrations.
func Reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	clear(reg.reflectable)
	clear(reg.excluded)
	generation.Add(1)
}

func isValueType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
