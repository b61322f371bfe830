package shape

import (
	"fmt"
	"sync"

	"github.com/signadot/tony-format/docshape/cborv"
	"github.com/signadot/tony-format/docshape/ir"
)

// Shape is the kind of document value a serializable type maps to.
type Shape int

const (
	// ScalarValue is any document value, passed through unchanged.
	ScalarValue Shape = iota
	Array
	Object
)

func (s Shape) String() string {
	switch s {
	case ScalarValue:
		return "ScalarValue"
	case Array:
		return "Array"
	case Object:
		return "Object"
	default:
		return "<unknown shape>"
	}
}

// ParseShape accepts the names printed by String and their lower case
// forms, plus scalar and value for ScalarValue.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "ScalarValue", "scalarvalue", "scalar", "value":
		return ScalarValue, nil
	case "Array", "array":
		return Array, nil
	case "Object", "object":
		return Object, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// Encoding selects one of the two document models.
type Encoding int

const (
	// Text is the textual tree model, package ir.
	Text Encoding = iota
	// Binary is the binary tree model, package cborv.
	Binary
)

func (e Encoding) String() string {
	switch e {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return "<unknown encoding>"
	}
}

// TextType is the ir type of s, if s requires one.
func (s Shape) TextType() (ir.Type, bool) {
	switch s {
	case Array:
		return ir.ArrayType, true
	case Object:
		return ir.ObjectType, true
	default:
		return 0, false
	}
}

// BinaryKind is the cborv kind of s, if s requires one.
func (s Shape) BinaryKind() (cborv.Kind, bool) {
	switch s {
	case Array:
		return cborv.ArrayKind, true
	case Object:
		return cborv.MapKind, true
	default:
		return 0, false
	}
}

// KindName names the concrete value kind of s in enc.
func (s Shape) KindName(enc Encoding) string {
	switch enc {
	case Text:
		if t, ok := s.TextType(); ok {
			return "ir." + t.String()
		}
		return "ir.Node"
	case Binary:
		if k, ok := s.BinaryKind(); ok {
			return "cborv." + k.String()
		}
		return "cborv.Value"
	default:
		return "<unknown encoding>"
	}
}

// ShapeOf returns the document shape of d, or the reason d is not
// serializable.
func ShapeOf(d *Descriptor) (Shape, error) {
	if err := Check(d); err != nil {
		return 0, err
	}
	return shapeOf(d), nil
}

// ShapeFor returns the document shape of T.
func ShapeFor[T any]() (Shape, error) {
	return ShapeOf(Of[T]())
}

// shapeOf is the same in both encodings: references, records and maps are
// objects; lists, pairs and tuples are arrays; anything else is a value.
func shapeOf(d *Descriptor) Shape {
	if d.Kind.IsReference() {
		return Object
	}
	switch d.Kind {
	case RecordKind, MapKind:
		return Object
	case ListKind, PairKind, TupleKind:
		return Array
	default:
		return ScalarValue
	}
}

// Resolver is the resolved shape of a serializable type along with the
// narrowing operations for it.
type Resolver struct {
	desc  *Descriptor
	shape Shape

	once  sync.Once
	elems []*Resolver
}

// resolvers holds one resolver per type, for the descriptor FromType
// last returned for it. A registry change replaces the entry.
var resolvers sync.Map // reflect.Type -> *Resolver

// NewResolver resolves d, failing with a *ClassError if d is not
// serializable.
func NewResolver(d *Descriptor) (*Resolver, error) {
	if d.Type != nil {
		if r, ok := resolvers.Load(d.Type); ok && r.(*Resolver).desc == d {
			return r.(*Resolver), nil
		}
	}
	if err := Check(d); err != nil {
		return nil, err
	}
	r := &Resolver{desc: d, shape: shapeOf(d)}
	if d.Type != nil {
		resolvers.Store(d.Type, r)
	}
	return r, nil
}

// Resolve resolves T.
func Resolve[T any]() (*Resolver, error) {
	return NewResolver(Of[T]())
}

// MustResolve resolves T and panics if T is not serializable. It is meant
// for package level variables, where shapecheck reports the failure before
// the program is built.
func MustResolve[T any]() *Resolver {
	r, err := Resolve[T]()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Resolver) Descriptor() *Descriptor { return r.desc }
func (r *Resolver) Shape() Shape { return r.shape }

// Elems resolves the element descriptors of r: the record behind a
// reference, or the elements of a container in order. Leaves have none.
func (r *Resolver) Elems() []*Resolver {
	r.once.Do(func() {
		for _, e := range r.desc.Elems {
			er, err := NewResolver(e)
			if err != nil {
				// unreachable: r passed Check, which covers its elements
				panic(err)
			}
			r.elems = append(r.elems, er)
		}
	})
	return r.elems
}

// NarrowText narrows a textual document value to r's shape. See
// Shape.NarrowText.
func (r *Resolver) NarrowText(n *ir.Node) *ir.Node {
	return r.shape.NarrowText(n)
}

// NarrowBinary narrows a binary document value to r's shape. See
// Shape.NarrowBinary.
func (r *Resolver) NarrowBinary(v cborv.Value) cborv.Value {
	return r.shape.NarrowBinary(v)
}

func (r *Resolver) NarrowTextStrict(n *ir.Node) (*ir.Node, error) {
	return r.shape.NarrowTextStrict(n)
}

func (r *Resolver) NarrowBinaryStrict(v cborv.Value) (cborv.Value, error) {
	return r.shape.NarrowBinaryStrict(v)
}
