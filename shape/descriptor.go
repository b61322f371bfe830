package shape

import (
	"reflect"
	"strings"
)

// Kind tags the variants of the type descriptor algebra.
type Kind int

const (
	ScalarKind Kind = iota
	RecordKind
	PointerKind
	SharedKind
	WeakKind
	ListKind
	MapKind
	PairKind
	TupleKind
	DynamicKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "Scalar"
	case RecordKind:
		return "Record"
	case PointerKind:
		return "Pointer"
	case SharedKind:
		return "Shared"
	case WeakKind:
		return "Weak"
	case ListKind:
		return "List"
	case MapKind:
		return "Map"
	case PairKind:
		return "Pair"
	case TupleKind:
		return "Tuple"
	case DynamicKind:
		return "Dynamic"
	default:
		return "<unknown kind>"
	}
}

// IsReference reports whether k is one of the ownership relations to a
// record: raw pointer, shared owner or weak reference.
func (k Kind) IsReference() bool {
	return k == PointerKind || k == SharedKind || k == WeakKind
}

// Descriptor describes a type in the descriptor algebra.
//
// Composite descriptors hold their element descriptors in Elems: the target
// of a reference, the element of a list or map, the two halves of a pair, or
// the elements of a tuple in order. Descriptors of recursive Go types are
// cyclic graphs; everything in this package that walks Elems tolerates that.
//
// Descriptors returned by FromType are shared and must not be modified.
type Descriptor struct {
	Kind Kind
	Name string
	// Type is the Go type the descriptor was derived from, if any.
	Type reflect.Type
	// Excluded marks a scalar that may never be serialized.
	Excluded bool
	Elems    []*Descriptor
}

// Reflectable is the capability flag: whether the described type is a
// reflectable record.
func (d *Descriptor) Reflectable() bool {
	return d != nil && d.Kind == RecordKind
}

// Elem returns the first element descriptor, or nil for leaves.
func (d *Descriptor) Elem() *Descriptor {
	if len(d.Elems) == 0 {
		return nil
	}
	return d.Elems[0]
}

func (d *Descriptor) String() string {
	return d.Name
}

func NewScalar(name string) *Descriptor {
	return &Descriptor{Kind: ScalarKind, Name: name}
}

// NewExcluded describes a scalar type marked as never serializable.
func NewExcluded(name string) *Descriptor {
	return &Descriptor{Kind: ScalarKind, Name: name, Excluded: true}
}

func NewRecord(name string) *Descriptor {
	return &Descriptor{Kind: RecordKind, Name: name}
}

func NewDynamic(name string) *Descriptor {
	if name == "" {
		name = "dyn.Value"
	}
	return &Descriptor{Kind: DynamicKind, Name: name}
}

func NewPointer(name string, target *Descriptor) *Descriptor {
	return composite(PointerKind, orName(name, "*"+target.Name), target)
}

func NewShared(name string, target *Descriptor) *Descriptor {
	return composite(SharedKind, orName(name, "shape.Shared["+target.Name+"]"), target)
}

func NewWeak(name string, target *Descriptor) *Descriptor {
	return composite(WeakKind, orName(name, "weak.Pointer["+target.Name+"]"), target)
}

func NewList(name string, elem *Descriptor) *Descriptor {
	return composite(ListKind, orName(name, "[]"+elem.Name), elem)
}

// NewMap describes a map with textual keys; only the value is described.
func NewMap(name string, elem *Descriptor) *Descriptor {
	return composite(MapKind, orName(name, "map[string]"+elem.Name), elem)
}

func NewPair(name string, first, second *Descriptor) *Descriptor {
	return composite(PairKind, orName(name, "shape.Pair["+first.Name+", "+second.Name+"]"), first, second)
}

// NewTuple describes a tuple of one or more elements. It panics when elems
// is empty.
func NewTuple(name string, elems ...*Descriptor) *Descriptor {
	if len(elems) == 0 {
		panic("shape: tuple needs at least one element")
	}
	if name == "" {
		names := make([]string, len(elems))
		for i, e := range elems {
			names[i] = e.Name
		}
		name = "shape.Tuple[" + strings.Join(names, ", ") + "]"
	}
	return composite(TupleKind, name, elems...)
}

func composite(k Kind, name string, elems ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: k, Name: name, Elems: elems}
}

func orName(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
