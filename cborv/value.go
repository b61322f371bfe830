package cborv

import (
	"maps"
	"slices"
)

// Kind is the kind of data item held by a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	TextKind
	BytesKind
	ArrayKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case BoolKind:
		return "Bool"
	case IntKind:
		return "Int"
	case FloatKind:
		return "Float"
	case TextKind:
		return "Text"
	case BytesKind:
		return "Bytes"
	case ArrayKind:
		return "Array"
	case MapKind:
		return "Map"
	default:
		return "<unknown kind>"
	}
}

// Value is one node of a binary tree document. Only the payload field
// matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Text  string
	Bytes []byte
	Array []Value
	Map   []Entry
}

// Entry is one key/value pair of a map Value.
type Entry struct {
	Key Value
	Val Value
}

func Null() Value { return Value{Kind: NullKind} }
func FromBool(b bool) Value { return Value{Kind: BoolKind, Bool: b} }
func FromInt(i int64) Value { return Value{Kind: IntKind, Int: i} }
func FromFloat(f float64) Value { return Value{Kind: FloatKind, Float: f} }
func FromText(s string) Value { return Value{Kind: TextKind, Text: s} }
func FromBytes(b []byte) Value { return Value{Kind: BytesKind, Bytes: b} }
func FromArray(vs ...Value) Value { return Value{Kind: ArrayKind, Array: vs} }

// FromEntries builds a map preserving the order of es.
func FromEntries(es ...Entry) Value {
	return Value{Kind: MapKind, Map: es}
}

// FromMap builds a text keyed map ordered by key.
func FromMap(m map[string]Value) Value {
	keys := slices.Sorted(maps.Keys(m))
	es := make([]Entry, len(keys))
	for i, k := range keys {
		es[i] = Entry{Key: FromText(k), Val: m[k]}
	}
	return FromEntries(es...)
}

// EmptyMap returns a map with no entries.
func EmptyMap() Value {
	return Value{Kind: MapKind, Map: []Entry{}}
}

// EmptyArray returns an array with no elements.
func EmptyArray() Value {
	return Value{Kind: ArrayKind, Array: []Value{}}
}

// ToMap returns v if it is a map and an empty map otherwise.
func (v Value) ToMap() Value {
	if v.Kind != MapKind {
		return EmptyMap()
	}
	return v
}

// ToArray returns v if it is an array and an empty array otherwise.
func (v Value) ToArray() Value {
	if v.Kind != ArrayKind {
		return EmptyArray()
	}
	return v
}

// Get looks up a text key in a map. It reports false for other kinds.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != MapKind {
		return Value{}, false
	}
	for _, e := range v.Map {
		if e.Key.Kind == TextKind && e.Key.Text == key {
			return e.Val, true
		}
	}
	return Value{}, false
}

// Len is the number of elements of an array or entries of a map, else 0.
func (v Value) Len() int {
	switch v.Kind {
	case ArrayKind:
		return len(v.Array)
	case MapKind:
		return len(v.Map)
	default:
		return 0
	}
}
