// Package fixture declares types classified both at run time, by package
// shape, and statically, by package shapecheck, so the two can be compared.
package fixture

import (
	"unsafe"
	"weak"

	"github.com/signadot/tony-format/docshape/dyn"
	"github.com/signadot/tony-format/docshape/introspect"
	"github.com/signadot/tony-format/docshape/shape"
	"github.com/signadot/tony-format/docshape/shapecheck/internal/fixture/registry"
)

type Point struct{ X, Y int }

func (p Point) ReflectFields() []introspect.Field {
	return []introspect.Field{{Name: "x", Value: p.X}, {Name: "y", Value: p.Y}}
}

type Node struct {
	Kids []*Node
}

func (n *Node) ReflectFields() []introspect.Field {
	return []introspect.Field{{Name: "kids", Value: n.Kids}}
}

type Opaque struct{ n int }

type Loop []Loop

type PtrLoop []*PtrLoop

type Key string

var (
	Int         int
	String      string
	Bytes       []byte
	IntPtr      *int
	PointPtr    *Point
	NodePtr     *Node
	NodeList    []*Node
	OpaquePtr   *Opaque
	Unsafe      unsafe.Pointer
	Array       [3]Point
	Strings     map[string][]int
	Keyed       map[Key]*Point
	IntKeyed    map[int]*Opaque
	Chan        chan int
	Func        func() error
	Iface       any
	Dynamic     dyn.Value
	DynamicPtr  *dyn.Value
	Shared      shape.Shared[Point]
	SharedBad   shape.Shared[Opaque]
	Weak        weak.Pointer[Node]
	WeakBad     weak.Pointer[Opaque]
	Pairs       []shape.Pair[int, Point]
	PairBad     shape.Pair[string, *Opaque]
	Tuple       shape.Tuple3[int, []Point, *Node]
	TupleBad    shape.Tuple2[int, func()]
	Foreign     *registry.Foreign
	Banned      []registry.Banned
	LoopVar     Loop
	PtrLoopVar  PtrLoop
	ListOfLists [][]*Point
)
