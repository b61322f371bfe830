package shapecheck

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/signadot/tony-format/docshape/shape"
)

const classifySrc = `package p

type Plain struct{ A int }

type Bytes []byte

type Names map[string]string

type Loop []Loop

type PtrLoop []*PtrLoop

type Key int

var (
	vInt     int
	vPtr     *Plain
	vBytes   Bytes
	vList    [4]*int
	vNames   Names
	vKeyed   map[Key]int
	vChan    chan int
	vFunc    func() error
	vIface   error
	vLoop    Loop
	vPtrLoop PtrLoop
)
`

func checkSource(t *testing.T) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", classifySrc, 0)
	if err != nil {
		t.Fatal(err)
	}
	pkg, err := new(types.Config).Check("p", fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return pkg
}

func TestClassifierKinds(t *testing.T) {
	pkg := checkSource(t)
	c := NewClassifier()
	tests := []struct {
		name         string
		kind         shape.Kind
		excluded     bool
		serializable bool
	}{
		{"vInt", shape.ScalarKind, false, true},
		{"vPtr", shape.PointerKind, false, false},
		{"vBytes", shape.ScalarKind, false, true},
		{"vList", shape.ListKind, false, false},
		{"vNames", shape.MapKind, false, true},
		{"vKeyed", shape.ScalarKind, false, true},
		{"vChan", shape.ScalarKind, true, false},
		{"vFunc", shape.ScalarKind, true, false},
		{"vIface", shape.ScalarKind, false, true},
		{"vLoop", shape.ListKind, false, true},
		{"vPtrLoop", shape.ListKind, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := c.Describe(pkg.Scope().Lookup(tc.name).Type())
			if d.Kind != tc.kind || d.Excluded != tc.excluded {
				t.Errorf("%s: kind %s excluded %v", d.Name, d.Kind, d.Excluded)
			}
			if got := shape.IsSerializable(d); got != tc.serializable {
				t.Errorf("%s: serializable = %v, want %v", d.Name, got, tc.serializable)
			}
		})
	}
}

func TestClassifierRegistered(t *testing.T) {
	pkg := checkSource(t)
	plain := pkg.Scope().Lookup("Plain").Type()
	ptr := types.NewPointer(plain)

	c := NewClassifier()
	if shape.IsSerializable(c.Describe(ptr)) {
		t.Fatal("*Plain serializable before Register")
	}
	c.Register(TypeKey(plain))
	if !shape.IsSerializable(c.Describe(ptr)) {
		t.Error("*Plain not serializable after Register")
	}
	c.Exclude(TypeKey(plain))
	if d := c.Describe(plain); !d.Excluded {
		t.Error("Plain not excluded after Exclude")
	}
}

func TestClassifierCycle(t *testing.T) {
	pkg := checkSource(t)
	d := NewClassifier().Describe(pkg.Scope().Lookup("Loop").Type())
	if d.Elem() != d {
		t.Error("Loop element is not the Loop descriptor")
	}
	if d.Name != "p.Loop" {
		t.Errorf("name = %q", d.Name)
	}
}
