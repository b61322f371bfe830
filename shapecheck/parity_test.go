package shapecheck_test

import (
	"go/types"
	"reflect"
	"testing"

	"github.com/signadot/tony-format/docshape/shape"
	"github.com/signadot/tony-format/docshape/shapecheck"
	"github.com/signadot/tony-format/docshape/shapecheck/internal/fixture"
)

// TestStaticMatchesReflect classifies the fixture variables from their
// reflect.Type and from their go/types type and compares the results.
func TestStaticMatchesReflect(t *testing.T) {
	loader := shapecheck.NewPackageLoader(".")
	pkg, err := loader.Load("./internal/fixture")
	if err != nil {
		t.Fatal(err)
	}
	c := loader.Classifier(pkg)

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"Int", reflect.TypeOf(&fixture.Int).Elem()},
		{"String", reflect.TypeOf(&fixture.String).Elem()},
		{"Bytes", reflect.TypeOf(&fixture.Bytes).Elem()},
		{"IntPtr", reflect.TypeOf(&fixture.IntPtr).Elem()},
		{"PointPtr", reflect.TypeOf(&fixture.PointPtr).Elem()},
		{"NodePtr", reflect.TypeOf(&fixture.NodePtr).Elem()},
		{"NodeList", reflect.TypeOf(&fixture.NodeList).Elem()},
		{"OpaquePtr", reflect.TypeOf(&fixture.OpaquePtr).Elem()},
		{"Unsafe", reflect.TypeOf(&fixture.Unsafe).Elem()},
		{"Array", reflect.TypeOf(&fixture.Array).Elem()},
		{"Strings", reflect.TypeOf(&fixture.Strings).Elem()},
		{"Keyed", reflect.TypeOf(&fixture.Keyed).Elem()},
		{"IntKeyed", reflect.TypeOf(&fixture.IntKeyed).Elem()},
		{"Chan", reflect.TypeOf(&fixture.Chan).Elem()},
		{"Func", reflect.TypeOf(&fixture.Func).Elem()},
		{"Iface", reflect.TypeOf(&fixture.Iface).Elem()},
		{"Dynamic", reflect.TypeOf(&fixture.Dynamic).Elem()},
		{"DynamicPtr", reflect.TypeOf(&fixture.DynamicPtr).Elem()},
		{"Shared", reflect.TypeOf(&fixture.Shared).Elem()},
		{"SharedBad", reflect.TypeOf(&fixture.SharedBad).Elem()},
		{"Weak", reflect.TypeOf(&fixture.Weak).Elem()},
		{"WeakBad", reflect.TypeOf(&fixture.WeakBad).Elem()},
		{"Pairs", reflect.TypeOf(&fixture.Pairs).Elem()},
		{"PairBad", reflect.TypeOf(&fixture.PairBad).Elem()},
		{"Tuple", reflect.TypeOf(&fixture.Tuple).Elem()},
		{"TupleBad", reflect.TypeOf(&fixture.TupleBad).Elem()},
		{"Foreign", reflect.TypeOf(&fixture.Foreign).Elem()},
		{"Banned", reflect.TypeOf(&fixture.Banned).Elem()},
		{"LoopVar", reflect.TypeOf(&fixture.LoopVar).Elem()},
		{"PtrLoopVar", reflect.TypeOf(&fixture.PtrLoopVar).Elem()},
		{"ListOfLists", reflect.TypeOf(&fixture.ListOfLists).Elem()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obj, ok := pkg.Types.Scope().Lookup(tc.name).(*types.Var)
			if !ok {
				t.Fatalf("no variable %s in %s", tc.name, pkg.PkgPath)
			}
			static := c.Describe(obj.Type())
			dynamic := shape.FromType(tc.typ)
			sameStructure(t, tc.name, static, dynamic, map[[2]*shape.Descriptor]bool{})
			serr, derr := shape.Check(static), shape.Check(dynamic)
			if (serr == nil) != (derr == nil) {
				t.Errorf("static check: %v, reflect check: %v", serr, derr)
			}
		})
	}
}

func sameStructure(t *testing.T, path string, a, b *shape.Descriptor, seen map[[2]*shape.Descriptor]bool) {
	t.Helper()
	if seen[[2]*shape.Descriptor{a, b}] {
		return
	}
	seen[[2]*shape.Descriptor{a, b}] = true
	if a.Kind != b.Kind || a.Excluded != b.Excluded || len(a.Elems) != len(b.Elems) {
		t.Errorf("%s: static %s excluded=%v with %d elements, reflect %s excluded=%v with %d elements",
			path, a.Kind, a.Excluded, len(a.Elems), b.Kind, b.Excluded, len(b.Elems))
		return
	}
	for i := range a.Elems {
		sameStructure(t, path+"/"+a.Elems[i].Name, a.Elems[i], b.Elems[i], seen)
	}
}
