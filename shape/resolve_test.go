package shape

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/docshape/cborv"
	"github.com/signadot/tony-format/docshape/dyn"
	"github.com/signadot/tony-format/docshape/introspect"
	"github.com/signadot/tony-format/docshape/ir"
)

func TestShapeFor(t *testing.T) {
	tests := []struct {
		name string
		d    *Descriptor
		want Shape
	}{
		{"record", Of[point](), Object},
		{"pointer", Of[*point](), Object},
		{"shared", Of[Shared[point]](), Object},
		{"map", Of[map[string][]int](), Object},
		{"list of pairs", Of[[]Pair[int, point]](), Array},
		{"pair", Of[Pair[string, string]](), Array},
		{"tuple", Of[Tuple4[int, int, int, point]](), Array},
		{"int", Of[int](), ScalarValue},
		{"bytes", Of[[]byte](), ScalarValue},
		{"dynamic", Of[dyn.Value](), ScalarValue},
		{"int keyed map", Of[map[int]int](), ScalarValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ShapeOf(tc.d)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("shape = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestShapeForUnserializable(t *testing.T) {
	if _, err := ShapeFor[Shared[opaque]](); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("err = %v", err)
	}
	if _, err := Resolve[*int](); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("err = %v", err)
	}
}

func TestMustResolvePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNotSerializable) {
			t.Errorf("recovered %v", r)
		}
	}()
	MustResolve[[]chan int]()
}

func TestResolverCached(t *testing.T) {
	a := MustResolve[[]point]()
	if a != MustResolve[[]point]() {
		t.Error("resolver not cached")
	}
	elems := a.Elems()
	if len(elems) != 1 || elems[0].Shape() != Object {
		t.Fatalf("elems = %v", elems)
	}
	if elems[0].Descriptor() != a.Descriptor().Elem() {
		t.Error("elem resolver has a different descriptor")
	}
}

func TestResolverCacheFollowsRegistry(t *testing.T) {
	t.Cleanup(introspect.Reset)
	typ := reflect.TypeFor[[]opaque]()
	a := MustResolve[[]opaque]()
	introspect.Register[opaque]()
	b := MustResolve[[]opaque]()
	if a == b {
		t.Fatal("resolver survived a registry change")
	}
	if b.Elems()[0].Shape() != Object {
		t.Errorf("registered element shape = %s", b.Elems()[0].Shape())
	}
	n := 0
	resolvers.Range(func(k, v any) bool {
		if k == typ {
			n++
			if v.(*Resolver) != b {
				t.Error("cache holds the stale resolver")
			}
		}
		return true
	})
	if n != 1 {
		t.Errorf("%d cache entries for %v", n, typ)
	}
	if MustResolve[[]opaque]() != b {
		t.Error("resolver not cached after registry change")
	}
}

func TestElemShapes(t *testing.T) {
	pairs := MustResolve[[]Pair[int, point]]()
	lists := MustResolve[map[string][]int]()
	tests := []struct {
		name string
		r    *Resolver
		path []int
		want []Shape
	}{
		{"list of pairs", pairs, nil, []Shape{Array}},
		{"pair in list", pairs, []int{0}, []Shape{ScalarValue, Object}},
		{"map of lists", lists, nil, []Shape{Array}},
		{"list in map", lists, []int{0}, []Shape{ScalarValue}},
		{"pointer", MustResolve[*point](), nil, []Shape{Object}},
		{"tuple", MustResolve[Tuple3[int, []point, *tree]](), nil, []Shape{ScalarValue, Array, Object}},
		{"record", MustResolve[point](), nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.r
			for _, i := range tc.path {
				r = r.Elems()[i]
			}
			var got []Shape
			for _, e := range r.Elems() {
				got = append(got, e.Shape())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("element shapes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	type names struct{ Text, Binary string }
	got := map[Shape]names{}
	for _, s := range []Shape{ScalarValue, Array, Object} {
		got[s] = names{s.KindName(Text), s.KindName(Binary)}
	}
	want := map[Shape]names{
		ScalarValue: {"ir.Node", "cborv.Value"},
		Array:       {"ir.Array", "cborv.Array"},
		Object:      {"ir.Object", "cborv.Map"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kind names (-want +got):\n%s", diff)
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range []Shape{ScalarValue, Array, Object} {
		got, err := ParseShape(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShape(%q) = %v, %v", s, got, err)
		}
	}
	if got, _ := ParseShape("object"); got != Object {
		t.Errorf("ParseShape(object) = %s", got)
	}
	if _, err := ParseShape("tree"); err == nil {
		t.Error("ParseShape(tree) succeeded")
	}
}

func TestNarrowTextMismatch(t *testing.T) {
	got := NarrowText[point](ir.FromString("hello"))
	if got.Type != ir.ObjectType || len(got.Fields) != 0 {
		t.Errorf("got %s with %d fields", got.Type, len(got.Fields))
	}
	arr := NarrowText[[]int](ir.FromMap(map[string]*ir.Node{"a": ir.FromInt(1)}))
	if arr.Type != ir.ArrayType || len(arr.Values) != 0 {
		t.Errorf("got %s with %d values", arr.Type, len(arr.Values))
	}
	if n := NarrowText[point](nil); n.Type != ir.ObjectType {
		t.Errorf("nil narrowed to %s", n.Type)
	}
}

func TestNarrowTextMatch(t *testing.T) {
	obj := ir.FromMap(map[string]*ir.Node{"x": ir.FromInt(1)})
	if got := NarrowText[*point](obj); got != obj {
		t.Error("object not passed through")
	}
	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("a")})
	if got := NarrowText[Pair[int, string]](arr); got != arr {
		t.Error("array not passed through")
	}
	s := ir.FromString("hello")
	if got := NarrowText[int](s); got != s {
		t.Error("scalar shape did not pass value through")
	}
	if got := NarrowText[string](nil); got.Type != ir.NullType {
		t.Errorf("nil narrowed to %s", got.Type)
	}
}

func TestNarrowBinary(t *testing.T) {
	text := cborv.FromText("hello")
	if got := NarrowBinary[point](text); got.Kind != cborv.MapKind || got.Len() != 0 {
		t.Errorf("got %s len %d", got.Kind, got.Len())
	}
	if got := NarrowBinary[[]int](text); got.Kind != cborv.ArrayKind || got.Len() != 0 {
		t.Errorf("got %s len %d", got.Kind, got.Len())
	}
	arr := cborv.FromArray(cborv.FromInt(1), cborv.FromInt(2))
	if got := NarrowBinary[[]int](arr); got.Len() != 2 {
		t.Errorf("array not passed through: %v", got)
	}
	if got := NarrowBinary[string](text); got.Kind != cborv.TextKind || got.Text != "hello" {
		t.Errorf("scalar shape changed value: %v", got)
	}
}

func TestNarrowStrict(t *testing.T) {
	obj := ir.FromMap(map[string]*ir.Node{"x": ir.FromInt(1)})
	_, err := Array.NarrowTextStrict(obj.Values[0])
	var ne *NarrowError
	if !errors.As(err, &ne) || !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v", err)
	}
	want := &NarrowError{Want: Array, Encoding: Text, Got: "Number", Path: "$.x"}
	if diff := cmp.Diff(want, ne); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got, err := Object.NarrowTextStrict(obj); err != nil || got != obj {
		t.Errorf("got %v, %v", got, err)
	}

	_, err = MustResolve[map[string]int]().NarrowBinaryStrict(cborv.FromArray())
	if !errors.As(err, &ne) || ne.Encoding != Binary || ne.Got != "Array" {
		t.Fatalf("err = %v", err)
	}
	v := cborv.FromInt(3)
	if got, err := ScalarValue.NarrowBinaryStrict(v); err != nil || got.Int != 3 {
		t.Errorf("got %v, %v", got, err)
	}
}
