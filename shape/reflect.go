package shape

import (
	"reflect"
	"strings"
	"sync"

	"github.com/signadot/tony-format/docshape/debug"
	"github.com/signadot/tony-format/docshape/dyn"
	"github.com/signadot/tony-format/docshape/introspect"
)

var dynType = reflect.TypeFor[dyn.Value]()

type cacheEntry struct {
	gen uint64
	d   *Descriptor
}

var descriptors sync.Map // reflect.Type -> cacheEntry

// Of returns the descriptor of T.
func Of[T any]() *Descriptor {
	return FromType(reflect.TypeFor[T]())
}

// FromType returns the descriptor of t. Results are cached until the
// introspect registry changes.
func FromType(t reflect.Type) *Descriptor {
	if t == nil {
		return NewScalar("<nil>")
	}
	gen := introspect.Generation()
	if e, ok := descriptors.Load(t); ok && e.(cacheEntry).gen == gen {
		return e.(cacheEntry).d
	}
	b := &builder{seen: map[reflect.Type]*Descriptor{}}
	d := b.build(t)
	descriptors.Store(t, cacheEntry{gen: gen, d: d})
	if debug.Classify() {
		debug.Logf("classify %s: %s\n", t, d.Kind)
	}
	return d
}

type builder struct {
	seen map[reflect.Type]*Descriptor
}

func (b *builder) build(t reflect.Type) *Descriptor {
	if d, ok := b.seen[t]; ok {
		return d
	}
	d := &Descriptor{Name: t.String(), Type: t}
	b.seen[t] = d
	b.fill(d, t)
	return d
}

func (b *builder) fill(d *Descriptor, t reflect.Type) {
	switch {
	case t == dynType:
		d.Kind = DynamicKind
		return
	case introspect.IsExcluded(t):
		d.Kind = ScalarKind
		d.Excluded = true
		return
	}
	if isWrapper(t) {
		w := reflect.Zero(t).Interface().(wrapper)
		kind, elems := w.shapeElems()
		d.Kind = kind
		for _, e := range elems {
			d.Elems = append(d.Elems, b.build(e))
		}
		return
	}
	if target, ok := weakTarget(t); ok {
		d.Kind = WeakKind
		d.Elems = []*Descriptor{b.build(target)}
		return
	}
	if introspect.IsReflectable(t) {
		d.Kind = RecordKind
		return
	}
	switch t.Kind() {
	case reflect.Pointer:
		d.Kind = PointerKind
		d.Elems = []*Descriptor{b.build(t.Elem())}
	case reflect.UnsafePointer:
		d.Kind = PointerKind
		d.Elems = []*Descriptor{NewScalar("<opaque>")}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			d.Kind = ScalarKind
			return
		}
		d.Kind = ListKind
		d.Elems = []*Descriptor{b.build(t.Elem())}
	case reflect.Array:
		d.Kind = ListKind
		d.Elems = []*Descriptor{b.build(t.Elem())}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			d.Kind = ScalarKind
			return
		}
		d.Kind = MapKind
		d.Elems = []*Descriptor{b.build(t.Elem())}
	case reflect.Chan, reflect.Func:
		d.Kind = ScalarKind
		d.Excluded = true
	default:
		d.Kind = ScalarKind
	}
}

func isWrapper(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.PkgPath() == shapePkg && t.Implements(wrapperType)
}

// weakTarget recognizes weak.Pointer[T] and returns T.
func weakTarget(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct || t.PkgPath() != "weak" || !strings.HasPrefix(t.Name(), "Pointer[") {
		return nil, false
	}
	m, ok := t.MethodByName("Value")
	if !ok || m.Type.NumOut() != 1 || m.Type.Out(0).Kind() != reflect.Pointer {
		return nil, false
	}
	return m.Type.Out(0).Elem(), true
}
