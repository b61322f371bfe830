package shapecheck

import (
	"go/types"
	"strings"

	"github.com/signadot/tony-format/docshape/shape"
	"golang.org/x/tools/go/types/typeutil"
)

const (
	modulePath     = "github.com/signadot/tony-format/docshape"
	shapePath      = modulePath + "/shape"
	introspectPath = modulePath + "/introspect"
	dynPath        = modulePath + "/dyn"
)

// Classifier builds shape descriptors from go/types types using the same
// rules as shape.FromType does for reflect types. Types registered or
// excluded through package introspect must be made known with Register and
// Exclude, since registration happens at run time.
type Classifier struct {
	registered map[string]bool
	excluded   map[string]bool
	qual       types.Qualifier
}

// NewClassifier returns a Classifier naming types relative to their
// package names, as reflect does.
func NewClassifier() *Classifier {
	return &Classifier{
		registered: map[string]bool{},
		excluded:   map[string]bool{},
		qual:       func(p *types.Package) string { return p.Name() },
	}
}

// Register marks the type with the given key as reflectable. Keys are
// produced by TypeKey.
func (c *Classifier) Register(key string) { c.registered[key] = true }

// Exclude marks the type with the given key as unserializable.
func (c *Classifier) Exclude(key string) { c.excluded[key] = true }

// TypeKey identifies t across packages by its fully qualified name.
func TypeKey(t types.Type) string {
	return types.TypeString(t, nil)
}

// Describe classifies t. Type parameters in t are described as scalars.
func (c *Classifier) Describe(t types.Type) *shape.Descriptor {
	b := &builder{c: c}
	return b.build(t)
}

// IsReflectable reports whether t is a reflectable record: a value type
// whose method set, or that of its pointer, has
// ReflectFields() []introspect.Field, or a registered type.
func (c *Classifier) IsReflectable(t types.Type) bool {
	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Interface:
		return false
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return false
		}
	}
	if c.registered[TypeKey(t)] {
		return true
	}
	ms := types.NewMethodSet(types.NewPointer(t))
	sel := ms.Lookup(nil, "ReflectFields")
	if sel == nil {
		return false
	}
	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	sl, ok := sig.Results().At(0).Type().(*types.Slice)
	return ok && isNamed(sl.Elem(), introspectPath, "Field")
}

type builder struct {
	c    *Classifier
	seen typeutil.Map

	// owner lists the type parameters which may stand unresolved in a
	// description. Each occurrence becomes a hole recorded with its
	// 1-based index. A type parameter not in owner sets foreign.
	owner   *types.TypeParamList
	holes   map[*shape.Descriptor]int
	foreign bool
}

func (b *builder) build(t types.Type) *shape.Descriptor {
	if d := b.seen.At(t); d != nil {
		return d.(*shape.Descriptor)
	}
	d := &shape.Descriptor{Name: types.TypeString(t, b.c.qual)}
	b.seen.Set(t, d)
	if tp, ok := types.Unalias(t).(*types.TypeParam); ok {
		b.hole(d, tp)
		return d
	}
	b.fill(d, t)
	return d
}

// hole marks d as standing for the type parameter tp. It is described as
// a scalar until instantiated.
func (b *builder) hole(d *shape.Descriptor, tp *types.TypeParam) {
	d.Kind = shape.ScalarKind
	i := tp.Index()
	if b.owner == nil || i >= b.owner.Len() || b.owner.At(i) != tp {
		b.foreign = true
		return
	}
	if b.holes == nil {
		b.holes = map[*shape.Descriptor]int{}
	}
	b.holes[d] = i + 1
}

func (b *builder) fill(d *shape.Descriptor, t types.Type) {
	switch {
	case isNamed(t, dynPath, "Value"):
		d.Kind = shape.DynamicKind
		return
	case b.c.excluded[TypeKey(t)]:
		d.Kind = shape.ScalarKind
		d.Excluded = true
		return
	}
	if kind, args, ok := wrapperArgs(t); ok {
		d.Kind = kind
		for _, a := range args {
			d.Elems = append(d.Elems, b.build(a))
		}
		return
	}
	if b.c.IsReflectable(t) {
		d.Kind = shape.RecordKind
		return
	}
	switch u := t.Underlying().(type) {
	case *types.Pointer:
		d.Kind = shape.PointerKind
		d.Elems = []*shape.Descriptor{b.build(u.Elem())}
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			d.Kind = shape.PointerKind
			d.Elems = []*shape.Descriptor{shape.NewScalar("<opaque>")}
			return
		}
		d.Kind = shape.ScalarKind
	case *types.Slice:
		if isByte(u.Elem()) {
			d.Kind = shape.ScalarKind
			return
		}
		d.Kind = shape.ListKind
		d.Elems = []*shape.Descriptor{b.build(u.Elem())}
	case *types.Array:
		d.Kind = shape.ListKind
		d.Elems = []*shape.Descriptor{b.build(u.Elem())}
	case *types.Map:
		if k, ok := u.Key().Underlying().(*types.Basic); !ok || k.Info()&types.IsString == 0 {
			d.Kind = shape.ScalarKind
			return
		}
		d.Kind = shape.MapKind
		d.Elems = []*shape.Descriptor{b.build(u.Elem())}
	case *types.Chan, *types.Signature:
		d.Kind = shape.ScalarKind
		d.Excluded = true
	default:
		d.Kind = shape.ScalarKind
	}
}

// wrapperArgs recognizes the generic composites of package shape and
// weak.Pointer, returning their kind and type arguments.
func wrapperArgs(t types.Type) (shape.Kind, []types.Type, bool) {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok || n.Obj().Pkg() == nil {
		return 0, nil, false
	}
	var kind shape.Kind
	name := n.Obj().Name()
	switch n.Obj().Pkg().Path() {
	case "weak":
		if name != "Pointer" {
			return 0, nil, false
		}
		kind = shape.WeakKind
	case shapePath:
		switch {
		case name == "Shared":
			kind = shape.SharedKind
		case name == "Pair":
			kind = shape.PairKind
		case strings.HasPrefix(name, "Tuple"):
			kind = shape.TupleKind
		default:
			return 0, nil, false
		}
	default:
		return 0, nil, false
	}
	targs := n.TypeArgs()
	if targs.Len() == 0 {
		return 0, nil, false
	}
	args := make([]types.Type, targs.Len())
	for i := range args {
		args[i] = targs.At(i)
	}
	return kind, args, true
}

func isNamed(t types.Type, pkgPath, name string) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == pkgPath && obj.Name() == name
}

func isByte(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Kind() == types.Uint8
}

// hasTypeParam reports whether t mentions a type parameter, in which case
// it can only be classified once instantiated.
func hasTypeParam(t types.Type) bool {
	return walkTypeParams(t, map[types.Type]bool{})
}

func walkTypeParams(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true
	case *types.Named:
		for i := 0; i < t.TypeArgs().Len(); i++ {
			if walkTypeParams(t.TypeArgs().At(i), seen) {
				return true
			}
		}
		return false
	case *types.Pointer:
		return walkTypeParams(t.Elem(), seen)
	case *types.Slice:
		return walkTypeParams(t.Elem(), seen)
	case *types.Array:
		return walkTypeParams(t.Elem(), seen)
	case *types.Map:
		return walkTypeParams(t.Key(), seen) || walkTypeParams(t.Elem(), seen)
	case *types.Chan:
		return walkTypeParams(t.Elem(), seen)
	case *types.Struct:
		for i := 0; i < t.NumFields(); i++ {
			if walkTypeParams(t.Field(i).Type(), seen) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
