package shapecheck

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/signadot/tony-format/docshape/shape"
)

// Requirements is the object fact of a generic function whose type
// parameters reach a checked call, directly or through other generic
// functions. Each check is a description over the function's type
// parameters which must be serializable once they are instantiated.
type Requirements struct {
	Checks []*Template
}

func (*Requirements) AFact() {}

func (r *Requirements) String() string {
	names := make([]string, len(r.Checks))
	for i, t := range r.Checks {
		names[i] = t.Name
	}
	return "requires serializable " + strings.Join(names, ", ")
}

// Template is a descriptor tree with holes. A hole is a node with a
// positive Param, the 1-based index of the type parameter standing there.
// Subtrees without holes are checked when the template is built and kept
// only as serializable scalar leaves.
type Template struct {
	Kind     shape.Kind
	Name     string
	Excluded bool
	Param    int
	Elems    []*Template
}

// key renders the structure of t, holes included.
func (t *Template) key() string {
	var sb strings.Builder
	var walk func(t *Template)
	walk = func(t *Template) {
		if t.Param > 0 {
			fmt.Fprintf(&sb, "$%d", t.Param)
			return
		}
		fmt.Fprintf(&sb, "%s:%s", t.Kind, t.Name)
		if t.Excluded {
			sb.WriteString("!")
		}
		if len(t.Elems) == 0 {
			return
		}
		sb.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			walk(e)
		}
		sb.WriteByte(')')
	}
	walk(t)
	return sb.String()
}

// paramTemplate is the requirement of the checked functions of package
// shape: their first type argument must be serializable.
var paramTemplate = &Template{Kind: shape.ScalarKind, Name: "T", Param: 1}

// instantiate builds the descriptor of t with each hole replaced by the
// description of the corresponding type argument. It reports false if t
// refers to a type argument beyond targs.
func (b *builder) instantiate(t *Template, targs []types.Type) (*shape.Descriptor, bool) {
	if t.Param > 0 {
		if t.Param > len(targs) {
			return nil, false
		}
		return b.build(targs[t.Param-1]), true
	}
	d := &shape.Descriptor{Kind: t.Kind, Name: t.Name, Excluded: t.Excluded}
	for _, e := range t.Elems {
		ed, ok := b.instantiate(e, targs)
		if !ok {
			return nil, false
		}
		d.Elems = append(d.Elems, ed)
	}
	return d, true
}

// template converts d, built by b with holes, into a Template. The
// subtrees of d without holes are checked and their failures returned.
func (b *builder) template(d *shape.Descriptor) (*Template, []error) {
	var errs []error
	path := map[*shape.Descriptor]bool{}
	var conv func(d *shape.Descriptor) (*Template, bool)
	conv = func(d *shape.Descriptor) (*Template, bool) {
		if p, ok := b.holes[d]; ok {
			return &Template{Kind: shape.ScalarKind, Name: d.Name, Param: p}, true
		}
		leaf := &Template{Kind: shape.ScalarKind, Name: d.Name}
		if path[d] {
			return leaf, false
		}
		path[d] = true
		defer delete(path, d)
		t := &Template{Kind: d.Kind, Name: d.Name, Excluded: d.Excluded}
		elems := make([]*Template, len(d.Elems))
		holed := make([]bool, len(d.Elems))
		holey := false
		for i, e := range d.Elems {
			elems[i], holed[i] = conv(e)
			holey = holey || holed[i]
		}
		if !holey {
			return leaf, false
		}
		for i, e := range d.Elems {
			if holed[i] {
				continue
			}
			// e is complete: it fails whatever the instantiation
			if err := shape.Check(e); err != nil {
				errs = append(errs, err)
			}
		}
		t.Elems = elems
		return t, true
	}
	t, _ := conv(d)
	return t, errs
}
