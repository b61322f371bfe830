// Package shapecheck reports calls that resolve the document shape of a
// type which is not serializable, so that the failure surfaces when the
// program is checked rather than when it runs.
//
// The checked functions are shape.Resolve, shape.MustResolve, shape.ShapeFor,
// shape.NarrowText and shape.NarrowBinary. Every instantiation of them is
// checked, whether called or only referenced as a function value, and its
// type argument is classified with the rules of package shape.
//
// A generic function passing one of its type parameters on to a checked
// function carries a Requirements fact, so that its own instantiations
// with concrete types are checked too, in any package.
//
// Types made reflectable or excluded through introspect.Register,
// introspect.Exclude, introspect.RegisterType and introspect.ExcludeType
// are honored when the registering call is in the checked package or one
// of its dependencies and, for the last two, when the reflected type is
// written as reflect.TypeFor[T]() or reflect.TypeOf of a typed value.
package shapecheck

import (
	"fmt"
	"go/ast"
	"go/types"
	"slices"
	"strings"

	"github.com/signadot/tony-format/docshape/debug"
	"github.com/signadot/tony-format/docshape/shape"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const doc = `report unserializable type arguments to shape resolution

The shapecheck analyzer flags shape.Resolve, MustResolve, ShapeFor,
NarrowText and NarrowBinary when instantiated with a type that is not
serializable, such as a pointer to a type that is not a reflectable record.
Generic functions forwarding a type parameter to one of these are checked
at their own instantiations.`

var Analyzer = &analysis.Analyzer{
	Name:      "shapecheck",
	Doc:       doc,
	Run:       run,
	Requires:  []*analysis.Analyzer{inspect.Analyzer},
	FactTypes: []analysis.Fact{new(Registrations), new(Requirements)},
}

// checked are the functions of package shape whose type argument must be
// serializable.
var checked = []string{"Resolve", "MustResolve", "ShapeFor", "NarrowText", "NarrowBinary"}

// Registrations is the package fact listing the types a package registers
// or excludes through package introspect.
type Registrations struct {
	Reflectable []string
	Excluded    []string
}

func (*Registrations) AFact() {}

func (r *Registrations) String() string {
	return fmt.Sprintf("registrations(reflectable=%s excluded=%s)",
		strings.Join(r.Reflectable, ","), strings.Join(r.Excluded, ","))
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	own := ScanRegistrations(pass.TypesInfo, pass.Files)
	if len(own.Reflectable)+len(own.Excluded) != 0 {
		pass.ExportPackageFact(own)
	}

	c := NewClassifier()
	for _, pf := range pass.AllPackageFacts() {
		regs, ok := pf.Fact.(*Registrations)
		if !ok {
			continue
		}
		for _, k := range regs.Reflectable {
			c.Register(k)
		}
		for _, k := range regs.Excluded {
			c.Exclude(k)
		}
	}
	// the fact of the current package is only visible after export
	for _, k := range own.Reflectable {
		c.Register(k)
	}
	for _, k := range own.Excluded {
		c.Exclude(k)
	}

	k := &checker{
		pass:  pass,
		c:     c,
		local: map[*types.Func]*ast.FuncDecl{},
		reqs:  map[*types.Func][]*Template{},
		busy:  map[*types.Func]bool{},
	}
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fd := n.(*ast.FuncDecl)
		if fd.Recv != nil || fd.Type.TypeParams == nil || fd.Body == nil {
			return
		}
		if fn, ok := pass.TypesInfo.Defs[fd.Name].(*types.Func); ok {
			k.local[fn] = fd
		}
	})
	for _, f := range pass.Files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok {
				k.scan(decl, nil)
				continue
			}
			fn, ok := pass.TypesInfo.Defs[fd.Name].(*types.Func)
			if _, generic := k.local[fn]; !ok || !generic {
				k.scan(decl, nil)
				continue
			}
			if reqs := k.requirements(fn); len(reqs) != 0 {
				pass.ExportObjectFact(fn, &Requirements{Checks: reqs})
			}
		}
	}
	return nil, nil
}

// checker classifies the type arguments of every instantiated function
// which requires serializable type arguments, called or not.
type checker struct {
	pass  *analysis.Pass
	c     *Classifier
	local map[*types.Func]*ast.FuncDecl
	reqs  map[*types.Func][]*Template
	busy  map[*types.Func]bool
}

// requirements returns the templates over the type parameters of fn which
// must be serializable when fn is instantiated. The body of a generic
// function of the current package is scanned once, on first request.
func (k *checker) requirements(fn *types.Func) []*Template {
	if fn.Pkg() == nil {
		return nil
	}
	if fn.Pkg().Path() == shapePath {
		if slices.Contains(checked, fn.Name()) {
			return []*Template{paramTemplate}
		}
		return nil
	}
	if decl, ok := k.local[fn]; ok {
		if reqs, ok := k.reqs[fn]; ok {
			return reqs
		}
		if k.busy[fn] {
			// recursive instantiation; what it adds is found at the
			// outer scan
			return nil
		}
		k.busy[fn] = true
		reqs := k.scan(decl.Body, fn)
		delete(k.busy, fn)
		k.reqs[fn] = reqs
		return reqs
	}
	var fact Requirements
	if k.pass.ImportObjectFact(fn, &fact) {
		return fact.Checks
	}
	return nil
}

// scan checks every instantiated identifier under node. owner is the
// generic function whose body is scanned, or nil. Checks which still
// depend on the type parameters of owner are returned as its
// requirements.
func (k *checker) scan(node ast.Node, owner *types.Func) []*Template {
	var params *types.TypeParamList
	if owner != nil {
		params = owner.Type().(*types.Signature).TypeParams()
	}
	var reqs []*Template
	info := k.pass.TypesInfo
	ast.Inspect(node, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		inst, ok := info.Instances[id]
		if !ok || inst.TypeArgs.Len() == 0 {
			return true
		}
		fn, ok := info.Uses[id].(*types.Func)
		if !ok {
			return true
		}
		fn = fn.Origin()
		targs := slices.Collect(inst.TypeArgs.Types())
		for _, tmpl := range k.requirements(fn) {
			b := &builder{c: k.c, owner: params}
			d, ok := b.instantiate(tmpl, targs)
			if !ok || b.foreign {
				continue
			}
			if len(b.holes) == 0 {
				k.report(id, fn, d, shape.Check(d))
				continue
			}
			t, errs := b.template(d)
			for _, err := range errs {
				k.report(id, fn, d, err)
			}
			if !slices.ContainsFunc(reqs, func(r *Template) bool { return r.key() == t.key() }) {
				reqs = append(reqs, t)
			}
		}
		return true
	})
	return reqs
}

func (k *checker) report(id *ast.Ident, fn *types.Func, d *shape.Descriptor, err error) {
	if debug.Analyze() {
		debug.Logf("shapecheck %s[%s]: %v\n", fn.Name(), d.Name, err)
	}
	if err == nil {
		return
	}
	if fn.Pkg().Path() == shapePath {
		k.pass.Reportf(id.Pos(), "unserializable type argument: %v", err)
		return
	}
	k.pass.Reportf(id.Pos(), "unserializable type argument to %s: %v", fn.Name(), err)
}

// shapeCall reports the first type argument of call if it calls one of the
// named generic functions of package pkgPath.
func shapeCall(info *types.Info, call *ast.CallExpr, pkgPath string, names []string) (types.Type, string, bool) {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != pkgPath || !slices.Contains(names, fn.Name()) {
		return nil, "", false
	}
	id := funcIdent(call.Fun)
	if id == nil {
		return nil, "", false
	}
	inst, ok := info.Instances[id]
	if !ok || inst.TypeArgs.Len() == 0 {
		return nil, "", false
	}
	return inst.TypeArgs.At(0), fn.Name(), true
}

// funcIdent strips explicit instantiation and qualification from a callee
// expression.
func funcIdent(e ast.Expr) *ast.Ident {
	for {
		switch x := ast.Unparen(e).(type) {
		case *ast.Ident:
			return x
		case *ast.SelectorExpr:
			return x.Sel
		case *ast.IndexExpr:
			e = x.X
		case *ast.IndexListExpr:
			e = x.X
		default:
			return nil
		}
	}
}

// ScanRegistrations collects the types registered or excluded in files
// through package introspect, keyed by TypeKey. The generic Register and
// Exclude contribute their type argument. RegisterType and ExcludeType
// contribute the type their argument reflects when it is statically
// known: reflect.TypeFor[T](), reflect.TypeOf(x) for x of a non-interface
// type, and reflect.TypeOf((*T)(nil)).Elem().
func ScanRegistrations(info *types.Info, files []*ast.File) *Registrations {
	regs := &Registrations{}
	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			targ, name, ok := registration(info, call)
			if !ok || hasTypeParam(targ) {
				return true
			}
			key := TypeKey(targ)
			switch name {
			case "Register", "RegisterType":
				regs.Reflectable = appendUnique(regs.Reflectable, key)
			case "Exclude", "ExcludeType":
				regs.Excluded = appendUnique(regs.Excluded, key)
			}
			return true
		})
	}
	return regs
}

func registration(info *types.Info, call *ast.CallExpr) (types.Type, string, bool) {
	if targ, name, ok := shapeCall(info, call, introspectPath, []string{"Register", "Exclude"}); ok {
		return targ, name, true
	}
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != introspectPath || len(call.Args) != 1 {
		return nil, "", false
	}
	if fn.Name() != "RegisterType" && fn.Name() != "ExcludeType" {
		return nil, "", false
	}
	t := reflectedType(info, call.Args[0])
	if t == nil {
		return nil, "", false
	}
	return t, fn.Name(), true
}

// reflectedType returns the type a reflect.Type expression denotes, or nil
// if it is not known statically.
func reflectedType(info *types.Info, e ast.Expr) types.Type {
	call, ok := ast.Unparen(e).(*ast.CallExpr)
	if !ok {
		return nil
	}
	if targ, _, ok := shapeCall(info, call, "reflect", []string{"TypeFor"}); ok {
		return targ
	}
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "reflect" {
		return nil
	}
	switch fn.Name() {
	case "TypeOf":
		if len(call.Args) != 1 {
			return nil
		}
		t := info.TypeOf(call.Args[0])
		if t == nil || types.IsInterface(t) {
			return nil
		}
		return t
	case "Elem":
		sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
		if !ok || len(call.Args) != 0 {
			return nil
		}
		p, ok := reflectedType(info, sel.X).(*types.Pointer)
		if !ok {
			return nil
		}
		return p.Elem()
	}
	return nil
}

func appendUnique(keys []string, key string) []string {
	if slices.Contains(keys, key) {
		return keys
	}
	return append(keys, key)
}
