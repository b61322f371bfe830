package shapecheck

import (
	"fmt"
	"go/types"
	"sync"

	"golang.org/x/tools/go/packages"
)

// PackageLoader loads and caches type checked packages for classification
// outside of an analysis pass.
type PackageLoader struct {
	Dir string

	mu    sync.Mutex
	cache map[string]*packages.Package
}

func NewPackageLoader(dir string) *PackageLoader {
	return &PackageLoader{Dir: dir, cache: map[string]*packages.Package{}}
}

// Load loads the package matching pattern, relative to the loader's
// directory, along with its dependencies. Type errors in the package are
// returned as an error.
func (l *PackageLoader) Load(pattern string) (*packages.Package, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pkg, ok := l.cache[pattern]; ok {
		return pkg, nil
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedDeps,
		Dir: l.Dir,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package %q: %v", pkg.PkgPath, pkg.Errors[0])
	}
	l.cache[pattern] = pkg
	return pkg, nil
}

// FindType looks up a package level type declaration.
func (l *PackageLoader) FindType(pkg *packages.Package, typeName string) (types.Type, error) {
	if pkg.Types == nil {
		return nil, fmt.Errorf("package %q has no type information", pkg.PkgPath)
	}
	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("type %q not found in package %q", typeName, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%q is not a type name", typeName)
	}
	if named, ok := types.Unalias(tn.Type()).(*types.Named); ok && named.TypeParams().Len() != 0 {
		return nil, fmt.Errorf("%q is generic and cannot be classified uninstantiated", typeName)
	}
	return tn.Type(), nil
}

// Classifier returns a Classifier that knows the registrations made in pkg
// and in its dependencies. Only packages importing introspect directly are
// scanned.
func (l *PackageLoader) Classifier(pkg *packages.Package) *Classifier {
	c := NewClassifier()
	packages.Visit([]*packages.Package{pkg}, nil, func(p *packages.Package) {
		if p.TypesInfo == nil || p.Imports[introspectPath] == nil {
			return
		}
		regs := ScanRegistrations(p.TypesInfo, p.Syntax)
		for _, k := range regs.Reflectable {
			c.Register(k)
		}
		for _, k := range regs.Excluded {
			c.Exclude(k)
		}
	})
	return c
}
