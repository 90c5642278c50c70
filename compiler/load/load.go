// Package load builds persistence-capable type descriptors from compiled
// user packages. It resolves packages with golang.org/x/tools/go/packages,
// detects structs embedding the typedq.Entity marker, and preserves the
// source spelling of member types so the generator can tell byte from
// uint8 and rune from int32.
package load

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/syssam/typedq"
)

// Config is the loader configuration for one generation round.
type Config struct {
	// Patterns are the package patterns handed to go/packages,
	// e.g. "./models/..." or an import path.
	Patterns []string
	// Dir is the working directory for package resolution.
	Dir string
	// BuildFlags are extra flags for the underlying build system.
	BuildFlags []string
	// Workers bounds the descriptor building fan-out.
	// Zero means GOMAXPROCS.
	Workers int
}

var (
	markerName    = reflect.TypeOf(typedq.Entity{}).Name()
	markerPkgPath = reflect.TypeOf(typedq.Entity{}).PkgPath()
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Load resolves the configured patterns and returns the descriptors of
// every persistence-capable struct found, in deterministic package and
// source order. Package errors are reported and do not abort the
// round; references the type checker could not resolve, and references
// into packages that failed to load, are marked Unresolved on the
// descriptor.
func (c *Config) Load(ctx context.Context) ([]*Type, error) {
	if len(c.Patterns) == 0 {
		return nil, fmt.Errorf("load: no package patterns")
	}
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, c.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("load: resolving %v: %w", c.Patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("load: no packages matched %v", c.Patterns)
	}
	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			slog.Warn("package reported errors", "pkg", pkg.PkgPath, "err", perr.Msg)
		}
	}
	broken := brokenPackages(pkgs)
	workers := c.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	results := make([][]*Type, len(pkgs))
	for i, pkg := range pkgs {
		g.Go(func() error {
			ts, err := packageTypes(pkg, broken)
			if err != nil {
				return fmt.Errorf("load: package %s: %w", pkg.PkgPath, err)
			}
			results[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []*Type
	for _, ts := range results {
		out = append(out, ts...)
	}
	return out, nil
}

// brokenPackages returns the import paths of every package in the
// loaded graph that reported errors, together with every package
// importing one transitively. An import cycle always errors somewhere
// inside the cycle, so each of its members ends up in the set no
// matter which one carries the report.
func brokenPackages(pkgs []*packages.Package) map[string]bool {
	importers := make(map[string][]string)
	broken := make(map[string]bool)
	var queue []string
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, imp := range p.Imports {
			importers[imp.PkgPath] = append(importers[imp.PkgPath], p.PkgPath)
		}
		if len(p.Errors) > 0 && !broken[p.PkgPath] {
			broken[p.PkgPath] = true
			queue = append(queue, p.PkgPath)
		}
	})
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		for _, imp := range importers[path] {
			if !broken[imp] {
				broken[imp] = true
				queue = append(queue, imp)
			}
		}
	}
	return broken
}

// packageTypes builds the descriptors of one package: every marked
// struct in source order, with unexported ones folded into the Nested
// list of the first exported type referencing them.
func packageTypes(pkg *packages.Package, broken map[string]bool) ([]*Type, error) {
	b := &builder{pkg: pkg, broken: broken}
	var built []*Type
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				named := b.namedOf(ts.Name)
				if named == nil || !persistableType(named, nil) {
					continue
				}
				t, err := b.buildType(file, ts, st)
				if err != nil {
					return nil, err
				}
				slog.Debug("discovered entity", "type", t.QualifiedName(), "pos", t.Pos)
				built = append(built, t)
			}
		}
	}
	b.collectMethods(built)
	return nestTypes(pkg.PkgPath, built), nil
}

type builder struct {
	pkg *packages.Package
	// broken holds the import paths whose type information cannot be
	// trusted, see brokenPackages.
	broken map[string]bool
}

func (b *builder) namedOf(ident *ast.Ident) *types.Named {
	obj, ok := b.pkg.TypesInfo.Defs[ident].(*types.TypeName)
	if !ok {
		return nil
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil
	}
	return named
}

// persistableType reports whether the named struct carries the marker,
// directly or through its embedded chain.
func persistableType(named *types.Named, seen map[*types.TypeName]bool) bool {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return false
	}
	if seen == nil {
		seen = make(map[*types.TypeName]bool)
	}
	if seen[named.Obj()] {
		return false
	}
	seen[named.Obj()] = true
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		ft := derefType(f.Type())
		if isMarker(ft) {
			return true
		}
		if n, ok := types.Unalias(ft).(*types.Named); ok && persistableType(n, seen) {
			return true
		}
	}
	return false
}

func isMarker(t types.Type) bool {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Name() == markerName && obj.Pkg() != nil && obj.Pkg().Path() == markerPkgPath
}

func derefType(t types.Type) types.Type {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

func (b *builder) buildType(file *ast.File, ts *ast.TypeSpec, st *ast.StructType) (*Type, error) {
	pos := b.pkg.Fset.Position(ts.Pos())
	t := &Type{
		Name:    ts.Name.Name,
		PkgPath: b.pkg.PkgPath,
		PkgName: b.pkg.Name,
		Dir:     filepath.Dir(pos.Filename),
		Pos:     pos.String(),
	}
	if ts.TypeParams != nil {
		for _, tp := range ts.TypeParams.List {
			bnd := boundExpr(tp.Type)
			var ref *TypeRef
			if bnd != nil {
				ref = b.ref(bnd)
			}
			for _, name := range tp.Names {
				t.TypeParams = append(t.TypeParams, &TypeParam{Name: name.Name, Bound: ref})
			}
		}
	}
	idx := 0
	for _, fld := range st.Fields.List {
		if len(fld.Names) == 0 {
			if t.Supers == nil {
				t.Supers = b.supers(fld.Type)
			}
			continue
		}
		for _, name := range fld.Names {
			if !name.IsExported() {
				continue
			}
			m, err := NewMember(name.Name, b.ref(fld.Type))
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", t.Name, err)
			}
			m.Position = &Position{Index: idx, Line: b.pkg.Fset.Position(name.Pos()).Line}
			if fld.Tag != nil {
				m.Tag, m.NotPersistent = parseTag(fld.Tag.Value)
			}
			t.Members = append(t.Members, m)
			idx++
		}
	}
	return t, nil
}

// parseTag unquotes a raw struct tag literal and reports whether it
// marks the member as not persistent.
func parseTag(lit string) (string, bool) {
	raw, err := strconv.Unquote(lit)
	if err != nil {
		slog.Debug("malformed struct tag", "tag", lit, "err", err)
		return lit, false
	}
	return raw, reflect.StructTag(raw).Get(typedq.TagKey) == typedq.TagIgnore
}

// supers returns the embedded supertype chain starting from the given
// embedded field expression: the direct embed keeps its source
// spelling, the rest of the chain is resolved through type
// information. A reference the type checker could not resolve is
// marked Unresolved and ends the chain.
func (b *builder) supers(embed ast.Expr) []*TypeRef {
	direct := b.ref(embed)
	if direct == nil || isMarkerRef(direct) {
		return nil
	}
	chain := []*TypeRef{direct}
	if direct.Unresolved {
		return chain
	}
	et := b.pkg.TypesInfo.TypeOf(embed)
	if et == nil {
		direct.Unresolved = true
		return chain
	}
	cur, ok := types.Unalias(derefType(et)).(*types.Named)
	if !ok {
		return chain
	}
	seen := map[*types.TypeName]bool{cur.Obj(): true}
	for {
		next := firstEmbedded(cur)
		if next == nil || seen[next.Obj()] {
			return chain
		}
		seen[next.Obj()] = true
		chain = append(chain, refFromType(next))
		cur = next
	}
}

func isMarkerRef(r *TypeRef) bool {
	return r.Named() && r.Name == markerName && r.PkgPath == markerPkgPath
}

// firstEmbedded returns the first embedded struct type of the named
// struct, skipping the marker.
func firstEmbedded(named *types.Named) *types.Named {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		ft := derefType(f.Type())
		if isMarker(ft) {
			continue
		}
		if n, ok := types.Unalias(ft).(*types.Named); ok {
			if _, isStruct := n.Underlying().(*types.Struct); isStruct {
				return n
			}
		}
	}
	return nil
}

// collectMethods appends getter-style accessor methods to the members
// of each built type: exported, no parameters, exactly one non-error
// result, and not shadowing a declared field.
func (b *builder) collectMethods(built []*Type) {
	byName := make(map[string]*Type, len(built))
	for _, t := range built {
		byName[t.Name] = t
	}
	for _, file := range b.pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
				continue
			}
			t, ok := byName[recvTypeName(fd.Recv.List[0].Type)]
			if !ok || !getterShape(fd) {
				continue
			}
			if hasMember(t, fd.Name.Name) {
				continue
			}
			m, err := NewMember(fd.Name.Name, b.ref(fd.Type.Results.List[0].Type))
			if err != nil {
				continue
			}
			m.FromMethod = true
			m.Position = &Position{
				Index: len(t.Members),
				Line:  b.pkg.Fset.Position(fd.Pos()).Line,
			}
			t.Members = append(t.Members, m)
		}
	}
}

func recvTypeName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return recvTypeName(e.X)
	case *ast.IndexExpr:
		return recvTypeName(e.X)
	case *ast.IndexListExpr:
		return recvTypeName(e.X)
	}
	return ""
}

func getterShape(fd *ast.FuncDecl) bool {
	if !fd.Name.IsExported() {
		return false
	}
	if fd.Type.Params != nil && len(fd.Type.Params.List) > 0 {
		return false
	}
	res := fd.Type.Results
	if res == nil || len(res.List) != 1 || len(res.List[0].Names) > 1 {
		return false
	}
	if id, ok := res.List[0].Type.(*ast.Ident); ok && id.Name == "error" {
		return false
	}
	return true
}

func hasMember(t *Type, name string) bool {
	for _, m := range t.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// boundExpr extracts the first declared bound of a type parameter
// constraint. Unions keep their leftmost term, approximation elements
// are unwrapped, and unconstrained parameters yield nil.
func boundExpr(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		if e.Op == token.OR {
			return boundExpr(e.X)
		}
	case *ast.UnaryExpr:
		if e.Op == token.TILDE {
			return boundExpr(e.X)
		}
	case *ast.Ident:
		if e.Name == "any" {
			return nil
		}
		return e
	case *ast.InterfaceType:
		return nil
	case *ast.ParenExpr:
		return boundExpr(e.X)
	default:
		return e
	}
	return expr
}

// ref builds a TypeRef from a member type expression, preserving the
// source spelling and recording what the type checker knows about it.
func (b *builder) ref(expr ast.Expr) *TypeRef {
	switch e := expr.(type) {
	case *ast.Ident:
		return b.identRef(e, "")
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			return b.identRef(e.Sel, x.Name)
		}
	case *ast.StarExpr:
		return &TypeRef{Kind: RefPointer, Elem: b.ref(e.X)}
	case *ast.ArrayType:
		if e.Len == nil {
			return &TypeRef{Kind: RefSlice, Elem: b.ref(e.Elt)}
		}
		return &TypeRef{Kind: RefArray, Name: types.ExprString(e.Len), Elem: b.ref(e.Elt)}
	case *ast.MapType:
		return &TypeRef{Kind: RefMap, Key: b.ref(e.Key), Value: b.ref(e.Value)}
	case *ast.ChanType:
		return &TypeRef{Kind: RefChan, Elem: b.ref(e.Value)}
	case *ast.FuncType:
		return &TypeRef{Kind: RefFunc}
	case *ast.StructType:
		if e.Fields == nil || len(e.Fields.List) == 0 {
			return &TypeRef{Kind: RefStruct, Name: "struct{}"}
		}
		return &TypeRef{Kind: RefStruct}
	case *ast.InterfaceType:
		return &TypeRef{Kind: RefInterface}
	case *ast.IndexExpr:
		r := b.ref(e.X)
		r.Args = append(r.Args, b.ref(e.Index))
		return r
	case *ast.IndexListExpr:
		r := b.ref(e.X)
		for _, idx := range e.Indices {
			r.Args = append(r.Args, b.ref(idx))
		}
		return r
	case *ast.ParenExpr:
		return b.ref(e.X)
	}
	return &TypeRef{Kind: RefIdent, Name: types.ExprString(expr), Unresolved: true}
}

// identRef resolves a possibly qualified identifier reference.
func (b *builder) identRef(ident *ast.Ident, pkgName string) *TypeRef {
	if ident.Name == "any" && pkgName == "" {
		return &TypeRef{Kind: RefInterface, Name: "any"}
	}
	r := &TypeRef{Kind: RefIdent, Name: ident.Name, PkgName: pkgName}
	obj := b.pkg.TypesInfo.Uses[ident]
	if obj == nil {
		obj = b.pkg.TypesInfo.Defs[ident]
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		if obj == nil {
			r.Unresolved = true
		}
		return r
	}
	if tn.Pkg() != nil {
		r.PkgPath = tn.Pkg().Path()
	}
	if tn.IsAlias() {
		r.AliasOf = refFromTypesType(types.Unalias(tn.Type()))
	}
	if named, ok := types.Unalias(tn.Type()).(*types.Named); ok {
		r.Enum = enumType(named)
		r.Persistable = persistableType(named, nil)
	}
	if types.Unalias(tn.Type()) == types.Typ[types.Invalid] || b.broken[r.PkgPath] {
		r.Unresolved = true
	}
	return r
}

// enumType reports whether package-scope constants of the named type
// exist, the Go spelling of an enumeration.
func enumType(named *types.Named) bool {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return false
	}
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return false
	}
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), named) {
			return true
		}
	}
	return false
}

func refFromType(named *types.Named) *TypeRef {
	obj := named.Obj()
	r := &TypeRef{
		Kind:        RefIdent,
		Name:        obj.Name(),
		Enum:        enumType(named),
		Persistable: persistableType(named, nil),
	}
	if obj.Pkg() != nil {
		r.PkgPath = obj.Pkg().Path()
		r.PkgName = obj.Pkg().Name()
	}
	return r
}

// refFromTypesType builds a reference from checker type information,
// used for alias targets where no source spelling exists.
func refFromTypesType(t types.Type) *TypeRef {
	switch u := t.(type) {
	case *types.Basic:
		return &TypeRef{Kind: RefIdent, Name: u.Name()}
	case *types.Named:
		return refFromType(u)
	case *types.Pointer:
		return &TypeRef{Kind: RefPointer, Elem: refFromTypesType(u.Elem())}
	case *types.Slice:
		return &TypeRef{Kind: RefSlice, Elem: refFromTypesType(u.Elem())}
	case *types.Array:
		return &TypeRef{
			Kind: RefArray,
			Name: strconv.FormatInt(u.Len(), 10),
			Elem: refFromTypesType(u.Elem()),
		}
	case *types.Map:
		return &TypeRef{Kind: RefMap, Key: refFromTypesType(u.Key()), Value: refFromTypesType(u.Elem())}
	case *types.Interface:
		return &TypeRef{Kind: RefInterface}
	case *types.Struct:
		if u.NumFields() == 0 {
			return &TypeRef{Kind: RefStruct, Name: "struct{}"}
		}
		return &TypeRef{Kind: RefStruct}
	}
	return &TypeRef{Kind: RefIdent, Name: t.String()}
}

// nestTypes folds unexported persistence-capable structs into the
// Nested list of the first exported type whose members reference them,
// and drops unreferenced ones with a note.
func nestTypes(pkgPath string, built []*Type) []*Type {
	inner := make(map[string]*Type)
	var roots []*Type
	for _, t := range built {
		if t.Exported() {
			roots = append(roots, t)
		} else {
			inner[t.Name] = t
		}
	}
	for _, root := range roots {
		queue := []*Type{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, m := range cur.Members {
				name, ok := localNamed(pkgPath, m.Type)
				if !ok {
					continue
				}
				nested, ok := inner[name]
				if !ok {
					continue
				}
				delete(inner, name)
				cur.Nested = append(cur.Nested, nested)
				queue = append(queue, nested)
			}
		}
	}
	for name := range inner {
		slog.Debug("skipping unreferenced unexported entity", "type", pkgPath+"."+name)
	}
	return roots
}

// localNamed reports the bare name of a reference to a type declared
// in the given package, unwrapping one pointer level.
func localNamed(pkgPath string, r *TypeRef) (string, bool) {
	r = r.Deref()
	if r.Named() && r.PkgPath == pkgPath {
		return r.Name, true
	}
	return "", false
}
