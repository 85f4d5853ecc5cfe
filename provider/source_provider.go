// Package provider loads Go packages and indexes the declarations the
// operation builder works on: named types with the clauses through which
// they embed other types, and their methods with //graphql: directives.
package provider

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/broady/opschema/internal/directive"
	"github.com/broady/opschema/ir"
)

// SourceProvider indexes declarations by analyzing Go source code.
type SourceProvider struct{}

// SourceInputOptions configures source loading.
type SourceInputOptions struct {
	// Packages are the Go package patterns to analyze.
	Packages []string

	// Dir is the directory the patterns are resolved in. Empty means the
	// current directory.
	Dir string
}

// Load analyzes the packages and returns their index.
func (p *SourceProvider) Load(ctx context.Context, opts SourceInputOptions) (*Index, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found")
	}

	b := &indexBuilder{
		index: &Index{
			types:   make(map[ir.GoIdentifier]*ir.TypeDecl),
			methods: make(map[ir.GoIdentifier][]*ir.MethodDecl),
		},
		docs: make(map[token.Pos]*ast.CommentGroup),
		fset: pkgs[0].Fset,
	}

	// packages.Load returns packages in dependency order, not input order.
	mainPkg := pkgs[0]
	for _, pkg := range pkgs {
		if pkg.PkgPath == opts.Packages[0] {
			mainPkg = pkg
			break
		}
	}
	b.index.Package = ir.PackageInfo{Path: mainPkg.PkgPath, Name: mainPkg.Name}
	if len(mainPkg.GoFiles) > 0 {
		b.index.Package.Dir = filepath.Dir(mainPkg.GoFiles[0])
	}

	for _, pkg := range pkgs {
		if err := b.addPackage(pkg); err != nil {
			return nil, err
		}
	}
	for _, pkg := range pkgs {
		if err := b.declarePackage(pkg); err != nil {
			return nil, err
		}
	}

	return b.index, nil
}

// indexBuilder accumulates declarations while the index is built.
type indexBuilder struct {
	index *Index
	fset  *token.FileSet

	// docs maps the position of a declared name to its doc comment.
	docs map[token.Pos]*ast.CommentGroup

	// directives maps a package path to its directive scan.
	directives map[string]*directive.Result
}

// addPackage scans syntax for doc comments and directives.
func (b *indexBuilder) addPackage(pkg *packages.Package) error {
	result, err := directive.Scan(pkg.Fset, pkg.Syntax)
	if err != nil {
		return err
	}
	if b.directives == nil {
		b.directives = make(map[string]*directive.Result)
	}
	b.directives[pkg.PkgPath] = result

	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				b.docs[d.Name.Pos()] = d.Doc
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					b.docs[ts.Name.Pos()] = doc
					if iface, ok := ts.Type.(*ast.InterfaceType); ok && iface.Methods != nil {
						for _, field := range iface.Methods.List {
							for _, name := range field.Names {
								b.docs[name.Pos()] = field.Doc
							}
						}
					}
				}
			}
		}
	}
	return nil
}

// declarePackage indexes every named struct and interface type of pkg.
func (b *indexBuilder) declarePackage(pkg *packages.Package) error {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		if _, err := b.declare(named); err != nil {
			return fmt.Errorf("%s: %w", tn.Name(), err)
		}
	}
	return nil
}

// declare indexes named (its generic origin) and the types it embeds.
func (b *indexBuilder) declare(named *types.Named) (*ir.TypeDecl, error) {
	named = named.Origin()
	id := identifier(named.Obj())
	if decl, ok := b.index.types[id]; ok {
		return decl, nil
	}

	switch named.Underlying().(type) {
	case *types.Struct, *types.Interface:
	default:
		return nil, nil
	}

	decl := &ir.TypeDecl{
		Name:          id,
		Documentation: b.documentation(named.Obj()),
		Source:        b.source(named.Obj()),
		Annotations:   b.typeAnnotations(named.Obj()),
	}
	b.index.types[id] = decl

	conv := &converter{scope: decl}
	for i := 0; i < named.TypeParams().Len(); i++ {
		tp := named.TypeParams().At(i)
		p := ir.ScopedTypeParam(tp.Obj().Name(), id.String())
		p.Constraint = conv.constraint(tp.Constraint())
		decl.TypeParameters = append(decl.TypeParameters, *p)
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if !f.Embedded() {
				continue
			}
			if err := b.addClause(decl, conv, f.Type()); err != nil {
				return nil, err
			}
		}
		for i := 0; i < named.NumMethods(); i++ {
			m, err := b.method(decl, conv, named.Method(i))
			if err != nil {
				return nil, err
			}
			b.index.methods[id] = append(b.index.methods[id], m)
		}

	case *types.Interface:
		decl.IsInterface = true
		for i := 0; i < u.NumEmbeddeds(); i++ {
			if err := b.addClause(decl, conv, u.EmbeddedType(i)); err != nil {
				return nil, err
			}
		}
		for i := 0; i < u.NumExplicitMethods(); i++ {
			m, err := b.method(decl, conv, u.ExplicitMethod(i))
			if err != nil {
				return nil, err
			}
			b.index.methods[id] = append(b.index.methods[id], m)
		}
	}

	methods := b.index.methods[id]
	sort.SliceStable(methods, func(i, j int) bool {
		if methods[i].Source.File != methods[j].Source.File {
			return methods[i].Source.File < methods[j].Source.File
		}
		return methods[i].Source.Line < methods[j].Source.Line
	})
	return decl, nil
}

// addClause records an embedded type as Super, Embeds or Interfaces and
// indexes it.
func (b *indexBuilder) addClause(decl *ir.TypeDecl, conv *converter, t types.Type) error {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil
	}
	embedded, err := b.declare(named)
	if err != nil || embedded == nil {
		return err
	}

	desc, err := conv.convert(named)
	if err != nil {
		return err
	}
	ref, ok := desc.(*ir.ReferenceDescriptor)
	if !ok {
		return nil
	}

	switch {
	case embedded.IsInterface:
		decl.Interfaces = append(decl.Interfaces, ref)
	case decl.Super == nil:
		decl.Super = ref
	default:
		decl.Embeds = append(decl.Embeds, ref)
	}
	return nil
}

// method converts a method of decl.
func (b *indexBuilder) method(decl *ir.TypeDecl, conv *converter, fn *types.Func) (*ir.MethodDecl, error) {
	sig := fn.Type().(*types.Signature)
	m := &ir.MethodDecl{
		Name:          fn.Name(),
		Exported:      fn.Exported(),
		DeclaringType: decl,
		ReturnType:    ir.Void(),
		Documentation: b.documentation(fn),
		Source:        b.source(fn),
		Annotations:   b.methodAnnotations(decl, fn),
	}

	results := sig.Results()
	n := results.Len()
	if n > 0 && isError(results.At(n-1).Type()) {
		m.ReturnsError = true
		n--
	}
	if n > 1 {
		return nil, fmt.Errorf("method %s: at most one result besides error is supported, got %d", m.QualifiedName(), n)
	}
	if n == 1 {
		t, err := conv.convert(results.At(0).Type())
		if err != nil {
			return nil, fmt.Errorf("method %s: result: %w", m.QualifiedName(), err)
		}
		m.ReturnType = t
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		p := ir.ParamDecl{Name: v.Name(), IsContext: isContext(v.Type())}
		t, err := conv.convert(v.Type())
		if err != nil {
			return nil, fmt.Errorf("method %s: parameter %s: %w", m.QualifiedName(), v.Name(), err)
		}
		p.Type = t
		m.Params = append(m.Params, p)
	}
	return m, nil
}

func (b *indexBuilder) typeAnnotations(obj types.Object) ir.Annotations {
	if r := b.directives[pkgPath(obj)]; r != nil {
		return r.Types[obj.Name()]
	}
	return nil
}

func (b *indexBuilder) methodAnnotations(decl *ir.TypeDecl, fn *types.Func) ir.Annotations {
	if r := b.directives[pkgPath(fn)]; r != nil {
		return r.Methods[directive.MethodKey(decl.Name.Name, fn.Name())]
	}
	return nil
}

// documentation returns the parsed doc comment of obj, if its syntax was
// loaded.
func (b *indexBuilder) documentation(obj types.Object) ir.Documentation {
	return parseDocumentation(b.docs[obj.Pos()])
}

func (b *indexBuilder) source(obj types.Object) ir.Source {
	pos := obj.Pos()
	if !pos.IsValid() || b.fset == nil {
		return ir.Source{}
	}
	position := b.fset.Position(pos)
	return ir.Source{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// parseDocumentation splits a doc comment into summary and body.
// Directive lines are not part of the text.
func parseDocumentation(cg *ast.CommentGroup) ir.Documentation {
	if cg == nil {
		return ir.Documentation{}
	}

	text := cg.Text()
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var summary string
	var deprecated *string

	for i, line := range lines {
		if strings.HasPrefix(line, "Deprecated:") {
			msg := strings.TrimSpace(strings.TrimPrefix(line, "Deprecated:"))
			deprecated = &msg
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}

	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			summary = trimmed
			break
		}
	}

	return ir.Documentation{
		Summary:    summary,
		Body:       strings.Join(lines, "\n"),
		Deprecated: deprecated,
	}
}

func identifier(obj types.Object) ir.GoIdentifier {
	return ir.GoIdentifier{Name: obj.Name(), Package: pkgPath(obj)}
}

func pkgPath(obj types.Object) string {
	if obj.Pkg() == nil {
		return ""
	}
	return obj.Pkg().Path()
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}
