package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/broady/opschema/ir"
)

// Index holds the declarations of the loaded packages.
type Index struct {
	// Package is the first package the index was loaded from.
	Package ir.PackageInfo

	types   map[ir.GoIdentifier]*ir.TypeDecl
	methods map[ir.GoIdentifier][]*ir.MethodDecl
}

// Site is one method reached through an API type that becomes an
// operation.
type Site struct {
	// Leaf is the API type the method is reached through.
	Leaf *ir.TypeDecl

	// Method is the method declaration, possibly on an ancestor of Leaf.
	Method *ir.MethodDecl

	// Kind is the operation kind selected by the method's marker.
	Kind ir.OperationType

	// Hierarchy runs from Leaf to the method's declaring type.
	Hierarchy []*ir.TypeDecl
}

// Type returns the declaration of id, or nil.
func (x *Index) Type(id ir.GoIdentifier) *ir.TypeDecl {
	return x.types[id]
}

// Lookup returns the declaration of the type named name in the index
// package, or nil.
func (x *Index) Lookup(name string) *ir.TypeDecl {
	return x.Type(ir.GoIdentifier{Name: name, Package: x.Package.Path})
}

// Types returns every declaration sorted by identifier.
func (x *Index) Types() []*ir.TypeDecl {
	out := make([]*ir.TypeDecl, 0, len(x.types))
	for _, d := range x.types {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.String() < out[j].Name.String()
	})
	return out
}

// Methods returns the methods declared directly on id, in source order.
func (x *Index) Methods(id ir.GoIdentifier) []*ir.MethodDecl {
	return x.methods[id]
}

// IsInterface reports whether id is an indexed interface type.
func (x *Index) IsInterface(id ir.GoIdentifier) bool {
	d := x.Type(id)
	return d != nil && d.IsInterface
}

// Hierarchy returns the chain of declarations from leaf to declaring,
// following embedded clauses depth first. It returns nil when declaring
// is not reachable from leaf.
func (x *Index) Hierarchy(leaf, declaring ir.GoIdentifier) []*ir.TypeDecl {
	start := x.Type(leaf)
	if start == nil {
		return nil
	}
	return x.search(start, declaring, map[ir.GoIdentifier]bool{})
}

func (x *Index) search(d *ir.TypeDecl, target ir.GoIdentifier, visiting map[ir.GoIdentifier]bool) []*ir.TypeDecl {
	if d.Name == target {
		return []*ir.TypeDecl{d}
	}
	if visiting[d.Name] {
		return nil
	}
	visiting[d.Name] = true
	defer delete(visiting, d.Name)

	for _, clause := range d.Clauses() {
		next := x.Type(clause.Target)
		if next == nil {
			continue
		}
		if path := x.search(next, target, visiting); path != nil {
			return append([]*ir.TypeDecl{d}, path...)
		}
	}
	return nil
}

// Operations returns a site for every marked method in the method set of
// each type annotated //graphql:api. Methods declared closer to the API
// type shadow promoted methods of the same name, as in Go. A name promoted
// from more than one type at the same depth is ambiguous and yields no
// site; it is reported as a warning when any of its declarations is
// marked. Methods marked //graphql:ignore are skipped. Generic API types
// cannot be resolved and are reported as warnings instead.
func (x *Index) Operations() ([]Site, []ir.Warning) {
	var (
		sites    []Site
		warnings []ir.Warning
	)
	for _, leaf := range x.Types() {
		if !leaf.Annotations.Has(ir.AnnotationAPI) || leaf.IsInterface {
			continue
		}
		if leaf.IsGeneric() {
			src := leaf.Source
			warnings = append(warnings, ir.Warning{
				Code:     "GENERIC_API",
				Message:  fmt.Sprintf("API type %s is generic and cannot be resolved", leaf.Reference()),
				Source:   &src,
				TypeName: leaf.Name.Name,
			})
			continue
		}
		for _, entry := range x.methodSet(leaf) {
			if len(entry.conflicts) > 0 {
				if w, ok := ambiguous(leaf, entry); ok {
					warnings = append(warnings, w)
				}
				continue
			}
			kind, ok := markerKind(entry.method.Annotations)
			if !ok {
				continue
			}
			sites = append(sites, Site{
				Leaf:      leaf,
				Method:    entry.method,
				Kind:      kind,
				Hierarchy: entry.path,
			})
		}
	}
	return sites, warnings
}

type methodEntry struct {
	method *ir.MethodDecl
	path   []*ir.TypeDecl

	// conflicts are declarations of the same name by other types at the
	// same depth.
	conflicts []*ir.MethodDecl
}

// methodSet walks the embedding graph breadth first so that the shallowest
// declaration of each method name wins. Other declarations of the name at
// that depth are kept as conflicts.
func (x *Index) methodSet(leaf *ir.TypeDecl) []methodEntry {
	var (
		out   []methodEntry
		seen  = make(map[string]bool)
		done  = make(map[ir.GoIdentifier]bool)
		level = [][]*ir.TypeDecl{{leaf}}
	)
	for len(level) > 0 {
		var next [][]*ir.TypeDecl
		found := make(map[string]int)
		for _, path := range level {
			d := path[len(path)-1]
			if done[d.Name] {
				continue
			}
			done[d.Name] = true

			for _, m := range x.methods[d.Name] {
				if seen[m.Name] {
					continue
				}
				if i, ok := found[m.Name]; ok {
					out[i].conflicts = append(out[i].conflicts, m)
					continue
				}
				found[m.Name] = len(out)
				out = append(out, methodEntry{method: m, path: path})
			}
			for _, clause := range d.Clauses() {
				if child := x.Type(clause.Target); child != nil {
					p := make([]*ir.TypeDecl, len(path), len(path)+1)
					copy(p, path)
					next = append(next, append(p, child))
				}
			}
		}
		for name := range found {
			seen[name] = true
		}
		level = next
	}
	return out
}

// ambiguous returns the warning for an ambiguous method name, if any of
// its declarations is marked.
func ambiguous(leaf *ir.TypeDecl, entry methodEntry) (ir.Warning, bool) {
	decls := append([]*ir.MethodDecl{entry.method}, entry.conflicts...)
	marked := false
	owners := make([]string, len(decls))
	for i, m := range decls {
		if _, ok := markerKind(m.Annotations); ok {
			marked = true
		}
		owners[i] = m.DeclaringType.Name.Name
	}
	if !marked {
		return ir.Warning{}, false
	}
	src := leaf.Source
	return ir.Warning{
		Code:     "AMBIGUOUS_METHOD",
		Message:  fmt.Sprintf("method %s of API type %s is promoted from %s at the same depth and is ignored", entry.method.Name, leaf.Name, strings.Join(owners, " and ")),
		Source:   &src,
		TypeName: leaf.Name.Name,
	}, true
}

// markerKind returns the operation kind selected by a method's markers.
func markerKind(anns ir.Annotations) (ir.OperationType, bool) {
	switch {
	case anns.Has(ir.AnnotationIgnore):
		return 0, false
	case anns.Has(ir.AnnotationQuery):
		return ir.Query, true
	case anns.Has(ir.AnnotationMutation):
		return ir.Mutation, true
	case anns.Has(ir.AnnotationSource):
		return ir.SourceField, true
	}
	return 0, false
}
