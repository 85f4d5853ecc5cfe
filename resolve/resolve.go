// Package resolve maps the type parameters of a generic ancestor to the
// types a concrete (leaf) type binds them to.
//
// A hierarchy is an ordered list of declarations: index 0 is the leaf that
// owns the method under inspection, the last index is the generic ancestor
// whose type parameters the method uses. Intermediate levels may bind a
// parameter, pass it through unchanged, or re-parameterize it under a new
// name.
//
//	type Queryable[E, ID any] interface{ All() []E }
//	type AbstractAPI[E, ID any] struct{ Queryable[E, ID] }
//	type BusinessAPI struct{ AbstractAPI[Business, int64] }
//
// For the hierarchy [BusinessAPI, AbstractAPI, Queryable], Resolve maps
// E to Business and ID to int64.
package resolve

import (
	"sort"
	"strings"

	"github.com/broady/opschema/ir"
)

// TypeVariableMap maps type parameter names of a generic declaration to the
// type each one resolves to. An entry whose value is nil was never bound by
// the hierarchy. The map is immutable once built.
type TypeVariableMap struct {
	m map[string]ir.TypeDescriptor
}

// Lookup returns the binding for the named type parameter. ok is false when
// the parameter is not part of the map; t is nil when it is part of the map
// but unbound.
func (tm TypeVariableMap) Lookup(name string) (t ir.TypeDescriptor, ok bool) {
	t, ok = tm.m[name]
	return t, ok
}

// Len returns the number of entries.
func (tm TypeVariableMap) Len() int { return len(tm.m) }

// IsEmpty reports whether no substitution applies.
func (tm TypeVariableMap) IsEmpty() bool { return len(tm.m) == 0 }

// Names returns the parameter names in sorted order.
func (tm TypeVariableMap) Names() []string {
	names := make([]string, 0, len(tm.m))
	for name := range tm.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unbound returns the names of parameters no level bound, sorted.
func (tm TypeVariableMap) Unbound() []string {
	var names []string
	for name, t := range tm.m {
		if t == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// String renders the map as "{E=api.Business, ID=int64}".
func (tm TypeVariableMap) String() string {
	parts := make([]string, 0, len(tm.m))
	for _, name := range tm.Names() {
		v := "<unbound>"
		if t := tm.m[name]; t != nil {
			v = t.String()
		}
		parts = append(parts, name+"="+v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Resolve builds the TypeVariableMap for hierarchy.
//
// If the hierarchy has a single element, or its last element declares no
// type parameters, the map is empty. Otherwise levels are visited from the
// one just below the generic declaration down to the leaf, stopping once
// every parameter is bound. At each level the type arguments come from the
// interface clause targeting the generic declaration if there is one, and
// from the embedded (super) clause otherwise. Arguments are matched to the
// generic's parameters by position. A bare type variable passes the
// parameter through (possibly under a new name) and never binds it;
// anything else binds it. The first binding found wins.
func Resolve(hierarchy []*ir.TypeDecl) TypeVariableMap {
	if len(hierarchy) < 2 {
		return TypeVariableMap{}
	}
	generic := hierarchy[len(hierarchy)-1]
	if !generic.IsGeneric() {
		return TypeVariableMap{}
	}

	slots := make([]ir.TypeDescriptor, len(generic.TypeParameters))
	for idx := len(hierarchy) - 2; idx >= 0 && !allBound(slots); idx-- {
		slots = bindLevel(slots, clauseArgs(hierarchy[idx], hierarchy[idx+1], generic))
	}

	m := make(map[string]ir.TypeDescriptor, len(slots))
	for i, p := range generic.TypeParameters {
		m[p.ParamName] = slots[i]
	}
	return TypeVariableMap{m: m}
}

// bindLevel folds one level's clause arguments into a copy of slots,
// filling only slots that are still empty.
func bindLevel(slots []ir.TypeDescriptor, args []ir.TypeDescriptor) []ir.TypeDescriptor {
	next := make([]ir.TypeDescriptor, len(slots))
	copy(next, slots)
	for i := range next {
		if next[i] != nil || i >= len(args) || args[i] == nil {
			continue
		}
		if args[i].Kind() == ir.KindTypeParameter {
			continue
		}
		next[i] = args[i]
	}
	return next
}

// clauseArgs returns the type arguments ancestor supplies through the clause
// that connects it to generic: the interface clause naming generic, else
// the embedded struct clause naming parent (the next level up), else the
// first embedded struct clause.
func clauseArgs(ancestor, parent, generic *ir.TypeDecl) []ir.TypeDescriptor {
	if iface := ancestor.Implements(generic.Name); iface != nil {
		return iface.Args
	}
	if parent != nil {
		if super := ancestor.Extends(parent.Name); super != nil {
			return super.Args
		}
	}
	if ancestor.Super != nil {
		return ancestor.Super.Args
	}
	return nil
}

func allBound(slots []ir.TypeDescriptor) bool {
	for _, s := range slots {
		if s == nil {
			return false
		}
	}
	return true
}
