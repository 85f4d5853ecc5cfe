package resolve

import "github.com/broady/opschema/ir"

// Substitute applies m to t.
//
// A type parameter present in m is replaced by its binding, or by an
// ir.UnresolvedDescriptor if the binding is nil. Parameterized references and
// Go composite types (pointers, slices, arrays, maps) are rebuilt with their
// components substituted. Anything else is returned unchanged, as is t when
// m is empty.
func Substitute(m TypeVariableMap, t ir.TypeDescriptor) ir.TypeDescriptor {
	if m.IsEmpty() || t == nil {
		return t
	}

	switch d := t.(type) {
	case *ir.TypeParameterDescriptor:
		bound, ok := m.Lookup(d.ParamName)
		if !ok {
			return t
		}
		if bound == nil {
			return ir.Unresolved(d.ParamName)
		}
		return bound

	case *ir.ReferenceDescriptor:
		if !d.IsParameterized() {
			return t
		}
		args := make([]ir.TypeDescriptor, len(d.Args))
		for i, a := range d.Args {
			args[i] = Substitute(m, a)
		}
		return &ir.ReferenceDescriptor{Target: d.Target, Args: args, Underlying: Substitute(m, d.Underlying)}

	case *ir.PtrDescriptor:
		return ir.Ptr(Substitute(m, d.Element))

	case *ir.ArrayDescriptor:
		return ir.Array(Substitute(m, d.Element), d.Length)

	case *ir.MapDescriptor:
		return ir.Map(Substitute(m, d.Key), Substitute(m, d.Value))
	}
	return t
}

// SubstituteAll applies m to each type, preserving order.
func SubstituteAll(m TypeVariableMap, types []ir.TypeDescriptor) []ir.TypeDescriptor {
	out := make([]ir.TypeDescriptor, len(types))
	for i, t := range types {
		out[i] = Substitute(m, t)
	}
	return out
}

// IsFullyResolved reports whether t contains no type parameters and no
// unresolved markers.
func IsFullyResolved(t ir.TypeDescriptor) bool {
	switch d := t.(type) {
	case nil:
		return true
	case *ir.TypeParameterDescriptor, *ir.UnresolvedDescriptor:
		return false
	case *ir.ReferenceDescriptor:
		for _, a := range d.Args {
			if !IsFullyResolved(a) {
				return false
			}
		}
	case *ir.PtrDescriptor:
		return IsFullyResolved(d.Element)
	case *ir.ArrayDescriptor:
		return IsFullyResolved(d.Element)
	case *ir.MapDescriptor:
		return IsFullyResolved(d.Key) && IsFullyResolved(d.Value)
	}
	return true
}
