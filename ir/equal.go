package ir

// Equal reports whether two type descriptors are structurally equal.
//
// Type parameters compare by name and scope; a parameter with an empty scope
// matches any scope of the same name.
func Equal(a, b TypeDescriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *PrimitiveDescriptor:
		y := b.(*PrimitiveDescriptor)
		return x.PrimitiveKind == y.PrimitiveKind && x.BitSize == y.BitSize
	case *ArrayDescriptor:
		y := b.(*ArrayDescriptor)
		return x.Length == y.Length && Equal(x.Element, y.Element)
	case *MapDescriptor:
		y := b.(*MapDescriptor)
		return Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case *PtrDescriptor:
		y := b.(*PtrDescriptor)
		return Equal(x.Element, y.Element)
	case *ReferenceDescriptor:
		y := b.(*ReferenceDescriptor)
		if x.Target != y.Target || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *TypeParameterDescriptor:
		y := b.(*TypeParameterDescriptor)
		if x.ParamName != y.ParamName {
			return false
		}
		return x.Scope == "" || y.Scope == "" || x.Scope == y.Scope
	case *UnresolvedDescriptor:
		return x.ParamName == b.(*UnresolvedDescriptor).ParamName
	case *VoidDescriptor:
		return true
	}
	return false
}

// TypeKey returns a canonical string for t, usable as a map key.
// Structurally equal descriptors (ignoring type parameter scopes) share a key.
func TypeKey(t TypeDescriptor) string {
	return typeString(t)
}

// Composite returns the underlying composite type of a named slice, array,
// map or pointer type, and t otherwise.
func Composite(t TypeDescriptor) TypeDescriptor {
	d, ok := t.(*ReferenceDescriptor)
	if !ok {
		return t
	}
	switch d.Underlying.(type) {
	case *PtrDescriptor, *ArrayDescriptor, *MapDescriptor:
		return d.Underlying
	}
	return t
}

// Innermost unwraps pointers, arrays and maps (map values) down to the
// element type that names the data carried by t. Named collection types
// are unwrapped like their underlying type.
func Innermost(t TypeDescriptor) TypeDescriptor {
	for {
		switch d := Composite(t).(type) {
		case *PtrDescriptor:
			t = d.Element
		case *ArrayDescriptor:
			t = d.Element
		case *MapDescriptor:
			t = d.Value
		default:
			return t
		}
	}
}
