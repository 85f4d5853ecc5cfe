package ir

import (
	"strconv"
	"strings"
)

// ArrayDescriptor represents an ordered collection (slice or fixed-length array).
type ArrayDescriptor struct {
	// Element is the array element type.
	Element TypeDescriptor

	// Length is 0 for slices ([]T), or >0 for fixed-length arrays ([N]T).
	Length int
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

func (d *ArrayDescriptor) String() string {
	if d.Length > 0 {
		return "[" + strconv.Itoa(d.Length) + "]" + typeString(d.Element)
	}
	return "[]" + typeString(d.Element)
}

func (*ArrayDescriptor) sealed() {}

// Slice returns an ArrayDescriptor for a slice type.
func Slice(element TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element, Length: 0}
}

// Array returns an ArrayDescriptor for a fixed-length array.
func Array(element TypeDescriptor, length int) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element, Length: length}
}

// MapDescriptor represents a key-value mapping.
type MapDescriptor struct {
	// Key is the map key type.
	Key TypeDescriptor

	// Value is the map value type.
	Value TypeDescriptor
}

// Kind returns KindMap.
func (d *MapDescriptor) Kind() DescriptorKind { return KindMap }

func (d *MapDescriptor) String() string {
	return "map[" + typeString(d.Key) + "]" + typeString(d.Value)
}

func (*MapDescriptor) sealed() {}

// Map returns a MapDescriptor for a map type.
func Map(key, value TypeDescriptor) *MapDescriptor {
	return &MapDescriptor{Key: key, Value: value}
}

// ReferenceDescriptor represents a reference to a named type.
//
// With no Args it is a simple named type. With Args it is a parameterized
// type: the generic named type Target instantiated with Args in declaration
// order (e.g., Page[User] is Target=Page, Args=[User]).
type ReferenceDescriptor struct {
	// Target is the referenced type's identifier.
	Target GoIdentifier

	// Args are the type arguments of a parameterized type.
	Args []TypeDescriptor

	// Underlying is set for named types that are not structs: the
	// primitive of a named basic type, the composite of a named slice,
	// array, map or pointer type, and Any for a named interface. It is nil
	// for structs and for references built without type information.
	// Underlying takes no part in equality.
	Underlying TypeDescriptor
}

// Kind returns KindReference.
func (d *ReferenceDescriptor) Kind() DescriptorKind { return KindReference }

// IsParameterized reports whether the reference carries type arguments.
func (d *ReferenceDescriptor) IsParameterized() bool { return len(d.Args) > 0 }

// IsInterface reports whether the referenced type is an interface.
func (d *ReferenceDescriptor) IsInterface() bool {
	p, ok := d.Underlying.(*PrimitiveDescriptor)
	return ok && p.PrimitiveKind == PrimitiveAny
}

// Basic returns the underlying primitive of a named basic type, or nil.
func (d *ReferenceDescriptor) Basic() *PrimitiveDescriptor {
	p, ok := d.Underlying.(*PrimitiveDescriptor)
	if !ok || p.PrimitiveKind == PrimitiveAny {
		return nil
	}
	return p
}

func (d *ReferenceDescriptor) String() string {
	if len(d.Args) == 0 {
		return d.Target.String()
	}
	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = typeString(a)
	}
	return d.Target.String() + "[" + strings.Join(args, ", ") + "]"
}

func (*ReferenceDescriptor) sealed() {}

// Ref returns a ReferenceDescriptor for a named type.
func Ref(name string, pkg string) *ReferenceDescriptor {
	return &ReferenceDescriptor{Target: GoIdentifier{Name: name, Package: pkg}}
}

// Parameterized returns a ReferenceDescriptor for a generic instantiation.
func Parameterized(name string, pkg string, args ...TypeDescriptor) *ReferenceDescriptor {
	return &ReferenceDescriptor{Target: GoIdentifier{Name: name, Package: pkg}, Args: args}
}

// PtrDescriptor represents a Go pointer type (*T).
type PtrDescriptor struct {
	// Element is the pointed-to type.
	Element TypeDescriptor
}

// Kind returns KindPtr.
func (d *PtrDescriptor) Kind() DescriptorKind { return KindPtr }

func (d *PtrDescriptor) String() string { return "*" + typeString(d.Element) }

func (*PtrDescriptor) sealed() {}

// Ptr returns a PtrDescriptor for a pointer type.
func Ptr(element TypeDescriptor) *PtrDescriptor {
	return &PtrDescriptor{Element: element}
}

// TypeParameterDescriptor represents a type variable.
//
// It appears in two contexts:
//   - Declaration: in TypeDecl.TypeParameters, where Name and Constraint define
//     the parameter.
//   - Usage: as the type of a method result or parameter, or as an argument
//     of a parameterized reference.
type TypeParameterDescriptor struct {
	// ParamName is the type parameter name (e.g., "T", "E", "ID").
	ParamName string

	// Scope is the declaring generic type (e.g., "api.AbstractAPI").
	// Empty when unknown.
	Scope string

	// Constraint is the type set constraint. nil means unconstrained.
	Constraint TypeDescriptor
}

// Kind returns KindTypeParameter.
func (d *TypeParameterDescriptor) Kind() DescriptorKind { return KindTypeParameter }

func (d *TypeParameterDescriptor) String() string { return d.ParamName }

func (*TypeParameterDescriptor) sealed() {}

// TypeParam returns a TypeParameterDescriptor for a type parameter.
func TypeParam(name string, constraint TypeDescriptor) *TypeParameterDescriptor {
	return &TypeParameterDescriptor{ParamName: name, Constraint: constraint}
}

// ScopedTypeParam returns a TypeParameterDescriptor declared by scope.
func ScopedTypeParam(name, scope string) *TypeParameterDescriptor {
	return &TypeParameterDescriptor{ParamName: name, Scope: scope}
}

// VoidDescriptor represents the absence of a value: a method without results
// (or whose only result is an error).
type VoidDescriptor struct{}

// Kind returns KindVoid.
func (*VoidDescriptor) Kind() DescriptorKind { return KindVoid }

func (*VoidDescriptor) String() string { return "void" }

func (*VoidDescriptor) sealed() {}

// Void returns the VoidDescriptor.
func Void() *VoidDescriptor { return &VoidDescriptor{} }

// UnresolvedDescriptor marks a type variable that no level of a hierarchy
// bound to a type. It is a legitimate outcome of resolution, not an error.
type UnresolvedDescriptor struct {
	// ParamName is the name of the unbound type variable.
	ParamName string
}

// Kind returns KindUnresolved.
func (*UnresolvedDescriptor) Kind() DescriptorKind { return KindUnresolved }

func (d *UnresolvedDescriptor) String() string { return "?" + d.ParamName }

func (*UnresolvedDescriptor) sealed() {}

// Unresolved returns an UnresolvedDescriptor for the named type variable.
func Unresolved(name string) *UnresolvedDescriptor {
	return &UnresolvedDescriptor{ParamName: name}
}

// IsVoid reports whether t is nil or the VoidDescriptor.
func IsVoid(t TypeDescriptor) bool {
	return t == nil || t.Kind() == KindVoid
}

func typeString(t TypeDescriptor) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
