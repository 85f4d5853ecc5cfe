package ir

// TypeDecl is a lightweight declaration of a named Go type as seen by the
// resolver: its type parameters and the clauses through which it binds the
// type parameters of its ancestors.
type TypeDecl struct {
	// Name is the type identifier.
	Name GoIdentifier

	// TypeParameters are the declared type parameters, in order.
	TypeParameters []TypeParameterDescriptor

	// IsInterface is true for interface types.
	IsInterface bool

	// Super is the superclass-extension clause: the embedded struct type
	// this type extends (e.g., AbstractAPI[Business, int64]). nil if none.
	Super *ReferenceDescriptor

	// Embeds are further embedded struct types after the first. Go allows
	// several; their methods are promoted like those of Super.
	Embeds []*ReferenceDescriptor

	// Interfaces are the interface-implementation clauses: embedded
	// interface types (e.g., Queryable[E, ID]).
	Interfaces []*ReferenceDescriptor

	// Annotations are the //graphql: directives on the type declaration.
	Annotations Annotations

	// Documentation for this type.
	Documentation Documentation

	// Source location in Go code.
	Source Source
}

// IsGeneric reports whether the type declares type parameters.
func (d *TypeDecl) IsGeneric() bool {
	return d != nil && len(d.TypeParameters) > 0
}

// Implements returns the interface clause targeting name, or nil.
func (d *TypeDecl) Implements(name GoIdentifier) *ReferenceDescriptor {
	for _, iface := range d.Interfaces {
		if iface.Target == name {
			return iface
		}
	}
	return nil
}

// Extends returns the embedded struct clause targeting name, or nil.
func (d *TypeDecl) Extends(name GoIdentifier) *ReferenceDescriptor {
	if d.Super != nil && d.Super.Target == name {
		return d.Super
	}
	for _, e := range d.Embeds {
		if e.Target == name {
			return e
		}
	}
	return nil
}

// Clauses returns every clause of d: Super, then Embeds, then Interfaces.
func (d *TypeDecl) Clauses() []*ReferenceDescriptor {
	var out []*ReferenceDescriptor
	if d.Super != nil {
		out = append(out, d.Super)
	}
	out = append(out, d.Embeds...)
	return append(out, d.Interfaces...)
}

// Reference returns a reference to this type with its own type parameters
// as arguments (the "generic self" reference).
func (d *TypeDecl) Reference() *ReferenceDescriptor {
	ref := &ReferenceDescriptor{Target: d.Name}
	for i := range d.TypeParameters {
		tp := d.TypeParameters[i]
		ref.Args = append(ref.Args, &tp)
	}
	return ref
}

// MethodDecl describes a method signature supplied by the index source.
type MethodDecl struct {
	// Name is the Go method name.
	Name string

	// Exported is true when the method is publicly callable.
	Exported bool

	// DeclaringType is the type that declares the method.
	DeclaringType *TypeDecl

	// ReturnType is the produced value: the first non-error result, or Void.
	ReturnType TypeDescriptor

	// ReturnsError is true when the last result is an error.
	ReturnsError bool

	// Params are the declared parameters, in order.
	Params []ParamDecl

	// Annotations are the //graphql: directives on the method.
	Annotations Annotations

	// Documentation for this method.
	Documentation Documentation

	// Source location in Go code.
	Source Source
}

// QualifiedName returns "Type#Method" for messages.
func (m *MethodDecl) QualifiedName() string {
	if m.DeclaringType == nil {
		return m.Name
	}
	return m.DeclaringType.Name.Name + "#" + m.Name
}

// ParamDecl describes a single method parameter.
type ParamDecl struct {
	// Name is the Go parameter name. May be empty or "_".
	Name string

	// Type is the declared type.
	Type TypeDescriptor

	// IsContext is true for context.Context parameters.
	IsContext bool
}
