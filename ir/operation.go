package ir

// OperationType is the kind of operation being built.
type OperationType int

const (
	Query       OperationType = iota // root query, produces a value
	Mutation                         // root mutation, consumes input and produces a value
	SourceField                      // additional field resolved on an existing type
)

// String returns the GraphQL-style name of the operation type.
func (t OperationType) String() string {
	switch t {
	case Query:
		return "QUERY"
	case Mutation:
		return "MUTATION"
	case SourceField:
		return "SOURCE_FIELD"
	default:
		return "UNKNOWN"
	}
}

// ReferenceType classifies what a Reference points at.
type ReferenceType string

const (
	RefScalar    ReferenceType = "SCALAR"
	RefType      ReferenceType = "TYPE"
	RefInput     ReferenceType = "INPUT"
	RefInterface ReferenceType = "INTERFACE"
)

// Reference is a registered handle on a schema type.
// The registry returns the same *Reference for equal type descriptors.
type Reference struct {
	// Name is the schema name (e.g., "Business", "Page_Business", "String").
	Name string

	// GoType is the Go type the reference was created from.
	// Zero for built-in scalars.
	GoType GoIdentifier

	// Type classifies the reference.
	Type ReferenceType

	// TypeArgs holds the type arguments for generic instantiations.
	TypeArgs []TypeDescriptor
}

// WrapperType identifies a collection envelope.
type WrapperType string

const (
	WrapperList  WrapperType = "LIST"  // Go slice
	WrapperArray WrapperType = "ARRAY" // Go fixed-length array
	WrapperMap   WrapperType = "MAP"   // Go map
)

// Wrapper describes that a field value is held in a collection rather than
// being the bare type.
type Wrapper struct {
	// Type is the envelope kind.
	Type WrapperType `json:"type"`

	// ElementNotNull marks the elements as non-null.
	ElementNotNull bool `json:"elementNotNull,omitempty"`

	// Wrapper is set for nested collections ([][]T).
	Wrapper *Wrapper `json:"wrapper,omitempty"`
}

// Depth returns how many collection levels the wrapper describes.
func (w *Wrapper) Depth() int {
	n := 0
	for ; w != nil; w = w.Wrapper {
		n++
	}
	return n
}

// TransformationType selects the formatting family.
type TransformationType string

const (
	TransformDate   TransformationType = "date"
	TransformNumber TransformationType = "number"
)

// Transformation describes a string-format transformation of the value.
type Transformation struct {
	Type   TransformationType `json:"type"`
	Format string             `json:"format,omitempty"`
	Locale string             `json:"locale,omitempty"`
}

// Mapping describes a custom scalar mapping for the value.
type Mapping struct {
	// Scalar is the schema scalar the value maps to (e.g., "ID", "String").
	Scalar string `json:"scalar"`

	// From is the Go type the mapping was declared for.
	From string `json:"from,omitempty"`
}

// Operation describes a callable operation: a query, a mutation, or a
// source field resolved on an existing type.
type Operation struct {
	// ClassName is the owning (leaf) type, "pkg.Name".
	ClassName string

	// MethodName is the Go method name.
	MethodName string

	// PropertyName is the method name as a property (accessor prefix stripped).
	PropertyName string

	// Name is the public operation name.
	Name string

	// Description is optional.
	Description string

	// Reference is the registered field type reference.
	Reference *Reference

	// FieldType is the resolved field type. Never Void.
	FieldType TypeDescriptor

	// OperationType is the kind of operation.
	OperationType OperationType

	NotNull        bool
	Wrapper        *Wrapper
	Transformation *Transformation
	Mapping        *Mapping
	DefaultValue   *string

	// Arguments are in method parameter order; declined parameters are absent.
	Arguments []*Argument

	// SourceFieldOn is set when the operation is a field on an existing type.
	SourceFieldOn *Reference

	// Source is the method's location.
	Source Source
}

// AddArgument appends an argument.
func (o *Operation) AddArgument(a *Argument) {
	o.Arguments = append(o.Arguments, a)
}

// HasArguments reports whether the operation takes arguments.
func (o *Operation) HasArguments() bool {
	return len(o.Arguments) > 0
}

// Argument describes one operation argument built from a method parameter.
type Argument struct {
	// Name is the public argument name.
	Name string

	// MethodArgumentName is the Go parameter name.
	MethodArgumentName string

	// Index is the parameter position in the method signature.
	Index int

	// Type is the resolved parameter type.
	Type TypeDescriptor

	Reference      *Reference
	Description    string
	NotNull        bool
	Wrapper        *Wrapper
	Transformation *Transformation
	Mapping        *Mapping
	DefaultValue   *string
}
