package operation

import "github.com/broady/opschema/ir"

// ReferenceCreator registers the field type of an operation in the type
// registry. Equal types must yield the same *ir.Reference, also when called
// concurrently.
type ReferenceCreator interface {
	CreateReference(t ir.TypeDescriptor, anns ir.Annotations) *ir.Reference
}

// ArgumentCreator turns the parameter at index into an argument of op.
// resolved is the parameter type after type-variable substitution.
// Returning false declines the parameter; it then contributes nothing.
type ArgumentCreator interface {
	CreateArgument(op *ir.Operation, method *ir.MethodDecl, index int, resolved ir.TypeDescriptor) (*ir.Argument, bool)
}

// DescriptionPolicy picks the description of a field.
type DescriptionPolicy interface {
	Description(t ir.TypeDescriptor, anns ir.Annotations, doc ir.Documentation) (string, bool)
}

// NonNullPolicy decides whether a field is non-null.
type NonNullPolicy interface {
	NonNull(t ir.TypeDescriptor, anns ir.Annotations) bool
}

// WrapperPolicy detects collection envelopes. nil means the bare type.
type WrapperPolicy interface {
	Wrapper(t ir.TypeDescriptor, anns ir.Annotations) *ir.Wrapper
}

// FormatPolicy extracts a string-format transformation, or nil.
type FormatPolicy interface {
	Format(t ir.TypeDescriptor, anns ir.Annotations) *ir.Transformation
}

// MappingPolicy extracts a custom scalar mapping, or nil.
type MappingPolicy interface {
	Mapping(t ir.TypeDescriptor, anns ir.Annotations) *ir.Mapping
}

// DefaultValuePolicy extracts a default value, or nil.
type DefaultValuePolicy interface {
	DefaultValue(t ir.TypeDescriptor, anns ir.Annotations) *string
}

// Policies bundles the decoration policies, consulted in field order.
// A nil policy is skipped.
type Policies struct {
	Description  DescriptionPolicy
	NonNull      NonNullPolicy
	Wrapper      WrapperPolicy
	Format       FormatPolicy
	Mapping      MappingPolicy
	DefaultValue DefaultValuePolicy
}
