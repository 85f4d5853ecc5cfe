package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive     DescriptorKind = iota // Built-in primitive type
	KindArray                               // Ordered collection ([]T or [N]T)
	KindMap                                 // Key-value mapping (map[K]V)
	KindReference                           // Named type, optionally parameterized (Page[T])
	KindPtr                                 // Pointer wrapper (*T)
	KindTypeParameter                       // Type variable (T, E, ID, ...)
	KindVoid                                // Absence of a value (no results)
	KindUnresolved                          // Type variable that no hierarchy level bound
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindReference:
		return "Reference"
	case KindPtr:
		return "Ptr"
	case KindTypeParameter:
		return "TypeParameter"
	case KindVoid:
		return "Void"
	case KindUnresolved:
		return "Unresolved"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is a semantic type reference (a TypeRef).
// Descriptors are immutable values; compare them with Equal, never with ==.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// String returns the Go-like spelling of the type (e.g., "[]api.User").
	String() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}
