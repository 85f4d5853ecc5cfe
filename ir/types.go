// Package ir defines the intermediate representation shared by the resolver,
// the operation builder and the providers: type references, declarations of
// generic types and methods, annotations and the operation descriptors that
// are produced from them.
package ir

// GoIdentifier represents a named Go entity with package context.
type GoIdentifier struct {
	// Name is the declared identifier (e.g., "User", "AbstractAPI").
	Name string

	// Package is the fully qualified package path.
	// Empty for builtin types.
	Package string
}

// IsZero returns true if the identifier is empty.
func (id GoIdentifier) IsZero() bool {
	return id.Name == "" && id.Package == ""
}

// String returns "pkg.Name", or just Name for builtin types.
func (id GoIdentifier) String() string {
	if id.Package == "" {
		return id.Name
	}
	return id.Package + "." + id.Name
}

// Documentation holds documentation comments extracted from Go source.
type Documentation struct {
	// Summary is the first sentence or paragraph, suitable for brief descriptions.
	Summary string

	// Body is the complete documentation text, including the summary.
	Body string

	// Deprecated is non-nil if the symbol is marked deprecated.
	// The string value is the deprecation message (may be empty).
	Deprecated *string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == "" && d.Deprecated == nil
}

// Source represents source code location information.
type Source struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// Warning represents a non-fatal issue encountered while building a schema.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Source is the location that triggered the warning, if applicable.
	Source *Source `json:"source,omitempty"`

	// TypeName is the type that triggered the warning, if applicable.
	TypeName string `json:"typeName,omitempty"`
}

// PackageInfo describes a Go package.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string `json:"path"`

	// Name is the package name (e.g., "bar").
	Name string `json:"name"`

	// Dir is the filesystem directory, if known. It is not encoded.
	Dir string `json:"-"`
}

// IsZero returns true if the package info is empty.
func (p PackageInfo) IsZero() bool {
	return p.Path == "" && p.Name == "" && p.Dir == ""
}
