package ir

// Annotation names recognized in //graphql: directives.
const (
	AnnotationAPI             = "api"             // marks a type whose methods are scanned for operations
	AnnotationQuery           = "query"           // query marker; optional value is the operation name
	AnnotationMutation        = "mutation"        // mutation marker; optional value is the operation name
	AnnotationSource          = "source"          // source-field marker; value names the parameter carrying the entity
	AnnotationName            = "name"            // general rename
	AnnotationJSON            = "json"            // external property name
	AnnotationDescription     = "description"     // free-text description
	AnnotationNonNull         = "nonnull"         // force non-null
	AnnotationNullable        = "nullable"        // force nullable
	AnnotationNonNullElements = "nonnullelements" // collection elements are non-null
	AnnotationFormat          = "format"          // string-format transformation (type=, pattern=, locale=)
	AnnotationScalar          = "scalar"          // custom scalar mapping
	AnnotationDefault         = "default"         // default value
	AnnotationArg             = "arg"             // per-parameter overrides (index=, name=, default=, description=)
	AnnotationIgnore          = "ignore"          // skip this method
)

// Annotation is a single parsed directive such as
//
//	//graphql:format type=date pattern=2006-01-02
type Annotation struct {
	// Name is the directive name following the "graphql:" prefix.
	Name string

	// Value is the free text after the name, excluding key=value params.
	Value string

	// Params holds key=value pairs.
	Params map[string]string

	// Pos is where the directive was written.
	Pos Source
}

// Param returns the named parameter and whether it was present.
func (a Annotation) Param(key string) (string, bool) {
	v, ok := a.Params[key]
	return v, ok
}

// Annotations is the ordered set of annotations attached to a declaration.
type Annotations []Annotation

// Has reports whether an annotation with the given name is present.
func (as Annotations) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

// Get returns the first annotation with the given name.
func (as Annotations) Get(name string) (Annotation, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// All returns every annotation with the given name, in declaration order.
func (as Annotations) All(name string) []Annotation {
	var out []Annotation
	for _, a := range as {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// Value returns the value of the named annotation when it is present and
// non-empty.
func (as Annotations) Value(name string) (string, bool) {
	a, ok := as.Get(name)
	if !ok || a.Value == "" {
		return "", false
	}
	return a.Value, true
}

// OneOfValue returns the first non-empty value among names, checked in the
// given priority order.
func (as Annotations) OneOfValue(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := as.Value(name); ok {
			return v, true
		}
	}
	return "", false
}
