package directive

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/opschema/ir"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(false)
}

// FormatParams are the parameters of //graphql:format.
type FormatParams struct {
	Type    string `schema:"type" validate:"required,oneof=date number"`
	Pattern string `schema:"pattern"`
	Locale  string `schema:"locale" validate:"omitempty,max=35"`
}

// ArgParams are the parameters of //graphql:arg. The parameter is selected
// by its position (index) or its Go name (param).
type ArgParams struct {
	Index       *int   `schema:"index" validate:"required_without=Param,omitempty,min=0"`
	Param       string `schema:"param" validate:"required_without=Index"`
	Name        string `schema:"name"`
	Default     string `schema:"default"`
	Description string `schema:"description"`
	NonNull     bool   `schema:"nonnull"`
}

// Matches reports whether the parameters select the method parameter at
// index with the given Go name.
func (p *ArgParams) Matches(index int, name string) bool {
	if p.Index != nil {
		return *p.Index == index
	}
	return p.Param != "" && p.Param == name
}

// requiresValue lists directives that are meaningless without a value.
var requiresValue = map[string]bool{
	ir.AnnotationName:        true,
	ir.AnnotationJSON:        true,
	ir.AnnotationScalar:      true,
	ir.AnnotationDefault:     true,
	ir.AnnotationDescription: true,
}

// Check validates a parsed directive: required values are present and
// typed parameters decode.
func Check(a ir.Annotation) error {
	if requiresValue[a.Name] && a.Value == "" {
		return fmt.Errorf("%s%s requires a value", Prefix, a.Name)
	}
	switch a.Name {
	case ir.AnnotationFormat:
		var p FormatParams
		return Decode(a, &p)
	case ir.AnnotationArg:
		var p ArgParams
		return Decode(a, &p)
	}
	if len(a.Params) > 0 {
		return fmt.Errorf("%s%s takes no parameters", Prefix, a.Name)
	}
	return nil
}

// Decode decodes the key=value parameters of a into dst, a pointer to a
// struct with schema tags, and validates the result.
func Decode(a ir.Annotation, dst any) error {
	values := make(url.Values, len(a.Params))
	for k, v := range a.Params {
		values.Set(k, v)
	}
	if err := schemaDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("%s%s: %w", Prefix, a.Name, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s%s: %w", Prefix, a.Name, err)
	}
	return nil
}
