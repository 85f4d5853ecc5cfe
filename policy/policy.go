// Package policy provides the stock decoration policies used by the
// operation builder.
package policy

import (
	"github.com/broady/opschema/internal/directive"
	"github.com/broady/opschema/ir"
	"github.com/broady/opschema/operation"
)

// Defaults returns the stock policies. scalars maps a Go type ("pkg.Name")
// to the schema scalar it is exposed as.
func Defaults(scalars map[string]string) operation.Policies {
	return operation.Policies{
		Description:  Description{},
		NonNull:      NonNull{},
		Wrapper:      Wrapper{},
		Format:       Format{},
		Mapping:      Mapping{Scalars: scalars},
		DefaultValue: DefaultValue{},
	}
}

// Description uses //graphql:description, falling back to the summary of
// the doc comment.
type Description struct{}

func (Description) Description(_ ir.TypeDescriptor, anns ir.Annotations, doc ir.Documentation) (string, bool) {
	if v, ok := anns.Value(ir.AnnotationDescription); ok {
		return v, true
	}
	if doc.Summary != "" {
		return doc.Summary, true
	}
	return "", false
}

// NonNull marks a field non-null when annotated //graphql:nonnull, or when
// its Go type cannot hold nil. //graphql:nullable always wins.
type NonNull struct{}

func (NonNull) NonNull(t ir.TypeDescriptor, anns ir.Annotations) bool {
	if anns.Has(ir.AnnotationNullable) {
		return false
	}
	if anns.Has(ir.AnnotationNonNull) {
		return true
	}
	return valueType(t)
}

// valueType reports whether values of t are never nil. Named types are
// judged by their underlying type; a reference without one is a struct.
func valueType(t ir.TypeDescriptor) bool {
	switch d := t.(type) {
	case *ir.PrimitiveDescriptor:
		return d.PrimitiveKind != ir.PrimitiveAny && d.PrimitiveKind != ir.PrimitiveBytes
	case *ir.ReferenceDescriptor:
		if d.Underlying == nil {
			return true
		}
		return valueType(d.Underlying)
	case *ir.ArrayDescriptor:
		return d.Length > 0
	}
	return false
}

// Wrapper reports slices, arrays and maps as LIST, ARRAY and MAP. Pointers
// to collections and named collection types are looked through. Elements are non-null when annotated
// //graphql:nonnullelements or when the element type cannot hold nil.
type Wrapper struct{}

func (Wrapper) Wrapper(t ir.TypeDescriptor, anns ir.Annotations) *ir.Wrapper {
	return wrap(t, anns.Has(ir.AnnotationNonNullElements))
}

func wrap(t ir.TypeDescriptor, forceElements bool) *ir.Wrapper {
	t = ir.Composite(t)
	if p, ok := t.(*ir.PtrDescriptor); ok {
		t = ir.Composite(p.Element)
	}
	var (
		w       *ir.Wrapper
		element ir.TypeDescriptor
	)
	switch d := t.(type) {
	case *ir.ArrayDescriptor:
		element = d.Element
		w = &ir.Wrapper{Type: ir.WrapperList}
		if d.Length > 0 {
			w.Type = ir.WrapperArray
		}
	case *ir.MapDescriptor:
		element = d.Value
		w = &ir.Wrapper{Type: ir.WrapperMap}
	default:
		return nil
	}
	w.ElementNotNull = forceElements || valueType(element)
	w.Wrapper = wrap(element, forceElements)
	return w
}

// Format decodes //graphql:format. The transformation only applies to
// compatible types: date to time values or strings, number to numeric
// values.
type Format struct{}

func (Format) Format(t ir.TypeDescriptor, anns ir.Annotations) *ir.Transformation {
	a, ok := anns.Get(ir.AnnotationFormat)
	if !ok {
		return nil
	}
	var p directive.FormatParams
	if err := directive.Decode(a, &p); err != nil {
		return nil
	}

	prim := primitive(ir.Innermost(t))
	if prim == nil {
		return nil
	}
	typ := ir.TransformationType(p.Type)
	switch typ {
	case ir.TransformDate:
		if prim.PrimitiveKind != ir.PrimitiveTime && prim.PrimitiveKind != ir.PrimitiveString {
			return nil
		}
	case ir.TransformNumber:
		if !prim.IsNumeric() {
			return nil
		}
	}
	return &ir.Transformation{Type: typ, Format: p.Pattern, Locale: p.Locale}
}

// primitive returns t as a primitive, seeing through named basic types.
func primitive(t ir.TypeDescriptor) *ir.PrimitiveDescriptor {
	switch d := t.(type) {
	case *ir.PrimitiveDescriptor:
		return d
	case *ir.ReferenceDescriptor:
		return d.Basic()
	}
	return nil
}

// Mapping exposes a type as a custom scalar, from //graphql:scalar or from
// the configured Scalars keyed by Go type.
type Mapping struct {
	Scalars map[string]string
}

func (m Mapping) Mapping(t ir.TypeDescriptor, anns ir.Annotations) *ir.Mapping {
	from := ir.TypeKey(ir.Innermost(t))
	if v, ok := anns.Value(ir.AnnotationScalar); ok {
		return &ir.Mapping{Scalar: v, From: from}
	}
	if ref, ok := ir.Innermost(t).(*ir.ReferenceDescriptor); ok {
		if scalar, ok := m.Scalars[ref.Target.String()]; ok {
			return &ir.Mapping{Scalar: scalar, From: from}
		}
	}
	return nil
}

// DefaultValue reads //graphql:default.
type DefaultValue struct{}

func (DefaultValue) DefaultValue(_ ir.TypeDescriptor, anns ir.Annotations) *string {
	if v, ok := anns.Value(ir.AnnotationDefault); ok {
		return &v
	}
	return nil
}
