// Package argument builds operation arguments from method parameters.
package argument

import (
	"strconv"

	"github.com/broady/opschema/internal/directive"
	"github.com/broady/opschema/ir"
	"github.com/broady/opschema/operation"
)

// ReferenceCreator registers argument types.
type ReferenceCreator interface {
	CreateInputReference(t ir.TypeDescriptor, anns ir.Annotations) *ir.Reference
}

// Creator implements operation.ArgumentCreator.
//
// It declines context.Context parameters and, for source fields, the
// parameter that receives the entity the field is resolved on. Per-parameter
// overrides come from //graphql:arg directives on the method:
//
//	//graphql:arg index=1 name=id nonnull=true
//	//graphql:arg param=limit default=10 description="page size"
type Creator struct {
	refs     ReferenceCreator
	policies operation.Policies
}

var _ operation.ArgumentCreator = (*Creator)(nil)

// New returns a Creator registering types with refs and decorating
// arguments with policies.
func New(refs ReferenceCreator, policies operation.Policies) *Creator {
	return &Creator{refs: refs, policies: policies}
}

// CreateArgument builds the argument for the parameter at index. resolved
// is the parameter type after type-variable substitution.
func (c *Creator) CreateArgument(op *ir.Operation, method *ir.MethodDecl, index int, resolved ir.TypeDescriptor) (*ir.Argument, bool) {
	if index < 0 || index >= len(method.Params) {
		return nil, false
	}
	param := method.Params[index]
	if param.IsContext {
		return nil, false
	}
	if op.OperationType == ir.SourceField && index == SourceIndex(method) {
		return nil, false
	}

	overrides := argParams(method, index, param.Name)
	anns := overrides.annotations()

	arg := &ir.Argument{
		Name:               argName(overrides, param, index),
		MethodArgumentName: param.Name,
		Index:              index,
		Type:               resolved,
		Reference:          c.refs.CreateInputReference(resolved, anns),
	}

	p := c.policies
	if p.Description != nil {
		if d, ok := p.Description.Description(resolved, anns, ir.Documentation{}); ok {
			arg.Description = d
		}
	}
	if p.NonNull != nil {
		arg.NotNull = p.NonNull.NonNull(resolved, anns)
	}
	if p.Wrapper != nil {
		arg.Wrapper = p.Wrapper.Wrapper(resolved, anns)
	}
	if p.Format != nil {
		arg.Transformation = p.Format.Format(resolved, anns)
	}
	if p.Mapping != nil {
		arg.Mapping = p.Mapping.Mapping(resolved, anns)
	}
	if p.DefaultValue != nil {
		arg.DefaultValue = p.DefaultValue.DefaultValue(resolved, anns)
	}
	return arg, true
}

// SourceIndex returns the index of the parameter receiving the source
// entity: the one named by //graphql:source, else the first parameter that
// is not a context. Returns -1 if there is none.
func SourceIndex(method *ir.MethodDecl) int {
	name, named := method.Annotations.Value(ir.AnnotationSource)
	for i, p := range method.Params {
		if p.IsContext {
			continue
		}
		if !named || p.Name == name {
			return i
		}
	}
	return -1
}

// overrides collects the //graphql:arg parameters that select one method
// parameter.
type overrides struct {
	name        string
	def         *string
	description string
	nonNull     bool
}

func argParams(method *ir.MethodDecl, index int, name string) overrides {
	var o overrides
	for _, a := range method.Annotations.All(ir.AnnotationArg) {
		var p directive.ArgParams
		if err := directive.Decode(a, &p); err != nil || !p.Matches(index, name) {
			continue
		}
		if p.Name != "" {
			o.name = p.Name
		}
		if _, ok := a.Param("default"); ok {
			v := p.Default
			o.def = &v
		}
		if p.Description != "" {
			o.description = p.Description
		}
		o.nonNull = o.nonNull || p.NonNull
	}
	return o
}

// annotations expresses the overrides as annotations so the regular
// policies can read them.
func (o overrides) annotations() ir.Annotations {
	var anns ir.Annotations
	if o.nonNull {
		anns = append(anns, ir.Annotation{Name: ir.AnnotationNonNull})
	}
	if o.def != nil {
		anns = append(anns, ir.Annotation{Name: ir.AnnotationDefault, Value: *o.def})
	}
	if o.description != "" {
		anns = append(anns, ir.Annotation{Name: ir.AnnotationDescription, Value: o.description})
	}
	return anns
}

func argName(o overrides, param ir.ParamDecl, index int) string {
	switch {
	case o.name != "":
		return o.name
	case param.Name != "" && param.Name != "_":
		return param.Name
	}
	return "arg" + strconv.Itoa(index)
}
