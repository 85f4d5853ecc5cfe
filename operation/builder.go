// Package operation builds operation descriptors from annotated methods.
//
// A Builder resolves the type parameters a method uses against the concrete
// type it is reached through, then derives the operation name, field type
// reference, decorations and arguments. Registration of types and
// construction of arguments are delegated to collaborators.
package operation

import (
	"log/slog"

	"github.com/broady/opschema/ir"
	"github.com/broady/opschema/naming"
	"github.com/broady/opschema/resolve"
)

// Builder builds operations. It holds no per-operation state and is safe
// for concurrent use when its collaborators are.
type Builder struct {
	references ReferenceCreator
	arguments  ArgumentCreator
	policies   Policies
	logger     *slog.Logger
}

// NewBuilder returns a Builder using refs to register field types and args
// to build arguments.
func NewBuilder(refs ReferenceCreator, args ArgumentCreator) *Builder {
	return &Builder{references: refs, arguments: args}
}

// WithPolicies sets the decoration policies.
// It returns the builder for chaining.
func (b *Builder) WithPolicies(p Policies) *Builder {
	b.policies = p
	return b
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build creates the operation for method reached through hierarchy.
//
// hierarchy is ordered from the leaf type (index 0) to the generic ancestor
// that declares the type parameters the method uses. An empty hierarchy
// means the method's declaring type alone. attached is the type a source
// field is resolved on; nil for root queries and mutations.
//
// Build returns *AccessError for unexported methods and
// *InvalidSignatureError when the method returns no value.
func (b *Builder) Build(method *ir.MethodDecl, hierarchy []*ir.TypeDecl, kind ir.OperationType, attached *ir.Reference) (*ir.Operation, error) {
	if !method.Exported {
		return nil, &AccessError{Method: method.QualifiedName()}
	}

	if len(hierarchy) == 0 {
		hierarchy = []*ir.TypeDecl{method.DeclaringType}
	}

	typeMap := resolve.Resolve(hierarchy)
	fieldType := resolve.Substitute(typeMap, method.ReturnType)
	params := make([]ir.TypeDescriptor, len(method.Params))
	for i, p := range method.Params {
		params[i] = resolve.Substitute(typeMap, p.Type)
	}

	if ir.IsVoid(method.ReturnType) {
		return nil, &InvalidSignatureError{Method: method.QualifiedName(), Kind: kind}
	}

	anns := method.Annotations
	op := &ir.Operation{
		ClassName:     className(hierarchy[0], method),
		MethodName:    method.Name,
		PropertyName:  naming.PropertyName(naming.Out, method.Name),
		Name:          operationName(method, kind),
		FieldType:     fieldType,
		OperationType: kind,
		Source:        method.Source,
	}

	if p := b.policies.Description; p != nil {
		if d, ok := p.Description(fieldType, anns, method.Documentation); ok {
			op.Description = d
		}
	}

	op.Reference = b.references.CreateReference(fieldType, anns)

	b.decorate(op, fieldType, anns)

	if attached != nil {
		op.SourceFieldOn = attached
	}

	for i := range params {
		if arg, ok := b.arguments.CreateArgument(op, method, i, params[i]); ok {
			op.AddArgument(arg)
		}
	}

	b.log().Debug("built operation",
		slog.String("operation", op.Name),
		slog.String("kind", kind.String()),
		slog.String("method", method.QualifiedName()),
		slog.String("field_type", fieldType.String()),
		slog.String("type_map", typeMap.String()),
		slog.Any("unbound", typeMap.Unbound()),
		slog.Int("wrapper_depth", op.Wrapper.Depth()),
		slog.Int("arguments", len(op.Arguments)))

	return op, nil
}

// decorate applies the policies in order: non-null, wrapper, format,
// mapping, default value. A policy only fills its own field.
func (b *Builder) decorate(op *ir.Operation, t ir.TypeDescriptor, anns ir.Annotations) {
	p := b.policies
	if p.NonNull != nil && p.NonNull.NonNull(t, anns) {
		op.NotNull = true
	}
	if p.Wrapper != nil && op.Wrapper == nil {
		op.Wrapper = p.Wrapper.Wrapper(t, anns)
	}
	if p.Format != nil && op.Transformation == nil {
		op.Transformation = p.Format.Format(t, anns)
	}
	if p.Mapping != nil && op.Mapping == nil {
		op.Mapping = p.Mapping.Mapping(t, anns)
	}
	if p.DefaultValue != nil && op.DefaultValue == nil {
		op.DefaultValue = p.DefaultValue.DefaultValue(t, anns)
	}
}

func (b *Builder) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

func className(leaf *ir.TypeDecl, method *ir.MethodDecl) string {
	if leaf != nil {
		return leaf.Name.String()
	}
	if method.DeclaringType != nil {
		return method.DeclaringType.Name.String()
	}
	return ""
}
