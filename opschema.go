// Package opschema derives query, mutation and source-field operation
// descriptors from annotated Go methods.
//
// API types are marked with a //graphql:api directive; their methods (and
// the methods they promote from embedded generic types) become operations
// when marked //graphql:query, //graphql:mutation or //graphql:source.
// Type parameters used by promoted methods are resolved against the API
// type before the operation is built:
//
//	type AbstractAPI[E, ID any] struct{ ... }
//
//	//graphql:query
//	func (a *AbstractAPI[E, ID]) GetAll() []E { ... }
//
//	//graphql:api
//	type BusinessAPI struct {
//		AbstractAPI[Business, BusinessID]
//	}
//
// yields the query "all" returning []Business.
package opschema

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/broady/opschema/argument"
	"github.com/broady/opschema/config"
	"github.com/broady/opschema/ir"
	"github.com/broady/opschema/operation"
	"github.com/broady/opschema/policy"
	"github.com/broady/opschema/provider"
	"github.com/broady/opschema/registry"
	"github.com/broady/opschema/resolve"
)

// ErrInvalidSchema is wrapped by the error Generate returns when the
// assembled schema fails validation.
var ErrInvalidSchema = errors.New("invalid schema")

// Generator builds a schema from the packages named in its config.
type Generator struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewGenerator returns a Generator for cfg.
func NewGenerator(cfg config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// WithLogger sets the logger. If not set, slog.Default() is used.
// It returns the generator for chaining.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

func (g *Generator) log() *slog.Logger {
	if g.logger == nil {
		return slog.Default()
	}
	return g.logger
}

// Generate loads the configured packages and builds an operation for every
// marked method reachable from an API type. Operations are built
// concurrently; every failing method is reported in the returned error.
// The schema is validated before it is returned.
func (g *Generator) Generate(ctx context.Context) (*ir.Schema, error) {
	index, err := (&provider.SourceProvider{}).Load(ctx, provider.SourceInputOptions{
		Packages: g.cfg.Packages,
		Dir:      g.cfg.Dir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	sites, warnings := index.Operations()
	g.log().Info("indexed packages",
		slog.String("package", index.Package.Path),
		slog.Int("types", len(index.Types())),
		slog.Int("operations", len(sites)))

	refs := registry.New(g.cfg.ScalarMappings).WithInterfaceCheck(index.IsInterface)
	policies := policy.Defaults(g.cfg.ScalarMappings)
	builder := operation.NewBuilder(refs, argument.New(refs, policies)).
		WithPolicies(policies).
		WithLogger(g.log())

	ops := make([]*ir.Operation, len(sites))
	errs := make([]error, len(sites))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Concurrency, 1))
	for i, site := range sites {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			ops[i], errs[i] = build(builder, refs, site)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var result *multierror.Error
	schema := &ir.Schema{Package: index.Package}
	for i, op := range ops {
		if errs[i] != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", sites[i].Leaf.Name, errs[i]))
			continue
		}
		schema.AddOperation(op)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	sortOperations(schema.Operations)
	for _, op := range schema.Operations {
		warnings = append(warnings, unresolved(op)...)
	}
	for _, ref := range refs.Types() {
		schema.AddType(ref)
	}
	for _, w := range warnings {
		g.log().Warn(w.Message, slog.String("code", w.Code), slog.String("type", w.TypeName))
		schema.AddWarning(w)
	}
	g.log().Info("built operations",
		slog.Int("operations", len(schema.Operations)),
		slog.Int("types", refs.Len()),
		slog.Int("warnings", len(warnings)))

	if verrs := schema.Validate(); len(verrs) > 0 {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidSchema, ir.JoinErrors(verrs))
	}
	return schema, nil
}

// build builds the operation of one site. Source fields are attached to the
// type of their source parameter, resolved through the site hierarchy.
// Sites the builder rejects register nothing.
func build(builder *operation.Builder, refs *registry.Registry, site provider.Site) (*ir.Operation, error) {
	var attached *ir.Reference
	if site.Kind == ir.SourceField && site.Method.Exported && !ir.IsVoid(site.Method.ReturnType) {
		idx := argument.SourceIndex(site.Method)
		if idx < 0 {
			return nil, fmt.Errorf("source field %s has no parameter receiving the source entity", site.Method.QualifiedName())
		}
		t := resolve.Substitute(resolve.Resolve(site.Hierarchy), site.Method.Params[idx].Type)
		attached = refs.CreateReference(t, nil)
	}
	return builder.Build(site.Method, site.Hierarchy, site.Kind, attached)
}

// unresolved returns an UNRESOLVED_TYPE warning for the field type and each
// argument type of op that still mentions a type parameter.
func unresolved(op *ir.Operation) []ir.Warning {
	var out []ir.Warning
	check := func(what string, t ir.TypeDescriptor) {
		if resolve.IsFullyResolved(t) {
			return
		}
		src := op.Source
		out = append(out, ir.Warning{
			Code:     "UNRESOLVED_TYPE",
			Message:  fmt.Sprintf("%s of %s %s is not fully resolved: %s", what, op.OperationType, op.Name, t),
			Source:   &src,
			TypeName: op.ClassName,
		})
	}
	check("field type", op.FieldType)
	for _, a := range op.Arguments {
		check("argument "+a.Name, a.Type)
	}
	return out
}

// sortOperations orders operations by kind, attachment, name and owner.
func sortOperations(ops []*ir.Operation) {
	slices.SortStableFunc(ops, func(a, b *ir.Operation) int {
		if c := cmp.Compare(a.OperationType, b.OperationType); c != 0 {
			return c
		}
		if c := cmp.Compare(attachedName(a), attachedName(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ClassName, b.ClassName)
	})
}

func attachedName(op *ir.Operation) string {
	if op.SourceFieldOn == nil {
		return ""
	}
	return op.SourceFieldOn.Name
}
