package opschema

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/opschema/argument"
	"github.com/broady/opschema/config"
	"github.com/broady/opschema/ir"
	"github.com/broady/opschema/operation"
	"github.com/broady/opschema/policy"
	"github.com/broady/opschema/provider"
	"github.com/broady/opschema/registry"
)

const (
	shopPkg     = "github.com/broady/opschema/testdata/shop"
	galleryPkg  = "github.com/broady/opschema/testdata/gallery"
	businessPkg = "github.com/broady/opschema/provider/testdata/business"
	crudPkg     = "github.com/broady/opschema/provider/testdata/crud"
	invalidPkg  = "github.com/broady/opschema/provider/testdata/invalid"
)

func generate(t *testing.T, cfg config.Config) (*ir.Schema, error) {
	t.Helper()
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewGenerator(cfg).WithLogger(logger).Generate(context.Background())
}

func findOperation(schema *ir.Schema, kind ir.OperationType, name string) *ir.Operation {
	for _, op := range schema.Operations {
		if op.OperationType == kind && op.Name == name {
			return op
		}
	}
	return nil
}

func findType(schema *ir.Schema, name string) *ir.Reference {
	for _, ref := range schema.Types {
		if ref.Name == name {
			return ref
		}
	}
	return nil
}

func TestGenerate(t *testing.T) {
	schema, err := generate(t, config.Config{
		Packages:       []string{shopPkg},
		ScalarMappings: map[string]string{shopPkg + ".SKU": "ID"},
	})
	require.NoError(t, err)

	assert.Equal(t, shopPkg, schema.Package.Path)
	assert.Empty(t, schema.Warnings)

	var names []string
	for _, op := range schema.Operations {
		names = append(names, op.OperationType.String()+" "+op.Name)
	}
	assert.Equal(t, []string{
		"QUERY get",
		"QUERY list",
		"QUERY stock",
		"MUTATION save",
		"SOURCE_FIELD reviews",
	}, names)

	get := findOperation(schema, ir.Query, "get")
	require.NotNil(t, get)
	assert.Equal(t, shopPkg+".ProductAPI", get.ClassName)
	assert.Equal(t, "Get", get.MethodName)
	assert.True(t, ir.Equal(ir.Ptr(ir.Ref("Product", shopPkg)), get.FieldType), "field type %v", get.FieldType)
	assert.Equal(t, "Product", get.Reference.Name)
	assert.Equal(t, ir.RefType, get.Reference.Type)
	assert.False(t, get.NotNull)
	assert.Equal(t, "Get returns the entity stored under id.", get.Description)
	require.Len(t, get.Arguments, 1)
	assert.Equal(t, "id", get.Arguments[0].Name)
	assert.Equal(t, 1, get.Arguments[0].Index)
	assert.Equal(t, "ID", get.Arguments[0].Reference.Name)

	list := findOperation(schema, ir.Query, "list")
	require.NotNil(t, list)
	require.NotNil(t, list.Wrapper)
	assert.Equal(t, ir.WrapperList, list.Wrapper.Type)
	assert.True(t, list.Wrapper.ElementNotNull)
	require.Len(t, list.Arguments, 1)
	require.NotNil(t, list.Arguments[0].DefaultValue)
	assert.Equal(t, "10", *list.Arguments[0].DefaultValue)

	save := findOperation(schema, ir.Mutation, "save")
	require.NotNil(t, save)
	assert.True(t, ir.Equal(ir.Ref("Product", shopPkg), save.FieldType))
	require.Len(t, save.Arguments, 1)
	assert.Equal(t, "input", save.Arguments[0].Name)
	assert.True(t, save.Arguments[0].NotNull)
	assert.Equal(t, "ProductInput", save.Arguments[0].Reference.Name)
	assert.Equal(t, ir.RefInput, save.Arguments[0].Reference.Type)

	reviews := schema.SourceFields()
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].SourceFieldOn)
	assert.Equal(t, "Product", reviews[0].SourceFieldOn.Name)
	require.Len(t, reviews[0].Arguments, 1)
	assert.Equal(t, "first", reviews[0].Arguments[0].Name)

	for _, name := range []string{"Product", "ProductInput", "Review", "ID", "Boolean"} {
		assert.NotNil(t, findType(schema, name), "type %s should be registered", name)
	}
}

func TestGenerateNamedTypes(t *testing.T) {
	schema, err := generate(t, config.Config{Packages: []string{galleryPkg}})
	require.NoError(t, err)
	assert.Empty(t, schema.Warnings)

	var names []string
	for _, op := range schema.Operations {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"ID", "ids", "shape"}, names)

	shape := findOperation(schema, ir.Query, "shape")
	require.NotNil(t, shape)
	assert.False(t, shape.NotNull, "interfaces can be nil")
	assert.Equal(t, ir.RefInterface, shape.Reference.Type)
	assert.Equal(t, "Shape", shape.Reference.Name)
	require.Len(t, shape.Arguments, 1)
	assert.Equal(t, registry.ScalarString, shape.Arguments[0].Reference.Name)
	assert.Equal(t, ir.RefScalar, shape.Arguments[0].Reference.Type)
	assert.True(t, shape.Arguments[0].NotNull)

	id := findOperation(schema, ir.Query, "ID")
	require.NotNil(t, id)
	assert.True(t, id.NotNull)
	assert.Nil(t, id.Wrapper)
	assert.Equal(t, registry.ScalarString, id.Reference.Name)
	assert.Equal(t, ir.RefScalar, id.Reference.Type)

	ids := findOperation(schema, ir.Query, "ids")
	require.NotNil(t, ids)
	assert.False(t, ids.NotNull, "named slices can be nil")
	require.NotNil(t, ids.Wrapper)
	assert.Equal(t, ir.WrapperList, ids.Wrapper.Type)
	assert.True(t, ids.Wrapper.ElementNotNull)
	assert.Equal(t, registry.ScalarString, ids.Reference.Name)

	var types []string
	for _, ref := range schema.Types {
		types = append(types, string(ref.Type)+":"+ref.Name)
	}
	assert.Equal(t, []string{"INTERFACE:Shape", "SCALAR:String"}, types)
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config.Config{Packages: []string{shopPkg}, Concurrency: 8}
	first, err := generate(t, cfg)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := generate(t, cfg)
		require.NoError(t, err)
		require.Len(t, again.Operations, len(first.Operations))
		for j := range first.Operations {
			assert.Equal(t, first.Operations[j].Name, again.Operations[j].Name)
		}
		require.Len(t, again.Types, len(first.Types))
		for j := range first.Types {
			assert.Equal(t, first.Types[j].Name, again.Types[j].Name)
		}
	}
}

func TestGenerateBuildErrors(t *testing.T) {
	_, err := generate(t, config.Config{Packages: []string{invalidPkg}})
	require.Error(t, err)

	var accessErr *operation.AccessError
	require.True(t, errors.As(err, &accessErr), "expected AccessError in %v", err)
	assert.Equal(t, "BrokenAPI#hidden", accessErr.Method)

	var sigErr *operation.InvalidSignatureError
	require.True(t, errors.As(err, &sigErr), "expected InvalidSignatureError in %v", err)
	assert.Equal(t, ir.Mutation, sigErr.Kind)
}

func TestGenerateDuplicateOperations(t *testing.T) {
	// BusinessAPI and PersonAPI both promote GetAll and SetEntity.
	_, err := generate(t, config.Config{Packages: []string{businessPkg, crudPkg}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.Contains(t, err.Error(), "duplicate operation name in QUERY: all")
	assert.Contains(t, err.Error(), "duplicate operation name in MUTATION: entity")
}

func TestGenerateLoadError(t *testing.T) {
	_, err := generate(t, config.Config{Packages: []string{"github.com/broady/opschema/testdata/missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load packages")
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(config.Config{Packages: []string{shopPkg}, Concurrency: 1}).Generate(ctx)
	require.Error(t, err)
}

func newBuilder(refs *registry.Registry) *operation.Builder {
	policies := policy.Defaults(nil)
	return operation.NewBuilder(refs, argument.New(refs, policies)).
		WithPolicies(policies).
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func sourceSite(returns ir.TypeDescriptor) provider.Site {
	api := &ir.TypeDecl{Name: ir.GoIdentifier{Name: "ProductAPI", Package: shopPkg}}
	method := &ir.MethodDecl{
		Name:          "Touch",
		Exported:      true,
		DeclaringType: api,
		ReturnType:    returns,
		Params:        []ir.ParamDecl{{Name: "p", Type: ir.Ref("Product", shopPkg)}},
	}
	return provider.Site{Leaf: api, Method: method, Kind: ir.SourceField, Hierarchy: []*ir.TypeDecl{api}}
}

func TestBuildSourceField(t *testing.T) {
	refs := registry.New(nil)
	op, err := build(newBuilder(refs), refs, sourceSite(ir.String()))
	require.NoError(t, err)
	require.NotNil(t, op.SourceFieldOn)
	assert.Equal(t, "Product", op.SourceFieldOn.Name)
	assert.Empty(t, op.Arguments, "the source parameter is not an argument")
	assert.Equal(t, 2, refs.Len())
}

func TestBuildRejectedSourceFieldRegistersNothing(t *testing.T) {
	refs := registry.New(nil)
	_, err := build(newBuilder(refs), refs, sourceSite(ir.Void()))

	var sigErr *operation.InvalidSignatureError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, ir.SourceField, sigErr.Kind)
	assert.Zero(t, refs.Len())
}

func TestUnresolved(t *testing.T) {
	op := &ir.Operation{
		ClassName:     shopPkg + ".ProductAPI",
		Name:          "page",
		OperationType: ir.Query,
		FieldType:     ir.Parameterized("Page", shopPkg, ir.Unresolved("T")),
		Arguments: []*ir.Argument{
			{Name: "limit", Type: ir.Int(0)},
			{Name: "after", Type: ir.Ptr(ir.TypeParam("K", nil))},
		},
	}
	warnings := unresolved(op)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, "UNRESOLVED_TYPE", w.Code)
		assert.Equal(t, op.ClassName, w.TypeName)
	}
	assert.Contains(t, warnings[0].Message, "field type of QUERY page")
	assert.Contains(t, warnings[1].Message, "argument after")

	op.FieldType = ir.Ref("Product", shopPkg)
	op.Arguments = op.Arguments[:1]
	assert.Empty(t, unresolved(op))
}
