package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/opschema/internal/directive"
	"github.com/broady/opschema/ir"
)

const pkg = "example.com/api"

func named(name string, underlying ir.TypeDescriptor) *ir.ReferenceDescriptor {
	ref := ir.Ref(name, pkg)
	ref.Underlying = underlying
	return ref
}

func anns(t *testing.T, lines ...string) ir.Annotations {
	t.Helper()
	var out ir.Annotations
	for _, l := range lines {
		a, err := directive.ParseLine(l)
		require.NoError(t, err)
		out = append(out, a)
	}
	return out
}

func TestDefaults(t *testing.T) {
	p := Defaults(map[string]string{"example.com/api.ID": "ID"})
	assert.NotNil(t, p.Description)
	assert.NotNil(t, p.NonNull)
	assert.NotNil(t, p.Wrapper)
	assert.NotNil(t, p.Format)
	assert.NotNil(t, p.DefaultValue)
	assert.Equal(t, "ID", p.Mapping.(Mapping).Scalars["example.com/api.ID"])
}

func TestDescription(t *testing.T) {
	doc := ir.Documentation{Summary: "GetAll returns every business."}

	d, ok := Description{}.Description(ir.String(), anns(t, "//graphql:description All the businesses"), doc)
	assert.True(t, ok)
	assert.Equal(t, "All the businesses", d)

	d, ok = Description{}.Description(ir.String(), nil, doc)
	assert.True(t, ok)
	assert.Equal(t, "GetAll returns every business.", d)

	_, ok = Description{}.Description(ir.String(), nil, ir.Documentation{})
	assert.False(t, ok)
}

func TestNonNull(t *testing.T) {
	business := ir.Ref("Business", pkg)
	tests := []struct {
		name string
		t    ir.TypeDescriptor
		anns []string
		want bool
	}{
		{"string", ir.String(), nil, true},
		{"int", ir.Int(64), nil, true},
		{"struct value", business, nil, true},
		{"pointer", ir.Ptr(business), nil, false},
		{"slice", ir.Slice(business), nil, false},
		{"fixed array", ir.Array(ir.Int(0), 3), nil, true},
		{"map", ir.Map(ir.String(), ir.Int(0)), nil, false},
		{"any", ir.Any(), nil, false},
		{"bytes", ir.Bytes(), nil, false},
		{"unresolved", ir.Unresolved("T"), nil, false},
		{"named interface", named("Shape", ir.Any()), nil, false},
		{"named string", named("ID", ir.String()), nil, true},
		{"named slice", named("IDs", ir.Slice(ir.Int(0))), nil, false},
		{"named map", named("Index", ir.Map(ir.String(), business)), nil, false},
		{"named fixed array", named("Point", ir.Array(ir.Float(64), 2)), nil, true},
		{"annotated interface", named("Shape", ir.Any()), []string{"//graphql:nonnull"}, true},
		{"annotated pointer", ir.Ptr(business), []string{"//graphql:nonnull"}, true},
		{"nullable wins", ir.String(), []string{"//graphql:nonnull", "//graphql:nullable"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NonNull{}.NonNull(tt.t, anns(t, tt.anns...)))
		})
	}
}

func TestWrapper(t *testing.T) {
	business := ir.Ref("Business", pkg)

	assert.Nil(t, Wrapper{}.Wrapper(business, nil))
	assert.Nil(t, Wrapper{}.Wrapper(ir.Ptr(business), nil))
	assert.Nil(t, Wrapper{}.Wrapper(ir.Bytes(), nil))

	w := Wrapper{}.Wrapper(ir.Slice(business), nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperList, w.Type)
	assert.True(t, w.ElementNotNull)
	assert.Nil(t, w.Wrapper)

	w = Wrapper{}.Wrapper(ir.Ptr(ir.Slice(ir.Ptr(business))), nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperList, w.Type)
	assert.False(t, w.ElementNotNull)

	w = Wrapper{}.Wrapper(ir.Slice(ir.Ptr(business)), anns(t, "//graphql:nonnullelements"))
	assert.True(t, w.ElementNotNull)

	w = Wrapper{}.Wrapper(ir.Array(ir.Slice(ir.String()), 2), nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperArray, w.Type)
	assert.False(t, w.ElementNotNull, "slices can be nil")
	require.NotNil(t, w.Wrapper)
	assert.Equal(t, ir.WrapperList, w.Wrapper.Type)
	assert.True(t, w.Wrapper.ElementNotNull)
	assert.Equal(t, 2, w.Depth())

	w = Wrapper{}.Wrapper(ir.Map(ir.String(), ir.Float(64)), nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperMap, w.Type)
	assert.True(t, w.ElementNotNull)
}

func TestWrapperNamedCollections(t *testing.T) {
	id := named("ID", ir.String())
	assert.Nil(t, Wrapper{}.Wrapper(id, nil))

	ids := named("IDs", ir.Slice(id))
	w := Wrapper{}.Wrapper(ids, nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperList, w.Type)
	assert.True(t, w.ElementNotNull)
	assert.Nil(t, w.Wrapper)

	w = Wrapper{}.Wrapper(ir.Ptr(ids), nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperList, w.Type)

	shapes := named("Shapes", ir.Map(ir.String(), named("Shape", ir.Any())))
	w = Wrapper{}.Wrapper(shapes, nil)
	require.NotNil(t, w)
	assert.Equal(t, ir.WrapperMap, w.Type)
	assert.False(t, w.ElementNotNull)

	w = Wrapper{}.Wrapper(ir.Slice(ids), nil)
	require.NotNil(t, w)
	assert.False(t, w.ElementNotNull, "named slices can be nil")
	require.NotNil(t, w.Wrapper)
	assert.Equal(t, ir.WrapperList, w.Wrapper.Type)
}

func TestFormat(t *testing.T) {
	date := anns(t, "//graphql:format type=date pattern=2006-01-02 locale=en-ZA")
	number := anns(t, "//graphql:format type=number pattern=#0.00")

	tr := Format{}.Format(ir.Time(), date)
	require.NotNil(t, tr)
	assert.Equal(t, ir.Transformation{Type: ir.TransformDate, Format: "2006-01-02", Locale: "en-ZA"}, *tr)

	tr = Format{}.Format(ir.Slice(ir.Ptr(ir.Time())), date)
	require.NotNil(t, tr, "collections of dates are formatted element-wise")

	assert.NotNil(t, Format{}.Format(ir.String(), date))
	assert.Nil(t, Format{}.Format(ir.Int(0), date))

	tr = Format{}.Format(ir.Float(64), number)
	require.NotNil(t, tr)
	assert.Equal(t, ir.TransformNumber, tr.Type)
	assert.Nil(t, Format{}.Format(ir.Time(), number))
	assert.Nil(t, Format{}.Format(ir.Ref("Business", pkg), number))
	assert.NotNil(t, Format{}.Format(named("Price", ir.Float(64)), number))
	assert.NotNil(t, Format{}.Format(named("Prices", ir.Slice(named("Price", ir.Float(64)))), number))

	assert.Nil(t, Format{}.Format(ir.Time(), nil))
}

func TestMapping(t *testing.T) {
	m := Mapping{Scalars: map[string]string{pkg + ".BusinessID": "ID"}}

	got := m.Mapping(ir.Ref("BusinessID", pkg), nil)
	require.NotNil(t, got)
	assert.Equal(t, "ID", got.Scalar)
	assert.Equal(t, pkg+".BusinessID", got.From)

	got = m.Mapping(ir.Slice(ir.Ref("BusinessID", pkg)), nil)
	require.NotNil(t, got)
	assert.Equal(t, "ID", got.Scalar)

	got = m.Mapping(ir.Int(64), anns(t, "//graphql:scalar BigInteger"))
	require.NotNil(t, got)
	assert.Equal(t, "BigInteger", got.Scalar)
	assert.Equal(t, "int64", got.From)

	assert.Nil(t, m.Mapping(ir.Ref("Business", pkg), nil))
	assert.Nil(t, Mapping{}.Mapping(ir.String(), nil))
}

func TestDefaultValue(t *testing.T) {
	v := DefaultValue{}.DefaultValue(ir.Int(0), anns(t, "//graphql:default 10"))
	require.NotNil(t, v)
	assert.Equal(t, "10", *v)

	assert.Nil(t, DefaultValue{}.DefaultValue(ir.Int(0), nil))
}
