// Package registry keeps the set of schema types referenced by operations.
//
// CreateReference is an idempotent register-or-get: equal type descriptors
// always yield the same *ir.Reference, including under concurrent use.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/broady/opschema/ir"
)

const shardCount = 16

// Built-in scalar names.
const (
	ScalarBoolean    = "Boolean"
	ScalarInt        = "Int"
	ScalarBigInteger = "BigInteger"
	ScalarFloat      = "Float"
	ScalarString     = "String"
	ScalarDateTime   = "DateTime"
	ScalarDuration   = "Duration"
	ScalarJSON       = "JSON"
	ScalarVoid       = "Void"
)

// inputSuffix is appended to the schema name of input types.
const inputSuffix = "Input"

// Registry is safe for concurrent use.
type Registry struct {
	shards      [shardCount]shard
	scalars     map[string]string
	isInterface func(ir.GoIdentifier) bool
}

type shard struct {
	mu   sync.Mutex
	refs map[string]*ir.Reference
}

// New returns an empty registry. scalars maps Go types ("pkg.Name") to the
// schema scalar they are exposed as.
func New(scalars map[string]string) *Registry {
	r := &Registry{scalars: scalars}
	for i := range r.shards {
		r.shards[i].refs = make(map[string]*ir.Reference)
	}
	return r
}

// WithInterfaceCheck sets the function used to tell interface types apart;
// their output references are classified as ir.RefInterface.
// It returns the registry for chaining.
func (r *Registry) WithInterfaceCheck(fn func(ir.GoIdentifier) bool) *Registry {
	r.isInterface = fn
	return r
}

// CreateReference registers the output type named by t and returns its
// canonical reference. Collections and pointers register their element
// type, named collection types included. Named basic types share the
// scalar of their underlying type unless scalars maps them. A
// //graphql:scalar annotation exposes the type as that scalar.
// Unresolved and nil types register as the JSON scalar.
func (r *Registry) CreateReference(t ir.TypeDescriptor, anns ir.Annotations) *ir.Reference {
	return r.create(t, anns, false)
}

// CreateInputReference is CreateReference for argument types. Named
// types register as input types.
func (r *Registry) CreateInputReference(t ir.TypeDescriptor, anns ir.Annotations) *ir.Reference {
	return r.create(t, anns, true)
}

func (r *Registry) create(t ir.TypeDescriptor, anns ir.Annotations, input bool) *ir.Reference {
	inner := ir.Innermost(t)

	if scalar, ok := anns.Value(ir.AnnotationScalar); ok {
		return r.getOrAdd(&ir.Reference{Name: scalar, Type: ir.RefScalar})
	}

	switch d := inner.(type) {
	case *ir.PrimitiveDescriptor:
		return r.getOrAdd(&ir.Reference{Name: primitiveScalar(d), Type: ir.RefScalar})

	case *ir.ReferenceDescriptor:
		if scalar, ok := r.scalars[d.Target.String()]; ok && !d.IsParameterized() {
			return r.getOrAdd(&ir.Reference{Name: scalar, Type: ir.RefScalar})
		}
		if b := d.Basic(); b != nil {
			return r.getOrAdd(&ir.Reference{Name: primitiveScalar(b), Type: ir.RefScalar})
		}
		ref := &ir.Reference{
			Name:     SchemaName(d),
			GoType:   d.Target,
			Type:     ir.RefType,
			TypeArgs: d.Args,
		}
		switch {
		case input:
			ref.Name += inputSuffix
			ref.Type = ir.RefInput
		case d.IsInterface(), r.isInterface != nil && r.isInterface(d.Target):
			ref.Type = ir.RefInterface
		}
		return r.getOrAdd(ref)
	}

	return r.getOrAdd(&ir.Reference{Name: ScalarJSON, Type: ir.RefScalar})
}

// getOrAdd returns the registered reference with the same key as ref,
// registering ref if there is none.
func (r *Registry) getOrAdd(ref *ir.Reference) *ir.Reference {
	key := string(ref.Type) + ":" + ref.Name
	s := &r.shards[xxhash.Sum64String(key)%shardCount]

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.refs[key]; ok {
		return existing
	}
	s.refs[key] = ref
	return ref
}

// Types returns every registered reference ordered by kind, then name.
func (r *Registry) Types() []*ir.Reference {
	var out []*ir.Reference
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for _, ref := range s.refs {
			out = append(out, ref)
		}
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of registered references.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		n += len(s.refs)
		s.mu.Unlock()
	}
	return n
}

// SchemaName returns the schema name of a named type. Generic
// instantiations join the names of their arguments: Page[Business] is
// "Page_Business", Pair[string, []Business] is "Pair_String_Business".
func SchemaName(d *ir.ReferenceDescriptor) string {
	if !d.IsParameterized() {
		return d.Target.Name
	}
	parts := []string{d.Target.Name}
	for _, a := range d.Args {
		parts = append(parts, argName(a))
	}
	return strings.Join(parts, "_")
}

func argName(t ir.TypeDescriptor) string {
	switch d := ir.Innermost(t).(type) {
	case *ir.ReferenceDescriptor:
		if b := d.Basic(); b != nil {
			return primitiveScalar(b)
		}
		return SchemaName(d)
	case *ir.PrimitiveDescriptor:
		return primitiveScalar(d)
	case *ir.UnresolvedDescriptor:
		return d.ParamName
	case *ir.TypeParameterDescriptor:
		return d.ParamName
	}
	return ScalarJSON
}

func primitiveScalar(d *ir.PrimitiveDescriptor) string {
	switch d.PrimitiveKind {
	case ir.PrimitiveBool:
		return ScalarBoolean
	case ir.PrimitiveInt, ir.PrimitiveUint:
		if d.BitSize == 64 {
			return ScalarBigInteger
		}
		return ScalarInt
	case ir.PrimitiveFloat:
		return ScalarFloat
	case ir.PrimitiveString, ir.PrimitiveBytes:
		return ScalarString
	case ir.PrimitiveTime:
		return ScalarDateTime
	case ir.PrimitiveDuration:
		return ScalarDuration
	case ir.PrimitiveEmpty:
		return ScalarVoid
	}
	return ScalarJSON
}
