package provider

import (
	"fmt"
	"go/types"

	"github.com/broady/opschema/ir"
)

// converter turns go/types types into type descriptors. Type parameters
// are named after the declaration of scope, so a receiver that renames
// them (func (a *API[X]) ...) still refers to the declared names.
type converter struct {
	scope *ir.TypeDecl

	// visiting holds the named types whose underlying type is being
	// converted, so recursive types like type Tree []Tree terminate.
	visiting map[*types.Named]bool
}

func (c *converter) convert(t types.Type) (ir.TypeDescriptor, error) {
	if desc := specialType(t); desc != nil {
		return desc, nil
	}

	switch typ := t.(type) {
	case *types.Basic:
		return convertBasicType(typ), nil

	case *types.Named:
		obj := typ.Obj()
		if obj.Pkg() == nil {
			// Predeclared named types: error, comparable.
			return ir.Any(), nil
		}
		ref := ir.Ref(obj.Name(), obj.Pkg().Path())
		for i := 0; i < typ.TypeArgs().Len(); i++ {
			a, err := c.convert(typ.TypeArgs().At(i))
			if err != nil {
				return nil, err
			}
			ref.Args = append(ref.Args, a)
		}
		ref.Underlying = c.underlying(typ)
		return ref, nil

	case *types.Pointer:
		elem, err := c.convert(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Ptr(elem), nil

	case *types.Slice:
		elem, err := c.convert(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Slice(elem), nil

	case *types.Array:
		elem, err := c.convert(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Array(elem, int(typ.Len())), nil

	case *types.Map:
		key, err := c.convert(typ.Key())
		if err != nil {
			return nil, err
		}
		value, err := c.convert(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Map(key, value), nil

	case *types.Interface:
		return ir.Any(), nil

	case *types.Struct:
		if typ.NumFields() == 0 {
			return ir.Empty(), nil
		}
		return nil, fmt.Errorf("anonymous struct types are not supported")

	case *types.TypeParam:
		return c.typeParam(typ), nil

	case *types.Alias:
		return c.convert(typ.Rhs())

	case *types.Chan, *types.Signature:
		return nil, fmt.Errorf("unsupported type: %s", t.String())

	default:
		return nil, fmt.Errorf("unknown type: %T", t)
	}
}

// underlying converts the underlying type of a named type that is not a
// struct. Interfaces become Any. Underlying types that cannot be
// converted are left out; the reference itself stays usable.
func (c *converter) underlying(named *types.Named) ir.TypeDescriptor {
	switch named.Underlying().(type) {
	case *types.Interface:
		return ir.Any()
	case *types.Basic, *types.Slice, *types.Array, *types.Map, *types.Pointer:
	default:
		return nil
	}

	origin := named.Origin()
	if c.visiting[origin] {
		return nil
	}
	if c.visiting == nil {
		c.visiting = make(map[*types.Named]bool)
	}
	c.visiting[origin] = true
	defer delete(c.visiting, origin)

	desc, err := c.convert(named.Underlying())
	if err != nil {
		return nil
	}
	return desc
}

// typeParam maps a type parameter to the parameter declared at the same
// position by the scope type.
func (c *converter) typeParam(tp *types.TypeParam) *ir.TypeParameterDescriptor {
	if c.scope != nil && tp.Index() < len(c.scope.TypeParameters) {
		p := c.scope.TypeParameters[tp.Index()]
		return &p
	}
	scope := ""
	if c.scope != nil {
		scope = c.scope.Name.String()
	}
	return ir.ScopedTypeParam(tp.Obj().Name(), scope)
}

// constraint converts a type parameter constraint. any and comparable are
// not preserved, nor are union constraints.
func (c *converter) constraint(constraint types.Type) ir.TypeDescriptor {
	if constraint == nil {
		return nil
	}

	constraintStr := constraint.String()
	if constraintStr == "any" || constraintStr == "comparable" {
		return nil
	}

	if alias, ok := constraint.(*types.Alias); ok {
		return c.constraint(alias.Rhs())
	}

	if _, ok := constraint.Underlying().(*types.Interface); ok {
		if named, ok := constraint.(*types.Named); ok && named.Obj().Pkg() != nil {
			return ir.Ref(named.Obj().Name(), named.Obj().Pkg().Path())
		}
		return nil
	}

	desc, err := c.convert(constraint)
	if err != nil {
		return nil
	}
	return desc
}

// specialType maps well-known types to primitives.
func specialType(t types.Type) ir.TypeDescriptor {
	switch typ := t.(type) {
	case *types.Slice:
		if basic, ok := typ.Elem().(*types.Basic); ok {
			if basic.Kind() == types.Byte || basic.Kind() == types.Uint8 {
				return ir.Bytes()
			}
		}

	case *types.Named:
		obj := typ.Obj()
		if obj == nil || obj.Pkg() == nil {
			return nil
		}

		pkgPath := obj.Pkg().Path()
		name := obj.Name()

		if pkgPath == "time" && name == "Time" {
			return ir.Time()
		}

		if pkgPath == "time" && name == "Duration" {
			return ir.Duration()
		}
	}

	return nil
}

// convertBasicType converts a Go basic type to an IR primitive.
func convertBasicType(basic *types.Basic) ir.TypeDescriptor {
	switch basic.Kind() {
	case types.Bool:
		return ir.Bool()
	case types.String:
		return ir.String()
	case types.Int:
		return ir.Int(0)
	case types.Int8:
		return ir.Int(8)
	case types.Int16:
		return ir.Int(16)
	case types.Int32:
		return ir.Int(32)
	case types.Int64:
		return ir.Int(64)
	case types.Uint, types.Uintptr:
		return ir.Uint(0)
	case types.Uint8: // types.Byte is an alias for Uint8
		return ir.Uint(8)
	case types.Uint16:
		return ir.Uint(16)
	case types.Uint32:
		return ir.Uint(32)
	case types.Uint64:
		return ir.Uint(64)
	case types.Float32:
		return ir.Float(32)
	case types.Float64:
		return ir.Float(64)
	default:
		return ir.Any()
	}
}
