package scan

import (
	"fmt"
	"go/types"

	"record-generator/internal/descriptor"
)

// TypeRefOf converts a go/types type into a declared type reference.
//
// Slices map to the list shape, map[T]struct{} to the set shape and other
// maps to the map shape. Pointers are transparent. Anything else that is not
// a basic or named type is an unsupported shape.
func TypeRefOf(t types.Type) (descriptor.TypeRef, error) {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return descriptor.Simple(tt.Name()), nil

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			// Universe-scope named type, e.g. error.
			return descriptor.Simple(obj.Name()), nil
		}

		return descriptor.Simple(obj.Pkg().Path() + "." + obj.Name()), nil

	case *types.Pointer:
		return TypeRefOf(tt.Elem())

	case *types.Slice:
		elem, err := TypeRefOf(tt.Elem())
		if err != nil {
			return descriptor.TypeRef{}, err
		}

		return descriptor.List(elem), nil

	case *types.Map:
		key, err := TypeRefOf(tt.Key())
		if err != nil {
			return descriptor.TypeRef{}, err
		}

		if isEmptyStruct(tt.Elem()) {
			return descriptor.Set(key), nil
		}

		value, err := TypeRefOf(tt.Elem())
		if err != nil {
			return descriptor.TypeRef{}, err
		}

		return descriptor.MapOf(key, value), nil

	default:
		return descriptor.TypeRef{}, fmt.Errorf("%w: %s", descriptor.ErrUnsupportedShape, t.String())
	}
}

func isEmptyStruct(t types.Type) bool {
	st, ok := types.Unalias(t).(*types.Struct)
	return ok && st.NumFields() == 0
}
