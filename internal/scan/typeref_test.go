package scan

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-generator/internal/descriptor"
)

func namedType(pkgPath, pkgName, typeName string) *types.Named {
	pkg := types.NewPackage(pkgPath, pkgName)
	obj := types.NewTypeName(token.NoPos, pkg, typeName, nil)

	return types.NewNamed(obj, types.NewStruct(nil, nil), nil)
}

func TestTypeRefOf(t *testing.T) {
	order := namedType("shop/store", "store", "Order")

	tests := []struct {
		name string
		in   types.Type
		want descriptor.TypeRef
	}{
		{
			name: "basic",
			in:   types.Typ[types.String],
			want: descriptor.Simple("string"),
		},
		{
			name: "named",
			in:   order,
			want: descriptor.Simple("shop/store.Order"),
		},
		{
			name: "pointer is transparent",
			in:   types.NewPointer(order),
			want: descriptor.Simple("shop/store.Order"),
		},
		{
			name: "slice",
			in:   types.NewSlice(order),
			want: descriptor.List(descriptor.Simple("shop/store.Order")),
		},
		{
			name: "map",
			in:   types.NewMap(types.Typ[types.String], order),
			want: descriptor.MapOf(descriptor.Simple("string"), descriptor.Simple("shop/store.Order")),
		},
		{
			name: "empty-struct map is a set",
			in:   types.NewMap(types.Typ[types.Int64], types.NewStruct(nil, nil)),
			want: descriptor.Set(descriptor.Simple("int64")),
		},
		{
			name: "nested slice of maps",
			in:   types.NewSlice(types.NewMap(types.Typ[types.String], types.Typ[types.Int])),
			want: descriptor.List(descriptor.MapOf(descriptor.Simple("string"), descriptor.Simple("int"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeRefOf(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeRefOf_Unsupported(t *testing.T) {
	for _, in := range []types.Type{
		types.NewChan(types.SendRecv, types.Typ[types.Int]),
		types.NewSlice(types.NewChan(types.SendRecv, types.Typ[types.Int])),
	} {
		_, err := TypeRefOf(in)
		assert.ErrorIs(t, err, descriptor.ErrUnsupportedShape)
	}
}

func signature(params *types.Tuple, results *types.Tuple) *types.Signature {
	return types.NewSignatureType(nil, nil, nil, params, results, false)
}

func result(t types.Type) *types.Tuple {
	return types.NewTuple(types.NewVar(token.NoPos, nil, "", t))
}

func TestAccessorOf(t *testing.T) {
	acc, ok := accessorOf("GetName", signature(nil, result(types.Typ[types.String])))
	require.True(t, ok)
	assert.Equal(t, "GetName", acc.Name)
	assert.False(t, acc.IsBooleanStyle)

	acc, ok = accessorOf("IsActive", signature(nil, result(types.Typ[types.Bool])))
	require.True(t, ok)
	assert.True(t, acc.IsBooleanStyle)

	// Is-prefix with a non-boolean result is not an accessor.
	_, ok = accessorOf("IsActive", signature(nil, result(types.Typ[types.String])))
	assert.False(t, ok)

	// Getters with parameters are not accessors.
	withParam := signature(
		types.NewTuple(types.NewVar(token.NoPos, nil, "i", types.Typ[types.Int])),
		result(types.Typ[types.String]),
	)
	_, ok = accessorOf("GetName", withParam)
	assert.False(t, ok)

	// Bare prefixes are not accessors.
	_, ok = accessorOf("Get", signature(nil, result(types.Typ[types.String])))
	assert.False(t, ok)

	// Unrelated method names are not accessors.
	_, ok = accessorOf("Describe", signature(nil, result(types.Typ[types.String])))
	assert.False(t, ok)
}

func TestIsSetter(t *testing.T) {
	oneParam := types.NewTuple(types.NewVar(token.NoPos, nil, "v", types.Typ[types.String]))

	assert.True(t, isSetter("SetName", signature(oneParam, nil)))
	assert.False(t, isSetter("SetName", signature(nil, nil)))
	assert.False(t, isSetter("Set", signature(oneParam, nil)))
	assert.False(t, isSetter("Reset", signature(oneParam, nil)))
}
