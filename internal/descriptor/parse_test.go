package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRef_Simple(t *testing.T) {
	ref, err := ParseTypeRef("store.Order")

	require.NoError(t, err)
	assert.Equal(t, Simple("store.Order"), ref)
	assert.False(t, ref.IsContainer())
}

func TestParseTypeRef_Containers(t *testing.T) {
	tests := []struct {
		decl     string
		expected TypeRef
	}{
		{"List<Item>", List(Simple("Item"))},
		{"Set<string>", Set(Simple("string"))},
		{"Map<string, Item>", MapOf(Simple("string"), Simple("Item"))},
		{"List<List<Item>>", List(List(Simple("Item")))},
		{
			// Nested commas inside the value parameter must not break the split.
			"Map<string, Map<string, Item>>",
			MapOf(Simple("string"), MapOf(Simple("string"), Simple("Item"))),
		},
		{
			"Map<Map<string, int>, List<Item>>",
			MapOf(MapOf(Simple("string"), Simple("int")), List(Simple("Item"))),
		},
		{" List< Item > ", List(Simple("Item"))},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			ref, err := ParseTypeRef(tt.decl)

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(ref), "got %s, want %s", ref, tt.expected)
		})
	}
}

func TestParseTypeRef_UnsupportedShape(t *testing.T) {
	tests := []string{
		"Optional<Item>",
		"Pair<string, int>",
		"List<Item, Extra>",
		"Map<string>",
		"Set<string, int>",
	}

	for _, decl := range tests {
		t.Run(decl, func(t *testing.T) {
			_, err := ParseTypeRef(decl)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedShape)
		})
	}
}

func TestParseTypeRef_Malformed(t *testing.T) {
	tests := []string{
		"",
		"List<Item",
		"List<Item>>",
		"Map<string, List<Item>",
	}

	for _, decl := range tests {
		t.Run(decl, func(t *testing.T) {
			_, err := ParseTypeRef(decl)
			assert.Error(t, err)
		})
	}
}

func TestTypeRef_String_RoundTrip(t *testing.T) {
	decls := []string{
		"Item",
		"List<Item>",
		"Set<string>",
		"Map<string, List<Item>>",
	}

	for _, decl := range decls {
		t.Run(decl, func(t *testing.T) {
			ref, err := ParseTypeRef(decl)

			require.NoError(t, err)
			assert.Equal(t, decl, ref.String())
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Simple("Item")))
	assert.NoError(t, Validate(MapOf(Simple("string"), List(Simple("Item")))))

	// Hand-built refs with wrong parameter counts must be rejected.
	assert.ErrorIs(t, Validate(TypeRef{Shape: ShapeMap, Params: []TypeRef{Simple("string")}}), ErrUnsupportedShape)
	assert.ErrorIs(t, Validate(TypeRef{Shape: ShapeList}), ErrUnsupportedShape)
	assert.Error(t, Validate(TypeRef{}))
	assert.Error(t, Validate(List(TypeRef{})))
}
