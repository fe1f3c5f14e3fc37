package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-generator/internal/descriptor"
)

func TestBuildAuxiliary_FieldConstants(t *testing.T) {
	a := holder("Order",
		get("Name", "string"),
		get("TotalCents", "int64"),
	)

	builder := NewBuilder(registryOf(a))
	m, err := builder.Build(&descriptor.GenerationRequest{Source: a, Variant: descriptor.VariantStandard})

	require.NoError(t, err)
	require.Len(t, m.FieldConstants, 2)
	assert.Equal(t, FieldConstant{Name: "OrderRecordNameField", Value: "name"}, m.FieldConstants[0])
	assert.Equal(t, FieldConstant{Name: "OrderRecordTotalCentsField", Value: "totalCents"}, m.FieldConstants[1])
}

func TestBuildAuxiliary_InterfaceDedup(t *testing.T) {
	a := holder("Order", get("Name", "string"))

	builder := NewBuilder(registryOf(a))
	m, err := builder.Build(&descriptor.GenerationRequest{
		Source:  a,
		Variant: descriptor.VariantStandard,
		RequestedInterfaces: []descriptor.TypeRef{
			descriptor.Simple("test/api.Pricer"),
			// Already provided by every generated type.
			descriptor.Simple("fmt.Stringer"),
			// Repeated request.
			descriptor.Simple("test/api.Pricer"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []descriptor.TypeRef{descriptor.Simple("test/api.Pricer")}, m.Interfaces)
}

func TestBuildAuxiliary_Factories(t *testing.T) {
	a := holder("Order",
		get("Name", "string"),
		get("TotalCents", "int64"),
	)

	builder := NewBuilder(registryOf(a))
	m, err := builder.Build(&descriptor.GenerationRequest{Source: a, Variant: descriptor.VariantStandard})

	require.NoError(t, err)
	require.Len(t, m.Factories, 4)

	assert.Equal(t, Factory{Kind: FactoryFromGenerated, Name: "OrderRecordFrom"}, m.Factories[0])
	assert.Equal(t, Factory{Kind: FactoryFromMap, Name: "NewOrderRecordFromMap"}, m.Factories[1])
	assert.Equal(t, Factory{Kind: FactoryWith, Name: "WithName", Field: "name"}, m.Factories[2])
	assert.Equal(t, Factory{Kind: FactoryWith, Name: "WithTotalCents", Field: "totalCents"}, m.Factories[3])
}
