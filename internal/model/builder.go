package model

import (
	"errors"
	"fmt"

	"record-generator/internal/descriptor"
	"record-generator/internal/namer"
	"record-generator/internal/registry"
	"record-generator/internal/resolve"
)

// sourceParamName is the constructor parameter name for single-source
// variants.
const sourceParamName = "in"

// Builder builds GeneratedTypeModels against an explicit registry.
type Builder struct {
	reg *registry.Registry
}

// NewBuilder creates a Builder for the given registry.
func NewBuilder(reg *registry.Registry) *Builder {
	return &Builder{reg: reg}
}

// Build produces the fully resolved model for one generation request.
// Model-building errors are detected here, before any aggregation or
// emission: a failing field aborts the whole request.
func (b *Builder) Build(req *descriptor.GenerationRequest) (*GeneratedTypeModel, error) {
	if req == nil || req.Source == nil {
		return nil, errors.New("generation request has no source type")
	}

	if req.Variant == descriptor.VariantMerge {
		return b.buildMerge(req)
	}

	m := &GeneratedTypeModel{
		TargetName: resolve.GeneratedNameFor(req.Source),
		Variant:    req.Variant,
		Sources:    []*descriptor.TypeDescriptor{req.Source},
		ConstructorParams: []Param{
			{Name: sourceParamName, Source: req.Source},
		},
	}

	fields, err := b.buildFields(req.Source, "", sourceParamName)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", m.TargetName, err)
	}

	m.Fields = fields

	for _, f := range m.Fields {
		m.ConversionExprs = append(m.ConversionExprs, b.buildConversion(f))
	}

	b.buildAuxiliary(m, req)

	return m, nil
}

// buildFields turns a source type's ordered accessor list into an ordered
// field list. Field order equals accessor declaration order. For merge
// sources other than the primary, suffix disambiguates every field name.
func (b *Builder) buildFields(src *descriptor.TypeDescriptor, suffix, param string) ([]Field, error) {
	fields := make([]Field, 0, len(src.Accessors))

	for _, acc := range src.Accessors {
		if err := descriptor.Validate(acc.DeclaredType); err != nil {
			return nil, fmt.Errorf("accessor %s: %w", acc.Name, err)
		}

		resolved := resolve.Resolve(acc.DeclaredType, b.reg)

		fields = append(fields, Field{
			Name:        namer.FieldName(acc.Name, acc.IsBooleanStyle) + suffix,
			Type:        resolved,
			Accessor:    acc,
			Param:       param,
			Substituted: !resolved.Equal(acc.DeclaredType),
		})
	}

	return fields, nil
}
