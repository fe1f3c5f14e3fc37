package model

import (
	"fmt"

	"record-generator/internal/common"
	"record-generator/internal/descriptor"
	"record-generator/internal/namer"
	"record-generator/internal/resolve"
)

// buildMerge unions the field models and conversion expressions of the
// primary source and each merge source, in caller-given order. The
// constructor takes one parameter per source instance in the same order, and
// every conversion expression references its own parameter.
//
// Auxiliary declarations and factory methods are not produced for merges.
func (b *Builder) buildMerge(req *descriptor.GenerationRequest) (*GeneratedTypeModel, error) {
	if common.IsEmpty(req.MergeWith) {
		return nil, fmt.Errorf("merge of %s has no merge sources", req.Source.ID)
	}

	sources := make([]*descriptor.TypeDescriptor, 0, len(req.MergeWith)+1)
	sources = append(sources, req.Source)
	sources = append(sources, req.MergeWith...)

	m := &GeneratedTypeModel{
		TargetName: resolve.MergedName(req.Source),
		Variant:    descriptor.VariantMerge,
		Sources:    sources,
	}

	params := mergeParamNames(sources)

	for i, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("merge source %d of %s is missing", i, m.TargetName)
		}

		suffix := ""
		if i > 0 {
			suffix = namer.MergeSuffix(src.ID.Name)
		}

		fields, err := b.buildFields(src, suffix, params[i])
		if err != nil {
			return nil, fmt.Errorf("building %s from %s: %w", m.TargetName, src.ID, err)
		}

		m.Fields = append(m.Fields, fields...)
		m.ConstructorParams = append(m.ConstructorParams, Param{Name: params[i], Source: src})

		for _, f := range fields {
			m.ConversionExprs = append(m.ConversionExprs, b.buildConversion(f))
		}
	}

	return m, nil
}

// mergeParamNames derives constructor parameter names from the sources'
// simple type names, disambiguating repeats with a positional suffix.
func mergeParamNames(sources []*descriptor.TypeDescriptor) []string {
	names := make([]string, 0, len(sources))
	seen := make(map[string]int)

	for _, src := range sources {
		name := sourceParamName
		if src != nil {
			name = namer.LowerFirst(src.ID.Name)
		}

		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s%d", name, n)
		}

		names = append(names, name)
	}

	return names
}
