package model

import (
	"record-generator/internal/descriptor"
	"record-generator/internal/namer"
)

// builtinInterfaces lists interfaces every generated type already provides;
// requested interfaces are de-duplicated against it.
var builtinInterfaces = []descriptor.TypeRef{
	descriptor.Simple("fmt.Stringer"),
}

// buildAuxiliary attaches field-name constants, the interface list and the
// factory-method shapes to the model. All of it derives purely from the
// field model; no additional substitution logic runs here.
//
// The merge variant gets no auxiliary declarations.
func (b *Builder) buildAuxiliary(m *GeneratedTypeModel, req *descriptor.GenerationRequest) {
	if m.Variant == descriptor.VariantMerge {
		return
	}

	for _, f := range m.Fields {
		m.FieldConstants = append(m.FieldConstants, FieldConstant{
			Name:  namer.ConstantName(m.TargetName, f.Name),
			Value: f.Name,
		})
	}

	m.Interfaces = dedupInterfaces(req.RequestedInterfaces)

	m.Factories = append(m.Factories,
		Factory{Kind: FactoryFromGenerated, Name: m.TargetName + "From"},
		Factory{Kind: FactoryFromMap, Name: "New" + m.TargetName + "FromMap"},
	)

	for _, f := range m.Fields {
		m.Factories = append(m.Factories, Factory{
			Kind:  FactoryWith,
			Name:  namer.WithMethodName(f.Name),
			Field: f.Name,
		})
	}
}

// dedupInterfaces keeps the requested interfaces verbatim, in order, dropping
// repeats and anything on the built-in list.
func dedupInterfaces(requested []descriptor.TypeRef) []descriptor.TypeRef {
	var out []descriptor.TypeRef

	for _, ref := range requested {
		duplicate := false

		for _, b := range builtinInterfaces {
			if ref.Equal(b) {
				duplicate = true
				break
			}
		}

		for _, kept := range out {
			if ref.Equal(kept) {
				duplicate = true
				break
			}
		}

		if !duplicate {
			out = append(out, ref)
		}
	}

	return out
}
