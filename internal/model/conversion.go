package model

import (
	"record-generator/internal/descriptor"
)

// buildConversion builds the value expression for one field:
//   - no substitution, not a container: read the accessor directly
//   - substitution, not a container: wrap the accessor result into the
//     nested generated type
//   - container with substituted parameters: nil-safe element-wise mapped
//     immutable copy (an absent source collection yields an empty immutable
//     collection of the same shape)
//   - container with no registered parameter types: pass the collection
//     reference through unchanged, no copy, no wrap
func (b *Builder) buildConversion(f Field) ConversionExpr {
	expr := ConversionExpr{
		Field:    f.Name,
		Param:    f.Param,
		Accessor: f.Accessor.Name,
		Target:   f.Type,
	}

	declared, isContainer := descriptor.AnalyzeShape(f.Accessor.DeclaredType)
	if !isContainer {
		if f.Substituted {
			expr.Kind = ExprWrap
		} else {
			expr.Kind = ExprPassthrough
		}

		return expr
	}

	if !f.Substituted {
		expr.Kind = ExprPassthrough

		return expr
	}

	resolved, _ := descriptor.AnalyzeShape(f.Type)

	expr.Kind = ExprCollectionMap
	expr.Shape = declared.Shape

	for i, src := range declared.Params {
		tgt := resolved.Params[i]
		expr.Elems = append(expr.Elems, ElemPlan{
			Wrap:   !tgt.Equal(src),
			Source: src,
			Target: tgt,
		})
	}

	return expr
}
