package render

import (
	"fmt"

	"record-generator/internal/descriptor"
	"record-generator/internal/model"
)

// conversionExpr renders one field's value expression.
func conversionExpr(expr model.ConversionExpr, imports map[string]importSpec) string {
	read := fmt.Sprintf("%s.%s()", expr.Param, expr.Accessor)

	switch expr.Kind {
	case model.ExprPassthrough:
		return read

	case model.ExprWrap:
		return fmt.Sprintf("%s(%s)", constructorName(expr.Target.Name), read)

	case model.ExprCollectionMap:
		source := descriptor.TypeRef{Shape: expr.Shape, Params: elemRefs(expr.Elems, false)}
		target := descriptor.TypeRef{Shape: expr.Shape, Params: elemRefs(expr.Elems, true)}

		return collectionExpr(read, source, target, imports, 0)
	}

	return read
}

// elemRefs extracts the source or target refs from element plans.
func elemRefs(elems []model.ElemPlan, target bool) []descriptor.TypeRef {
	refs := make([]descriptor.TypeRef, 0, len(elems))

	for _, e := range elems {
		if target {
			refs = append(refs, e.Target)
		} else {
			refs = append(refs, e.Source)
		}
	}

	return refs
}

// constructorName derives the generated constructor name for a generated
// counterpart type name.
func constructorName(generatedName string) string {
	return "New" + generatedName
}

// collectionExpr renders a nil-safe collection transform: an absent source
// collection yields an empty collection of the target shape, otherwise every
// element (or key/value) is converted and collected into a fresh copy.
func collectionExpr(srcExpr string, source, target descriptor.TypeRef, imports map[string]importSpec, depth int) string {
	targetStr := goTypeString(target, imports)
	srcVar := fmt.Sprintf("src_%d", depth)
	outVar := fmt.Sprintf("out_%d", depth)

	var loop string

	switch target.Shape {
	case descriptor.ShapeList:
		elemVar := fmt.Sprintf("v_%d", depth)
		loop = fmt.Sprintf("for _, %s := range %s {\n\t\t%s = append(%s, %s)\n\t}",
			elemVar, srcVar,
			outVar, outVar, valueExpr(elemVar, source.Params[0], target.Params[0], imports, depth))

	case descriptor.ShapeSet:
		elemVar := fmt.Sprintf("v_%d", depth)
		loop = fmt.Sprintf("for %s := range %s {\n\t\t%s[%s] = struct{}{}\n\t}",
			elemVar, srcVar,
			outVar, valueExpr(elemVar, source.Params[0], target.Params[0], imports, depth))

	case descriptor.ShapeMap:
		keyVar := fmt.Sprintf("k_%d", depth)
		valVar := fmt.Sprintf("v_%d", depth)
		loop = fmt.Sprintf("for %s, %s := range %s {\n\t\t%s[%s] = %s\n\t}",
			keyVar, valVar, srcVar,
			outVar,
			valueExpr(keyVar, source.Params[0], target.Params[0], imports, depth),
			valueExpr(valVar, source.Params[1], target.Params[1], imports, depth))
	}

	return fmt.Sprintf(
		"func() %s {\n\t%s := %s\n\tif %s == nil {\n\t\treturn %s{}\n\t}\n\t%s := make(%s, 0)\n\t%s\n\treturn %s\n}()",
		targetStr, srcVar, srcExpr, srcVar, targetStr, outVar, targetStr, loop, outVar)
}

// valueExpr converts one element (or key, or value): registry members are
// wrapped into their generated counterparts, nested containers recurse, and
// everything else passes through unchanged.
func valueExpr(varName string, source, target descriptor.TypeRef, imports map[string]importSpec, depth int) string {
	if target.Equal(source) {
		return varName
	}

	if !target.IsContainer() {
		return fmt.Sprintf("%s(%s)", constructorName(target.Name), varName)
	}

	return collectionExpr(varName, source, target, imports, depth+1)
}
