package model

import (
	"record-generator/internal/common"
	"record-generator/internal/descriptor"
)

// Field is one generated field: name plus fully resolved type.
type Field struct {
	// Name is the derived field name, including any merge-source suffix.
	Name string
	// Type is the resolved field type.
	Type descriptor.TypeRef
	// Accessor is the source accessor this field was derived from.
	Accessor descriptor.Accessor
	// Param names the constructor parameter supplying this field's value.
	Param string
	// Substituted is true if resolution changed the declared type anywhere.
	Substituted bool
}

// Param is one constructor parameter: a source-type instance.
type Param struct {
	Name   string
	Source *descriptor.TypeDescriptor
}

// ExprKind classifies a conversion expression.
type ExprKind int

const (
	// ExprPassthrough reads the accessor result directly.
	ExprPassthrough ExprKind = iota
	// ExprWrap constructs the generated counterpart of a nested value from
	// the accessor result.
	ExprWrap
	// ExprCollectionMap builds a nil-safe, element-wise mapped immutable copy
	// of a container whose element (or key/value) types were substituted.
	ExprCollectionMap
)

// String returns a human-readable expression kind name.
func (k ExprKind) String() string {
	switch k {
	case ExprPassthrough:
		return "passthrough"
	case ExprWrap:
		return "wrap"
	case ExprCollectionMap:
		return "collection_map"
	default:
		return common.UnknownStr
	}
}

// ElemPlan describes how one container type parameter converts.
type ElemPlan struct {
	// Wrap is true when the parameter names a registry member and each
	// element must be wrapped into its generated counterpart.
	Wrap bool
	// Source is the parameter's declared type reference.
	Source descriptor.TypeRef
	// Target is the parameter's resolved type reference.
	Target descriptor.TypeRef
}

// ConversionExpr computes one generated field's value from a source-type
// instance. It is a typed expression, not source text: rendering is a
// separate concern.
type ConversionExpr struct {
	Kind ExprKind
	// Field is the target field name.
	Field string
	// Param is the constructor parameter the expression reads from.
	Param string
	// Accessor is the source accessor method name.
	Accessor string
	// Target is the resolved field type.
	Target descriptor.TypeRef
	// Shape is set for ExprCollectionMap.
	Shape descriptor.ContainerShape
	// Elems holds the per-parameter element plans for ExprCollectionMap:
	// one for list/set, key then value for map.
	Elems []ElemPlan
}

// FieldConstant is a named string constant holding a field's name, for safe
// programmatic field-name references.
type FieldConstant struct {
	Name  string
	Value string
}

// FactoryKind classifies an auxiliary factory-method shape.
type FactoryKind int

const (
	// FactoryFromGenerated copies a previously generated instance.
	FactoryFromGenerated FactoryKind = iota
	// FactoryFromMap builds from a name-to-value mapping, defaulting each
	// absent field to the current value.
	FactoryFromMap
	// FactoryWith returns a copy with a single field replaced.
	FactoryWith
)

// String returns a human-readable factory kind name.
func (k FactoryKind) String() string {
	switch k {
	case FactoryFromGenerated:
		return "from_generated"
	case FactoryFromMap:
		return "from_map"
	case FactoryWith:
		return "with"
	default:
		return common.UnknownStr
	}
}

// Factory is one auxiliary factory-method declaration. The from-source
// factory is the generated constructor itself and is always part of the
// model via ConstructorParams and ConversionExprs.
type Factory struct {
	Kind FactoryKind
	Name string
	// Field is set for FactoryWith.
	Field string
}

// GeneratedTypeModel is the fully resolved, ready-to-render model of one
// generated type.
type GeneratedTypeModel struct {
	// TargetName is the generated type's name.
	TargetName string
	// Variant is the generation flavor that produced this model.
	Variant descriptor.Variant
	// Sources lists the source descriptors, primary first.
	Sources []*descriptor.TypeDescriptor
	// Fields in accessor declaration order; for merges, primary-source
	// fields precede each merge source's fields in request order.
	Fields []Field
	// ConstructorParams: one per source instance, in the same order.
	ConstructorParams []Param
	// ConversionExprs: one per field, in field order.
	ConversionExprs []ConversionExpr
	// FieldConstants, Interfaces and Factories are the auxiliary
	// declarations. Empty for the merge variant.
	FieldConstants []FieldConstant
	Interfaces     []descriptor.TypeRef
	Factories      []Factory
}

// Primary returns the primary source descriptor.
func (m *GeneratedTypeModel) Primary() *descriptor.TypeDescriptor {
	src, _ := common.First(m.Sources)

	return src
}
