package descriptor

import (
	"strings"

	"record-generator/internal/common"
)

// TypeID uniquely identifies a source type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "record-generator/examples/store"
	Name    string // e.g., "Order"
}

// String returns the qualified name of the type.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// ParseTypeID splits a qualified name into its TypeID parts.
// The type name is everything after the last dot that follows the last slash.
func ParseTypeID(qualified string) TypeID {
	slash := strings.LastIndex(qualified, "/")

	dot := strings.LastIndex(qualified[slash+1:], ".")
	if dot < 0 {
		return TypeID{Name: qualified}
	}

	dot += slash + 1

	return TypeID{PkgPath: qualified[:dot], Name: qualified[dot+1:]}
}

// Kind classifies a source type.
type Kind int

const (
	KindUnknown Kind = iota
	// KindMutableHolder - conventional accessor-style type to be converted
	// into an immutable counterpart.
	KindMutableHolder
	// KindImmutableAggregate - already immutable, but still eligible for
	// registry-driven field substitution.
	KindImmutableAggregate
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMutableHolder:
		return "mutable_holder"
	case KindImmutableAggregate:
		return "immutable_aggregate"
	default:
		return common.UnknownStr
	}
}

// ContainerShape identifies one of the recognized generic container shapes.
type ContainerShape int

const (
	ShapeNone ContainerShape = iota
	ShapeList                // ordered list, one element type
	ShapeSet                 // unique set, one element type
	ShapeMap                 // key/value map, two type parameters
)

// String returns a human-readable shape name.
func (s ContainerShape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeList:
		return "list"
	case ShapeSet:
		return "set"
	case ShapeMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// paramCount returns the expected type parameter count for the shape.
func (s ContainerShape) paramCount() int {
	if s == ShapeMap {
		return 2
	}

	return 1
}

// TypeRef is a declared type reference: either a bare named type
// (Shape == ShapeNone, Params empty) or a parameterized container.
type TypeRef struct {
	// Name is the (possibly qualified) type name for simple refs.
	// Empty for container refs.
	Name string
	// Shape is ShapeNone for simple refs.
	Shape ContainerShape
	// Params holds the element type (list/set) or key and value types (map).
	Params []TypeRef
}

// Simple returns a bare named type reference.
func Simple(name string) TypeRef {
	return TypeRef{Name: name}
}

// List returns an ordered-list container reference.
func List(elem TypeRef) TypeRef {
	return TypeRef{Shape: ShapeList, Params: []TypeRef{elem}}
}

// Set returns a unique-set container reference.
func Set(elem TypeRef) TypeRef {
	return TypeRef{Shape: ShapeSet, Params: []TypeRef{elem}}
}

// MapOf returns a key/value map container reference.
func MapOf(key, value TypeRef) TypeRef {
	return TypeRef{Shape: ShapeMap, Params: []TypeRef{key, value}}
}

// IsContainer returns true if the ref is one of the recognized containers.
func (r TypeRef) IsContainer() bool {
	return r.Shape != ShapeNone
}

// Equal reports structural equality of two type references.
func (r TypeRef) Equal(other TypeRef) bool {
	if r.Name != other.Name || r.Shape != other.Shape || len(r.Params) != len(other.Params) {
		return false
	}

	for i := range r.Params {
		if !r.Params[i].Equal(other.Params[i]) {
			return false
		}
	}

	return true
}

// String returns the declared-type notation, e.g. "Map<String, List<Item>>".
func (r TypeRef) String() string {
	if !r.IsContainer() {
		return r.Name
	}

	var sb strings.Builder

	switch r.Shape {
	case ShapeList:
		sb.WriteString("List<")
	case ShapeSet:
		sb.WriteString("Set<")
	case ShapeMap:
		sb.WriteString("Map<")
	}

	for i, p := range r.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.String())
	}

	sb.WriteString(">")

	return sb.String()
}

// Accessor describes one zero-argument method exposing a logical field.
type Accessor struct {
	// Name is the method name, e.g. "GetName" or "IsActive".
	Name string
	// DeclaredType is the accessor's declared return type.
	DeclaredType TypeRef
	// IsBooleanStyle marks accessors using the boolean naming convention.
	IsBooleanStyle bool
}

// TypeDescriptor describes a source type as seen by the scanner.
// Identity is the qualified name: two descriptors with the same ID are the
// same entity. Read-only to the synthesis core.
type TypeDescriptor struct {
	ID        TypeID
	Kind      Kind
	Accessors []Accessor
}

// Variant selects one of the generation flavors.
type Variant int

const (
	// VariantStandard converts a mutable holder into its record counterpart.
	VariantStandard Variant = iota
	// VariantAggregate rewrites an already-immutable aggregate so its fields
	// reference generated counterparts.
	VariantAggregate
	// VariantMerge unions several source types into one generated type.
	VariantMerge
)

// String returns a human-readable variant name.
func (v Variant) String() string {
	switch v {
	case VariantStandard:
		return "standard"
	case VariantAggregate:
		return "aggregate"
	case VariantMerge:
		return "merge"
	default:
		return common.UnknownStr
	}
}

// RequiredKind returns the source kind the variant demands, if any.
// The merge variant accepts both kinds.
func (v Variant) RequiredKind() (Kind, bool) {
	switch v {
	case VariantStandard:
		return KindMutableHolder, true
	case VariantAggregate:
		return KindImmutableAggregate, true
	default:
		return KindUnknown, false
	}
}

// GenerationRequest asks for one generated type from one source type
// (or several source types, for the merge variant).
type GenerationRequest struct {
	// Source is the primary annotated type.
	Source *TypeDescriptor
	// Variant selects the generation flavor.
	Variant Variant
	// MergeWith lists additional merge sources in caller order.
	// Only meaningful for VariantMerge.
	MergeWith []*TypeDescriptor
	// AlsoConvert lists related types that must be converted alongside.
	AlsoConvert []*TypeDescriptor
	// RequestedInterfaces lists interfaces the generated type should declare.
	RequestedInterfaces []TypeRef
}
