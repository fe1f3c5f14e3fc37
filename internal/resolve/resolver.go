// Package resolve implements the type-substitution resolver: given a declared
// type reference and the registry, it produces the type reference to use in
// the generated field, rewriting container element/key/value types
// recursively.
//
// Resolution is pure and idempotent: it performs no emission and calling it
// twice with the same inputs yields the same reference.
package resolve

import (
	"record-generator/internal/descriptor"
	"record-generator/internal/registry"
)

// Name derivation constants for generated counterpart types.
const (
	// HolderSuffix is appended to a mutable holder's simple name.
	HolderSuffix = "Record"
	// AggregatePrefix is prepended to an immutable aggregate's simple name.
	AggregatePrefix = "Immutable"
)

// GeneratedName deterministically derives the generated type's name from a
// registered source type's qualified name and kind. The result is
// unqualified: generated types live in the output package.
func GeneratedName(qualifiedName string, kind descriptor.Kind) string {
	simple := descriptor.ParseTypeID(qualifiedName).Name

	if kind == descriptor.KindImmutableAggregate {
		return AggregatePrefix + simple
	}

	return simple + HolderSuffix
}

// GeneratedNameFor derives the generated type's name for a descriptor.
func GeneratedNameFor(d *descriptor.TypeDescriptor) string {
	return GeneratedName(d.ID.String(), d.Kind)
}

// MergedSuffix is appended to the primary source's simple name to form the
// merge-variant target name.
const MergedSuffix = "MergedRecord"

// MergedName derives the merge-variant target name from the primary source.
func MergedName(primary *descriptor.TypeDescriptor) string {
	return primary.ID.Name + MergedSuffix
}

// Resolve rewrites a declared type reference against the registry.
//
// Simple refs naming a registry member become the member's generated name;
// everything else passes through unchanged. Container refs are rebuilt with
// every parameter resolved independently: for a map, key and value
// substitution are decided independently of each other.
func Resolve(ref descriptor.TypeRef, reg *registry.Registry) descriptor.TypeRef {
	if !ref.IsContainer() {
		kind, ok := reg.KindOf(ref.Name)
		if !ok {
			return ref
		}

		return descriptor.Simple(GeneratedName(ref.Name, kind))
	}

	params := make([]descriptor.TypeRef, 0, len(ref.Params))
	for _, p := range ref.Params {
		params = append(params, Resolve(p, reg))
	}

	return descriptor.TypeRef{Shape: ref.Shape, Params: params}
}
