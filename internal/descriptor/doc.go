// Package descriptor provides the value-type boundary between the host
// scanner and the synthesis core.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeDescriptor: source type kind + ordered accessor list
//   - Accessor: one zero-argument method exposing a logical field
//   - TypeRef: simple named type or parameterized container (List/Set/Map)
//   - GenerationRequest: one unit of generation work (standard, aggregate,
//     or merge variant)
//
// It also hosts the declared-type parser and the container shape analyzer,
// so every other package operates on structured refs instead of raw strings.
package descriptor
