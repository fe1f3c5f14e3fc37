// Package render turns GeneratedTypeModels into formatted Go source.
//
// Rendering uses text/template + go/format, mirroring the synthesis/render
// split: all substitution decisions live in the model, this package only
// produces text. The renderer is swappable behind emit.Renderer.
//
// Rendered declarations per generated type:
//   - the immutable struct with unexported fields
//   - value-receiver getters and a String method
//   - the constructor (one parameter per source instance)
//   - auxiliary declarations: field-name constants, interface assertions,
//     copy/from-map factories and per-field With mutators
package render
