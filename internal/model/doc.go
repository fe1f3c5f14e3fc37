// Package model builds the fully resolved GeneratedTypeModel for a
// generation request: ordered fields with substituted types, constructor
// parameters, typed conversion expressions, and auxiliary declarations.
//
// The model is the contract between the synthesis core and a renderer; no
// textual formatting happens here. Building is pure: the registry is an
// explicit argument and nothing mutates shared state, so distinct requests
// can be built in any order or in parallel.
package model
