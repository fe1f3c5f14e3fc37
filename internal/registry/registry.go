// Package registry tracks the closure of all type names that must be
// substituted wherever referenced: every request's source type plus the
// one-level also-convert and merge-with closures.
package registry

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"record-generator/internal/descriptor"
)

// Registry is the set of registered type descriptors, keyed by qualified
// name. Insertion order is preserved so passes iterate deterministically.
// Built once per pass and read-only afterwards.
type Registry struct {
	members *linkedhashmap.Map // qualified name -> descriptor.Kind
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{members: linkedhashmap.New()}
}

// Build unions, for every generation request, the source type and the types
// named in its also-convert and merge-with lists. Referenced types are taken
// one level deep: they are not expanded further by attribute, only by direct
// annotation elsewhere.
func Build(requests []*descriptor.GenerationRequest) *Registry {
	r := New()

	for _, req := range requests {
		if req == nil || req.Source == nil {
			continue
		}

		r.Add(req.Source)

		for _, d := range req.AlsoConvert {
			r.Add(d)
		}

		for _, d := range req.MergeWith {
			r.Add(d)
		}
	}

	return r
}

// Add registers a descriptor. Nil descriptors are ignored: a name that
// resolved to nothing is simply not a member.
func (r *Registry) Add(d *descriptor.TypeDescriptor) {
	if d == nil {
		return
	}

	r.members.Put(d.ID.String(), d.Kind)
}

// Contains reports membership by qualified name.
func (r *Registry) Contains(qualifiedName string) bool {
	_, ok := r.members.Get(qualifiedName)

	return ok
}

// KindOf returns the registered kind for a qualified name.
func (r *Registry) KindOf(qualifiedName string) (descriptor.Kind, bool) {
	v, ok := r.members.Get(qualifiedName)
	if !ok {
		return descriptor.KindUnknown, false
	}

	return v.(descriptor.Kind), true
}

// Names returns all registered qualified names in insertion order.
func (r *Registry) Names() []string {
	keys := r.members.Keys()
	names := make([]string, 0, len(keys))

	for _, k := range keys {
		names = append(names, k.(string))
	}

	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return r.members.Size()
}
