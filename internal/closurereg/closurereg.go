// Package closurereg is the temporary id→opaque-callable bridge used
// while block graphs are migrated off legacy closures (spec.md §2, §4.1
// "closureBridge"; DESIGN NOTES "Opaque legacy callables" — modeled as a
// small context struct plus a function value, not a full trait object,
// since Go has no runtime dynamic-dispatch cost to avoid here).
//
// This is scaffolding: once the migration it bridges is complete, the
// closureBridge node kind and this registry should be deleted together.
package closurereg

import "github.com/brandon-fryslie/oscilla-animator-sub000/api"

// LegacyContext is the timing context passed to every registered
// Callable, mirroring the fields of the per-frame runtime context.
type LegacyContext struct {
	DeltaSec   float64
	DeltaMs    float64
	FrameIndex uint64
}

// Callable is a migration-era closure: given an absolute time and the
// frame's timing context, it returns a scalar.
type Callable func(tAbsMs float64, ctx LegacyContext) float64

// Registry is a builder-scoped id→Callable map (DESIGN NOTES: "should be
// a value constructed at program start, not a process-global mutable
// singleton"; mutation, where wanted for tests, is scoped to this value,
// never a package-level var).
type Registry struct {
	callables map[string]Callable
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{callables: make(map[string]Callable)}
}

// Register adds or replaces the callable for id.
func (r *Registry) Register(id string, fn Callable) {
	r.callables[id] = fn
}

// Lookup returns the callable registered for id, or an error if none is
// registered (spec.md §7: MissingClosure).
func (r *Registry) Lookup(id string) (Callable, error) {
	fn, ok := r.callables[id]
	if !ok {
		return nil, api.Wrap(api.KindMissingClosure, 0, errMissing(id))
	}
	return fn, nil
}

type errMissing string

func (e errMissing) Error() string { return "no closure registered for id " + string(e) }
