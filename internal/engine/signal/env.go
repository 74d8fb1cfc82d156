package signal

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/closurereg"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/constpool"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/framecache"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/statebuf"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/transformchain"
)

// RuntimeContext is the per-frame immutable timing record (spec.md §2,
// §3 "Runtime Context"). A fresh value is expected each frame; the
// evaluator never mutates it.
type RuntimeContext struct {
	TAbsMs       float64
	TModelMs     *float64 // nil falls back to TAbsMs
	Phase01      *float64 // nil falls back to 0
	WrapOccurred bool
	DeltaSec     float64
	FrameIndex   uint64
}

// DeltaMs is derived, never stored redundantly (spec.md §3: "deltaMs =
// deltaSec*1000").
func (r RuntimeContext) DeltaMs() float64 { return r.DeltaSec * 1000 }

// Env bundles every reference the evaluator needs for one evalSig call.
// All fields except Cache are borrowed references the evaluator does not
// own (spec.md §3 "Ownership"); all of them are read-only except State,
// which stateful operators write. Cache is exclusively owned by the
// evaluator for the duration of the call.
type Env struct {
	Cache          *framecache.Cache
	ConstPool      *constpool.Pool
	TransformTable *transformchain.Table
	State          *statebuf.Buffer
	Closures       *closurereg.Registry
	Slots          SlotReader
	Context        RuntimeContext
	Tracer         Tracer // nil means no tracing
}

func (e *Env) tModelMs() float64 {
	if e.Context.TModelMs != nil {
		return *e.Context.TModelMs
	}
	return e.Context.TAbsMs
}

func (e *Env) phase01() float64 {
	if e.Context.Phase01 != nil {
		return *e.Context.Phase01
	}
	return 0
}
