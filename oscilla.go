package oscilla

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/bufferpool"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/closurereg"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/constpool"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/engine/field"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/engine/signal"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/framecache"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/statebuf"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/transformchain"
)

// StateCapacity sizes the three persistent state arenas a Bundle
// allocates once; the compiler that produced the IR is responsible for
// guaranteeing every StateOffset it bakes in fits within these bounds.
type StateCapacity struct {
	F64 int
	F32 int
	I32 int
}

// Bundle is the compiled, immutable IR plus the persistent, cross-frame
// resources built once per graph: the state buffer (survives frames
// unless explicitly reset), the frame cache (advanced, never
// recreated), and the buffer pool (acquired and released every frame,
// never reallocated). It is the single thing a caller needs to hold
// onto between frames.
type Bundle struct {
	signalNodes []ir.SignalNode
	fieldNodes  []ir.FieldNode
	constPool   *constpool.Pool
	transforms  *transformchain.Table
	closures    *closurereg.Registry

	state *statebuf.Buffer
	cache *framecache.Cache
	pool  *bufferpool.Pool

	frameId uint32
}

// NewBundle assembles a Bundle from compiled IR and the resources the
// evaluator needs to have allocated before the first frame runs.
// cacheCapacity must cover the highest signal id that will ever be
// evaluated (spec.md §4.3).
func NewBundle(
	signalNodes []ir.SignalNode,
	fieldNodes []ir.FieldNode,
	constPool *constpool.Pool,
	chains []ir.TransformChain,
	closures *closurereg.Registry,
	state StateCapacity,
	cacheCapacity int,
) *Bundle {
	return &Bundle{
		signalNodes: signalNodes,
		fieldNodes:  fieldNodes,
		constPool:   constPool,
		transforms:  transformchain.NewTable(chains),
		closures:    closures,
		state:       statebuf.New(state.F64, state.F32, state.I32),
		cache:       framecache.New(cacheCapacity),
		pool:        bufferpool.New(),
	}
}

// ResetStateBuffer zeros all stateful-operator state in place (spec.md
// §5: "persists across frames unchanged unless resetStateBuffer is
// called between frames").
func (b *Bundle) ResetStateBuffer() { b.state.Reset() }

// PoolStats reports the buffer pool's current pooled/in-use counts
// (spec.md §4.2 "Buffer Pool... Stats report {pooled, inUse}").
func (b *Bundle) PoolStats() (pooled, inUse int) { return b.pool.Stats() }

// FrameInputs is everything a single frame's evaluation needs beyond
// the Bundle itself (spec.md §6 "Per-frame inputs" plus the borrowed
// collaborators §3's "Ownership" paragraph lists individually: slot
// reader, source-field provider, domain-count function, optional
// per-element id vector, optional tracers).
type FrameInputs struct {
	Context      signal.RuntimeContext
	Slots        signal.SlotReader
	Source       field.SourceProvider
	DomainCount  field.DomainCounter
	ElementIds   []int
	SignalTracer signal.Tracer
	FieldTracer  field.Tracer
}

// Environment is the per-frame handle returned by Bundle.NewFrame. It
// borrows the Bundle's persistent resources and the frame's inputs; its
// EvalSig/Materialize/Reduce/PlanSink/ExecuteSink methods are the module's
// public entry points, and ReleaseFrame is the end-of-frame cleanup.
type Environment struct {
	bundle       *Bundle
	signalEnv    *signal.Env
	fieldEnv     *field.Env
	materializer *field.Materializer
}

// NewFrame advances the Bundle's frame cache and assembles a fresh
// Environment over it — the single call a caller makes per frame
// instead of hand-wiring a signal.Env and field.Env individually.
func (b *Bundle) NewFrame(in FrameInputs) *Environment {
	b.frameId++
	b.cache.Advance(b.frameId)

	signalEnv := &signal.Env{
		Cache:          b.cache,
		ConstPool:      b.constPool,
		TransformTable: b.transforms,
		State:          b.state,
		Closures:       b.closures,
		Slots:          in.Slots,
		Context:        in.Context,
		Tracer:         in.SignalTracer,
	}

	fieldEnv := &field.Env{
		Pool:           b.pool,
		ConstPool:      b.constPool,
		TransformTable: b.transforms,
		Signals:        signalEnv,
		SignalNodes:    b.signalNodes,
		Source:         in.Source,
		DomainCount:    in.DomainCount,
		ElementIds:     in.ElementIds,
		Tracer:         in.FieldTracer,
	}

	return &Environment{
		bundle:    b,
		signalEnv: signalEnv,
		fieldEnv:  fieldEnv,
		materializer: &field.Materializer{
			Nodes: b.fieldNodes,
			Env:   fieldEnv,
		},
	}
}

// EvalSig evaluates a signal expression to a scalar (spec.md §4.1
// "evalSig(nodeId, env) → f64").
func (e *Environment) EvalSig(id ir.SigExprId) (float64, error) {
	return signal.EvalSig(id, e.signalEnv, e.bundle.signalNodes)
}

// Materialize produces a dense typed buffer for a field request
// (spec.md §4.2 "materialize(request, env) → BufferView").
func (e *Environment) Materialize(req field.Request) (*api.BufferView, error) {
	return e.materializer.Materialize(req)
}

// Reduce folds a materialized field down to a scalar — the field→signal
// bridge paired with Broadcast's signal→field direction.
func (e *Environment) Reduce(fieldId ir.FieldId, domainId int, mode ir.CombineMode) (float64, error) {
	return e.materializer.Reduce(fieldId, domainId, mode)
}

// PlanSink infers formats/layouts for a render sink's field inputs
// (spec.md §4.2 "Render-Sink Planner").
func (e *Environment) PlanSink(req field.SinkRequest) field.RenderSinkPlan {
	return e.materializer.PlanSink(req)
}

// ExecuteSink runs a previously computed sink plan, producing the
// render output (spec.md §6 "Render output").
func (e *Environment) ExecuteSink(plan field.RenderSinkPlan) (*field.RenderOutput, error) {
	return e.materializer.Execute(plan)
}

// ReleaseFrame returns every in-use buffer to the pool and clears the
// per-frame field cache (spec.md §4.2 "releaseFrame"). It must be
// called once per frame, after the caller has finished reading any
// buffers Materialize returned this frame.
func (e *Environment) ReleaseFrame() {
	e.fieldEnv.ReleaseFrame()
}

// NopTracer implements both signal.Tracer and field.Tracer as no-ops,
// for callers that want the tracer plumbing wired but don't want to pay
// for a CountingTracer or write their own.
type NopTracer struct{}

func (NopTracer) BusCombine(ir.SigExprId, int, []float64, ir.CombineMode, float64)   {}
func (NopTracer) TransformStep(ir.SigExprId, int, int, ir.StepKind, float64)         {}
func (NopTracer) TransformSummary(ir.SigExprId, int, float64, float64)               {}
func (NopTracer) ClosureBridge(ir.SigExprId, string, float64, int64)                 {}
func (NopTracer) Materialize(ir.FieldId, int, int, api.Format, string)               {}
