// Package signal implements the SignalExpr Evaluator: a memoizing DAG
// interpreter for scalar, time-varying expressions (spec.md §4.1). The
// dispatch loop below follows the same callNativeFunc shape: a switch
// over a closed kind enum, frame-local reads/writes, explicit error
// returns instead of exceptions — adapted from a linear bytecode
// program-counter loop to a recursive memoized tree walk because this IR
// is a DAG of named nodes, not a branch-driven instruction stream.
package signal

import (
	"time"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/opcode"
)

// evaluator carries the per-call state threaded through the recursive
// walk: the borrowed env and the node array being walked. Not exported —
// EvalSig is the only public entry point, matching spec.md's "one
// operation" contract.
type evaluator struct {
	env   *Env
	nodes []ir.SignalNode
}

// EvalSig evaluates the scalar rooted at rootId against env, returning a
// finite-or-not numeric value (NaN/Inf propagate; they are not errors)
// and memoizing every visited node into env.Cache (spec.md §4.1).
func EvalSig(rootId ir.SigExprId, env *Env, nodes []ir.SignalNode) (float64, error) {
	ev := &evaluator{env: env, nodes: nodes}
	return ev.eval(rootId)
}

func (ev *evaluator) eval(id ir.SigExprId) (float64, error) {
	if id < 0 || int(id) >= len(ev.nodes) {
		return 0, api.NewError(api.KindInvalidNodeId, int64(id))
	}
	idx := int(id)
	if ev.env.Cache.IsCached(idx) {
		return ev.env.Cache.GetCached(idx), nil
	}

	node := &ev.nodes[idx]
	result, err := ev.dispatch(id, node)
	if err != nil {
		return 0, err
	}
	ev.env.Cache.SetCached(idx, result)
	return result, nil
}

func (ev *evaluator) dispatch(id ir.SigExprId, node *ir.SignalNode) (float64, error) {
	switch node.Kind {
	case ir.NodeConst:
		return ev.env.ConstPool.Number(node.ConstId)
	case ir.NodeTimeAbsMs:
		return ev.env.Context.TAbsMs, nil
	case ir.NodeTimeModelMs:
		return ev.env.tModelMs(), nil
	case ir.NodePhase01:
		return ev.env.phase01(), nil
	case ir.NodeWrapEvent:
		if ev.env.Context.WrapOccurred {
			return 1, nil
		}
		return 0, nil
	case ir.NodeInputSlot:
		return ev.env.Slots.ReadNumber(node.Slot), nil
	case ir.NodeMap:
		x, err := ev.eval(node.Src)
		if err != nil {
			return 0, err
		}
		return opcode.Unary(node.Fn, x)
	case ir.NodeZip:
		a, err := ev.eval(node.A)
		if err != nil {
			return 0, err
		}
		b, err := ev.eval(node.B)
		if err != nil {
			return 0, err
		}
		return opcode.Binary(node.ZipFn, a, b)
	case ir.NodeSelect:
		return ev.evalSelect(node)
	case ir.NodeBusCombine:
		return ev.evalBusCombine(id, node)
	case ir.NodeTransform:
		return ev.evalTransform(id, node)
	case ir.NodeStateful:
		return ev.evalStateful(node)
	case ir.NodeClosureBridge:
		return ev.evalClosureBridge(id, node)
	case ir.NodeClosure:
		if node.ClosureFn == nil {
			return 0, api.NewError(api.KindMissingClosure, int64(id))
		}
		ctx := ev.env.Context
		return node.ClosureFn(ctx.TAbsMs, ctx.DeltaSec, ctx.DeltaMs(), ctx.FrameIndex), nil
	}
	return 0, api.NewError(api.KindUnknownNodeKind, int64(node.Kind))
}

func (ev *evaluator) evalSelect(node *ir.SignalNode) (float64, error) {
	cond, err := ev.eval(node.Cond)
	if err != nil {
		return 0, err
	}
	// The untaken branch must not be evaluated: this is the correctness
	// contract that lets compiled graphs write select(x>0, 1/x, 0)
	// without risking a divide somewhere the compiler never sees.
	if cond > 0.5 {
		return ev.eval(node.T)
	}
	return ev.eval(node.F)
}

func (ev *evaluator) evalBusCombine(id ir.SigExprId, node *ir.SignalNode) (float64, error) {
	terms := node.Terms
	if len(terms) == 0 {
		if node.Combine.Default != nil {
			return *node.Combine.Default, nil
		}
		return 0, nil
	}
	if len(terms) == 1 {
		return ev.eval(terms[0].SigId)
	}
	if node.Combine.Mode == ir.CombineProduct {
		return 0, api.NewError(api.KindUnknownCombineMode, int64(node.Combine.Mode))
	}
	// Terms are pre-sorted by the compiler; the runtime must never
	// reorder them (see DESIGN.md Open Question 1).
	values := make([]float64, len(terms))
	for i, term := range terms {
		v, err := ev.eval(term.SigId)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	result, err := opcode.Combine(node.Combine.Mode, values)
	if err != nil {
		return 0, err
	}
	if ev.env.Tracer != nil {
		ev.env.Tracer.BusCombine(id, node.BusIndex, values, node.Combine.Mode, result)
	}
	return result, nil
}

func (ev *evaluator) evalTransform(id ir.SigExprId, node *ir.SignalNode) (float64, error) {
	in, err := ev.eval(node.Src)
	if err != nil {
		return 0, err
	}
	chain, err := ev.env.TransformTable.Chain(node.ChainId)
	if err != nil {
		return 0, err
	}
	stepEval := &signalStepEvaluator{env: ev.env}
	var traceFn func(int, ir.StepKind, float64)
	if ev.env.Tracer != nil {
		traceFn = func(stepIdx int, kind ir.StepKind, out float64) {
			ev.env.Tracer.TransformStep(id, node.ChainId, stepIdx, kind, out)
		}
	}
	out, err := applyChain(chain, in, ev.env.Context.DeltaSec, stepEval, traceFn)
	if err != nil {
		return 0, err
	}
	if ev.env.Tracer != nil {
		ev.env.Tracer.TransformSummary(id, node.ChainId, in, out)
	}
	return out, nil
}

func (ev *evaluator) evalClosureBridge(id ir.SigExprId, node *ir.SignalNode) (float64, error) {
	// Pre-evaluate every input slot for cache correctness. The closure
	// itself does not receive these values: it is called with tAbsMs and
	// the legacy timing context only.
	for _, slotNode := range node.InputSlots {
		if _, err := ev.eval(slotNode); err != nil {
			return 0, err
		}
	}
	fn, err := ev.env.Closures.Lookup(node.ClosureId)
	if err != nil {
		return 0, err
	}
	ctx := ev.env.Context
	legacy := legacyContext(ctx)
	execNanos := int64(-1)
	var start time.Time
	if ev.env.Tracer != nil {
		start = time.Now()
	}
	result := fn(ctx.TAbsMs, legacy)
	if ev.env.Tracer != nil {
		execNanos = time.Since(start).Nanoseconds()
		ev.env.Tracer.ClosureBridge(id, node.ClosureId, result, execNanos)
	}
	return result, nil
}
