// Package transformchain implements the Transform Chain Table: a
// read-only, id-addressed table of pre-compiled scalar post-processing
// pipelines (spec.md §2, §3, §4.1 "Transform step semantics").
package transformchain

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// Table is the read-only chain table, indexed by chainId.
type Table struct {
	chains []ir.TransformChain
}

// NewTable builds a table from a slice of chains, indexed by position.
func NewTable(chains []ir.TransformChain) *Table {
	return &Table{chains: chains}
}

// Chain returns the chain at id, or InvalidChainId if out of range.
func (t *Table) Chain(id int) (*ir.TransformChain, error) {
	if id < 0 || id >= len(t.chains) {
		return nil, api.NewError(api.KindInvalidChainId, int64(id))
	}
	return &t.chains[id], nil
}

// StepEvaluator is the callback the transform chain needs from its
// caller to apply non-trivial steps: ease lookups (separate table),
// unary opcode application, and persistent slew state. Kept as an
// interface rather than threading concrete types through Apply so
// internal/engine/signal and internal/engine/field can each supply their
// own wiring (the field materializer currently has no Transform handle
// implementation — spec.md §4.2 reserves it — but the chain table itself
// is shared).
type StepEvaluator interface {
	Ease(curveId int, t float64) (float64, error)
	Unary(op ir.UnaryOp, x float64) (float64, error)
	Slew(stateOffset int, target, deltaSec, rate float64) float64
}

// Apply runs chain's steps over x in pipeline order, returning the final
// value. An empty chain is the identity (spec.md §3: "Empty chain is
// identity"). trace, if non-nil, is called after every step with the
// step index and the value leaving it.
func Apply(chain *ir.TransformChain, x float64, deltaSec float64, ev StepEvaluator, trace func(stepIdx int, kind ir.StepKind, out float64)) (float64, error) {
	for i, step := range chain.Steps {
		var err error
		switch step.Kind {
		case ir.StepScaleBias:
			x = x*step.Scale + step.Bias
		case ir.StepNormalize:
			switch step.Mode {
			case ir.NormalizeUnit:
				x = clamp(x, 0, 1)
			case ir.NormalizeSymmetric:
				x = clamp(x, -1, 1)
			}
		case ir.StepQuantize:
			x = quantize(x, step.Quantum)
		case ir.StepEase:
			x, err = ev.Ease(step.CurveId, x)
		case ir.StepMap:
			x, err = ev.Unary(step.MapFn, x)
		case ir.StepSlew:
			rate := step.SlewRate
			if rate == 0 {
				rate = 1
			}
			x = ev.Slew(step.StateOffset, x, deltaSec, rate)
		case ir.StepCast:
			err = api.NewError(api.KindUnsupportedStepKind, int64(step.Kind))
		default:
			err = api.NewError(api.KindUnknownStepKind, int64(step.Kind))
		}
		if err != nil {
			return 0, err
		}
		if trace != nil {
			trace(i, step.Kind, x)
		}
	}
	return x, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func quantize(x, step float64) float64 {
	if step == 0 {
		return x
	}
	return math.Round(x/step) * step
}
