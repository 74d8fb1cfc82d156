package signal

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/closurereg"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/opcode"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/transformchain"
)

// signalStepEvaluator wires transformchain.Apply's callback contract to
// this package's opcode table, easing table, and state buffer.
type signalStepEvaluator struct {
	env *Env
}

func (s *signalStepEvaluator) Ease(curveId int, t float64) (float64, error) {
	return opcode.Ease(opcode.EasingCurve(curveId), t)
}

func (s *signalStepEvaluator) Unary(op ir.UnaryOp, x float64) (float64, error) {
	return opcode.Unary(op, x)
}

func (s *signalStepEvaluator) Slew(stateOffset int, target, deltaSec, rate float64) float64 {
	return slew(s.env, stateOffset, target, deltaSec, rate)
}

func applyChain(chain *ir.TransformChain, x, deltaSec float64, ev transformchain.StepEvaluator, trace func(int, ir.StepKind, float64)) (float64, error) {
	return transformchain.Apply(chain, x, deltaSec, ev, trace)
}

func legacyContext(ctx RuntimeContext) closurereg.LegacyContext {
	return closurereg.LegacyContext{
		DeltaSec:   ctx.DeltaSec,
		DeltaMs:    ctx.DeltaMs(),
		FrameIndex: ctx.FrameIndex,
	}
}
