package signal

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// evalStateful dispatches a NodeStateful node to its operator
// implementation (spec.md §4.1 "Stateful operators"). Each operator
// reads/writes a contiguous slab of env.State starting at
// node.Params.StateOffset; offsets inside declared capacity never fail
// to read or write (spec.md §4.1 "Failure semantics").
func (ev *evaluator) evalStateful(node *ir.SignalNode) (float64, error) {
	off := node.Params.StateOffset
	deltaSec := ev.env.Context.DeltaSec

	switch node.StatefulOp {
	case ir.OpIntegrate:
		input, err := ev.eval(node.Input)
		if err != nil {
			return 0, err
		}
		acc := ev.env.State.F64[off] + input*deltaSec
		ev.env.State.F64[off] = acc
		return acc, nil

	case ir.OpSampleHold:
		input, err := ev.eval(node.Input)
		if err != nil {
			return 0, err
		}
		trigger, err := ev.evalTrigger(node)
		if err != nil {
			return 0, err
		}
		held := ev.env.State.F64[off]
		lastTrigger := ev.env.State.F64[off+1]
		if trigger > 0.5 && lastTrigger <= 0.5 {
			held = input
		}
		ev.env.State.F64[off] = held
		ev.env.State.F64[off+1] = trigger
		return held, nil

	case ir.OpSlew:
		target, err := ev.eval(node.Input)
		if err != nil {
			return 0, err
		}
		rate := 1.0
		if node.Params.Rate != nil {
			rate = *node.Params.Rate
		}
		return slew(ev.env, off, target, deltaSec, rate), nil

	case ir.OpDelayMs:
		return ev.evalDelayMs(node)

	case ir.OpDelayFrames:
		return ev.evalDelayFrames(node)

	case ir.OpEdgeDetectWrap:
		// Phase-threshold heuristic, independent of the NodeWrapEvent
		// signal (which reports the environment's WrapOccurred flag).
		phase, err := ev.eval(node.Input)
		if err != nil {
			return 0, err
		}
		prev := ev.env.State.F64[off]
		ev.env.State.F64[off] = phase
		if prev > 0.8 && phase < 0.2 {
			return 1, nil
		}
		return 0, nil

	case ir.OpPulseDivider:
		phase, err := ev.eval(node.Input)
		if err != nil {
			return 0, err
		}
		divisions := 4.0
		if node.Params.Divisions != nil {
			divisions = *node.Params.Divisions
		}
		sub := math.Floor(phase * divisions)
		last := ev.env.State.F64[off]
		ev.env.State.F64[off] = sub
		if sub != last {
			return 1, nil
		}
		return 0, nil

	case ir.OpEnvelopeAD:
		return ev.evalEnvelopeAD(node)
	}
	return 0, api.NewError(api.KindUnknownOpCode, int64(node.StatefulOp))
}

// evalTrigger evaluates the signal named by node.Params.Trigger,
// returning MissingTriggerParam if the op requires one and none was
// wired (spec.md: "Trigger signal id in params.trigger; missing ⇒
// error").
func (ev *evaluator) evalTrigger(node *ir.SignalNode) (float64, error) {
	if node.Params.Trigger == nil {
		return 0, api.NewError(api.KindMissingTriggerParam, int64(node.StatefulOp))
	}
	return ev.eval(*node.Params.Trigger)
}

func slew(env *Env, off int, target, deltaSec, rate float64) float64 {
	current := env.State.F64[off]
	alpha := 1 - math.Exp(-rate*deltaSec)
	current += (target - current) * alpha
	env.State.F64[off] = current
	return current
}

func (ev *evaluator) evalDelayMs(node *ir.SignalNode) (float64, error) {
	off := node.Params.StateOffset
	input, err := ev.eval(node.Input)
	if err != nil {
		return 0, err
	}
	delayMs := 100.0
	if node.Params.DelayMs != nil {
		delayMs = *node.Params.DelayMs
	}
	bufferSize := 64
	if node.Params.BufferSize != nil {
		bufferSize = *node.Params.BufferSize
	}
	deltaMs := ev.env.Context.DeltaMs()

	write := int(ev.env.State.I32[off])
	ring := ev.env.State.F64[off+1 : off+1+bufferSize]

	readOffset := bufferSize - 1
	if deltaMs > 0 {
		ro := int(math.Floor(delayMs / deltaMs))
		if ro < readOffset {
			readOffset = ro
		}
	}
	readIdx := ((write+bufferSize-readOffset)%bufferSize + bufferSize) % bufferSize
	result := ring[readIdx]

	ring[write] = input
	ev.env.State.I32[off] = int32((write + 1) % bufferSize)
	return result, nil
}

func (ev *evaluator) evalDelayFrames(node *ir.SignalNode) (float64, error) {
	off := node.Params.StateOffset
	input, err := ev.eval(node.Input)
	if err != nil {
		return 0, err
	}
	delayFrames := 1
	if node.Params.DelayFrames != nil {
		delayFrames = *node.Params.DelayFrames
	}
	size := delayFrames + 1

	write := int(ev.env.State.I32[off])
	ring := ev.env.State.F64[off+1 : off+1+size]

	readIdx := (write + 1) % size
	result := ring[readIdx]

	ring[write] = input
	ev.env.State.I32[off] = int32((write + 1) % size)
	return result, nil
}

func (ev *evaluator) evalEnvelopeAD(node *ir.SignalNode) (float64, error) {
	off := node.Params.StateOffset
	trigger, err := ev.evalTrigger(node)
	if err != nil {
		return 0, err
	}
	attack := 50.0
	if node.Params.AttackMs != nil {
		attack = *node.Params.AttackMs
	}
	decay := 500.0
	if node.Params.DecayMs != nil {
		decay = *node.Params.DecayMs
	}
	peak := 1.0
	if node.Params.Peak != nil {
		peak = *node.Params.Peak
	}

	triggerTime := ev.env.State.F64[off]
	wasTriggered := ev.env.State.F64[off+1]
	tAbsMs := ev.env.Context.TAbsMs

	if trigger > 0.5 && wasTriggered <= 0.5 {
		triggerTime = tAbsMs
		ev.env.State.F64[off] = triggerTime
	}
	ev.env.State.F64[off+1] = trigger

	elapsed := tAbsMs - triggerTime
	switch {
	case elapsed < 0:
		return 0, nil
	case elapsed < attack:
		if attack == 0 {
			return peak, nil
		}
		return peak * (elapsed / attack), nil
	case elapsed < attack+decay:
		if decay == 0 {
			return 0, nil
		}
		return peak * (1 - (elapsed-attack)/decay), nil
	default:
		return 0, nil
	}
}
