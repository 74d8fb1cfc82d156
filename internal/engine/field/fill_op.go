package field

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/opcode"
)

// fillOp materializes the source field and applies a single unary kernel
// element-wise (spec.md §4.2 "Op"). Every named parameter may itself be
// signal-backed; each is resolved once, before the per-element loop runs.
func (m *Materializer) fillOp(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	src, err := m.materializeField(node.Src, req.DomainId)
	if err != nil {
		return err
	}

	if out.Format == api.FormatVec2F32 {
		return m.fillVec2Op(out, n, src, node)
	}

	a, err := m.Env.resolveParam(node.Params.A)
	if err != nil {
		return err
	}
	b, err := m.Env.resolveParam(node.Params.B)
	if err != nil {
		return err
	}
	k, err := m.Env.resolveParam(node.Params.K)
	if err != nil {
		return err
	}
	seed, err := m.Env.resolveParam(node.Params.Seed)
	if err != nil {
		return err
	}

	var zipSig float64
	if node.ScalarOp == ir.FieldOpZipSignal {
		zipSig, err = m.Env.evalSignal(node.Params.ZipSigId)
		if err != nil {
			return err
		}
	}

	for i := 0; i < n; i++ {
		x := getScalar(src, i)
		setScalar(out, i, scalarFieldKernel(node.ScalarOp, x, a, b, k, seed, zipSig, node.Params.ZipOpKind, m.elementId(i)))
	}
	return nil
}

// elementId returns the per-element id used by hash01ById, falling back
// to the element's position when no id vector is bound.
func (m *Materializer) elementId(i int) int {
	if m.Env.ElementIds != nil && i < len(m.Env.ElementIds) {
		return m.Env.ElementIds[i]
	}
	return i
}

func scalarFieldKernel(op ir.ScalarFieldOp, x, a, b, k, seed, zipSig float64, zipOp ir.ZipSignalOp, elemId int) float64 {
	switch op {
	case ir.FieldOpIdentity:
		return x
	case ir.FieldOpNegate:
		return -x
	case ir.FieldOpAbs:
		return math.Abs(x)
	case ir.FieldOpFloor:
		return math.Floor(x)
	case ir.FieldOpCeil:
		return math.Ceil(x)
	case ir.FieldOpRound:
		return math.Round(x)
	case ir.FieldOpSin:
		return math.Sin(x)
	case ir.FieldOpCos:
		return math.Cos(x)
	case ir.FieldOpTanh:
		return math.Tanh(x)
	case ir.FieldOpSqrt:
		return math.Sqrt(x)
	case ir.FieldOpExp:
		return math.Exp(x)
	case ir.FieldOpLog:
		return math.Log(x)
	case ir.FieldOpSmoothstep:
		return opcode.Smoothstep(a, b, x)
	case ir.FieldOpClamp:
		return opcode.Clamp(x, a, b)
	case ir.FieldOpScale:
		return x * k
	case ir.FieldOpOffset:
		return x + k
	case ir.FieldOpHash01ById:
		return hash01(elemId, seed)
	case ir.FieldOpZipSignal:
		return applyZipSignalOp(zipOp, x, zipSig)
	}
	return x
}

func applyZipSignalOp(op ir.ZipSignalOp, x, sig float64) float64 {
	switch op {
	case ir.ZipSignalAdd:
		return x + sig
	case ir.ZipSignalSub:
		return x - sig
	case ir.ZipSignalMul:
		return x * sig
	case ir.ZipSignalMin:
		return math.Min(x, sig)
	case ir.ZipSignalMax:
		return math.Max(x, sig)
	}
	return x
}

// hash01 derives a deterministic pseudo-random value in [0,1) from an
// element id and seed, using a multiply/xorshift integer mix.
func hash01(id int, seed float64) float64 {
	h := uint64(id)*0x9E3779B97F4A7C15 + uint64(seed*1000003)
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return float64(h%1_000_000) / 1_000_000
}

func (m *Materializer) fillVec2Op(out *api.BufferView, n int, src *api.BufferView, node *ir.FieldNode) error {
	cx, err := m.Env.resolveParam(node.Params.CenterX)
	if err != nil {
		return err
	}
	cy, err := m.Env.resolveParam(node.Params.CenterY)
	if err != nil {
		return err
	}
	angle, err := m.Env.resolveParam(node.Params.Angle)
	if err != nil {
		return err
	}
	sx, err := m.Env.resolveParam(node.Params.ScaleX)
	if err != nil {
		return err
	}
	sy, err := m.Env.resolveParam(node.Params.ScaleY)
	if err != nil {
		return err
	}
	ox, err := m.Env.resolveParam(node.Params.OffsetX)
	if err != nil {
		return err
	}
	oy, err := m.Env.resolveParam(node.Params.OffsetY)
	if err != nil {
		return err
	}
	phase, err := m.Env.resolveParam(node.Params.Phase)
	if err != nil {
		return err
	}
	amount, err := m.Env.resolveParam(node.Params.Amount)
	if err != nil {
		return err
	}
	freq, err := m.Env.resolveParam(node.Params.Frequency)
	if err != nil {
		return err
	}

	rad := angle * math.Pi / 180
	s, c := math.Sin(rad), math.Cos(rad)

	// jitterVec2 reads a scalar source (one value per element, r ∈ roughly
	// [0,1)) and produces (cos θ·m, sin θ·m) with θ = 2π·r — it never
	// touches the vec2 getters the other ops below share.
	if node.Vec2Op == ir.Vec2OpJitter {
		for i := 0; i < n; i++ {
			r := getScalar(src, i)
			theta := 2 * math.Pi * r
			mag := amount * math.Sin(phase+freq*float64(i))
			setVec2(out, i, math.Cos(theta)*mag, math.Sin(theta)*mag)
		}
		return nil
	}

	for i := 0; i < n; i++ {
		x, y := getVec2(src, i)
		var rx, ry float64
		switch node.Vec2Op {
		case ir.Vec2OpRotate:
			dx, dy := x-cx, y-cy
			rx, ry = cx+dx*c-dy*s, cy+dx*s+dy*c
		case ir.Vec2OpScale:
			rx, ry = cx+(x-cx)*sx, cy+(y-cy)*sy
		case ir.Vec2OpTranslate:
			rx, ry = x+ox, y+oy
		case ir.Vec2OpReflect:
			rx, ry = 2*cx-x, 2*cy-y
		default:
			rx, ry = x, y
		}
		setVec2(out, i, rx, ry)
	}
	return nil
}
