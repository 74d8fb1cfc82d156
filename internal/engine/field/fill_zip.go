package field

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// fillZip materializes both inputs and applies op element-wise (spec.md
// §4.2 "Zip"). Scalar Div/Mod do NOT special-case zero here — see
// DESIGN.md Open Question 2: this is an intentional divergence from the
// signal evaluator's zero-fallback, kept because vectorized buffer code
// must not branch per element.
func (m *Materializer) fillZip(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	a, err := m.materializeField(node.A, req.DomainId)
	if err != nil {
		return err
	}
	b, err := m.materializeField(node.B, req.DomainId)
	if err != nil {
		return err
	}

	switch node.ZipOp {
	case ir.ZipAdd, ir.ZipSub, ir.ZipMul, ir.ZipDiv, ir.ZipMin, ir.ZipMax, ir.ZipPow, ir.ZipMod:
		for i := 0; i < n; i++ {
			x, y := getScalar(a, i), getScalar(b, i)
			setScalar(out, i, applyScalarZip(node.ZipOp, x, y))
		}
	case ir.ZipVec2Add, ir.ZipVec2Sub, ir.ZipVec2Mul, ir.ZipVec2Div:
		for i := 0; i < n; i++ {
			ax, ay := getVec2(a, i)
			bx, by := getVec2(b, i)
			rx, ry := applyVec2Zip(node.ZipOp, ax, ay, bx, by)
			setVec2(out, i, rx, ry)
		}
	default:
		return api.NewError(api.KindUnknownOpCode, int64(node.ZipOp))
	}
	return nil
}

func applyScalarZip(op ir.ZipOp, x, y float64) float64 {
	switch op {
	case ir.ZipAdd:
		return x + y
	case ir.ZipSub:
		return x - y
	case ir.ZipMul:
		return x * y
	case ir.ZipDiv:
		return x / y
	case ir.ZipMin:
		return math.Min(x, y)
	case ir.ZipMax:
		return math.Max(x, y)
	case ir.ZipPow:
		return math.Pow(x, y)
	case ir.ZipMod:
		return math.Mod(x, y)
	}
	return math.NaN()
}

func applyVec2Zip(op ir.ZipOp, ax, ay, bx, by float64) (float64, float64) {
	switch op {
	case ir.ZipVec2Add:
		return ax + bx, ay + by
	case ir.ZipVec2Sub:
		return ax - bx, ay - by
	case ir.ZipVec2Mul:
		return ax * bx, ay * by
	case ir.ZipVec2Div:
		return ax / bx, ay / by
	}
	return math.NaN(), math.NaN()
}
