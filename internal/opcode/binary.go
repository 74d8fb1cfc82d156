package opcode

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// Binary applies a binary opcode to (x, y) under the scalar evaluator's
// safe-default policy: Div and Mod by zero return 0 rather than
// Inf/NaN/panicking (spec.md §4.1). The field materializer's Zip kernels
// intentionally do NOT go through this function for Div/Mod — see
// DESIGN.md Open Question 2 for why that divergence is kept.
func Binary(op ir.BinaryOp, x, y float64) (float64, error) {
	switch op {
	case ir.BinaryAdd:
		return x + y, nil
	case ir.BinarySub:
		return x - y, nil
	case ir.BinaryMul:
		return x * y, nil
	case ir.BinaryDiv:
		if y == 0 {
			return 0, nil
		}
		return x / y, nil
	case ir.BinaryMod:
		if y == 0 {
			return 0, nil
		}
		return math.Mod(x, y), nil
	case ir.BinaryPow:
		return math.Pow(x, y), nil
	case ir.BinaryMin:
		return math.Min(x, y), nil
	case ir.BinaryMax:
		return math.Max(x, y), nil
	case ir.BinaryAtan2:
		return math.Atan2(x, y), nil
	}
	return 0, api.NewError(api.KindUnknownOpCode, int64(op))
}
