// Package opcode implements the OpCode Registry and Easing Curve Table:
// pure unary/binary/ternary numeric functions and the 7 built-in easing
// curves, with explicit safe-default policies (e.g. divide-by-zero → 0
// for the scalar evaluator). Dispatch is a plain switch over the closed
// enum, a giant callNativeFunc-style switch rather than a map of
// function pointers — idiomatic for a fixed, compile-time-known op set.
package opcode

import (
	"fmt"
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// Unary applies a unary opcode to x. Returns UnknownOpCode if op is not
// one of the closed set in ir.UnaryOp.
func Unary(op ir.UnaryOp, x float64) (float64, error) {
	switch op {
	case ir.UnarySin:
		return math.Sin(x), nil
	case ir.UnaryCos:
		return math.Cos(x), nil
	case ir.UnaryTan:
		return math.Tan(x), nil
	case ir.UnaryAsin:
		return math.Asin(x), nil
	case ir.UnaryAcos:
		return math.Acos(x), nil
	case ir.UnaryAtan:
		return math.Atan(x), nil
	case ir.UnaryAbs:
		return math.Abs(x), nil
	case ir.UnaryFloor:
		return math.Floor(x), nil
	case ir.UnaryCeil:
		return math.Ceil(x), nil
	case ir.UnaryRound:
		return math.Round(x), nil
	case ir.UnaryFract:
		return x - math.Floor(x), nil
	case ir.UnarySign:
		switch {
		case x > 0:
			return 1, nil
		case x < 0:
			return -1, nil
		default:
			return 0, nil
		}
	}
	return 0, api.NewError(api.KindUnknownOpCode, int64(op))
}

// MustUnary panics on an unknown opcode; used where op has already been
// validated by a prior successful call and a second failure would mean a
// defect in this package (BUG-style unreachable).
func MustUnary(op ir.UnaryOp, x float64) float64 {
	v, err := Unary(op, x)
	if err != nil {
		panic(fmt.Errorf("BUG: %w", err))
	}
	return v
}
