package opcode

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// Combine folds a non-empty vector of already-evaluated term values per
// mode (spec.md §4.1 "Combine modes"). Callers handle the empty/single
// term short-circuits themselves (spec.md: empty ⇒ default, single ⇒ the
// term itself, neither case traced) since those decisions also control
// whether a trace is emitted — a concern this pure function has no
// business making.
func Combine(mode ir.CombineMode, values []float64) (float64, error) {
	switch mode {
	case ir.CombineSum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum, nil
	case ir.CombineAverage:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values)), nil
	case ir.CombineMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	case ir.CombineMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	case ir.CombineFirst:
		return values[0], nil
	case ir.CombineLast:
		return values[len(values)-1], nil
	case ir.CombineProduct:
		p := 1.0
		for _, v := range values {
			p *= v
		}
		return p, nil
	}
	return 0, api.NewError(api.KindUnknownCombineMode, int64(mode))
}
