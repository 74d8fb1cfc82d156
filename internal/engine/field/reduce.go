package field

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// Reduce materializes fieldId over domainId and folds its elements down
// to a single scalar — the field→signal bridge paired with Broadcast's
// signal→field direction. Sum/Average/Min/Max/Product mirror the
// combine-mode semantics shared with busCombine; First/Last have no
// meaningful element order here and are rejected.
func (m *Materializer) Reduce(fieldId ir.FieldId, domainId int, mode ir.CombineMode) (float64, error) {
	if mode == ir.CombineFirst || mode == ir.CombineLast {
		return 0, api.NewError(api.KindUnknownCombineMode, int64(mode))
	}

	buf, err := m.materializeField(fieldId, domainId)
	if err != nil {
		return 0, err
	}

	n, err := m.Env.DomainCount(domainId)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return reduceEmpty(mode), nil
	}

	acc := getScalar(buf, 0)
	for i := 1; i < n; i++ {
		v := getScalar(buf, i)
		switch mode {
		case ir.CombineSum, ir.CombineAverage:
			acc += v
		case ir.CombineMin:
			acc = math.Min(acc, v)
		case ir.CombineMax:
			acc = math.Max(acc, v)
		case ir.CombineProduct:
			acc *= v
		}
	}
	if mode == ir.CombineAverage {
		acc /= float64(n)
	}
	return acc, nil
}

func reduceEmpty(mode ir.CombineMode) float64 {
	if mode == ir.CombineProduct {
		return 1
	}
	return 0
}
