package field

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// fillMapIndexed evaluates node.Signals once, then fills each element
// with an index-parameterized kernel (spec.md §4.2 "MapIndexed"). An
// unknown function name falls back to normalizedIndex, per spec.md.
func (m *Materializer) fillMapIndexed(out *api.BufferView, n int, node *ir.FieldNode) error {
	sigVals := make([]float64, len(node.Signals))
	for i, sigId := range node.Signals {
		v, err := m.Env.evalSignal(sigId)
		if err != nil {
			return err
		}
		sigVals[i] = v
	}

	a, err := m.Env.resolveParam(node.Params.A)
	if err != nil {
		return err
	}
	b, err := m.Env.resolveParam(node.Params.B)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		setScalar(out, i, mapIndexedKernel(node.Fn, i, n, a, b))
	}
	return nil
}

func mapIndexedKernel(fn ir.MapIndexedFn, i, n int, a, b float64) float64 {
	switch fn {
	case ir.MapIndexedLinearInterp:
		return a + (b-a)*normalizedIndex(i, n)
	case ir.MapIndexedNormalizedIndex:
		return normalizedIndex(i, n)
	case ir.MapIndexedHueGradient:
		offset, spread := a, b
		h := offset + (float64(i)/float64(n))*spread
		h = math.Mod(h, 1)
		if h < 0 {
			h += 1
		}
		return h
	}
	return normalizedIndex(i, n)
}

func normalizedIndex(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
