package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// TestCombineLaws verifies spec.md §8 property 6 on an arbitrary vector.
func TestCombineLaws(t *testing.T) {
	values := []float64{10, 20, 30, 5, 100}

	sum, err := Combine(ir.CombineSum, values)
	require.NoError(t, err)

	avg, err := Combine(ir.CombineAverage, values)
	require.NoError(t, err)
	require.InDelta(t, sum/float64(len(values)), avg, 1e-9)

	min, err := Combine(ir.CombineMin, values)
	require.NoError(t, err)
	for _, v := range values {
		require.LessOrEqual(t, min, v)
	}

	max, err := Combine(ir.CombineMax, values)
	require.NoError(t, err)
	for _, v := range values {
		require.GreaterOrEqual(t, max, v)
	}

	first, err := Combine(ir.CombineFirst, values)
	require.NoError(t, err)
	require.Equal(t, values[0], first)

	last, err := Combine(ir.CombineLast, values)
	require.NoError(t, err)
	require.Equal(t, values[len(values)-1], last)
}

func TestCombineProduct(t *testing.T) {
	v, err := Combine(ir.CombineProduct, []float64{2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 24.0, v)
}

func TestCombineAverageScenario(t *testing.T) {
	// spec.md S3: 3 terms 10,20,30, mode average -> 20.
	v, err := Combine(ir.CombineAverage, []float64{10, 20, 30})
	require.NoError(t, err)
	require.Equal(t, 20.0, v)
}
