package opcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

func TestUnary(t *testing.T) {
	t.Run("sin", func(t *testing.T) {
		v, err := Unary(ir.UnarySin, math.Pi/2)
		require.NoError(t, err)
		require.InDelta(t, 1.0, v, 1e-9)
	})

	t.Run("sign", func(t *testing.T) {
		v, err := Unary(ir.UnarySign, 5)
		require.NoError(t, err)
		require.Equal(t, 1.0, v)

		v, err = Unary(ir.UnarySign, -5)
		require.NoError(t, err)
		require.Equal(t, -1.0, v)

		v, err = Unary(ir.UnarySign, 0)
		require.NoError(t, err)
		require.Equal(t, 0.0, v)
	})

	t.Run("fract", func(t *testing.T) {
		v, err := Unary(ir.UnaryFract, 3.75)
		require.NoError(t, err)
		require.InDelta(t, 0.75, v, 1e-9)
	})

	t.Run("unknown opcode errors", func(t *testing.T) {
		_, err := Unary(ir.UnaryOp(255), 0)
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, api.KindUnknownOpCode, apiErr.Kind)
	})
}

func TestMustUnary(t *testing.T) {
	require.Equal(t, 4.0, MustUnary(ir.UnaryAbs, -4))

	require.Panics(t, func() {
		MustUnary(ir.UnaryOp(255), 0)
	})
}
