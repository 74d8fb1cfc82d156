package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/bufferpool"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/constpool"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/closurereg"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/engine/signal"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/framecache"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/statebuf"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/transformchain"
)

type fakeSources struct {
	bufs map[string]*api.BufferView
}

func (f fakeSources) Source(tag string) (*api.BufferView, bool) {
	b, ok := f.bufs[tag]
	return b, ok
}

func fixedDomain(n int) DomainCounter {
	return func(domainId int) (int, error) { return n, nil }
}

func newMaterializer(nodes []ir.FieldNode, n int) (*Materializer, *constpool.Pool) {
	cp := constpool.New()
	sigEnv := &signal.Env{
		Cache:          framecache.New(16),
		ConstPool:      cp,
		TransformTable: transformchain.NewTable(nil),
		State:          statebuf.New(8, 8, 8),
		Closures:       closurereg.NewRegistry(),
		Slots:          signal.MapSlotReader{},
	}
	env := &Env{
		Pool:        bufferpool.New(),
		ConstPool:   cp,
		Signals:     sigEnv,
		SignalNodes: nil,
		DomainCount: fixedDomain(n),
	}
	return &Materializer{Nodes: nodes, Env: env}, cp
}

func TestFillConstScalarBroadcast(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldConst, Type: api.LayoutScalar}}
	m, cp := newMaterializer(nodes, 5)
	id := cp.AddNumber(7)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: id}

	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Len(t, buf.F32, 5)
	for _, v := range buf.F32 {
		require.Equal(t, float32(7), v)
	}
}

func TestFillConstArray(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldConst, Type: api.LayoutScalar}}
	m, cp := newMaterializer(nodes, 5)
	id := cp.AddArray([]float64{1, 2, 3, 4, 5})
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: id, IsArray: true}

	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3, 4, 5}, buf.F32)
}

func TestFillConstArrayLengthMismatch(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldConst, Type: api.LayoutScalar}}
	m, cp := newMaterializer(nodes, 3)
	id := cp.AddArray([]float64{1, 2})
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: id, IsArray: true}

	_, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.Error(t, err)
}

func TestFillConstQuaternionValidation(t *testing.T) {
	// spec.md §8 property 12, via the const pool's own validation (fillConst delegates to it).
	nodes := []ir.FieldNode{{Kind: ir.FieldConst, Type: api.LayoutQuat}}
	m, cp := newMaterializer(nodes, 2)
	id, err := cp.AddQuat(constpool.Quat{0, 0, 0, 1})
	require.NoError(t, err)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutQuat, ConstId: id}

	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatQuatF32, Layout: api.LayoutQuat})
	require.NoError(t, err)
	require.Len(t, buf.F32, 8) // 2 elements * stride 4
}

func TestFillBroadcastEvaluatesSignalOnce(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldBroadcast, Type: api.LayoutScalar, SigId: 0}}
	m, _ := newMaterializer(nodes, 4)
	m.Env.SignalNodes = []ir.SignalNode{{Kind: ir.NodeConst, ConstId: m.Env.ConstPool.AddNumber(3.5)}}

	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	for _, v := range buf.F32 {
		require.Equal(t, float32(3.5), v)
	}
}

func TestFillSourceSizeMismatch(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldSource, Type: api.LayoutScalar, SourceTag: "pos"}}
	m, _ := newMaterializer(nodes, 5)
	small := api.NewBufferView(api.FormatF32, 2)
	m.Env.Source = fakeSources{bufs: map[string]*api.BufferView{"pos": &small}}

	_, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.Error(t, err)
}

func TestFillSourceCopiesBytes(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldSource, Type: api.LayoutScalar, SourceTag: "pos"}}
	m, _ := newMaterializer(nodes, 3)
	src := api.NewBufferView(api.FormatF32, 3)
	src.F32[0], src.F32[1], src.F32[2] = 1, 2, 3
	m.Env.Source = fakeSources{bufs: map[string]*api.BufferView{"pos": &src}}

	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3}, buf.F32)
}

func TestFillOpScaleAndOffset(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{Kind: ir.FieldOp, Type: api.LayoutScalar, Src: 0, ScalarOp: ir.FieldOpScale, Params: ir.OpParams{K: &ir.ParamRef{Const: 2}}},
	}
	m, cp := newMaterializer(nodes, 3)
	id := cp.AddNumber(5)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: id}

	buf, err := m.Materialize(Request{FieldId: 1, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, []float32{10, 10, 10}, buf.F32)
}

func TestFillOpSmoothstep(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{
			Kind: ir.FieldOp, Type: api.LayoutScalar, Src: 0, ScalarOp: ir.FieldOpSmoothstep,
			Params: ir.OpParams{A: &ir.ParamRef{Const: 0}, B: &ir.ParamRef{Const: 1}},
		},
	}
	m, cp := newMaterializer(nodes, 1)
	id := cp.AddNumber(0.5)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: id}

	buf, err := m.Materialize(Request{FieldId: 1, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.InDelta(t, 0.5, float64(buf.F32[0]), 1e-6)
}

func TestFillOpVec2Rotate(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutVec2},
		{
			Kind: ir.FieldOp, Type: api.LayoutVec2, Src: 0, Vec2Op: ir.Vec2OpRotate,
			Params: ir.OpParams{Angle: &ir.ParamRef{Const: 90}, CenterX: &ir.ParamRef{Const: 0}, CenterY: &ir.ParamRef{Const: 0}},
		},
	}
	m, cp := newMaterializer(nodes, 1)
	id := cp.AddVec2(constpool.Vec{1, 0})
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutVec2, ConstId: id}

	buf, err := m.Materialize(Request{FieldId: 1, DomainId: 0, Format: api.FormatVec2F32, Layout: api.LayoutVec2})
	require.NoError(t, err)
	require.InDelta(t, 0, float64(buf.F32[0]), 1e-5)
	require.InDelta(t, 1, float64(buf.F32[1]), 1e-5)
}

func TestFillOpVec2ReflectIgnoresAngle(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutVec2},
		{
			Kind: ir.FieldOp, Type: api.LayoutVec2, Src: 0, Vec2Op: ir.Vec2OpReflect,
			Params: ir.OpParams{Angle: &ir.ParamRef{Const: 37}, CenterX: &ir.ParamRef{Const: 1}, CenterY: &ir.ParamRef{Const: 1}},
		},
	}
	m, cp := newMaterializer(nodes, 1)
	id := cp.AddVec2(constpool.Vec{3, 5})
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutVec2, ConstId: id}

	buf, err := m.Materialize(Request{FieldId: 1, DomainId: 0, Format: api.FormatVec2F32, Layout: api.LayoutVec2})
	require.NoError(t, err)
	// point reflection about (1,1): p' = 2*center - p = (2-3, 2-5) = (-1,-3)
	require.InDelta(t, -1, float64(buf.F32[0]), 1e-5)
	require.InDelta(t, -3, float64(buf.F32[1]), 1e-5)
}

func TestFillOpVec2JitterFromScalarSource(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{
			Kind: ir.FieldOp, Type: api.LayoutVec2, Src: 0, Vec2Op: ir.Vec2OpJitter,
			Params: ir.OpParams{
				Phase:     &ir.ParamRef{Const: math.Pi / 2},
				Amount:    &ir.ParamRef{Const: 1},
				Frequency: &ir.ParamRef{Const: 0},
			},
		},
	}
	m, cp := newMaterializer(nodes, 2)
	// r values chosen so theta = 2*pi*r lands on pi/2 and 0 respectively;
	// freq=0 holds the magnitude constant at amount*sin(phase) = 1 for
	// both elements.
	id := cp.AddArray([]float64{0.25, 0})
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: id, IsArray: true}

	buf, err := m.Materialize(Request{FieldId: 1, DomainId: 0, Format: api.FormatVec2F32, Layout: api.LayoutVec2})
	require.NoError(t, err)
	// element 0: theta=pi/2 -> (cos,sin)=(0,1)*mag=1 -> (0,1)
	require.InDelta(t, 0, float64(buf.F32[0]), 1e-5)
	require.InDelta(t, 1, float64(buf.F32[1]), 1e-5)
	// element 1: theta=0 -> (cos,sin)=(1,0)*mag=1 -> (1,0)
	require.InDelta(t, 1, float64(buf.F32[2]), 1e-5)
	require.InDelta(t, 0, float64(buf.F32[3]), 1e-5)
}

func TestFillZipDivByZeroProducesInf(t *testing.T) {
	// spec.md §4.2 "Zip": division-by-zero is NaN/Inf here, unlike the
	// signal evaluator's 0-fallback (DESIGN.md Open Question 2).
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{Kind: ir.FieldZip, Type: api.LayoutScalar, A: 0, B: 1, ZipOp: ir.ZipDiv},
	}
	m, cp := newMaterializer(nodes, 1)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(5)}
	nodes[1].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(0)}

	buf, err := m.Materialize(Request{FieldId: 2, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.True(t, buf.F32[0] > 1e30 || buf.F32[0] != buf.F32[0], "expected +Inf (stdlib float32 overflow), got %v", buf.F32[0])
}

func TestFillSelectPerElementNoShortCircuit(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutScalar}, // cond
		{Kind: ir.FieldConst, Type: api.LayoutScalar}, // t
		{Kind: ir.FieldConst, Type: api.LayoutScalar}, // f
		{Kind: ir.FieldSelect, Type: api.LayoutScalar, Cond: 0, T: 1, F: 2},
	}
	m, cp := newMaterializer(nodes, 2)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(1)}
	nodes[1].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(100)}
	nodes[2].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(200)}

	buf, err := m.Materialize(Request{FieldId: 3, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, []float32{100, 100}, buf.F32)
}

func TestFillCombineModes(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{Kind: ir.FieldConst, Type: api.LayoutScalar},
		{Kind: ir.FieldCombine, Type: api.LayoutScalar, Terms: []ir.FieldId{0, 1, 2}, Combine: ir.BusCombineSpec{Mode: ir.CombineProduct}},
	}
	m, cp := newMaterializer(nodes, 1)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(2)}
	nodes[1].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(3)}
	nodes[2].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(4)}

	buf, err := m.Materialize(Request{FieldId: 3, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, float32(24), buf.F32[0])
}

func TestFillCombineEmptyIsZero(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldCombine, Type: api.LayoutScalar, Combine: ir.BusCombineSpec{Mode: ir.CombineSum}}}
	m, _ := newMaterializer(nodes, 3)
	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 0}, buf.F32)
}

func TestFillMapIndexedLinearInterp(t *testing.T) {
	nodes := []ir.FieldNode{
		{
			Kind: ir.FieldMapIndexed, Type: api.LayoutScalar, Fn: ir.MapIndexedLinearInterp,
			Params: ir.OpParams{A: &ir.ParamRef{Const: 0}, B: &ir.ParamRef{Const: 10}},
		},
	}
	m, _ := newMaterializer(nodes, 5)
	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, []float32{0, 2.5, 5, 7.5, 10}, buf.F32)
}

func TestFillMapIndexedNormalizedIndex(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldMapIndexed, Type: api.LayoutScalar, Fn: ir.MapIndexedNormalizedIndex}}
	m, _ := newMaterializer(nodes, 1)
	buf, err := m.Materialize(Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar})
	require.NoError(t, err)
	require.Equal(t, float32(0), buf.F32[0], "N<=1 falls back to 0")
}

// TestReduceSumScenario is spec.md S5: Source [1,2,3,4,5], ReduceSum -> 15.
func TestReduceSumScenario(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldSource, Type: api.LayoutScalar, SourceTag: "pos"}}
	m, _ := newMaterializer(nodes, 5)
	src := api.NewBufferView(api.FormatF32, 5)
	for i, v := range []float32{1, 2, 3, 4, 5} {
		src.F32[i] = v
	}
	m.Env.Source = fakeSources{bufs: map[string]*api.BufferView{"pos": &src}}

	sum, err := m.Reduce(0, 0, ir.CombineSum)
	require.NoError(t, err)
	require.Equal(t, 15.0, sum)
}

// TestMaterializeCaching is spec.md §8 property 10.
func TestMaterializeCaching(t *testing.T) {
	nodes := []ir.FieldNode{{Kind: ir.FieldConst, Type: api.LayoutScalar}}
	m, cp := newMaterializer(nodes, 3)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(1)}

	req := Request{FieldId: 0, DomainId: 0, Format: api.FormatF32, Layout: api.LayoutScalar, UsageTag: "size"}
	a, err := m.Materialize(req)
	require.NoError(t, err)
	b, err := m.Materialize(req)
	require.NoError(t, err)
	require.Same(t, a, b, "identical request within the same frame must return the same buffer instance")

	other := req
	other.UsageTag = "radius"
	c, err := m.Materialize(other)
	require.NoError(t, err)
	require.Same(t, a, c, "usageTag does not change the cache key, only format/fieldId/domainId do")

	diffFormat := req
	diffFormat.Format = api.FormatF64
	d, err := m.Materialize(diffFormat)
	require.NoError(t, err)
	require.NotSame(t, a, d, "different format must yield a different buffer")
}

// TestLayoutInvariants is spec.md §8 property 11.
func TestLayoutInvariants(t *testing.T) {
	cases := []struct {
		format   api.Format
		layout   api.Layout
		stride   int
	}{
		{api.FormatVec2F32, api.LayoutVec2, 2},
		{api.FormatVec3F32, api.LayoutVec3, 3},
		{api.FormatVec4F32, api.LayoutVec4, 4},
		{api.FormatQuatF32, api.LayoutQuat, 4},
		{api.FormatMat4F32, api.LayoutMat4, 16},
	}
	for _, c := range cases {
		nodes := []ir.FieldNode{{Kind: ir.FieldBroadcast, Type: api.LayoutScalar, SigId: 0}}
		m, cp := newMaterializer(nodes, 7)
		m.Env.SignalNodes = []ir.SignalNode{{Kind: ir.NodeConst, ConstId: cp.AddNumber(0)}}
		buf := m.Env.Pool.Alloc(c.format, 7)
		require.Len(t, buf.F32, 7*c.stride)
	}

	nodes := []ir.FieldNode{{Kind: ir.FieldConst, Type: api.LayoutColor}}
	m, _ := newMaterializer(nodes, 7)
	buf := m.Env.Pool.Alloc(api.FormatRGBA8, 7)
	require.Len(t, buf.U8, 7*4)
}
