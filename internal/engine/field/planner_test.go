package field

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/constpool"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

func TestUsageFormatHeuristics(t *testing.T) {
	cases := []struct {
		tag    string
		format api.Format
		layout api.Layout
	}{
		{"position", api.FormatVec2F32, api.LayoutVec2},
		{"size", api.FormatF32, api.LayoutScalar},
		{"radius", api.FormatF32, api.LayoutScalar},
		{"fillColor", api.FormatRGBA8, api.LayoutColor},
		{"strokeColor", api.FormatRGBA8, api.LayoutColor},
		{"velocity", api.FormatVec2F32, api.LayoutVec2},
		{"rotation", api.FormatF32, api.LayoutScalar},
		{"mystery", api.FormatF32, api.LayoutScalar},
	}
	for _, c := range cases {
		format, layout := usageFormat(c.tag)
		require.Equal(t, c.format, format, c.tag)
		require.Equal(t, c.layout, layout, c.tag)
	}
}

func TestPlanAndExecuteSink(t *testing.T) {
	nodes := []ir.FieldNode{
		{Kind: ir.FieldConst, Type: api.LayoutVec2}, // position
		{Kind: ir.FieldConst, Type: api.LayoutScalar}, // radius
	}
	m, cp := newMaterializer(nodes, 3)
	nodes[0].Const = ir.ConstPayload{Type: api.LayoutVec2, ConstId: cp.AddVec2(constpool.Vec{1, 2})}
	nodes[1].Const = ir.ConstPayload{Type: api.LayoutScalar, ConstId: cp.AddNumber(5)}
	m.Env.SignalNodes = []ir.SignalNode{{Kind: ir.NodeConst, ConstId: cp.AddNumber(0.5)}}

	req := SinkRequest{
		SinkType: "circle",
		DomainId: 0,
		FieldInputs: map[string]ir.FieldId{
			"position": 0,
			"radius":   1,
		},
		SignalUniforms: map[string]ir.SigExprId{
			"opacity": 0,
		},
	}

	plan := m.PlanSink(req)
	out, err := m.Execute(plan)
	require.NoError(t, err)
	require.Equal(t, "circle", out.Kind)
	require.Equal(t, 3, out.InstanceCount)
	require.Len(t, out.Buffers["position"].F32, 6)
	require.Len(t, out.Buffers["radius"].F32, 3)
	require.Equal(t, 0.5, out.Uniforms["opacity"])
}
