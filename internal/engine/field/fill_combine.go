package field

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/opcode"
)

// fillCombine is the field-level bus combine (spec.md §4.2 "Combine").
// Empty terms fill zeros; otherwise every term is materialized and
// folded element-wise. "first" is signal-only (spec.md §4.1 combine
// modes note); this rejects it defensively.
func (m *Materializer) fillCombine(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	if node.Combine.Mode == ir.CombineFirst {
		return api.NewError(api.KindUnknownCombineMode, int64(node.Combine.Mode))
	}
	if len(node.Terms) == 0 {
		zeroFill(out)
		return nil
	}

	bufs := make([]*api.BufferView, len(node.Terms))
	for i, termId := range node.Terms {
		buf, err := m.materializeField(termId, req.DomainId)
		if err != nil {
			return err
		}
		bufs[i] = buf
	}

	values := make([]float64, len(bufs))
	for i := 0; i < n; i++ {
		for t, buf := range bufs {
			values[t] = getScalar(buf, i)
		}
		v, err := opcode.Combine(node.Combine.Mode, values)
		if err != nil {
			return err
		}
		setScalar(out, i, v)
	}
	return nil
}

func zeroFill(out *api.BufferView) {
	switch out.Format {
	case api.FormatF32, api.FormatVec2F32, api.FormatVec3F32, api.FormatVec4F32, api.FormatQuatF32, api.FormatMat4F32:
		for i := range out.F32 {
			out.F32[i] = 0
		}
	case api.FormatF64:
		for i := range out.F64 {
			out.F64[i] = 0
		}
	case api.FormatI32:
		for i := range out.I32 {
			out.I32[i] = 0
		}
	case api.FormatU32:
		for i := range out.U32 {
			out.U32[i] = 0
		}
	case api.FormatU8, api.FormatRGBA8:
		for i := range out.U8 {
			out.U8[i] = 0
		}
	}
}
