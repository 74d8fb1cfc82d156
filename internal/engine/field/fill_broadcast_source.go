package field

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// fillBroadcast evaluates a signal once and repeats it across all N
// slots (spec.md §4.2 "Broadcast" — the signal→field bridge).
func (m *Materializer) fillBroadcast(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	v, err := m.Env.evalSignal(node.SigId)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		setScalar(out, i, v)
	}
	return nil
}

// fillSource copies bytes from the source provider's buffer into out
// (spec.md §4.2 "Source"). Byte lengths must match exactly.
func (m *Materializer) fillSource(out *api.BufferView, node *ir.FieldNode) error {
	src, ok := m.Env.Source.Source(node.SourceTag)
	if !ok {
		return api.NewError(api.KindMissingSourceField, 0)
	}
	if src.Len() != out.Len() {
		return api.NewError(api.KindSourceSizeMismatch, int64(src.Len()))
	}
	copyBuffer(out, src)
	return nil
}

func copyBuffer(dst, src *api.BufferView) {
	switch dst.Format {
	case api.FormatF32, api.FormatVec2F32, api.FormatVec3F32, api.FormatVec4F32, api.FormatQuatF32, api.FormatMat4F32:
		copy(dst.F32, src.F32)
	case api.FormatF64:
		copy(dst.F64, src.F64)
	case api.FormatI32:
		copy(dst.I32, src.I32)
	case api.FormatU32:
		copy(dst.U32, src.U32)
	case api.FormatU8, api.FormatRGBA8:
		copy(dst.U8, src.U8)
	}
}
