package field

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// fillSelect materializes all three inputs (no short-circuit — selection
// is per-element here, unlike the signal evaluator's select) and picks
// element-wise (spec.md §4.2 "Select").
func (m *Materializer) fillSelect(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	cond, err := m.materializeField(node.Cond, req.DomainId)
	if err != nil {
		return err
	}
	t, err := m.materializeField(node.T, req.DomainId)
	if err != nil {
		return err
	}
	f, err := m.materializeField(node.F, req.DomainId)
	if err != nil {
		return err
	}

	if out.Format == api.FormatRGBA8 {
		for i := 0; i < n; i++ {
			base := 4 * i
			src := f.U8
			if getScalar(cond, i) != 0 {
				src = t.U8
			}
			copy(out.U8[base:base+4], src[base:base+4])
		}
		return nil
	}

	stride := out.Format.Stride()
	switch stride {
	case 1:
		for i := 0; i < n; i++ {
			if getScalar(cond, i) != 0 {
				setScalar(out, i, getScalar(t, i))
			} else {
				setScalar(out, i, getScalar(f, i))
			}
		}
	case 2:
		for i := 0; i < n; i++ {
			if getScalar(cond, i) != 0 {
				x, y := getVec2(t, i)
				setVec2(out, i, x, y)
			} else {
				x, y := getVec2(f, i)
				setVec2(out, i, x, y)
			}
		}
	case 3:
		for i := 0; i < n; i++ {
			if getScalar(cond, i) != 0 {
				x, y, z := getVec3(t, i)
				setVec3(out, i, x, y, z)
			} else {
				x, y, z := getVec3(f, i)
				setVec3(out, i, x, y, z)
			}
		}
	case 4:
		for i := 0; i < n; i++ {
			if getScalar(cond, i) != 0 {
				x, y, z, w := getVec4(t, i)
				setVec4(out, i, x, y, z, w)
			} else {
				x, y, z, w := getVec4(f, i)
				setVec4(out, i, x, y, z, w)
			}
		}
	default:
		return api.NewError(api.KindUnknownHandleKind, int64(node.Kind))
	}
	return nil
}
