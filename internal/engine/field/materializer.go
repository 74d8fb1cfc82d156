package field

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// Materializer evaluates field handles against a shared Nodes array and
// Env (spec.md §4.2 "materialize(request, env) → BufferView").
type Materializer struct {
	Nodes []ir.FieldNode
	Env   *Env
}

// Materialize is the main operation. Identical requests within the same
// frame return the same *api.BufferView instance (spec.md §8 property 10).
func (m *Materializer) Materialize(req Request) (*api.BufferView, error) {
	m.Env.ensureCache()
	key := req.cacheKey()
	if buf, ok := m.Env.cache[key]; ok {
		return buf, nil
	}

	if req.FieldId < 0 || int(req.FieldId) >= len(m.Nodes) {
		return nil, api.NewError(api.KindInvalidNodeId, int64(req.FieldId))
	}
	node := &m.Nodes[req.FieldId]

	n, err := m.Env.DomainCount(req.DomainId)
	if err != nil {
		return nil, err
	}

	out := m.Env.Pool.Alloc(req.Format, n)

	if err := m.fill(out, n, req, node); err != nil {
		return nil, err
	}

	m.Env.cache[key] = out
	if m.Env.Tracer != nil {
		m.Env.Tracer.Materialize(req.FieldId, req.DomainId, n, req.Format, req.UsageTag)
	}
	return out, nil
}

// materializeField is the recursive entry point used when one field
// handle's payload references another field id — it reuses the field's
// own declared layout to pick a format and the caller's domainId, so
// recursion shares the same per-frame cache as top-level requests
// (spec.md §4.2: "delegated to a handle evaluator whose internal memo is
// the FieldHandleCache").
func (m *Materializer) materializeField(id ir.FieldId, domainId int) (*api.BufferView, error) {
	if id < 0 || int(id) >= len(m.Nodes) {
		return nil, api.NewError(api.KindInvalidNodeId, int64(id))
	}
	node := &m.Nodes[id]
	format := formatForLayout(node.Type)
	return m.Materialize(Request{FieldId: id, DomainId: domainId, Format: format, Layout: node.Type})
}

func formatForLayout(layout api.Layout) api.Format {
	switch layout {
	case api.LayoutScalar, api.LayoutBoolean:
		return api.FormatF32
	case api.LayoutVec2:
		return api.FormatVec2F32
	case api.LayoutVec3:
		return api.FormatVec3F32
	case api.LayoutVec4:
		return api.FormatVec4F32
	case api.LayoutQuat:
		return api.FormatQuatF32
	case api.LayoutMat4:
		return api.FormatMat4F32
	case api.LayoutColor:
		return api.FormatRGBA8
	}
	return api.FormatF32
}

func (m *Materializer) fill(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	switch node.Kind {
	case ir.FieldConst:
		return m.fillConst(out, n, node)
	case ir.FieldBroadcast:
		return m.fillBroadcast(out, n, req, node)
	case ir.FieldSource:
		return m.fillSource(out, node)
	case ir.FieldOp:
		return m.fillOp(out, n, req, node)
	case ir.FieldZip:
		return m.fillZip(out, n, req, node)
	case ir.FieldSelect:
		return m.fillSelect(out, n, req, node)
	case ir.FieldTransform:
		return api.NewError(api.KindUnsupportedFieldKind, int64(node.Kind))
	case ir.FieldCombine:
		return m.fillCombine(out, n, req, node)
	case ir.FieldMapIndexed:
		return m.fillMapIndexed(out, n, node)
	case ir.FieldZipSig:
		return m.fillZipSig(out, n, req, node)
	}
	return api.NewError(api.KindUnknownHandleKind, int64(node.Kind))
}
