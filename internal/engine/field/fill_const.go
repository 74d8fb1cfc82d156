package field

import (
	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// fillConst broadcasts a constant pool entry to all N slots (spec.md
// §4.2 "Const"). Array constants fill one value per element instead of
// broadcasting, and their length must equal N.
func (m *Materializer) fillConst(out *api.BufferView, n int, node *ir.FieldNode) error {
	pool := m.Env.ConstPool
	c := node.Const

	if c.IsArray {
		values, err := pool.Array(c.ConstId)
		if err != nil {
			return err
		}
		if len(values) != n {
			return api.NewError(api.KindConstArrayLengthMismatch, int64(len(values)))
		}
		for i := 0; i < n; i++ {
			setScalar(out, i, values[i])
		}
		return nil
	}

	switch c.Type {
	case api.LayoutScalar:
		v, err := pool.Number(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setScalar(out, i, v)
		}
	case api.LayoutBoolean:
		b, err := pool.Bool(c.ConstId)
		if err != nil {
			return err
		}
		v := 0.0
		if b {
			v = 1
		}
		for i := 0; i < n; i++ {
			setScalar(out, i, v)
		}
	case api.LayoutVec2:
		v, err := pool.Vec2(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setVec2(out, i, v[0], v[1])
		}
	case api.LayoutVec3:
		v, err := pool.Vec3(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setVec3(out, i, v[0], v[1], v[2])
		}
	case api.LayoutVec4:
		v, err := pool.Vec4(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setVec4(out, i, v[0], v[1], v[2], v[3])
		}
	case api.LayoutQuat:
		q, err := pool.Quaternion(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setVec4(out, i, q[0], q[1], q[2], q[3])
		}
	case api.LayoutMat4:
		mat, err := pool.Mat4At(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setMat4(out, i, mat)
		}
	case api.LayoutColor:
		col, err := pool.Color(c.ConstId)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			setColor(out, i, col[0], col[1], col[2], col[3])
		}
	default:
		return api.NewError(api.KindInvalidVecConstant, int64(c.Type))
	}
	return nil
}
