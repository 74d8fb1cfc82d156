// Package constpool holds the read-only table of compile-time numeric
// constants and structured literals addressed by integer id, borrowed by
// reference for the duration of an evaluation call (spec.md §3, §4.4).
package constpool

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
)

// quatTolerance bounds how far a quaternion constant's length may stray
// from 1 before it is rejected (spec.md §3: "‖q‖ ∈ [1−10⁻³, 1+10⁻³]").
const quatTolerance = 1e-3

// Vec is a fixed-width vector literal; N meaningful components, the rest
// unused (vec2 uses [0:2], vec3 [0:3], vec4 [0:4]).
type Vec [4]float64

// Quat is a unit-length quaternion literal (x, y, z, w).
type Quat [4]float64

// Mat4 is a column-major 4x4 matrix literal, exactly 16 elements.
type Mat4 [16]float64

// Color is an (r, g, b, a) literal in [0,1], quantized to 8-bit RGBA at
// fill time by the Field Materializer.
type Color [4]float64

// Pool is the immutable const pool. The zero value is an empty, usable
// pool.
type Pool struct {
	Numbers []float64
	Vec2s   []Vec
	Vec3s   []Vec
	Vec4s   []Vec
	Quats   []Quat
	Mat4s   []Mat4
	Colors  []Color
	Bools   []bool
	Arrays  [][]float64
}

// New builds an empty pool ready for Add* calls.
func New() *Pool { return &Pool{} }

// AddNumber appends a scalar literal and returns its id.
func (p *Pool) AddNumber(v float64) int64 {
	p.Numbers = append(p.Numbers, v)
	return int64(len(p.Numbers) - 1)
}

// AddQuat appends a quaternion literal after validating its length is
// within tolerance of 1, returning its id. Returns an error otherwise —
// invalid constants are rejected at build time rather than silently
// admitted and only caught when a field is filled (spec.md §3, S12).
func (p *Pool) AddQuat(q Quat) (int64, error) {
	if err := validateQuat(q); err != nil {
		return 0, err
	}
	p.Quats = append(p.Quats, q)
	return int64(len(p.Quats) - 1), nil
}

// AddMat4 appends a 4x4 matrix literal (always exactly 16 elements by
// construction of the Mat4 type) and returns its id.
func (p *Pool) AddMat4(m Mat4) int64 {
	p.Mat4s = append(p.Mat4s, m)
	return int64(len(p.Mat4s) - 1)
}

// AddVec2, AddVec3, AddVec4 append a vector literal to the corresponding
// arena and return its id.
func (p *Pool) AddVec2(v Vec) int64 {
	p.Vec2s = append(p.Vec2s, v)
	return int64(len(p.Vec2s) - 1)
}

func (p *Pool) AddVec3(v Vec) int64 {
	p.Vec3s = append(p.Vec3s, v)
	return int64(len(p.Vec3s) - 1)
}

func (p *Pool) AddVec4(v Vec) int64 {
	p.Vec4s = append(p.Vec4s, v)
	return int64(len(p.Vec4s) - 1)
}

// AddColor appends a color literal and returns its id.
func (p *Pool) AddColor(c Color) int64 {
	p.Colors = append(p.Colors, c)
	return int64(len(p.Colors) - 1)
}

// AddBool appends a boolean literal and returns its id.
func (p *Pool) AddBool(b bool) int64 {
	p.Bools = append(p.Bools, b)
	return int64(len(p.Bools) - 1)
}

func validateQuat(q Quat) error {
	lenSq := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	length := math.Sqrt(lenSq)
	if math.Abs(length-1) > quatTolerance {
		return api.NewError(api.KindNonUnitQuaternion, 0)
	}
	return nil
}

// Number reads the scalar arena at id, returning an error if out of
// range.
func (p *Pool) Number(id int64) (float64, error) {
	if id < 0 || int(id) >= len(p.Numbers) {
		return 0, api.NewError(api.KindInvalidConstId, id)
	}
	return p.Numbers[id], nil
}

// Quaternion reads the quaternion arena at id, re-validating unit length
// defensively (a pool assembled by something other than AddQuat — e.g.
// deserialized — may not have gone through construction-time validation).
func (p *Pool) Quaternion(id int64) (Quat, error) {
	if id < 0 || int(id) >= len(p.Quats) {
		return Quat{}, api.NewError(api.KindInvalidConstId, id)
	}
	q := p.Quats[id]
	if err := validateQuat(q); err != nil {
		return Quat{}, err
	}
	return q, nil
}

// Mat4At reads the matrix arena at id.
func (p *Pool) Mat4At(id int64) (Mat4, error) {
	if id < 0 || int(id) >= len(p.Mat4s) {
		return Mat4{}, api.NewError(api.KindInvalidConstId, id)
	}
	return p.Mat4s[id], nil
}

// Vec2, Vec3, Vec4 read the corresponding vector arenas at id.
func (p *Pool) Vec2(id int64) (Vec, error) { return readVec(p.Vec2s, id) }
func (p *Pool) Vec3(id int64) (Vec, error) { return readVec(p.Vec3s, id) }
func (p *Pool) Vec4(id int64) (Vec, error) { return readVec(p.Vec4s, id) }

func readVec(arena []Vec, id int64) (Vec, error) {
	if id < 0 || int(id) >= len(arena) {
		return Vec{}, api.NewError(api.KindInvalidConstId, id)
	}
	return arena[id], nil
}

// Color reads the color arena at id.
func (p *Pool) Color(id int64) (Color, error) {
	if id < 0 || int(id) >= len(p.Colors) {
		return Color{}, api.NewError(api.KindInvalidConstId, id)
	}
	return p.Colors[id], nil
}

// Bool reads the boolean arena at id.
func (p *Pool) Bool(id int64) (bool, error) {
	if id < 0 || int(id) >= len(p.Bools) {
		return false, api.NewError(api.KindInvalidConstId, id)
	}
	return p.Bools[id], nil
}

// AddArray appends an array-constant (one value per field element) and
// returns its id. Its length is validated against the domain count at
// fill time, not here, since the pool has no notion of domains.
func (p *Pool) AddArray(values []float64) int64 {
	p.Arrays = append(p.Arrays, values)
	return int64(len(p.Arrays) - 1)
}

// Array reads the array-constant arena at id.
func (p *Pool) Array(id int64) ([]float64, error) {
	if id < 0 || int(id) >= len(p.Arrays) {
		return nil, api.NewError(api.KindInvalidConstId, id)
	}
	return p.Arrays[id], nil
}
