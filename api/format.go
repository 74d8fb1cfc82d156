// Package api includes the value types and error taxonomy shared between
// end users of this module and its internal evaluation engine.
package api

import "fmt"

// Format identifies the element layout of a materialized buffer.
//
// See https://github.com/brandon-fryslie/oscilla-animator-sub000 buffer
// layout notes for the exact byte shapes of each format.
type Format byte

const (
	FormatF32 Format = iota
	FormatF64
	FormatI32
	FormatU32
	FormatU8
	FormatVec2F32
	FormatVec3F32
	FormatVec4F32
	FormatQuatF32
	FormatMat4F32
	FormatRGBA8
)

// Stride is the number of scalar components (or, for FormatRGBA8, bytes)
// occupied by a single element of the format.
func (f Format) Stride() int {
	switch f {
	case FormatF32, FormatF64, FormatI32, FormatU32, FormatU8:
		return 1
	case FormatVec2F32:
		return 2
	case FormatVec3F32:
		return 3
	case FormatVec4F32, FormatQuatF32:
		return 4
	case FormatMat4F32:
		return 16
	case FormatRGBA8:
		return 4
	}
	panic(fmt.Errorf("BUG: unhandled format %d", byte(f)))
}

func (f Format) String() string {
	switch f {
	case FormatF32:
		return "f32"
	case FormatF64:
		return "f64"
	case FormatI32:
		return "i32"
	case FormatU32:
		return "u32"
	case FormatU8:
		return "u8"
	case FormatVec2F32:
		return "vec2f32"
	case FormatVec3F32:
		return "vec3f32"
	case FormatVec4F32:
		return "vec4f32"
	case FormatQuatF32:
		return "quatf32"
	case FormatMat4F32:
		return "mat4f32"
	case FormatRGBA8:
		return "rgba8"
	}
	return fmt.Sprintf("format(%#x)", byte(f))
}

// Layout is the semantic shape a materialization request asked for,
// independent of the concrete Format chosen to store it.
type Layout byte

const (
	LayoutScalar Layout = iota
	LayoutVec2
	LayoutVec3
	LayoutVec4
	LayoutQuat
	LayoutMat4
	LayoutColor
	LayoutBoolean
)

func (l Layout) String() string {
	switch l {
	case LayoutScalar:
		return "scalar"
	case LayoutVec2:
		return "vec2"
	case LayoutVec3:
		return "vec3"
	case LayoutVec4:
		return "vec4"
	case LayoutQuat:
		return "quat"
	case LayoutMat4:
		return "mat4"
	case LayoutColor:
		return "color"
	case LayoutBoolean:
		return "boolean"
	}
	return fmt.Sprintf("layout(%#x)", byte(l))
}
