package field

import (
	"fmt"
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
)

// setScalar writes v into element i of a scalar-shaped buffer (f32, f64,
// i32, u32, or u8), converting per the buffer's Format.
func setScalar(out *api.BufferView, i int, v float64) {
	switch out.Format {
	case api.FormatF32:
		out.F32[i] = float32(v)
	case api.FormatF64:
		out.F64[i] = v
	case api.FormatI32:
		out.I32[i] = int32(v)
	case api.FormatU32:
		out.U32[i] = uint32(v)
	case api.FormatU8:
		out.U8[i] = uint8(v)
	default:
		panic(fmt.Errorf("BUG: setScalar on non-scalar format %s", out.Format))
	}
}

// getScalar reads element i of a scalar-shaped buffer as a float64.
func getScalar(buf *api.BufferView, i int) float64 {
	switch buf.Format {
	case api.FormatF32:
		return float64(buf.F32[i])
	case api.FormatF64:
		return buf.F64[i]
	case api.FormatI32:
		return float64(buf.I32[i])
	case api.FormatU32:
		return float64(buf.U32[i])
	case api.FormatU8:
		return float64(buf.U8[i])
	}
	panic(fmt.Errorf("BUG: getScalar on non-scalar format %s", buf.Format))
}

// getVec2/setVec2 address interleaved (x,y) pairs at 2i/2i+1.
func getVec2(buf *api.BufferView, i int) (x, y float64) {
	base := 2 * i
	return float64(buf.F32[base]), float64(buf.F32[base+1])
}

func setVec2(out *api.BufferView, i int, x, y float64) {
	base := 2 * i
	out.F32[base] = float32(x)
	out.F32[base+1] = float32(y)
}

// getVec3/setVec3 address 3i+{0,1,2}.
func getVec3(buf *api.BufferView, i int) (x, y, z float64) {
	base := 3 * i
	return float64(buf.F32[base]), float64(buf.F32[base+1]), float64(buf.F32[base+2])
}

func setVec3(out *api.BufferView, i int, x, y, z float64) {
	base := 3 * i
	out.F32[base] = float32(x)
	out.F32[base+1] = float32(y)
	out.F32[base+2] = float32(z)
}

// getVec4/setVec4 address 4i+{0,1,2,3}; shared by vec4 and quat formats.
func getVec4(buf *api.BufferView, i int) (x, y, z, w float64) {
	base := 4 * i
	return float64(buf.F32[base]), float64(buf.F32[base+1]), float64(buf.F32[base+2]), float64(buf.F32[base+3])
}

func setVec4(out *api.BufferView, i int, x, y, z, w float64) {
	base := 4 * i
	out.F32[base] = float32(x)
	out.F32[base+1] = float32(y)
	out.F32[base+2] = float32(z)
	out.F32[base+3] = float32(w)
}

// setMat4 writes a 16-element column-major matrix at element i.
func setMat4(out *api.BufferView, i int, m [16]float64) {
	base := 16 * i
	for j := 0; j < 16; j++ {
		out.F32[base+j] = float32(m[j])
	}
}

// setColor quantizes an (r,g,b,a) in [0,1] to 8-bit RGBA at element i.
func setColor(out *api.BufferView, i int, r, g, b, a float64) {
	base := 4 * i
	out.U8[base+0] = quantizeByte(r)
	out.U8[base+1] = quantizeByte(g)
	out.U8[base+2] = quantizeByte(b)
	out.U8[base+3] = quantizeByte(a)
}

func quantizeByte(v float64) uint8 {
	v = math.Round(clamp(v, 0, 1) * 255)
	return uint8(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
