package api

import "fmt"

// BufferView is a typed, dense, element-count-addressed view over one of
// the pool-backed slice types. Exactly one of the typed slice fields is
// non-nil, selected by Format.
type BufferView struct {
	Format  Format
	Count   int // element count (not slice length — see Format.Stride)
	F32     []float32
	F64     []float64
	I32     []int32
	U32     []uint32
	U8      []uint8
}

// Len returns the underlying slice length for the view's Format, i.e.
// Count * Format.Stride() (Count * 4 for FormatRGBA8, whose stride is in
// bytes rather than float32 lanes).
func (b *BufferView) Len() int {
	return b.Count * b.Format.Stride()
}

func newBufferView(format Format, count int) BufferView {
	n := count * format.Stride()
	switch format {
	case FormatF32, FormatVec2F32, FormatVec3F32, FormatVec4F32, FormatQuatF32, FormatMat4F32:
		return BufferView{Format: format, Count: count, F32: make([]float32, n)}
	case FormatF64:
		return BufferView{Format: format, Count: count, F64: make([]float64, n)}
	case FormatI32:
		return BufferView{Format: format, Count: count, I32: make([]int32, n)}
	case FormatU32:
		return BufferView{Format: format, Count: count, U32: make([]uint32, n)}
	case FormatU8, FormatRGBA8:
		return BufferView{Format: format, Count: count, U8: make([]uint8, n)}
	}
	panic(fmt.Errorf("BUG: unhandled format %d", byte(format)))
}

// NewBufferView allocates a fresh, zeroed buffer for format/count. Exposed
// for callers (e.g. a source-field provider) that need to hand the
// materializer a BufferView without going through the pool.
func NewBufferView(format Format, count int) BufferView {
	return newBufferView(format, count)
}
