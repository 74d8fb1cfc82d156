// Package statebuf implements the persistent per-node state arenas used
// by stateful signal operators and stateful transform steps (spec.md §2,
// §3, §4.1). Three pre-sized, pre-allocated typed arenas, addressed by
// compiler-assigned offsets baked into node params; offsets are never
// validated against capacity — the compiler guarantees enough cells, a
// trust-after-compile contract rather than a runtime bounds check.
package statebuf

// Buffer holds the three state arenas. The zero value is usable once
// the slices are sized via New.
type Buffer struct {
	F64 []float64
	F32 []float32
	I32 []int32
}

// New pre-sizes all three arenas.
func New(f64n, f32n, i32n int) *Buffer {
	return &Buffer{
		F64: make([]float64, f64n),
		F32: make([]float32, f32n),
		I32: make([]int32, i32n),
	}
}

// Reset zeros all three arenas in place without resizing.
func (b *Buffer) Reset() {
	for i := range b.F64 {
		b.F64[i] = 0
	}
	for i := range b.F32 {
		b.F32[i] = 0
	}
	for i := range b.I32 {
		b.I32[i] = 0
	}
}
