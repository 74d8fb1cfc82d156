// Package bufferpool implements the Buffer Pool: a per-format,
// per-element-count freelist of typed buffers with an explicit
// acquire/release-all cycle (spec.md §2, §3, §4.2 "Buffer Pool"). Exact
// round-trip pooling is a documented testable property (spec.md §8
// property 9, scenario S6); an evicting cache (LRU, TTL) would violate
// it, which is why this is a plain map + slice rather than a
// third-party cache library (see SPEC_FULL.md §2 and DESIGN.md).
package bufferpool

import (
	"fmt"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
)

type key struct {
	format api.Format
	count  int
}

// Pool is the buffer pool. Construct it with New; the zero value has nil
// maps and Alloc panics on it.
type Pool struct {
	free  map[key][]api.BufferView
	inUse map[*api.BufferView]key
}

// New constructs an empty pool.
func New() *Pool {
	return &Pool{
		free:  make(map[key][]api.BufferView),
		inUse: make(map[*api.BufferView]key),
	}
}

// Alloc returns a zeroed buffer for (format, count), reusing a
// previously released buffer of the exact same key if one is available,
// or allocating a fresh one otherwise. The returned buffer is tracked as
// in-use until ReleaseAll.
func (p *Pool) Alloc(format api.Format, count int) *api.BufferView {
	k := key{format, count}
	var buf api.BufferView
	if free := p.free[k]; len(free) > 0 {
		buf = free[len(free)-1]
		p.free[k] = free[:len(free)-1]
		zero(&buf)
	} else {
		buf = api.NewBufferView(format, count)
	}
	out := new(api.BufferView)
	*out = buf
	p.inUse[out] = k
	return out
}

// ReleaseAll pushes every in-use buffer back onto its free list and
// clears the in-use set. Callers must not retain references to buffers
// obtained from Alloc past this call (spec.md §5).
func (p *Pool) ReleaseAll() {
	for buf, k := range p.inUse {
		p.free[k] = append(p.free[k], *buf)
		delete(p.inUse, buf)
	}
}

// Stats reports the number of buffers sitting idle on free lists and the
// number currently in use.
func (p *Pool) Stats() (pooled, inUse int) {
	for _, bucket := range p.free {
		pooled += len(bucket)
	}
	return pooled, len(p.inUse)
}

func zero(buf *api.BufferView) {
	switch buf.Format {
	case api.FormatF32, api.FormatVec2F32, api.FormatVec3F32, api.FormatVec4F32, api.FormatQuatF32, api.FormatMat4F32:
		for i := range buf.F32 {
			buf.F32[i] = 0
		}
	case api.FormatF64:
		for i := range buf.F64 {
			buf.F64[i] = 0
		}
	case api.FormatI32:
		for i := range buf.I32 {
			buf.I32[i] = 0
		}
	case api.FormatU32:
		for i := range buf.U32 {
			buf.U32[i] = 0
		}
	case api.FormatU8, api.FormatRGBA8:
		for i := range buf.U8 {
			buf.U8[i] = 0
		}
	default:
		panic(fmt.Errorf("BUG: unhandled format %d", byte(buf.Format)))
	}
}
