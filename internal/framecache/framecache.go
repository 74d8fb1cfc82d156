// Package framecache implements the per-node memoization cache the
// SignalExpr Evaluator writes through: parallel dense arrays compared
// against a monotonic frameId, giving O(1) hit/miss without per-frame
// clearing (spec.md §2, §3, §4.3).
package framecache

// Cache holds, per node id, the cached value and the frameId it was last
// computed for. validMask is reserved for future partial-validity use
// (spec.md lists it alongside value/stamp; the evaluator does not yet
// need finer granularity than "stamp matches frameId").
type Cache struct {
	value     []float64
	stamp     []uint32
	validMask []uint8
	frameId   uint32
}

// New allocates a cache sized to capacity, with frameId starting at 1 so
// the zero-initialized stamp array never falsely reports a hit on frame
// 0 (spec.md §3).
func New(capacity int) *Cache {
	return &Cache{
		value:     make([]float64, capacity),
		stamp:     make([]uint32, capacity),
		validMask: make([]uint8, capacity),
		frameId:   1,
	}
}

// Len reports the cache's capacity.
func (c *Cache) Len() int { return len(c.value) }

// FrameId returns the current frame id.
func (c *Cache) FrameId() uint32 { return c.frameId }

// Advance sets the cache's current frameId. It does not clear any array —
// stale entries simply fail the stamp comparison on next read.
func (c *Cache) Advance(frameId uint32) { c.frameId = frameId }

// IsCached reports whether id was computed during the current frame.
func (c *Cache) IsCached(id int) bool {
	return c.stamp[id] == c.frameId
}

// GetCached returns the memoized value for id. Caller must have checked
// IsCached first; this does not re-check.
func (c *Cache) GetCached(id int) float64 {
	return c.value[id]
}

// SetCached stores v for id and stamps it with the current frame.
func (c *Cache) SetCached(id int, v float64) {
	c.value[id] = v
	c.stamp[id] = c.frameId
	c.validMask[id] = 1
}
