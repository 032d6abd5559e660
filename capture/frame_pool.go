package capture

import (
	"sync"
	"sync/atomic"
)

// FramePool manages a pool of reusable byte buffers sized for captured
// frames, so a backend's producer can copy out of a memory-mapped device
// buffer without allocating on every frame. Adapted from the teacher's
// device.FramePool, generalized for any Backend rather than one tied to a
// single device's mmap buffers.
//
// FramePool is safe for concurrent use.
type FramePool struct {
	pool       sync.Pool
	defaultCap int

	gets    atomic.Int64
	puts    atomic.Int64
	allocs  atomic.Int64
	resizes atomic.Int64
}

// NewFramePool creates a pool whose freshly allocated buffers start at
// defaultCapacity bytes.
func NewFramePool(defaultCapacity int) *FramePool {
	fp := &FramePool{defaultCap: defaultCapacity}
	fp.pool.New = func() any {
		buf := make([]byte, 0, fp.defaultCap)
		fp.allocs.Add(1)
		return &buf
	}
	return fp
}

// Get returns a buffer of exactly size bytes, reusing a pooled buffer when
// its capacity suffices.
func (fp *FramePool) Get(size uint32) []byte {
	fp.gets.Add(1)
	bufPtr := fp.pool.Get().(*[]byte)

	if cap(*bufPtr) < int(size) {
		fp.resizes.Add(1)
		newCap := int(size) * 2
		if newCap < fp.defaultCap {
			newCap = fp.defaultCap
		}
		*bufPtr = make([]byte, size, newCap)
	} else {
		*bufPtr = (*bufPtr)[:size]
	}
	return *bufPtr
}

// Put returns buf to the pool. A nil or zero-capacity buf is a no-op.
func (fp *FramePool) Put(buf []byte) {
	if buf == nil || cap(buf) == 0 {
		return
	}
	fp.puts.Add(1)
	buf = buf[:0]
	fp.pool.Put(&buf)
}

// PoolStats summarizes a FramePool's cumulative usage.
type PoolStats struct {
	Gets        int64
	Puts        int64
	Allocs      int64
	Resizes     int64
	Outstanding int64
	HitRate     float64
}

// Stats returns the pool's cumulative usage counters.
func (fp *FramePool) Stats() PoolStats {
	gets := fp.gets.Load()
	puts := fp.puts.Load()
	allocs := fp.allocs.Load()
	resizes := fp.resizes.Load()

	var hitRate float64
	if gets > 0 {
		hits := gets - allocs
		if hits < 0 {
			hits = 0
		}
		hitRate = float64(hits) / float64(gets)
	}

	return PoolStats{
		Gets:        gets,
		Puts:        puts,
		Allocs:      allocs,
		Resizes:     resizes,
		Outstanding: gets - puts,
		HitRate:     hitRate,
	}
}
