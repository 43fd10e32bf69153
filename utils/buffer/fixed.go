package buffer

import "github.com/colega/zeropool"

const defaultFixedSize = 64 * 1024

// FixedPool recycles buffers of one capacity without allocating on Put.
type FixedPool struct {
	pool zeropool.Pool[[]byte]
	size int
}

// NewFixedPool creates a pool of size-capacity buffers. Non-positive size selects 64KB.
func NewFixedPool(size int) *FixedPool {
	if size <= 0 {
		size = defaultFixedSize
	}
	return &FixedPool{
		pool: zeropool.New(func() []byte {
			return make([]byte, size)
		}),
		size: size,
	}
}

// Size returns the capacity of pooled buffers.
func (p *FixedPool) Size() int {
	return p.size
}

// Get allocates a one-off buffer when length exceeds Size.
func (p *FixedPool) Get(length int) []byte {
	if length < 0 {
		length = 0
	}
	if length > p.size {
		return make([]byte, length)
	}
	return p.pool.Get()[:length]
}

// Put drops buffers that did not come from this pool.
func (p *FixedPool) Put(buf []byte) {
	if cap(buf) != p.size {
		return
	}
	p.pool.Put(buf[:p.size])
}
