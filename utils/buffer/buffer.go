package buffer

import "sync"

const (
	defaultBufSize = 4 * 1024        // capacity of fresh small buffers
	bigBufSize     = 64 * 1024       // capacity of fresh big buffers
	maxBufSize     = 1 * 1024 * 1024 // default limit for keeping a buffer
)

// SizedPool keeps small and big buffers in separate sync.Pools.
type SizedPool struct {
	small   sync.Pool
	big     sync.Pool
	maxSize int
}

// NewSizedPool creates a pool that drops buffers with capacity above maxSize.
// A non-positive maxSize selects 1MB.
func NewSizedPool(maxSize int) *SizedPool {
	if maxSize <= 0 {
		maxSize = maxBufSize
	}
	p := &SizedPool{maxSize: maxSize}
	p.small.New = func() any {
		buf := make([]byte, 0, defaultBufSize)
		return &buf
	}
	p.big.New = func() any {
		buf := make([]byte, 0, bigBufSize)
		return &buf
	}
	return p
}

func (p *SizedPool) Get(length int) []byte {
	if length < 0 {
		length = 0
	}
	class := &p.small
	if length >= bigBufSize {
		class = &p.big
	}
	buf := class.Get().(*[]byte)
	if cap(*buf) < length {
		class.Put(buf)
		return make([]byte, length)
	}
	return (*buf)[:length]
}

func (p *SizedPool) Put(buf []byte) {
	// Oversized buffers are left to the GC instead of pinning memory in the pool.
	if cap(buf) == 0 || cap(buf) > p.maxSize {
		return
	}
	buf = buf[:0]
	if cap(buf) >= bigBufSize {
		p.big.Put(&buf)
	} else {
		p.small.Put(&buf)
	}
}
