package buffer

import "github.com/valyala/bytebufferpool"

// ByteBufferPool serves plain slices out of a bytebufferpool.Pool, which
// calibrates its default and maximum sizes from the traffic it sees.
type ByteBufferPool struct {
	pool    bytebufferpool.Pool
	maxSize int
}

// NewByteBufferPool creates a pool that also drops buffers above maxSize.
// A non-positive maxSize leaves the limit to calibration alone.
func NewByteBufferPool(maxSize int) *ByteBufferPool {
	return &ByteBufferPool{maxSize: maxSize}
}

func (p *ByteBufferPool) Get(length int) []byte {
	if length < 0 {
		length = 0
	}
	bb := p.pool.Get()
	if bb.B == nil || cap(bb.B) < length {
		p.pool.Put(bb)
		return make([]byte, length)
	}
	return bb.B[:length]
}

func (p *ByteBufferPool) Put(buf []byte) {
	if cap(buf) == 0 || (p.maxSize > 0 && cap(buf) > p.maxSize) {
		return
	}
	// The length feeds calibration; Put resets it.
	p.pool.Put(&bytebufferpool.ByteBuffer{B: buf})
}
