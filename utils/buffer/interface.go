package buffer

import (
	"fmt"

	"github.com/asciimoth/bufpool"
)

// Pool is the bufpool contract every pool in this package implements.
type Pool = bufpool.Pool

var (
	_ Pool = (*SizedPool)(nil)
	_ Pool = (*ByteBufferPool)(nil)
	_ Pool = (*FixedPool)(nil)
	_ Pool = (*CountingPool)(nil)
)

// Pool kinds accepted by New.
const (
	KindSized      = "sized"
	KindByteBuffer = "bytebuffer"
	KindFixed      = "fixed"
)

// UnknownKindError is returned by New for an unsupported pool kind.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown buffer pool kind %q", e.Kind)
}

// New builds a pool by kind. size is the buffer capacity of a fixed pool,
// maxSize the largest capacity a pool keeps.
func New(kind string, size, maxSize int) (Pool, error) {
	switch kind {
	case KindSized:
		return NewSizedPool(maxSize), nil
	case KindByteBuffer:
		return NewByteBufferPool(maxSize), nil
	case KindFixed:
		return NewFixedPool(size), nil
	default:
		return nil, &UnknownKindError{Kind: kind}
	}
}
