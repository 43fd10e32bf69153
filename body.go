package pooledhttp

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
)

// PooledBody presents buf[:count] of a pooled buffer as an HTTP body.
// The buffer goes back to the pool on the first Release; every later
// Release is a no-op and every later read or write fails with ErrDisposed.
type PooledBody struct {
	pool  Pool
	buf   atomic.Pointer[[]byte]
	count int
}

// New wraps the first count bytes of buf. The body owns buf until Release.
func New(pool Pool, buf []byte, count int) (*PooledBody, error) {
	if pool == nil {
		return nil, &InvalidArgumentError{Name: "pool", Reason: "nil"}
	}
	if buf == nil {
		return nil, &InvalidArgumentError{Name: "buffer", Reason: "nil"}
	}
	if count < 0 || count > len(buf) {
		return nil, &InvalidArgumentError{
			Name:   "count",
			Reason: "must be within [0, len(buffer)]",
		}
	}
	b := &PooledBody{
		pool:  pool,
		count: count,
	}
	b.buf.Store(&buf)
	return b, nil
}

// Len returns the payload length. It stays valid after Release.
func (b *PooledBody) Len() int {
	return b.count
}

// ContentLength returns the payload length in the form net/http uses.
func (b *PooledBody) ContentLength() int64 {
	return int64(b.count)
}

// Released reports whether the buffer has been handed back to the pool.
func (b *PooledBody) Released() bool {
	return b.buf.Load() == nil
}

func (b *PooledBody) payload() ([]byte, error) {
	p := b.buf.Load()
	if p == nil {
		return nil, ErrDisposed
	}
	return (*p)[:b.count:b.count], nil
}

// WriteTo writes the payload to w. It implements io.WriterTo.
func (b *PooledBody) WriteTo(w io.Writer) (int64, error) {
	return b.WriteToContext(context.Background(), w)
}

// WriteToContext writes the payload to w, giving up once ctx is done.
// Errors returned by w are passed through unchanged.
func (b *PooledBody) WriteToContext(ctx context.Context, w io.Writer) (int64, error) {
	p, err := b.payload()
	if err != nil {
		return 0, err
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}
	return writeContext(ctx, w, p)
}

// Reader returns a read-only view of the payload. The view shares memory
// with the pooled buffer, so it must not be used after Release.
func (b *PooledBody) Reader() (*bytes.Reader, error) {
	p, err := b.payload()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(p), nil
}

// ReadCloser returns a view like Reader whose Close releases the body.
func (b *PooledBody) ReadCloser() (io.ReadCloser, error) {
	r, err := b.Reader()
	if err != nil {
		return nil, err
	}
	return &releasingReader{Reader: r, body: b}, nil
}

// Release hands the buffer back to the pool. Only the first call has any effect,
// including when several goroutines race.
func (b *PooledBody) Release() {
	if p := b.buf.Swap(nil); p != nil {
		b.pool.Put(*p)
	}
}

// Close releases the body and always returns nil.
func (b *PooledBody) Close() error {
	b.Release()
	return nil
}

type releasingReader struct {
	*bytes.Reader
	body *PooledBody
}

func (r *releasingReader) Close() error {
	return r.body.Close()
}
