// Package pooledhttp exposes pool-borrowed byte buffers as HTTP message bodies
// that hand the buffer back to its pool exactly once.
package pooledhttp

import "context"

// Pool accepts back buffers it previously handed out.
type Pool interface {
	Put(buf []byte) // Returns buf to the pool or drops it.
}

// ContextWriter is implemented by sinks whose writes can be aborted through a context.
type ContextWriter interface {
	WriteContext(ctx context.Context, p []byte) (int, error) // Writes p unless ctx is done first.
}
