package pooledhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// chunkSize bounds a single Write while a cancellable context is in play.
const chunkSize = 32 * 1024

// aLongTimeAgo is a deadline that makes pending writes fail immediately.
var aLongTimeAgo = time.Unix(1, 0)

type deadlineWriter interface {
	SetWriteDeadline(t time.Time) error
}

func writeContext(ctx context.Context, w io.Writer, p []byte) (int64, error) {
	if cw, ok := w.(ContextWriter); ok {
		n, err := cw.WriteContext(ctx, p)
		return int64(n), shortWrite(n, len(p), err)
	}
	if ctx.Done() == nil {
		n, err := w.Write(p)
		return int64(n), shortWrite(n, len(p), err)
	}
	setDeadline := deadlineSetter(w)
	if setDeadline == nil {
		n, err := writeChunked(ctx, w, p)
		return n, cancelled(ctx, err)
	}

	forced := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = setDeadline(aLongTimeAgo)
		close(forced)
	})
	n, err := writeChunked(ctx, w, p)
	if !stop() {
		<-forced
		if err == nil {
			// The payload went out before the deadline bit; keep the sink writable.
			_ = setDeadline(time.Time{})
		}
	}
	return n, cancelled(ctx, err)
}

func cancelled(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// deadlineSetter returns a way to force the write deadline of w, or nil.
// For an http.ResponseWriter that cannot do it the returned func fails harmlessly.
func deadlineSetter(w io.Writer) func(time.Time) error {
	switch sink := w.(type) {
	case deadlineWriter:
		return sink.SetWriteDeadline
	case http.ResponseWriter:
		return http.NewResponseController(sink).SetWriteDeadline
	}
	return nil
}

func writeChunked(ctx context.Context, w io.Writer, p []byte) (int64, error) {
	var written int64
	for len(p) > 0 {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		chunk := p
		if len(chunk) > chunkSize {
			chunk = chunk[:chunkSize]
		}
		n, err := w.Write(chunk)
		written += int64(n)
		if err = shortWrite(n, len(chunk), err); err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}

func shortWrite(n, want int, err error) error {
	if err != nil {
		return err
	}
	if n < want {
		return io.ErrShortWrite
	}
	return nil
}

// IsCancelled reports whether err came from a cancelled or expired context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
