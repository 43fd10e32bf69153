package pooledhttp

import (
	"context"
	"io"
	"net/http"
)

// NewRequest builds a client request that sends body with a fixed Content-Length.
// The transport closing the request body releases body. GetBody hands out
// non-releasing views so redirects can replay the payload while body is live.
// On error body is released before returning.
func NewRequest(ctx context.Context, method, url string, body *PooledBody) (*http.Request, error) {
	if body == nil {
		return nil, &InvalidArgumentError{Name: "body", Reason: "nil"}
	}
	if body.Len() == 0 {
		body.Release()
		return http.NewRequestWithContext(ctx, method, url, http.NoBody)
	}

	rc, err := body.ReadCloser()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rc)
	if err != nil {
		body.Release()
		return nil, err
	}
	req.ContentLength = body.ContentLength()
	req.GetBody = func() (io.ReadCloser, error) {
		r, err := body.Reader()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(r), nil
	}
	return req, nil
}
