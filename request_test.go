package pooledhttp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type received struct {
	contentLength int64
	body          []byte
}

func echoServer(t *testing.T) (*httptest.Server, <-chan received) {
	got := make(chan received, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got <- received{contentLength: r.ContentLength, body: data}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	srv, got := echoServer(t)
	pool := &countingPool{}
	body, err := New(pool, sampleBuffer(), 5)
	require.NoError(t, err)

	req, err := NewRequest(context.Background(), http.MethodPost, srv.URL, body)
	require.NoError(t, err)
	require.Equal(t, int64(5), req.ContentLength)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	r := <-got
	require.Equal(t, int64(5), r.contentLength)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, r.body)

	require.Eventually(t, body.Released, time.Second, 10*time.Millisecond)
	require.Len(t, pool.Returned(), 1)
}

func TestNewRequestGetBody(t *testing.T) {
	t.Parallel()

	body, err := New(&countingPool{}, sampleBuffer(), 5)
	require.NoError(t, err)

	req, err := NewRequest(context.Background(), http.MethodPut, "http://example.invalid/", body)
	require.NoError(t, err)
	require.NotNil(t, req.GetBody)

	rc, err := req.GetBody()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, data)
	require.NoError(t, rc.Close())
	require.False(t, body.Released())

	require.NoError(t, req.Body.Close())
	require.True(t, body.Released())

	_, err = req.GetBody()
	require.ErrorIs(t, err, ErrDisposed)
}

func TestNewRequestEmptyBody(t *testing.T) {
	t.Parallel()

	pool := &countingPool{}
	body, err := New(pool, make([]byte, 8), 0)
	require.NoError(t, err)

	req, err := NewRequest(context.Background(), http.MethodPost, "http://example.invalid/", body)
	require.NoError(t, err)
	require.Equal(t, http.NoBody, req.Body)
	require.Zero(t, req.ContentLength)
	require.True(t, body.Released())
	require.Len(t, pool.Returned(), 1)
}

func TestNewRequestBadURL(t *testing.T) {
	t.Parallel()

	pool := &countingPool{}
	body, err := New(pool, sampleBuffer(), 5)
	require.NoError(t, err)

	_, err = NewRequest(context.Background(), http.MethodPost, "://bad", body)
	require.Error(t, err)
	require.True(t, body.Released())
	require.Len(t, pool.Returned(), 1)
}

func TestNewRequestReleasedBody(t *testing.T) {
	t.Parallel()

	body, err := New(&countingPool{}, sampleBuffer(), 5)
	require.NoError(t, err)
	body.Release()

	_, err = NewRequest(context.Background(), http.MethodPost, "http://example.invalid/", body)
	require.ErrorIs(t, err, ErrDisposed)
}

func TestWriteToResponseRecorder(t *testing.T) {
	t.Parallel()

	body, err := New(&countingPool{}, sampleBuffer(), 5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := httptest.NewRecorder()
	n, err := body.WriteToContext(ctx, rec)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, rec.Body.Bytes())
}
