package buffer

import (
	"sync"
	"testing"

	"github.com/asciimoth/bufpool"
	"github.com/stretchr/testify/require"
)

func checkPool(t *testing.T, pool Pool) {
	t.Helper()

	for _, length := range []int{0, 1, 100, defaultBufSize, bigBufSize - 1, bigBufSize, 3 * bigBufSize} {
		buf := pool.Get(length)
		require.Len(t, buf, length)
		require.GreaterOrEqual(t, cap(buf), length)
		for i := range buf {
			buf[i] = byte(i)
		}
		pool.Put(buf)
	}
}

func TestSizedPool(t *testing.T) {
	t.Parallel()

	checkPool(t, NewSizedPool(0))
}

func TestSizedPoolClasses(t *testing.T) {
	t.Parallel()

	pool := NewSizedPool(0)
	require.Equal(t, maxBufSize, pool.maxSize)

	small := pool.Get(10)
	require.GreaterOrEqual(t, cap(small), 10)

	big := pool.Get(bigBufSize)
	require.GreaterOrEqual(t, cap(big), bigBufSize)

	pool.Put(small)
	pool.Put(big)
	pool.Put(make([]byte, maxBufSize+1))
	pool.Put(nil)
}

func TestSizedPoolNegativeLength(t *testing.T) {
	t.Parallel()

	require.Empty(t, NewSizedPool(0).Get(-1))
}

func TestByteBufferPool(t *testing.T) {
	t.Parallel()

	pool := NewByteBufferPool(bigBufSize)
	checkPool(t, pool)
	pool.Put(make([]byte, bigBufSize+1))

	for i := 0; i < 4; i++ {
		buf := pool.Get(0)
		require.NotNil(t, buf)
		require.Empty(t, buf)
		pool.Put(buf)
	}
}

func TestFixedPool(t *testing.T) {
	t.Parallel()

	pool := NewFixedPool(1024)
	require.Equal(t, 1024, pool.Size())
	checkPool(t, pool)

	buf := pool.Get(512)
	require.Len(t, buf, 512)
	require.Equal(t, 1024, cap(buf))
	pool.Put(buf)

	oversized := pool.Get(2048)
	require.Len(t, oversized, 2048)
	pool.Put(oversized)

	require.Equal(t, defaultFixedSize, NewFixedPool(0).Size())
}

func TestNew(t *testing.T) {
	t.Parallel()

	pool, err := New(KindSized, 0, 0)
	require.NoError(t, err)
	require.IsType(t, &SizedPool{}, pool)

	pool, err = New(KindByteBuffer, 0, 0)
	require.NoError(t, err)
	require.IsType(t, &ByteBufferPool{}, pool)

	pool, err = New(KindFixed, 4096, 0)
	require.NoError(t, err)
	require.IsType(t, &FixedPool{}, pool)
	require.Equal(t, 4096, pool.(*FixedPool).Size())

	_, err = New("arena", 0, 0)
	var target *UnknownKindError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "arena", target.Kind)
}

func TestCountingPool(t *testing.T) {
	t.Parallel()

	pool := NewCountingPool(NewSizedPool(0))

	const workers = 16
	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Put(pool.Get(100))
		}()
	}
	wg.Wait()

	held := pool.Get(10)
	stats := pool.Stats()
	require.Equal(t, int64(workers+1), stats.Gets)
	require.Equal(t, int64(workers), stats.Puts)
	require.Equal(t, int64(1), stats.Outstanding)
	require.Equal(t, int64(workers*100+10), stats.BytesOut)
	require.Contains(t, stats.String(), "outstanding=1")

	bufpool.PutBuffer(pool, held)
	require.Zero(t, pool.Stats().Outstanding)
}

func TestDebugPoolCompatible(t *testing.T) {
	t.Parallel()

	debug := bufpool.NewTestDebugPool(t)
	debug.OnLog = nil
	defer debug.Close()

	var pool Pool = NewCountingPool(debug)
	bufpool.PutBuffer(pool, bufpool.GetBuffer(pool, 128))
	require.Zero(t, pool.(*CountingPool).Stats().Outstanding)
}

func TestByteBufferPoolOversizedGet(t *testing.T) {
	t.Parallel()

	pool := NewByteBufferPool(0)
	pool.Put(make([]byte, 1024))

	for i := 0; i < 8; i++ {
		big := pool.Get(4096)
		require.Len(t, big, 4096)

		small := pool.Get(512)
		require.Len(t, small, 512)
		require.GreaterOrEqual(t, cap(small), 512)
		pool.Put(small)
	}
}
