package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/docker/go-units"
)

// Stats is a snapshot of a CountingPool.
type Stats struct {
	Gets        int64 `json:"gets"`
	Puts        int64 `json:"puts"`
	Outstanding int64 `json:"outstanding"`
	BytesOut    int64 `json:"bytes_out"`
}

func (s Stats) String() string {
	return fmt.Sprintf("gets=%d puts=%d outstanding=%d handed out=%s",
		s.Gets, s.Puts, s.Outstanding, units.BytesSize(float64(s.BytesOut)))
}

// CountingPool counts traffic through another Pool.
type CountingPool struct {
	Pool
	gets, puts, bytesOut atomic.Int64
}

func NewCountingPool(pool Pool) *CountingPool {
	return &CountingPool{Pool: pool}
}

func (p *CountingPool) Get(length int) []byte {
	buf := p.Pool.Get(length)
	p.gets.Add(1)
	p.bytesOut.Add(int64(len(buf)))
	return buf
}

func (p *CountingPool) Put(buf []byte) {
	p.puts.Add(1)
	p.Pool.Put(buf)
}

func (p *CountingPool) Stats() Stats {
	puts := p.puts.Load()
	gets := p.gets.Load()
	return Stats{
		Gets:        gets,
		Puts:        puts,
		Outstanding: gets - puts,
		BytesOut:    p.bytesOut.Load(),
	}
}
