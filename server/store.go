package server

import (
	"bytes"
	"sync"

	"github.com/asciimoth/bufpool"
	"github.com/ugparu/pooledhttp/utils/buffer"
)

type blob struct {
	contentType string
	data        []byte
}

// Store keeps blobs in memory.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewStore() *Store {
	return &Store{blobs: make(map[string]blob)}
}

// Put stores a copy of data.
func (s *Store) Put(key, contentType string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob{contentType: contentType, data: bytes.Clone(data)}
}

// Load copies the blob into a buffer taken from pool. The caller owns the buffer.
func (s *Store) Load(key string, pool buffer.Pool) (buf []byte, contentType string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, "", false
	}
	buf = bufpool.GetBuffer(pool, len(b.data))
	copy(buf, b.data)
	return buf, b.contentType, true
}

func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	delete(s.blobs, key)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
