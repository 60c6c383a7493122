// Package cache is the content-addressable store for computed image
// transforms. Keys are derived from the input bytes plus a transform
// fingerprint, so identical work is never redone within a run, and a
// disk-backed store can carry results across runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
)

// Key addresses one (input bytes, transform options) pair.
type Key [sha256.Size]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Sum derives the key for data transformed under the given fingerprint.
// The digest covers the full content, not just its length, so distinct
// inputs with equal options cannot share an entry.
func Sum(data []byte, fingerprint string) Key {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	io.WriteString(h, fingerprint)
	var k Key
	h.Sum(k[:0])
	return k
}

// Result is an immutable encoded image. Callers must not modify Data.
type Result struct {
	Format string
	Data   []byte
}

// Store is the persistence boundary: a miss is the expected path that
// triggers computation, never an error.
type Store interface {
	Get(key Key) (Result, bool)
	Put(key Key, res Result)
}

// MemoryStore is a run-scoped Store. It never evicts. Concurrent puts
// for the same key are last-write-wins; both writers computed the same
// value, so the race is benign.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]Result
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]Result)}
}

func (s *MemoryStore) Get(key Key) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.entries[key]
	return res, ok
}

func (s *MemoryStore) Put(key Key, res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = res
}

// Len reports the number of cached transforms.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
