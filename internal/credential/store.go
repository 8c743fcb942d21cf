// Package credential keeps the API key entered in the web form for the
// lifetime of the process. Nothing is written to disk.
package credential

import (
	"strings"
	"sync"
)

type Store struct {
	mu  sync.RWMutex
	key string
}

func NewStore() *Store {
	return &Store{}
}

// Set stores key with surrounding whitespace removed. An empty key clears
// the store.
func (s *Store) Set(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = strings.TrimSpace(key)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
}

// Get returns the stored key or "".
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Lookup returns the stored key and whether one is set.
func (s *Store) Lookup() (string, bool) {
	key := s.Get()
	return key, key != ""
}
