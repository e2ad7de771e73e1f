package cache

import (
	"net/url"
	"sync"
)

// Store is the transient list cache shared by every controller in the
// process. Entries are keyed by (entity tag, request parameters) and a
// mutation under a tag throws away every entry for that tag, so the
// next read re-fetches. Nothing here survives the process.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	tag   string
	value any
}

func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Key builds the canonical cache key for a tag plus request parameters.
// url.Values.Encode sorts by key, so equal params always collide.
func Key(tag string, params url.Values) string {
	if len(params) == 0 {
		return tag
	}
	return tag + "?" + params.Encode()
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Put(tag, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{tag: tag, value: value}
}

// Invalidate drops every entry under tag.
func (s *Store) Invalidate(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if e.tag == tag {
			delete(s.entries, k)
		}
	}
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
