// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"sync"

	"github.com/latebind/latebind/pkg/assembly"
)

type (
	// cacheEntry is either a parsed identity or the unparseable marker.
	cacheEntry struct {
		identity    assembly.Identity
		unparseable bool
	}

	// session is the per-Start cache of file identities keyed by absolute
	// path. Entries are only ever added; Stop drops the whole session.
	session struct {
		id      string
		mu      sync.Mutex
		entries map[string]cacheEntry
	}
)

func newSession(id string) *session {
	return &session{id: id, entries: make(map[string]cacheEntry)}
}

// identity returns the cached identity of path, extracting and caching it on
// a miss. The lookup, extraction and insertion run under one lock so a file
// is extracted at most once per session.
func (s *session) identity(path string, extract func(string) (assembly.Identity, bool)) (assembly.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[path]; ok {
		return e.identity, !e.unparseable
	}
	id, ok := extract(path)
	if ok {
		s.entries[path] = cacheEntry{identity: id}
	} else {
		s.entries[path] = cacheEntry{unparseable: true}
	}
	return id, ok
}

func (s *session) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
