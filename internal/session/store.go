// Package session keeps the scan result tuple alive between the scan
// response and the report download, keyed to one browser session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitegrade/sitegrade/internal/scan"
	"github.com/sitegrade/sitegrade/internal/score"
)

// ErrNotFound is returned when no entry exists for a session key.
var ErrNotFound = errors.New("session not found")

// Entry is the state persisted between the scan and download steps.
type Entry struct {
	URL       string
	Scores    score.ScoreSet
	Record    *scan.Record
	CreatedAt time.Time
}

// Store is an in-memory session store. Entries live for the process
// lifetime; there is no expiry beyond it.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore constructs a Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Put saves an entry under a fresh session key and returns the key.
func (s *Store) Put(entry Entry) string {
	key := uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return key
}

// Set saves an entry under an existing key, replacing any previous value.
func (s *Store) Set(key string, entry Entry) {
	entry.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
}

// Get fetches the entry for a session key.
func (s *Store) Get(key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// Delete removes a session entry. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
