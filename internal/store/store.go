// Package store holds the serving process's in-memory copy of the snapshot.
package store

import (
	"errors"
	"sync"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
	"github.com/wardwatch/tokyo-ward-stats/internal/snapshot"
)

// ErrNotLoaded is returned before the first successful load.
var ErrNotLoaded = errors.New("no snapshot loaded")

// Store is a concurrency-safe holder of the current snapshot, reloadable
// from the snapshot file. A failed reload keeps the previous snapshot; the
// serving layer tolerates the file being absent or stale.
type Store struct {
	path string

	mu   sync.RWMutex
	snap *domain.Snapshot
}

// New creates a Store reading from the given snapshot path. It does not load;
// call Reload.
func New(path string) *Store {
	return &Store{path: path}
}

// Reload re-reads the snapshot file, replacing the held snapshot wholesale on
// success and keeping the previous one on failure.
func (s *Store) Reload() error {
	snap, err := snapshot.Read(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current snapshot, or false before the first load.
func (s *Store) Snapshot() (*domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, false
	}
	return s.snap, true
}

// CheckReadiness reports whether a snapshot is available to serve.
func (s *Store) CheckReadiness() error {
	if _, ok := s.Snapshot(); !ok {
		return ErrNotLoaded
	}
	return nil
}
