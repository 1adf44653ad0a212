// Package store holds the authoritative task snapshot fetched from the
// backend. The snapshot is only ever replaced wholesale by the refresh
// path; every mutation elsewhere goes through the service and then
// invalidates the store.
package store

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"taskflow/internal/service"
	"taskflow/internal/session"
)

// Store holds the current task collection.
//
// Coalescing policy: at most one refresh is in flight. Callers that
// request a refresh while one is running join it and share its result;
// a refresh requested after the in-flight one has applied starts a new
// network call. Applies therefore never interleave.
type Store struct {
	svc      service.Service
	sessions *session.Store

	group singleflight.Group

	mu    sync.RWMutex
	tasks []service.Task
}

// New creates an empty store backed by the given service and session.
func New(svc service.Service, sessions *session.Store) *Store {
	return &Store{svc: svc, sessions: sessions}
}

// Refresh replaces the snapshot from the backend. With no session token
// it is a no-op. On error the previous snapshot is kept; the error is
// returned so callers can report the stale read, but the store never
// flashes empty on a transient failure.
func (s *Store) Refresh(ctx context.Context) error {
	if s.sessions.Token() == "" {
		return nil
	}

	_, err, _ := s.group.Do("refresh", func() (any, error) {
		tasks, err := s.svc.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.tasks = tasks
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Invalidate re-fetches the snapshot. Called after every successful
// mutation; there is no incremental patching.
func (s *Store) Invalidate(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Snapshot returns a copy of the current task collection in fetch order.
func (s *Store) Snapshot() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns the task with the given ID from the current snapshot.
func (s *Store) Find(id int64) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
