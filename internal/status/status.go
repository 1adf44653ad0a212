// Package status encodes the allowed task status transitions and commits
// them through the backend. The lifecycle is PENDING → IN_PROGRESS →
// COMPLETED; COMPLETED is terminal.
package status

import (
	"context"
	"fmt"
	"sync"

	"taskflow/internal/service"
	"taskflow/internal/store"
)

// Next returns the status one step further along the lifecycle. Anything
// that is not PENDING or IN_PROGRESS maps to COMPLETED, so the result is
// never earlier than the input.
func Next(current service.Status) service.Status {
	switch current {
	case service.StatusPending:
		return service.StatusInProgress
	case service.StatusInProgress:
		return service.StatusCompleted
	default:
		return service.StatusCompleted
	}
}

// Action names the user-facing action for the next transition: "start"
// for PENDING tasks, "complete" for IN_PROGRESS, "" when terminal.
func Action(current service.Status) string {
	switch current {
	case service.StatusPending:
		return "start"
	case service.StatusInProgress:
		return "complete"
	default:
		return ""
	}
}

// Tracker guards against overlapping transitions for the same task. A
// second transition while one is pending is rejected with ErrBusy, never
// queued.
type Tracker struct {
	mu       sync.Mutex
	inflight map[int64]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[int64]bool)}
}

// Begin claims the task for a transition. Returns ErrBusy if one is
// already in flight.
func (t *Tracker) Begin(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inflight[id] {
		return fmt.Errorf("task %d: %w", id, service.ErrBusy)
	}
	t.inflight[id] = true
	return nil
}

// End releases the task.
func (t *Tracker) End(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, id)
}

// Engine commits transitions: it picks the backend operation for the
// target status, applies it, and invalidates the store on success. The
// store is left untouched when the call fails.
type Engine struct {
	svc     service.Service
	tasks   *store.Store
	tracker *Tracker
}

// NewEngine creates a transition engine over the given service and store.
func NewEngine(svc service.Service, tasks *store.Store) *Engine {
	return &Engine{svc: svc, tasks: tasks, tracker: NewTracker()}
}

// Advance moves the task one step along the lifecycle and returns the
// committed status. A COMPLETED task is a no-op. The transition to
// IN_PROGRESS uses the generic status endpoint; the transition to
// COMPLETED uses the dedicated complete endpoint.
func (e *Engine) Advance(ctx context.Context, task service.Task) (service.Status, error) {
	if task.Status == service.StatusCompleted {
		return service.StatusCompleted, nil
	}

	next := Next(task.Status)
	if err := e.commit(ctx, task.ID, next); err != nil {
		return task.Status, err
	}
	return next, nil
}

// Complete marks the task completed via the dedicated endpoint,
// regardless of its current position in the lifecycle. A COMPLETED task
// is a no-op.
func (e *Engine) Complete(ctx context.Context, task service.Task) error {
	if task.Status == service.StatusCompleted {
		return nil
	}
	return e.commit(ctx, task.ID, service.StatusCompleted)
}

func (e *Engine) commit(ctx context.Context, id int64, target service.Status) error {
	if err := e.tracker.Begin(id); err != nil {
		return err
	}
	defer e.tracker.End(id)

	var err error
	if target == service.StatusCompleted {
		_, err = e.svc.CompleteTask(ctx, id)
	} else {
		_, err = e.svc.UpdateTaskStatus(ctx, id, target)
	}
	if err != nil {
		return err
	}
	return e.tasks.Invalidate(ctx)
}
