// Package service defines the backend-agnostic interface for TaskFlow operations.
package service

import "context"

// Service defines the interface for TaskFlow backend operations.
// All REST calls go through this interface. Commands never build
// HTTP requests directly.
type Service interface {
	// Health reports whether the backend is reachable. It never
	// returns an error; any failure reads as unreachable.
	Health(ctx context.Context) bool

	// Login exchanges credentials for a bearer token and user record.
	Login(ctx context.Context, creds Credentials) (Auth, error)

	// Register creates an account and logs it in.
	Register(ctx context.Context, reg Registration) (Auth, error)

	// ListTasks returns all tasks for the current user, normalized to
	// canonical Task records. With no session token it returns an empty
	// slice without a network call.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the server's record.
	CreateTask(ctx context.Context, nt NewTask) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id int64) error

	// UpdateTaskStatus sets a task's status via the generic status endpoint.
	UpdateTaskStatus(ctx context.Context, id int64, status Status) (Task, error)

	// CompleteTask marks a task completed via the dedicated endpoint.
	CompleteTask(ctx context.Context, id int64) (Task, error)

	// ListUsers returns all accounts. Admin only.
	ListUsers(ctx context.Context) ([]User, error)

	// UpdateUserStatus activates or deactivates an account. Admin only.
	UpdateUserStatus(ctx context.Context, id int64, active bool) (User, error)

	// UpdateUserRole changes an account's role. Admin only.
	UpdateUserRole(ctx context.Context, id int64, role Role) (User, error)

	// DeleteUser deletes an account. Admin only.
	DeleteUser(ctx context.Context, id int64) error
}
