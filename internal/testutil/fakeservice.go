// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskflow/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	users  []service.User
	nextID int64

	// Auth returned by Login and Register.
	Auth service.Auth

	// Healthy is the Health result.
	Healthy bool

	// ListCalls counts ListTasks invocations (for coalescing tests).
	ListCalls int

	// ListBlock, when non-nil, is received from inside ListTasks so a
	// test can hold a refresh in flight.
	ListBlock chan struct{}

	// Error injection for testing
	LoginErr        error
	RegisterErr     error
	ListTasksErr    error
	CreateTaskErr   error
	DeleteTaskErr   error
	UpdateStatusErr error
	CompleteErr     error
	ListUsersErr    error
	UserStatusErr   error
	UserRoleErr     error
	DeleteUserErr   error
}

// NewFakeService creates an empty FakeService that reports healthy.
func NewFakeService() *FakeService {
	return &FakeService{
		Healthy: true,
		nextID:  1,
		Auth: service.Auth{
			Token: "test-token",
			User:  service.User{ID: 1, FirstName: "Test", LastName: "User", Email: "test@x.com", Role: service.RoleUser, Active: true},
		},
	}
}

// ListCallCount returns how many times ListTasks has been invoked.
func (f *FakeService) ListCallCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ListCalls
}

// AddTask adds a task with the given fields and returns its ID.
func (f *FakeService) AddTask(title, date string, status service.Status) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:       id,
		Title:    title,
		Date:     date,
		Status:   status,
		Priority: service.PriorityMedium,
	})
	return id
}

// AddUser adds a user record.
func (f *FakeService) AddUser(u service.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, u)
}

// Task returns the stored task by ID.
func (f *FakeService) Task(id int64) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Health implements service.Service.
func (f *FakeService) Health(ctx context.Context) bool {
	return f.Healthy
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (service.Auth, error) {
	if f.LoginErr != nil {
		return service.Auth{}, f.LoginErr
	}
	return f.Auth, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) (service.Auth, error) {
	if f.RegisterErr != nil {
		return service.Auth{}, f.RegisterErr
	}
	return f.Auth, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	block := f.ListBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, nt service.NewTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	status := nt.Status
	if status == "" {
		status = service.StatusPending
	}
	priority := nt.Priority
	if priority == "" {
		priority = service.PriorityMedium
	}
	task := service.Task{
		ID:          id,
		Title:       nt.Title,
		Description: nt.Description,
		Date:        nt.Date,
		Status:      status,
		Priority:    priority,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// UpdateTaskStatus implements service.Service.
func (f *FakeService) UpdateTaskStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	if f.UpdateStatusErr != nil {
		return service.Task{}, f.UpdateStatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Status = status
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id int64) (service.Task, error) {
	if f.CompleteErr != nil {
		return service.Task{}, f.CompleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Status = service.StatusCompleted
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// ListUsers implements service.Service.
func (f *FakeService) ListUsers(ctx context.Context) ([]service.User, error) {
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

// UpdateUserStatus implements service.Service.
func (f *FakeService) UpdateUserStatus(ctx context.Context, id int64, active bool) (service.User, error) {
	if f.UserStatusErr != nil {
		return service.User{}, f.UserStatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Active = active
			return f.users[i], nil
		}
	}
	return service.User{}, ErrNotFound
}

// UpdateUserRole implements service.Service.
func (f *FakeService) UpdateUserRole(ctx context.Context, id int64, role service.Role) (service.User, error) {
	if f.UserRoleErr != nil {
		return service.User{}, f.UserRoleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Role = role
			return f.users[i], nil
		}
	}
	return service.User{}, ErrNotFound
}

// DeleteUser implements service.Service.
func (f *FakeService) DeleteUser(ctx context.Context, id int64) error {
	if f.DeleteUserErr != nil {
		return f.DeleteUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
