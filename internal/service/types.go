// Package service defines the backend-agnostic interface for TaskFlow operations.
package service

import "strings"

// Status is a task lifecycle state.
type Status string

// Task statuses in lifecycle order.
const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// NormalizeStatus maps a raw backend status to one of the three canonical
// values. Unrecognized or missing statuses become PENDING. The backend has
// emitted both "IN_PROGRESS" and "In Progress" over time, so matching is
// case-insensitive with spaces folded to underscores.
func NormalizeStatus(raw string) Status {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))
	switch Status(s) {
	case StatusInProgress:
		return StatusInProgress
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Priority is a task priority level.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// NormalizePriority maps a raw backend priority to a canonical value,
// defaulting to MEDIUM.
func NormalizePriority(raw string) Priority {
	switch Priority(strings.ToUpper(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Role is a user role.
type Role string

// User roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Task is the canonical in-app representation of a task after
// normalization from the backend shape.
type Task struct {
	ID          int64
	Title       string
	Description string
	Date        string // ISO YYYY-MM-DD
	Status      Status
	Priority    Priority
}

// User is a TaskFlow account.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Active    bool   `json:"active"`
}

// Name returns the user's display name, falling back to the email.
func (u User) Name() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Auth is the result of a successful login or registration.
type Auth struct {
	Token string
	User  User
}

// Credentials is a login request.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Registration is a new-account request.
type Registration struct {
	FirstName string `validate:"required,max=50"`
	LastName  string `validate:"required,max=50"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	Role      Role   `validate:"required,oneof=USER ADMIN"`
}

// NewTask is a create-task request. Status and Priority are optional and
// default to PENDING / MEDIUM.
type NewTask struct {
	Title       string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Status      Status
	Priority    Priority
}
