// Package authgate decides route accessibility from the current session.
package authgate

import "taskflow/internal/service"

// Class is the access requirement a route (or command) declares.
type Class int

const (
	// Public routes are always accessible.
	Public Class = iota

	// PublicOnly routes (login, register) are for logged-out users.
	PublicOnly

	// Protected routes require a session.
	Protected

	// Admin routes require a session with the ADMIN role.
	Admin
)

// Decision is the gate's verdict.
type Decision int

const (
	// Allow grants access.
	Allow Decision = iota

	// RedirectLogin denies access; the user must log in first.
	RedirectLogin

	// RedirectDashboard denies access; the user is sent to the
	// dashboard (already logged in, or lacking the required role).
	RedirectDashboard
)

// Check evaluates the access class against the session state.
func Check(loggedIn bool, role service.Role, class Class) Decision {
	switch class {
	case PublicOnly:
		if loggedIn {
			return RedirectDashboard
		}
	case Protected:
		if !loggedIn {
			return RedirectLogin
		}
	case Admin:
		if !loggedIn {
			return RedirectLogin
		}
		if role != service.RoleAdmin {
			return RedirectDashboard
		}
	}
	return Allow
}
