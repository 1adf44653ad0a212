// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskflow/internal/authgate"
	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// Env carries the per-invocation dependencies into a command.
type Env struct {
	// Config is always provided (config dir, base URL, timeouts).
	Config *config.Config

	// Sessions owns the persisted login session.
	Sessions *session.Store

	// Service is the backend client. Nil when NeedsBackend() is false.
	Service service.Service
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Access returns the gate class the dispatcher enforces before the
	// command runs: Public, PublicOnly, Protected, or Admin.
	Access() authgate.Class

	// NeedsBackend returns true if the command talks to the backend.
	// Commands like help, version, logout, whoami return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
