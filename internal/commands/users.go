package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
)

func init() {
	Register(&UsersCmd{})
}

// UsersCmd lists all accounts. Admin only.
type UsersCmd struct{}

func (c *UsersCmd) Name() string           { return "users" }
func (c *UsersCmd) Aliases() []string      { return nil }
func (c *UsersCmd) Synopsis() string       { return "List user accounts (admin)" }
func (c *UsersCmd) Usage() string          { return "taskflow users [common flags]" }
func (c *UsersCmd) Access() authgate.Class { return authgate.Admin }
func (c *UsersCmd) NeedsBackend() bool     { return true }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UsersCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	users, err := env.Service.ListUsers(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(users) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no users found")
		}
		return exitcode.Success
	}

	for _, user := range users {
		output.FormatUser(out, user)
	}
	return exitcode.Success
}
