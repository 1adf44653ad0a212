package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
	Register(&WhoamiCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string           { return "logout" }
func (c *LogoutCmd) Aliases() []string      { return nil }
func (c *LogoutCmd) Synopsis() string       { return "Remove the stored session" }
func (c *LogoutCmd) Usage() string          { return "taskflow logout [common flags]" }
func (c *LogoutCmd) Access() authgate.Class { return authgate.Public }
func (c *LogoutCmd) NeedsBackend() bool     { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if env.Sessions.Current() == nil {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	// Removes token and user together; they are one document.
	if err := env.Sessions.Clear(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove session: %v\n", err)
		return exitcode.AuthError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// WhoamiCmd prints the logged-in identity.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string           { return "whoami" }
func (c *WhoamiCmd) Aliases() []string      { return nil }
func (c *WhoamiCmd) Synopsis() string       { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string          { return "taskflow whoami" }
func (c *WhoamiCmd) Access() authgate.Class { return authgate.Protected }
func (c *WhoamiCmd) NeedsBackend() bool     { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	sess := env.Sessions.Current()
	if sess == nil {
		// The session file can vanish between dispatch and run.
		fmt.Fprintln(errOut, "error: not logged in (run: taskflow login)")
		return exitcode.AuthError
	}
	fmt.Fprintf(out, "%s <%s> (%s)\n", sess.User.Name(), sess.User.Email, sess.User.Role)
	return exitcode.Success
}
