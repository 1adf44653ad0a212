package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/validate"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string           { return "login" }
func (c *LoginCmd) Aliases() []string      { return nil }
func (c *LoginCmd) Synopsis() string       { return "Log in to the backend" }
func (c *LoginCmd) Usage() string          { return "taskflow login --email <email> --password <password>" }
func (c *LoginCmd) Access() authgate.Class { return authgate.PublicOnly }
func (c *LoginCmd) NeedsBackend() bool     { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	creds := service.Credentials{Email: c.email, Password: c.password}
	if err := validate.Login(creds); err != nil {
		return reportError(errOut, err)
	}

	auth, err := env.Service.Login(ctx, creds)
	if err != nil {
		return reportError(errOut, err)
	}

	// Token and user are persisted together or not at all.
	if err := env.Sessions.Set(session.Session{Token: auth.Token, User: auth.User}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "logged in as %s (%s)\n", auth.User.Name(), auth.User.Role)
	}
	return exitcode.Success
}
