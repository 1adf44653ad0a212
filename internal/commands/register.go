package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/validate"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	firstName string
	lastName  string
	email     string
	password  string
	confirm   string
	role      string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string {
	return "taskflow register --first <name> --last <name> --email <email> --password <password> [--confirm <password>] [--role USER|ADMIN]"
}
func (c *RegisterCmd) Access() authgate.Class { return authgate.PublicOnly }
func (c *RegisterCmd) NeedsBackend() bool     { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.firstName, "first", "", "")
	fs.StringVar(&c.lastName, "last", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
	fs.StringVar(&c.role, "role", "USER", "")
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	reg := service.Registration{
		FirstName: strings.TrimSpace(c.firstName),
		LastName:  strings.TrimSpace(c.lastName),
		Email:     c.email,
		Password:  c.password,
		Role:      service.Role(strings.ToUpper(c.role)),
	}

	confirm := c.confirm
	if confirm == "" {
		confirm = c.password
	}
	if err := validate.Registration(reg, confirm); err != nil {
		return reportError(errOut, err)
	}

	auth, err := env.Service.Register(ctx, reg)
	if err != nil {
		return reportError(errOut, err)
	}

	if err := env.Sessions.Set(session.Session{Token: auth.Token, User: auth.User}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "registered and logged in as %s (%s)\n", auth.User.Name(), auth.User.Role)
	}
	return exitcode.Success
}
