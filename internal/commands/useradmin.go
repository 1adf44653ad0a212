package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

func init() {
	Register(&UserStatusCmd{})
	Register(&UserRoleCmd{})
	Register(&UserRmCmd{})
}

// parseUserID parses a positional user ID argument.
func parseUserID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("user id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user id: %s", args[0])
	}
	return id, nil
}

// UserStatusCmd activates or deactivates an account. Admin only.
type UserStatusCmd struct{}

func (c *UserStatusCmd) Name() string           { return "user-status" }
func (c *UserStatusCmd) Aliases() []string      { return nil }
func (c *UserStatusCmd) Synopsis() string       { return "Activate or deactivate an account (admin)" }
func (c *UserStatusCmd) Usage() string          { return "taskflow user-status <user-id> <active|inactive>" }
func (c *UserStatusCmd) Access() authgate.Class { return authgate.Admin }
func (c *UserStatusCmd) NeedsBackend() bool     { return true }

func (c *UserStatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserStatusCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := parseUserID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var active bool
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: state required: active or inactive")
		return exitcode.UserError
	}
	switch strings.ToLower(args[1]) {
	case "active":
		active = true
	case "inactive":
		active = false
	default:
		fmt.Fprintf(errOut, "error: invalid state: %s\n", args[1])
		return exitcode.UserError
	}

	if _, err := env.Service.UpdateUserStatus(ctx, id, active); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// UserRoleCmd changes an account's role. Admin only.
type UserRoleCmd struct{}

func (c *UserRoleCmd) Name() string           { return "user-role" }
func (c *UserRoleCmd) Aliases() []string      { return nil }
func (c *UserRoleCmd) Synopsis() string       { return "Change an account's role (admin)" }
func (c *UserRoleCmd) Usage() string          { return "taskflow user-role <user-id> <USER|ADMIN>" }
func (c *UserRoleCmd) Access() authgate.Class { return authgate.Admin }
func (c *UserRoleCmd) NeedsBackend() bool     { return true }

func (c *UserRoleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserRoleCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := parseUserID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: role required: USER or ADMIN")
		return exitcode.UserError
	}
	role := service.Role(strings.ToUpper(args[1]))
	if role != service.RoleUser && role != service.RoleAdmin {
		fmt.Fprintf(errOut, "error: invalid role: %s\n", args[1])
		return exitcode.UserError
	}

	if _, err := env.Service.UpdateUserRole(ctx, id, role); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// UserRmCmd deletes an account. Admin only.
type UserRmCmd struct{}

func (c *UserRmCmd) Name() string           { return "user-rm" }
func (c *UserRmCmd) Aliases() []string      { return nil }
func (c *UserRmCmd) Synopsis() string       { return "Delete an account (admin)" }
func (c *UserRmCmd) Usage() string          { return "taskflow user-rm <user-id>" }
func (c *UserRmCmd) Access() authgate.Class { return authgate.Admin }
func (c *UserRmCmd) NeedsBackend() bool     { return true }

func (c *UserRmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserRmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := parseUserID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := env.Service.DeleteUser(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
