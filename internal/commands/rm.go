package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string           { return "rm" }
func (c *RmCmd) Aliases() []string      { return []string{"delete"} }
func (c *RmCmd) Synopsis() string       { return "Delete a task" }
func (c *RmCmd) Usage() string          { return "taskflow rm <task-id>" }
func (c *RmCmd) Access() authgate.Class { return authgate.Protected }
func (c *RmCmd) NeedsBackend() bool     { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := env.Service.DeleteTask(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	tasks := store.New(env.Service, env.Sessions)
	if err := tasks.Invalidate(ctx); err != nil {
		fmt.Fprintf(errOut, "warning: could not refresh tasks: %v\n", err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
