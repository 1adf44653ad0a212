package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/status"
	"taskflow/internal/store"
)

func init() {
	Register(&StartCmd{})
}

// StartCmd moves a pending task to IN_PROGRESS.
type StartCmd struct{}

func (c *StartCmd) Name() string           { return "start" }
func (c *StartCmd) Aliases() []string      { return nil }
func (c *StartCmd) Synopsis() string       { return "Start a pending task" }
func (c *StartCmd) Usage() string          { return "taskflow start <task-id>" }
func (c *StartCmd) Access() authgate.Class { return authgate.Protected }
func (c *StartCmd) NeedsBackend() bool     { return true }

func (c *StartCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StartCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks := store.New(env.Service, env.Sessions)
	if err := tasks.Refresh(ctx); err != nil {
		return reportError(errOut, err)
	}

	task, ok := tasks.Find(id)
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	switch task.Status {
	case service.StatusInProgress:
		fmt.Fprintf(errOut, "error: task %d is already in progress\n", id)
		return exitcode.UserError
	case service.StatusCompleted:
		fmt.Fprintf(errOut, "error: task %d is already completed\n", id)
		return exitcode.UserError
	}

	engine := status.NewEngine(env.Service, tasks)
	if _, err := engine.Advance(ctx, task); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
