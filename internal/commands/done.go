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
	Register(&DoneCmd{})
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string           { return "done" }
func (c *DoneCmd) Aliases() []string      { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string       { return "Mark a task completed" }
func (c *DoneCmd) Usage() string          { return "taskflow done <task-id>" }
func (c *DoneCmd) Access() authgate.Class { return authgate.Protected }
func (c *DoneCmd) NeedsBackend() bool     { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
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

	// Completed is terminal; repeating the command is a no-op.
	if task.Status == service.StatusCompleted {
		if !env.Config.Quiet {
			fmt.Fprintf(out, "task %d is already completed\n", id)
		}
		return exitcode.Success
	}

	engine := status.NewEngine(env.Service, tasks)
	if err := engine.Complete(ctx, task); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
