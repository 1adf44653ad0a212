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
	"taskflow/internal/store"
	"taskflow/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	date        string
	description string
	priority    string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskflow add --date <YYYY-MM-DD> [--desc <text>] [--priority LOW|MEDIUM|HIGH] <title...>"
}
func (c *AddCmd) Access() authgate.Class { return authgate.Protected }
func (c *AddCmd) NeedsBackend() bool     { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))

	var priority service.Priority
	if c.priority != "" {
		switch p := service.Priority(strings.ToUpper(c.priority)); p {
		case service.PriorityLow, service.PriorityMedium, service.PriorityHigh:
			priority = p
		default:
			fmt.Fprintf(errOut, "error: invalid priority: %s\n", c.priority)
			return exitcode.UserError
		}
	}

	nt := service.NewTask{
		Title:       title,
		Description: c.description,
		Date:        c.date,
		Priority:    priority,
	}

	// Client-side checks run before any network call.
	if err := validate.Task(nt); err != nil {
		return reportError(errOut, err)
	}

	created, err := env.Service.CreateTask(ctx, nt)
	if err != nil {
		return reportError(errOut, err)
	}

	tasks := store.New(env.Service, env.Sessions)
	if err := tasks.Invalidate(ctx); err != nil {
		fmt.Fprintf(errOut, "warning: could not refresh tasks: %v\n", err)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "created task %d\n", created.ID)
	}
	return exitcode.Success
}
