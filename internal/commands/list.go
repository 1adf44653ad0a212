package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/store"
	"taskflow/internal/view"
)

// DefaultPageSize is the number of task rows per page.
const DefaultPageSize = 10

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Runs as the default command when
// taskflow is invoked with no arguments.
type ListCmd struct {
	filter   string
	page     int
	pageSize int
	refDate  string
}

// SetReferenceDate overrides the date used for today/upcoming filtering
// (for testing).
func (c *ListCmd) SetReferenceDate(date string) {
	c.refDate = date
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--filter all|today|upcoming|completed|pending|in-progress] [--page <n>] [--page-size <n>]"
}
func (c *ListCmd) Access() authgate.Class { return authgate.Protected }
func (c *ListCmd) NeedsBackend() bool     { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.IntVar(&c.page, "page", 1, "")
	fs.IntVar(&c.pageSize, "page-size", DefaultPageSize, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	criterion, err := view.ParseCriterion(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	if c.pageSize < 1 {
		fmt.Fprintf(errOut, "error: invalid page size: %d\n", c.pageSize)
		return exitcode.UserError
	}

	tasks := store.New(env.Service, env.Sessions)

	// Reads degrade gracefully: a failed refresh leaves the previous
	// snapshot and the listing proceeds with whatever is held.
	if err := tasks.Refresh(ctx); err != nil {
		fmt.Fprintf(errOut, "warning: could not fetch tasks: %v\n", err)
	}

	refDate := c.refDate
	if refDate == "" {
		refDate = time.Now().Format("2006-01-02")
	}

	page := view.Derive(tasks.Snapshot(), criterion, refDate, c.pageSize, c.page)
	if page.TotalCount == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	startNum := (page.Number-1)*c.pageSize + 1
	for i, task := range page.Items {
		output.FormatTask(out, startNum+i, task)
	}
	if !env.Config.Quiet {
		output.FormatPageFooter(out, page)
	}
	return exitcode.Success
}
