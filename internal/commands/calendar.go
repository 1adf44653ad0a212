package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"taskflow/internal/authgate"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
	"taskflow/internal/store"
	"taskflow/internal/view"
)

func init() {
	Register(&CalendarCmd{})
}

// CalendarCmd renders one month of tasks as a grid plus per-day listings.
type CalendarCmd struct {
	month string
}

func (c *CalendarCmd) Name() string           { return "calendar" }
func (c *CalendarCmd) Aliases() []string      { return []string{"cal"} }
func (c *CalendarCmd) Synopsis() string       { return "Show the task calendar" }
func (c *CalendarCmd) Usage() string          { return "taskflow calendar [--month <YYYY-MM>]" }
func (c *CalendarCmd) Access() authgate.Class { return authgate.Protected }
func (c *CalendarCmd) NeedsBackend() bool     { return true }

func (c *CalendarCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.month, "month", "", "")
}

func (c *CalendarCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	month := c.month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid month: %s\n", c.month)
		return exitcode.UserError
	}

	tasks := store.New(env.Service, env.Sessions)
	if err := tasks.Refresh(ctx); err != nil {
		fmt.Fprintf(errOut, "warning: could not fetch tasks: %v\n", err)
	}

	byDate := view.ByDate(tasks.Snapshot(), month)
	printMonthGrid(out, first, byDate)

	// Per-day listings below the grid, in date order.
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks this month")
		}
		return exitcode.Success
	}

	fmt.Fprintln(out)
	for _, date := range dates {
		output.FormatDay(out, date, byDate[date])
	}
	return exitcode.Success
}

// printMonthGrid prints a Sunday-first month grid. Days with tasks carry
// a trailing asterisk.
func printMonthGrid(w io.Writer, first time.Time, byDate map[string][]service.Task) {
	fmt.Fprintf(w, "%s %d\n", first.Month(), first.Year())
	fmt.Fprintln(w, "Su  Mo  Tu  We  Th  Fr  Sa")

	daysInMonth := first.AddDate(0, 1, -1).Day()
	weekday := int(first.Weekday())

	for i := 0; i < weekday; i++ {
		fmt.Fprint(w, "    ")
	}
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format("2006-01-02")
		mark := " "
		if len(byDate[date]) > 0 {
			mark = "*"
		}
		fmt.Fprintf(w, "%2d%s ", day, mark)
		weekday++
		if weekday == 7 {
			weekday = 0
			fmt.Fprintln(w)
		}
	}
	if weekday != 0 {
		fmt.Fprintln(w)
	}
}
