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
	Register(&HelpCmd{})
	Register(&VersionCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string           { return "help" }
func (c *HelpCmd) Aliases() []string      { return nil }
func (c *HelpCmd) Synopsis() string       { return "Print usage" }
func (c *HelpCmd) Usage() string          { return "taskflow help" }
func (c *HelpCmd) Access() authgate.Class { return authgate.Public }
func (c *HelpCmd) NeedsBackend() bool     { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                           List tasks (same as taskflow list)
  taskflow list [--filter <name>] [--page <n>] [--page-size <n>]
  taskflow add --date <YYYY-MM-DD> [--desc <text>] [--priority LOW|MEDIUM|HIGH] <title...>
  taskflow start <task-id>                           Move a pending task to in progress
  taskflow done <task-id>                            Mark a task completed
  taskflow rm <task-id>                              Delete a task
  taskflow calendar [--month <YYYY-MM>]              Show the task calendar
  taskflow login --email <email> --password <password>
  taskflow register --first <name> --last <name> --email <email> --password <password>
  taskflow logout
  taskflow whoami
  taskflow users                                     List accounts (admin)
  taskflow user-status <user-id> <active|inactive>   (admin)
  taskflow user-role <user-id> <USER|ADMIN>          (admin)
  taskflow user-rm <user-id>                         (admin)
  taskflow health
  taskflow help
  taskflow version

Filters: all, today, upcoming, completed, pending, in-progress

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`

// Version is the application version. Set at build time.
var Version = "0.1.0"

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string           { return "version" }
func (c *VersionCmd) Aliases() []string      { return nil }
func (c *VersionCmd) Synopsis() string       { return "Print version" }
func (c *VersionCmd) Usage() string          { return "taskflow version" }
func (c *VersionCmd) Access() authgate.Class { return authgate.Public }
func (c *VersionCmd) NeedsBackend() bool     { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "taskflow %s\n", Version)
	return exitcode.Success
}
