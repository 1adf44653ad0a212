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
	Register(&HealthCmd{})
}

// HealthCmd checks backend reachability.
type HealthCmd struct{}

func (c *HealthCmd) Name() string           { return "health" }
func (c *HealthCmd) Aliases() []string      { return nil }
func (c *HealthCmd) Synopsis() string       { return "Check backend reachability" }
func (c *HealthCmd) Usage() string          { return "taskflow health [common flags]" }
func (c *HealthCmd) Access() authgate.Class { return authgate.Public }
func (c *HealthCmd) NeedsBackend() bool     { return true }

func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !env.Service.Health(ctx) {
		fmt.Fprintln(errOut, "error: backend unreachable")
		return exitcode.BackendError
	}
	if !env.Config.Quiet {
		fmt.Fprintln(out, "backend reachable")
	}
	return exitcode.Success
}
