package commands

import (
	"errors"
	"fmt"
	"io"

	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

// reportError writes a backend or input error and picks the exit code for
// it. Validation and busy errors are user errors; auth failures are auth
// errors; everything else (timeout, offline, API error) is a backend error.
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)

	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, service.ErrBusy):
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}
