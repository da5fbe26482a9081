package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/carta/internal/validation"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// usageError marks a failure caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// systemError marks a failure of the environment: config, storage, network.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

// exitCode maps a command error to the process exit code. Business rule
// violations, invalid input and usage mistakes exit 1; system failures
// exit 2. Errors cobra raises itself, such as unknown commands, count as
// usage mistakes.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if _, ok := types.KindOf(err); ok {
		return exitUserError
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return exitUserError
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		return exitUserError
	}
	var serr systemError
	if errors.As(err, &serr) {
		return exitSysError
	}
	return exitUserError
}

// managerError classifies an error returned by a catalog manager: a
// BusinessError stays a user error, anything else is a system failure.
func managerError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := types.KindOf(err); ok {
		return err
	}
	return systemError{err}
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// minimumArgs is cobra.MinimumNArgs reporting a usage error.
func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
