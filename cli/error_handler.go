package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/gate/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No .pre-commit-config.yaml found. Run 'gate sample-config > .pre-commit-config.yaml' to create one.\n")
		return err

	case errors.ErrCodeHookUnknown:
		if gateErr, ok := err.(*errors.GateError); ok {
			fmt.Fprintf(os.Stderr, "❌ Hook '%s' is not defined by repository %s\n", gateErr.Details["hook"], gateErr.Details["repo"])
			fmt.Fprintf(os.Stderr, "Check the id against the repository's %s\n", ".pre-commit-hooks.yaml")
		}
		return err

	case errors.ErrCodeRevUnresolved:
		if gateErr, ok := err.(*errors.GateError); ok {
			fmt.Fprintf(os.Stderr, "❌ Revision '%s' does not exist in %s\n", gateErr.Details["rev"], gateErr.Details["repo"])
			fmt.Fprintf(os.Stderr, "Pin rev to a published tag of the hook repository.\n")
		}
		return err

	case errors.ErrCodeManifestMissing:
		if gateErr, ok := err.(*errors.GateError); ok {
			fmt.Fprintf(os.Stderr, "❌ Repository %s has no hook manifest at the pinned revision\n", gateErr.Details["repo"])
		}
		return err

	case errors.ErrCodeRunLocked:
		if gateErr, ok := err.(*errors.GateError); ok {
			fmt.Fprintf(os.Stderr, "❌ Another gate run is already in progress (pid %v)\n", gateErr.Details["pid"])
		}
		return err

	case errors.ErrCodeNotARepository:
		fmt.Fprintf(os.Stderr, "❌ Not inside a git repository\n")
		return err

	case errors.ErrCodeGitNotInstalled:
		fmt.Fprintf(os.Stderr, "❌ git executable not found. Install git and retry.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if gateErr, ok := err.(*errors.GateError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", gateErr.ToJSON())
			}
		}
		return err
	}
}
