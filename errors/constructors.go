package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *GateError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// GitNotInstalled creates an error for a missing git executable
func GitNotInstalled() *GateError {
	return New(ErrCodeGitNotInstalled, "git executable not found in PATH")
}

// HookUnknown creates an error for a hook id the source repository does not define
func HookUnknown(id, repo string) *GateError {
	return New(ErrCodeHookUnknown, fmt.Sprintf("hook '%s' is not defined by %s", id, repo)).
		WithDetail("hook", id).
		WithDetail("repo", repo)
}

// RevUnresolved creates an error for a revision that cannot be checked out
func RevUnresolved(repo, rev string) *GateError {
	return New(ErrCodeRevUnresolved, fmt.Sprintf("revision '%s' of %s cannot be resolved", rev, repo)).
		WithDetail("repo", repo).
		WithDetail("rev", rev)
}

// HookFailed creates a hook execution failure error
func HookFailed(id string, exitCode int) *GateError {
	return New(ErrCodeHookFailed, fmt.Sprintf("hook '%s' failed with exit code %d", id, exitCode)).
		WithDetail("hook", id).
		WithDetail("exitCode", exitCode)
}

// FilesModified creates an error for a hook that rewrote files in place
func FilesModified(id string, files []string) *GateError {
	return New(ErrCodeFilesModified, fmt.Sprintf("hook '%s' modified files; review and re-stage them", id)).
		WithDetail("hook", id).
		WithDetail("files", files)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *GateError {
	gateErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		gateErr = gateErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return gateErr
}

// NotARepository creates an error for a path outside any git work tree
func NotARepository(path string) *GateError {
	return New(ErrCodeNotARepository, fmt.Sprintf("not a git repository: %s", path)).
		WithDetail("path", path)
}

// CloneFailed creates an error for a hook repository that could not be cloned
func CloneFailed(repo string, err error) *GateError {
	return Wrap(err, ErrCodeGitCloneFailed, fmt.Sprintf("failed to clone hook repository %s", repo)).
		WithDetail("repo", repo)
}
