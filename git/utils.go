package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/grovetools/gate/command"
	"github.com/grovetools/gate/errors"
)

// gitError classifies a failed git invocation: a missing binary is its own
// condition, anything else is a command failure.
func gitError(cmdline string, err error) error {
	if stderrors.Is(err, exec.ErrNotFound) {
		return errors.GitNotInstalled()
	}
	return errors.CommandFailed(cmdline, err)
}

// notARepo maps a rev-parse failure in dir, still surfacing a missing git
// binary distinctly.
func notARepo(dir string, err error) error {
	if stderrors.Is(err, exec.ErrNotFound) {
		return errors.GitNotInstalled()
	}
	return errors.NotARepository(dir)
}

// GetGitRoot returns the root directory of the git repository
func GetGitRoot(dir string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", notARepo(dir, err)
	}

	return strings.TrimSpace(string(output)), nil
}

// GetGitDir returns the repository's git directory. For linked worktrees
// this is the per-worktree dir under .git/worktrees, so state kept here is
// scoped to one worktree.
func GetGitDir(dir string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", notARepo(dir, err)
	}

	gitDir := strings.TrimSpace(string(output))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}
	return gitDir, nil
}

// GetHooksDir returns the directory git reads hooks from. Resolved through
// git itself so linked worktrees (where .git is a file and hooks live in the
// common dir) and core.hooksPath overrides both work.
func GetHooksDir(dir string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", notARepo(dir, err)
	}

	hooksDir := strings.TrimSpace(string(output))
	if !filepath.IsAbs(hooksDir) {
		hooksDir = filepath.Join(dir, hooksDir)
	}
	return hooksDir, nil
}

// ResolveRef resolves a git ref (branch name, tag, or commit) to its full commit hash.
// Returns empty string and error if resolution fails.
func ResolveRef(dir, ref string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", gitError(fmt.Sprintf("git rev-parse %s", ref), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// GetHeadCommit returns the current HEAD commit hash for a repository.
func GetHeadCommit(dir string) (string, error) {
	return ResolveRef(dir, "HEAD")
}
