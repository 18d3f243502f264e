package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/pkg/process"
)

// lockFileName lives in the worktree's git dir, so each worktree locks
// independently.
const lockFileName = "gate.lock"

// acquireLock writes the current PID to the lock file. It returns an error
// if another gate run holds the lock. Stale files from dead processes are
// cleaned up.
func acquireLock(gitDir string) (string, error) {
	path := filepath.Join(gitDir, lockFileName)

	if content, err := os.ReadFile(path); err == nil {
		pidStr := strings.TrimSpace(string(content))
		if pid, err := strconv.Atoi(pidStr); err == nil {
			if process.IsProcessAlive(pid) {
				return "", errors.New(errors.ErrCodeRunLocked, fmt.Sprintf("another gate run is in progress (pid %d)", pid)).
					WithDetail("pid", pid)
			}
			// Process is dead, cleanup stale file
			_ = os.Remove(path)
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return "", fmt.Errorf("write lock file: %w", err)
	}

	return path, nil
}

// releaseLock removes the lock file.
func releaseLock(path string) {
	_ = os.Remove(path)
}
