package process

import (
	"os"
	"syscall"
)

// IsProcessAlive reports whether a process with the given PID is running.
// Used to tell a live lock holder from a stale lock file.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	// FindProcess never fails on Unix, even for dead PIDs
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Signal 0 probes for existence without delivering anything. EPERM
	// means the process exists but belongs to another user.
	err = process.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}
