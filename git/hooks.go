package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const hookScriptTemplate = `#!/bin/sh
# gate git hook - {{.HookName}}
# Auto-generated, do not edit directly

GATE_BIN="{{.GateBinary}}"

# Check if gate is installed
if ! command -v "$GATE_BIN" >/dev/null 2>&1; then
    echo "gate not found. Skipping {{.HookName}} hook."
    exit 0
fi

# Ref information for pre-push arrives on stdin and is forwarded as-is
exec "$GATE_BIN" run {{.HookName}} "$@"
`

// HookManager installs and removes the git hook shims that dispatch
// lifecycle events to gate.
type HookManager struct {
	gateBinary string
}

// Ensure it implements the interface
var _ HookProvider = (*HookManager)(nil)

// NewHookManager creates a new hook manager
func NewHookManager(gateBinary string) *HookManager {
	if gateBinary == "" {
		gateBinary = "gate"
	}
	return &HookManager{
		gateBinary: gateBinary,
	}
}

// InstallHooks installs shims for the given lifecycle events
func (m *HookManager) InstallHooks(ctx context.Context, repoPath string, hookTypes []string) error {
	hooksDir, err := GetHooksDir(repoPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	for _, hookName := range hookTypes {
		if err := m.installHook(hooksDir, hookName); err != nil {
			return fmt.Errorf("install %s hook: %w", hookName, err)
		}
	}

	return nil
}

// UninstallHooks removes gate shims for the given lifecycle events and
// restores any hooks that were backed up during install
func (m *HookManager) UninstallHooks(ctx context.Context, repoPath string, hookTypes []string) error {
	hooksDir, err := GetHooksDir(repoPath)
	if err != nil {
		return err
	}

	for _, hookName := range hookTypes {
		hookPath := filepath.Join(hooksDir, hookName)

		// Only touch hooks gate manages
		if !m.isGateHook(hookPath) {
			continue
		}
		if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s hook: %w", hookName, err)
		}

		backupPath := hookPath + ".pre-gate"
		if _, err := os.Stat(backupPath); err == nil {
			if err := os.Rename(backupPath, hookPath); err != nil {
				return fmt.Errorf("restore %s hook: %w", hookName, err)
			}
		}
	}

	return nil
}

// installHook installs a single git hook shim
func (m *HookManager) installHook(hooksDir, hookName string) error {
	hookPath := filepath.Join(hooksDir, hookName)

	// Check if hook already exists
	if _, err := os.Stat(hookPath); err == nil {
		// Check if it's a gate hook
		if !m.isGateHook(hookPath) {
			// Backup existing hook
			backupPath := hookPath + ".pre-gate"
			if err := os.Rename(hookPath, backupPath); err != nil {
				return fmt.Errorf("backup existing hook: %w", err)
			}
		}
	}

	// Generate hook content
	tmpl, err := template.New(hookName).Parse(hookScriptTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		HookName   string
		GateBinary string
	}{
		HookName:   hookName,
		GateBinary: m.gateBinary,
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	// Write hook file with executable permissions
	// #nosec G306 - Git hooks need to be executable
	if err := os.WriteFile(hookPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	return nil
}

// isGateHook checks if a hook file is managed by gate
func (m *HookManager) isGateHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte("gate git hook"))
}
