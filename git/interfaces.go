package git

import "context"

// HookProvider defines the interface for git hook shim management
type HookProvider interface {
	InstallHooks(ctx context.Context, repoPath string, hookTypes []string) error
	UninstallHooks(ctx context.Context, repoPath string, hookTypes []string) error
}
