package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/gate/config"
	"github.com/grovetools/gate/store"
)

// resolvedHook is a configured hook bound to a concrete command: either a
// local entry or a manifest entry from a pinned clone.
type resolvedHook struct {
	repo     string
	repoPath string
	hook     *config.Hook
	manifest *store.ManifestHook
}

// resolveGroup binds every hook of a repository group. For remote groups
// this syncs the pinned clone and resolves ids against its manifest, so
// unknown ids and unresolvable revs surface before anything runs.
func (r *Runner) resolveGroup(ctx context.Context, group *config.Repo) ([]resolvedHook, error) {
	resolved := make([]resolvedHook, 0, len(group.Hooks))

	if group.IsLocal() {
		for i := range group.Hooks {
			resolved = append(resolved, resolvedHook{
				repo: config.LocalRepo,
				hook: &group.Hooks[i],
			})
		}
		return resolved, nil
	}

	repoPath, err := r.store.Sync(ctx, group.Repo, group.Rev)
	if err != nil {
		return nil, err
	}

	manifest, err := store.LoadManifest(repoPath)
	if err != nil {
		return nil, err
	}

	for i := range group.Hooks {
		manifestHook, err := store.FindHook(manifest, group.Hooks[i].ID, group.Repo)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, resolvedHook{
			repo:     group.Repo,
			repoPath: repoPath,
			hook:     &group.Hooks[i],
			manifest: manifestHook,
		})
	}

	return resolved, nil
}

func (rh *resolvedHook) displayName() string {
	if rh.hook.Name != "" {
		return rh.hook.Name
	}
	if rh.manifest != nil {
		return rh.manifest.DisplayName()
	}
	return rh.hook.ID
}

func (rh *resolvedHook) entry() string {
	if rh.manifest != nil {
		return rh.manifest.Entry
	}
	return rh.hook.Entry
}

func (rh *resolvedHook) alwaysRun() bool {
	if rh.hook.AlwaysRun {
		return true
	}
	return rh.manifest != nil && rh.manifest.AlwaysRun
}

func (rh *resolvedHook) passFilenames() bool {
	if rh.hook.PassFilenames != nil {
		return *rh.hook.PassFilenames
	}
	if rh.manifest != nil {
		return rh.manifest.PassesFilenames()
	}
	return true
}

// argv builds the command line: entry words, configured args, then matched
// filenames. An entry whose command is a script shipped in the hook
// repository is resolved to its absolute path inside the clone.
func (rh *resolvedHook) argv(files []string) []string {
	parts := strings.Fields(rh.entry())
	if len(parts) == 0 {
		return nil
	}

	if rh.repoPath != "" && !filepath.IsAbs(parts[0]) {
		candidate := filepath.Join(rh.repoPath, parts[0])
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			parts[0] = candidate
		}
	}

	argv := make([]string, 0, len(parts)+len(rh.hook.Args)+len(files))
	argv = append(argv, parts...)
	argv = append(argv, rh.hook.Args...)
	if rh.passFilenames() {
		argv = append(argv, files...)
	}
	return argv
}
