package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/gate/command"
	"github.com/grovetools/gate/config"
	gateerrors "github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/git"
	"github.com/grovetools/gate/store"
	"github.com/grovetools/gate/testutil"
)

// writeScript drops an executable shell script into the repository so local
// hooks have something real to run without external tools installed.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return "./" + name
}

func newTestRunner(t *testing.T, root string, cfg *config.Config) *Runner {
	t.Helper()
	return New(root, cfg, store.New(t.TempDir()))
}

func localConfig(hooks ...config.Hook) *config.Config {
	return &config.Config{
		Repos: []config.Repo{{Repo: config.LocalRepo, Hooks: hooks}},
	}
}

func TestRunPassingHook(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "print('hi')\n")

	entry := writeScript(t, dir, "ok.sh", "exit 0\n")
	cfg := localConfig(config.Hook{ID: "ok", Entry: entry})

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusPassed, result.Results[0].Status)
	assert.True(t, result.Ok())
	assert.False(t, result.Aborted)
}

func TestRunConflictMarkerBlocksCommit(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	entry := writeScript(t, dir, "check-conflicts.sh", `status=0
for f in "$@"; do
  if grep -q '<<<<<<<' "$f"; then
    echo "conflict marker in $f"
    status=1
  fi
done
exit $status
`)
	cfg := localConfig(config.Hook{ID: "check-merge-conflict", Entry: entry, Exclude: `\.sh$`})

	testutil.StageFile(t, dir, "merged.py", "<<<<<<< HEAD\nours\n=======\ntheirs\n")

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.False(t, result.Ok())
	failure := result.FirstFailure()
	require.NotNil(t, failure)
	assert.Equal(t, "check-merge-conflict", failure.ID)
	assert.Equal(t, 1, failure.ExitCode)
	assert.Contains(t, failure.Output, "merged.py")
	assert.Equal(t, gateerrors.ErrCodeHookFailed, gateerrors.GetCode(failure.Err))
}

func TestRunAutofixBlocksThenPasses(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	// Normalizes files to a fixed body and exits zero, like a formatter
	entry := writeScript(t, dir, "fix.sh", `for f in "$@"; do
  printf 'formatted\n' > "$f"
done
exit 0
`)
	cfg := localConfig(config.Hook{ID: "format", Entry: entry, Files: `\.py$`})

	testutil.StageFile(t, dir, "messy.py", "unformatted\n")

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	// First pass: exit 0, but the rewrite still blocks the commit
	require.Len(t, result.Results, 1)
	first := result.Results[0]
	assert.Equal(t, StatusFailed, first.Status)
	assert.Equal(t, 0, first.ExitCode)
	assert.Equal(t, []string{"messy.py"}, first.ModifiedFiles)
	assert.Equal(t, gateerrors.ErrCodeFilesModified, gateerrors.GetCode(first.Err))

	// Re-stage the fixed content and run again
	testutil.Git(t, dir, "add", "messy.py")
	result, err = r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusPassed, result.Results[0].Status)
}

func TestRunFailFastAborts(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	bad := writeScript(t, dir, "bad.sh", "exit 1\n")
	good := writeScript(t, dir, "good.sh", "exit 0\n")
	cfg := localConfig(
		config.Hook{ID: "bad", Entry: bad},
		config.Hook{ID: "good", Entry: good},
	)

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	assert.True(t, result.Aborted)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "bad", result.Results[0].ID)
}

func TestRunFailFastDisabled(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	bad := writeScript(t, dir, "bad.sh", "exit 1\n")
	good := writeScript(t, dir, "good.sh", "exit 0\n")
	cfg := localConfig(
		config.Hook{ID: "bad", Entry: bad},
		config.Hook{ID: "good", Entry: good},
	)
	failFast := false
	cfg.FailFast = &failFast

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	assert.False(t, result.Aborted)
	require.Len(t, result.Results, 2)
	assert.Equal(t, StatusFailed, result.Results[0].Status)
	assert.Equal(t, StatusPassed, result.Results[1].Status)
}

func TestRunSkipsWhenNoFilesMatch(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.go", "package app\n")

	entry := writeScript(t, dir, "ok.sh", "exit 0\n")
	cfg := localConfig(config.Hook{ID: "check-py", Entry: entry, Files: `\.py$`})

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusSkipped, result.Results[0].Status)
	assert.True(t, result.Ok())
}

func TestRunAlwaysRun(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	entry := writeScript(t, dir, "ok.sh", "exit 0\n")
	cfg := localConfig(config.Hook{ID: "env-check", Entry: entry, AlwaysRun: true})

	// Nothing staged at all
	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusPassed, result.Results[0].Status)
	assert.Equal(t, 0, result.Results[0].FileCount)
}

func TestRunRespectsStages(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	entry := writeScript(t, dir, "ok.sh", "exit 0\n")
	cfg := localConfig(config.Hook{ID: "push-only", Entry: entry, Stages: []string{config.HookTypePrePush}})

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestRunExplicitFiles(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.py"), []byte("x = 1\n"), 0644))

	entry := writeScript(t, dir, "count.sh", `echo "$#"
exit 0
`)
	cfg := localConfig(config.Hook{ID: "count", Entry: entry})

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{Files: []string{"untracked.py"}})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, 1, result.Results[0].FileCount)
	assert.Equal(t, "1\n", result.Results[0].Output)
}

func TestRunExportsLanguageVersion(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	entry := writeScript(t, dir, "show-version.sh", `echo "runtime=$GATE_LANGUAGE_VERSION"
exit 0
`)
	cfg := localConfig(config.Hook{ID: "pinned", Entry: entry, LanguageVersion: "python3.11"})

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusPassed, result.Results[0].Status)
	assert.Contains(t, result.Results[0].Output, "runtime=python3.11")
}

func TestRunRemoteGroup(t *testing.T) {
	testutil.RequireGit(t)

	// A clonable hook repository shipping its own script
	hookRepo := t.TempDir()
	testutil.InitGitRepo(t, hookRepo)
	require.NoError(t, os.WriteFile(filepath.Join(hookRepo, "check.sh"), []byte("#!/bin/sh\nexit 0\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hookRepo, store.ManifestFileName), []byte(`- id: shipped-check
  name: Shipped check
  entry: check.sh
`), 0644))
	testutil.CommitAll(t, hookRepo, "add hook")
	testutil.Git(t, hookRepo, "tag", "v1.0.0")

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	cfg := &config.Config{
		Repos: []config.Repo{{
			Repo:  hookRepo,
			Rev:   "v1.0.0",
			Hooks: []config.Hook{{ID: "shipped-check"}},
		}},
	}

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusPassed, result.Results[0].Status)
	assert.Equal(t, "Shipped check", result.Results[0].Name)
}

func TestRunUnknownRemoteHook(t *testing.T) {
	testutil.RequireGit(t)

	hookRepo := t.TempDir()
	testutil.InitGitRepo(t, hookRepo)
	require.NoError(t, os.WriteFile(filepath.Join(hookRepo, store.ManifestFileName), []byte(`- id: real-hook
  entry: "true"
`), 0644))
	testutil.CommitAll(t, hookRepo, "add manifest")
	testutil.Git(t, hookRepo, "tag", "v1.0.0")

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	cfg := &config.Config{
		Repos: []config.Repo{{
			Repo:  hookRepo,
			Rev:   "v1.0.0",
			Hooks: []config.Hook{{ID: "no-such-hook"}},
		}},
	}

	r := newTestRunner(t, dir, cfg)
	_, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.Error(t, err)
	assert.Equal(t, gateerrors.ErrCodeHookUnknown, gateerrors.GetCode(err))
}

func TestRunCommandNotFound(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "app.py", "x = 1\n")

	cfg := localConfig(config.Hook{ID: "ghost", Entry: "gate-test-no-such-binary"})

	r := newTestRunner(t, dir, cfg)
	result, err := r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.NoError(t, err)

	failure := result.FirstFailure()
	require.NotNil(t, failure)
	assert.Equal(t, gateerrors.ErrCodeCommandNotFound, gateerrors.GetCode(failure.Err))
	assert.Equal(t, -1, failure.ExitCode)
}

func TestClassifyRunErrorTimeout(t *testing.T) {
	cmd, err := command.NewSafeBuilder().Build(context.Background(), "sleep", "10")
	require.NoError(t, err)
	cmd.WithTimeout(time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	classified := classifyRunError("slow", cmd, context.DeadlineExceeded, -1)
	assert.Equal(t, gateerrors.ErrCodeCommandTimeout, gateerrors.GetCode(classified))
}

func TestRunLockedRepository(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	lockPath, err := acquireLock(filepath.Join(dir, ".git"))
	require.NoError(t, err)
	defer releaseLock(lockPath)

	cfg := localConfig(config.Hook{ID: "ok", Entry: "true"})
	r := newTestRunner(t, dir, cfg)
	_, err = r.Run(context.Background(), config.HookTypePreCommit, Options{})
	require.Error(t, err)
	assert.Equal(t, gateerrors.ErrCodeRunLocked, gateerrors.GetCode(err))
}

func TestRunPrePushUnionsRanges(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	base := testutil.Git(t, dir, "rev-parse", "HEAD")
	testutil.StageFile(t, dir, "pushed.py", "x = 1\n")
	testutil.CommitAll(t, dir, "add pushed file")
	head := testutil.Git(t, dir, "rev-parse", "HEAD")

	entry := writeScript(t, dir, "list.sh", `for f in "$@"; do echo "$f"; done
exit 0
`)

	cfg := localConfig(config.Hook{ID: "list", Entry: entry, Files: `\.py$`})
	r := newTestRunner(t, dir, cfg)

	opts := Options{PushRanges: []git.PushRange{{
		LocalRef:  "refs/heads/main",
		LocalSHA:  strings.TrimSpace(head),
		RemoteRef: "refs/heads/main",
		RemoteSHA: strings.TrimSpace(base),
	}}}
	result, err := r.Run(context.Background(), config.HookTypePrePush, opts)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusPassed, result.Results[0].Status)
	assert.Contains(t, result.Results[0].Output, "pushed.py")
}
