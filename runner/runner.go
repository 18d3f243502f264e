// Package runner executes the configured hook set for a git lifecycle
// event: groups in file order, hooks in group order, stopping at the first
// failure when fail_fast is on.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/gate/command"
	"github.com/grovetools/gate/config"
	gateerrors "github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/git"
	"github.com/grovetools/gate/logging"
	"github.com/grovetools/gate/store"
)

// Options select the file set for a run.
type Options struct {
	// AllFiles runs against every tracked file instead of the event's
	// changed set.
	AllFiles bool

	// Files overrides the file set entirely.
	Files []string

	// PushRanges carry the ref ranges from pre-push stdin.
	PushRanges []git.PushRange
}

// Runner executes hook sets against a repository.
type Runner struct {
	root       string
	cfg        *config.Config
	store      *store.Store
	cmdBuilder *command.SafeBuilder
	log        *logrus.Entry
}

// New creates a runner for the repository rooted at root.
func New(root string, cfg *config.Config, st *store.Store) *Runner {
	return NewWithExecutor(root, cfg, st, &command.RealExecutor{})
}

// NewWithExecutor creates a runner with a custom command executor.
func NewWithExecutor(root string, cfg *config.Config, st *store.Store, exec command.Executor) *Runner {
	return &Runner{
		root:       root,
		cfg:        cfg,
		store:      st,
		cmdBuilder: command.NewSafeBuilderWithExecutor(exec),
		log:        logging.NewLogger("runner"),
	}
}

// Run executes the hook set for one lifecycle event. Hook failures are
// reported in the result, not as an error; the error return covers setup
// problems (bad config, unresolvable revs, unknown ids, lock contention).
func (r *Runner) Run(ctx context.Context, event string, opts Options) (*RunResult, error) {
	gitDir, err := git.GetGitDir(r.root)
	if err != nil {
		return nil, err
	}

	lockPath, err := acquireLock(gitDir)
	if err != nil {
		return nil, err
	}
	defer releaseLock(lockPath)

	files, err := r.filesForEvent(ctx, event, opts)
	if err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{"event": event, "files": len(files)}).Debug("Starting hook run")

	result := &RunResult{Event: event}
	for i := range r.cfg.Repos {
		resolved, err := r.resolveGroup(ctx, &r.cfg.Repos[i])
		if err != nil {
			return nil, err
		}

		for _, rh := range resolved {
			if !rh.hook.RunsFor(event) {
				continue
			}

			hookResult := r.runHook(ctx, rh, files)
			result.Results = append(result.Results, hookResult)

			if hookResult.Failed() {
				r.log.WithField("hook", hookResult.ID).Warn("Hook failed")
				if r.cfg.FailFastEnabled() {
					result.Aborted = true
					return result, nil
				}
			}
		}
	}

	return result, nil
}

// filesForEvent computes the candidate file set for the event.
func (r *Runner) filesForEvent(ctx context.Context, event string, opts Options) ([]string, error) {
	if len(opts.Files) > 0 {
		return opts.Files, nil
	}
	if opts.AllFiles {
		return git.AllFiles(ctx, r.root)
	}

	switch event {
	case config.HookTypePrePush:
		return r.pushFiles(ctx, opts.PushRanges)
	default:
		return git.StagedFiles(ctx, r.root)
	}
}

// pushFiles unions the changed files of every outgoing ref range.
func (r *Runner) pushFiles(ctx context.Context, ranges []git.PushRange) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, rng := range ranges {
		if rng.IsDelete() {
			continue
		}
		changed, err := git.FilesInRange(ctx, r.root, rng.RemoteSHA, rng.LocalSHA)
		if err != nil {
			return nil, err
		}
		for _, f := range changed {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

// runHook executes one resolved hook against the candidate files.
func (r *Runner) runHook(ctx context.Context, rh resolvedHook, files []string) HookResult {
	result := HookResult{
		ID:   rh.hook.ID,
		Name: rh.displayName(),
		Repo: rh.repo,
	}

	filter, err := newFileFilter(r.cfg.Exclude, rh.hook, rh.manifest)
	if err != nil {
		return failResult(result, err)
	}
	matched, err := filter.Apply(files)
	if err != nil {
		return failResult(result, err)
	}
	result.FileCount = len(matched)

	if len(matched) == 0 && !rh.alwaysRun() {
		result.Status = StatusSkipped
		return result
	}

	// Snapshot content so in-place rewrites are detected even when the
	// hook exits zero
	before, err := git.HashFiles(r.root, matched)
	if err != nil {
		return failResult(result, err)
	}

	argv := rh.argv(matched)
	if len(argv) == 0 {
		return failResult(result, gateerrors.New(gateerrors.ErrCodeInvalidInput, fmt.Sprintf("hook '%s' has an empty entry", rh.hook.ID)))
	}

	cmd, err := r.cmdBuilder.Build(ctx, argv[0], argv[1:]...)
	if err != nil {
		return failResult(result, err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = r.root
	execCmd.Env = hookEnv(rh.hook)

	start := time.Now()
	output, runErr := execCmd.CombinedOutput()
	result.Duration = time.Since(start)
	result.Output = string(output)

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	after, err := git.HashFiles(r.root, matched)
	if err != nil {
		return failResult(result, err)
	}
	result.ModifiedFiles = git.ModifiedSince(before, after)

	switch {
	case len(result.ModifiedFiles) > 0:
		// Autofix hooks repair files but still block the operation so the
		// user re-reviews and re-stages
		result.Status = StatusFailed
		result.Err = gateerrors.FilesModified(rh.hook.ID, result.ModifiedFiles)
	case runErr != nil:
		result.Status = StatusFailed
		result.Err = classifyRunError(rh.hook.ID, cmd, runErr, result.ExitCode)
	default:
		result.Status = StatusPassed
	}

	return result
}

// classifyRunError distinguishes a hook that ran and failed from one whose
// command never completed normally: an expired deadline or a missing binary.
func classifyRunError(id string, cmd *command.Command, runErr error, exitCode int) error {
	switch {
	case cmd.TimedOut():
		return gateerrors.New(gateerrors.ErrCodeCommandTimeout, fmt.Sprintf("hook '%s' timed out: %s", id, cmd.String())).
			WithDetail("hook", id)
	case errors.Is(runErr, exec.ErrNotFound):
		return gateerrors.Wrap(runErr, gateerrors.ErrCodeCommandNotFound, fmt.Sprintf("hook '%s' command not found: %s", id, cmd.String())).
			WithDetail("hook", id)
	default:
		return gateerrors.HookFailed(id, exitCode)
	}
}

func failResult(result HookResult, err error) HookResult {
	result.Status = StatusFailed
	result.Err = err
	if result.ExitCode == 0 {
		result.ExitCode = -1
	}
	return result
}

func hookEnv(hook *config.Hook) []string {
	env := os.Environ()
	if hook.LanguageVersion != "" {
		env = append(env, "GATE_LANGUAGE_VERSION="+hook.LanguageVersion)
	}
	return env
}
