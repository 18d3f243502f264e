package config

import (
	"fmt"
	"regexp"

	"github.com/grovetools/gate/errors"
)

var hookIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for _, hookType := range c.DefaultInstallHookTypes {
		if !IsKnownHookType(hookType) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("unrecognized hook type '%s' in default_install_hook_types", hookType)).
				WithDetail("hookType", hookType)
		}
	}

	if c.Exclude != "" {
		if _, err := regexp.Compile(c.Exclude); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid top-level exclude pattern").
				WithDetail("pattern", c.Exclude)
		}
	}

	if len(c.Repos) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "configuration must declare at least one repository group")
	}

	for i, repo := range c.Repos {
		r := repo
		if err := validateRepo(&r); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("invalid repository group %d (%s)", i, repo.Repo)).
				WithDetail("repo", repo.Repo)
		}
	}

	return nil
}

func validateRepo(repo *Repo) error {
	if repo.Repo == "" {
		return errors.New(errors.ErrCodeConfigValidation, "repository group must declare a repo")
	}

	// Revision pin is required for reproducible remote hooks
	if !repo.IsLocal() && repo.Rev == "" {
		return errors.New(errors.ErrCodeConfigValidation, "remote repository group must pin a rev").
			WithDetail("repo", repo.Repo)
	}

	if len(repo.Hooks) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "repository group must declare at least one hook")
	}

	argsByID := make(map[string][]string)
	for _, hook := range repo.Hooks {
		h := hook
		if err := validateHook(&h, repo.IsLocal()); err != nil {
			return err
		}

		// Two entries with the same id and different args express
		// ambiguous intent
		if prev, seen := argsByID[hook.ID]; seen && !equalArgs(prev, hook.Args) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("hook '%s' is declared twice with conflicting args", hook.ID)).
				WithDetail("hook", hook.ID)
		}
		argsByID[hook.ID] = hook.Args
	}

	return nil
}

func validateHook(hook *Hook, local bool) error {
	if hook.ID == "" {
		return errors.New(errors.ErrCodeConfigValidation, "hook entry must declare an id")
	}
	if !hookIDRegex.MatchString(hook.ID) {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("invalid hook id '%s' (must contain only letters, digits, underscores, and hyphens)", hook.ID)).
			WithDetail("hook", hook.ID)
	}

	if local && hook.Entry == "" {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("local hook '%s' must declare an entry", hook.ID)).
			WithDetail("hook", hook.ID)
	}

	for _, stage := range hook.Stages {
		if !IsKnownHookType(stage) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("hook '%s' declares unrecognized stage '%s'", hook.ID, stage)).
				WithDetail("hook", hook.ID).
				WithDetail("stage", stage)
		}
	}

	for _, pattern := range []string{hook.Files, hook.Exclude} {
		if pattern == "" {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("hook '%s' declares an invalid file pattern", hook.ID)).
				WithDetail("hook", hook.ID).
				WithDetail("pattern", pattern)
		}
	}

	return nil
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
