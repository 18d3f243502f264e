package config

//go:generate go run ../tools/schema-generator/

// DefaultFileName is the name of the hook configuration file, looked up at
// the repository root.
const DefaultFileName = ".pre-commit-config.yaml"

// LocalRepo is the sentinel repo value for hooks defined inline in the
// configuration rather than resolved from a cloned hook repository.
const LocalRepo = "local"

// Config is the parsed hook runner configuration.
type Config struct {
	// DefaultInstallHookTypes lists the git lifecycle events that `gate
	// install` creates shims for. Defaults to pre-commit when empty.
	DefaultInstallHookTypes []string `yaml:"default_install_hook_types,omitempty" json:"default_install_hook_types,omitempty" jsonschema:"description=Git lifecycle events to install hook shims for"`

	// Repos are the hook repository groups, executed in declared order.
	Repos []Repo `yaml:"repos" json:"repos" jsonschema:"description=Ordered hook repository groups"`

	// Exclude is a regular expression filtering files out of every hook.
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Regex of file paths excluded from all hooks"`

	// FailFast aborts the remaining hook sequence on the first failure.
	// Unset means true.
	FailFast *bool `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty" jsonschema:"description=Abort remaining hooks on first failure (default true)"`
}

// FailFastEnabled reports whether the run stops at the first failing hook.
func (c *Config) FailFastEnabled() bool {
	return c.FailFast == nil || *c.FailFast
}

// InstallHookTypes returns the lifecycle events shims are installed for.
func (c *Config) InstallHookTypes() []string {
	if len(c.DefaultInstallHookTypes) == 0 {
		return []string{HookTypePreCommit}
	}
	return c.DefaultInstallHookTypes
}

// Repo is one hook repository group.
type Repo struct {
	// Repo is the source location of the hooks: a clonable URL, or "local".
	Repo string `yaml:"repo" json:"repo" jsonschema:"description=Hook repository URL or 'local'"`

	// Rev pins the repository to an immutable release tag.
	Rev string `yaml:"rev,omitempty" json:"rev,omitempty" jsonschema:"description=Pinned revision of the hook repository"`

	// Hooks are executed in declared order within the group.
	Hooks []Hook `yaml:"hooks" json:"hooks" jsonschema:"description=Ordered hook entries"`
}

// IsLocal reports whether the group's hooks are defined inline.
func (r *Repo) IsLocal() bool {
	return r.Repo == LocalRepo
}

// Hook is a single hook entry within a repository group.
type Hook struct {
	ID   string `yaml:"id" json:"id" jsonschema:"description=Identifier of the hook within its repository"`
	Name string `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Display name override"`

	// Entry and Language configure hooks in local groups, where there is no
	// repository manifest to resolve the id against.
	Entry    string `yaml:"entry,omitempty" json:"entry,omitempty" jsonschema:"description=Command to run (local hooks only)"`
	Language string `yaml:"language,omitempty" json:"language,omitempty" jsonschema:"description=Language of the entry (local hooks only)"`

	Args            []string `yaml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Arguments passed to the hook before filenames"`
	LanguageVersion string   `yaml:"language_version,omitempty" json:"language_version,omitempty" jsonschema:"description=Runtime version pin exported to the hook"`

	// Files and Exclude are regular expressions matched against candidate
	// file paths.
	Files   string `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=Regex selecting files the hook runs on"`
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Regex of files excluded from the hook"`

	// Stages restricts the hook to specific lifecycle events. Empty means
	// every event.
	Stages []string `yaml:"stages,omitempty" json:"stages,omitempty" jsonschema:"description=Lifecycle events the hook runs for"`

	AlwaysRun     bool  `yaml:"always_run,omitempty" json:"always_run,omitempty" jsonschema:"description=Run even when no files match"`
	PassFilenames *bool `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty" jsonschema:"description=Append matched filenames to the command (default true)"`
}

// DisplayName returns the name shown in run output.
func (h *Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// RunsFor reports whether the hook participates in the given lifecycle event.
func (h *Hook) RunsFor(event string) bool {
	if len(h.Stages) == 0 {
		return true
	}
	for _, stage := range h.Stages {
		if stage == event {
			return true
		}
	}
	return false
}

// PassesFilenames reports whether matched filenames are appended to the
// command line.
func (h *Hook) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}
