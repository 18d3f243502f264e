package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/gate/errors"
)

// ManifestFileName is the file a hook repository publishes to declare the
// hooks it defines.
const ManifestFileName = ".pre-commit-hooks.yaml"

// ManifestHook is one hook definition from a repository manifest.
type ManifestHook struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Entry is the command to run, relative to the cloned repository or on
	// PATH.
	Entry    string `yaml:"entry"`
	Language string `yaml:"language,omitempty"`

	// Files is a regex preselecting the files the hook applies to.
	Files string `yaml:"files,omitempty"`

	// Patterns are glob patterns (dockerignore syntax) further narrowing the
	// file set.
	Patterns []string `yaml:"patterns,omitempty"`

	PassFilenames *bool `yaml:"pass_filenames,omitempty"`
	AlwaysRun     bool  `yaml:"always_run,omitempty"`
}

// DisplayName returns the name shown in run output.
func (h *ManifestHook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// PassesFilenames reports whether matched filenames are appended to the
// command line.
func (h *ManifestHook) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// LoadManifest reads the hook manifest of a cloned repository.
func LoadManifest(repoPath string) ([]ManifestHook, error) {
	path := filepath.Join(repoPath, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeManifestMissing, fmt.Sprintf("%s has no %s", repoPath, ManifestFileName)).
				WithDetail("path", repoPath)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var hooks []ManifestHook
	if err := yaml.Unmarshal(data, &hooks); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	for _, hook := range hooks {
		if hook.ID == "" || hook.Entry == "" {
			return nil, fmt.Errorf("manifest %s: every hook needs an id and an entry", path)
		}
	}

	return hooks, nil
}

// FindHook resolves a configured hook id against a manifest.
func FindHook(hooks []ManifestHook, id, repo string) (*ManifestHook, error) {
	for i := range hooks {
		if hooks[i].ID == id {
			return &hooks[i], nil
		}
	}
	return nil, errors.HookUnknown(id, repo)
}
