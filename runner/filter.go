package runner

import (
	"fmt"
	"regexp"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/gate/config"
	"github.com/grovetools/gate/store"
)

// fileFilter narrows the event's file set to the files one hook applies to.
// Regexes come from the configuration entry (and the manifest), glob
// patterns from the manifest.
type fileFilter struct {
	files         *regexp.Regexp
	exclude       *regexp.Regexp
	manifestFiles *regexp.Regexp
	globalExclude *regexp.Regexp
	globs         *patternmatcher.PatternMatcher
}

func newFileFilter(globalExclude string, hook *config.Hook, manifest *store.ManifestHook) (*fileFilter, error) {
	f := &fileFilter{}

	var err error
	if f.files, err = compilePattern(hook.Files); err != nil {
		return nil, fmt.Errorf("hook '%s' files pattern: %w", hook.ID, err)
	}
	if f.exclude, err = compilePattern(hook.Exclude); err != nil {
		return nil, fmt.Errorf("hook '%s' exclude pattern: %w", hook.ID, err)
	}
	if f.globalExclude, err = compilePattern(globalExclude); err != nil {
		return nil, fmt.Errorf("top-level exclude pattern: %w", err)
	}

	if manifest != nil {
		if f.manifestFiles, err = compilePattern(manifest.Files); err != nil {
			return nil, fmt.Errorf("manifest hook '%s' files pattern: %w", manifest.ID, err)
		}
		if len(manifest.Patterns) > 0 {
			if f.globs, err = patternmatcher.New(manifest.Patterns); err != nil {
				return nil, fmt.Errorf("manifest hook '%s' patterns: %w", manifest.ID, err)
			}
		}
	}

	return f, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// Apply returns the subset of files the hook runs on, preserving order.
func (f *fileFilter) Apply(files []string) ([]string, error) {
	var matched []string
	for _, file := range files {
		ok, err := f.matches(file)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, file)
		}
	}
	return matched, nil
}

func (f *fileFilter) matches(file string) (bool, error) {
	if f.globalExclude != nil && f.globalExclude.MatchString(file) {
		return false, nil
	}
	if f.exclude != nil && f.exclude.MatchString(file) {
		return false, nil
	}
	if f.files != nil && !f.files.MatchString(file) {
		return false, nil
	}
	if f.manifestFiles != nil && !f.manifestFiles.MatchString(file) {
		return false, nil
	}
	if f.globs != nil {
		ok, err := f.globs.MatchesOrParentMatches(file)
		if err != nil {
			return false, fmt.Errorf("match %s: %w", file, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
