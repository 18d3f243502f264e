package runner

import "time"

// Status is the outcome of a single hook.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// HookResult records the outcome of one hook invocation.
type HookResult struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Repo     string        `json:"repo"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration"`
	ExitCode int           `json:"exit_code"`
	Output   string        `json:"output,omitempty"`

	// ModifiedFiles are files the hook rewrote in place. A non-empty list
	// fails the hook so the user reviews and re-stages.
	ModifiedFiles []string `json:"modified_files,omitempty"`

	// FileCount is how many files the hook ran against.
	FileCount int `json:"file_count"`

	Err error `json:"-"`
}

// Failed reports whether the hook blocked the gated operation.
func (r *HookResult) Failed() bool {
	return r.Status == StatusFailed
}

// RunResult is the outcome of one lifecycle event run.
type RunResult struct {
	Event   string       `json:"event"`
	Results []HookResult `json:"results"`

	// Aborted is set when fail-fast cut the sequence short.
	Aborted bool `json:"aborted,omitempty"`
}

// Ok reports whether every executed hook passed.
func (r *RunResult) Ok() bool {
	for i := range r.Results {
		if r.Results[i].Failed() {
			return false
		}
	}
	return true
}

// FirstFailure returns the first failing hook, or nil.
func (r *RunResult) FirstFailure() *HookResult {
	for i := range r.Results {
		if r.Results[i].Failed() {
			return &r.Results[i]
		}
	}
	return nil
}
