package config

// Git lifecycle event names gate recognizes. Shims can be installed for any
// of them; gate executes hook sets for pre-commit and pre-push.
const (
	HookTypePreCommit        = "pre-commit"
	HookTypePreMergeCommit   = "pre-merge-commit"
	HookTypePrePush          = "pre-push"
	HookTypePrepareCommitMsg = "prepare-commit-msg"
	HookTypeCommitMsg        = "commit-msg"
	HookTypePostCheckout     = "post-checkout"
	HookTypePostCommit       = "post-commit"
	HookTypePostMerge        = "post-merge"
)

var knownHookTypes = map[string]bool{
	HookTypePreCommit:        true,
	HookTypePreMergeCommit:   true,
	HookTypePrePush:          true,
	HookTypePrepareCommitMsg: true,
	HookTypeCommitMsg:        true,
	HookTypePostCheckout:     true,
	HookTypePostCommit:       true,
	HookTypePostMerge:        true,
}

// IsKnownHookType reports whether the name is a recognized lifecycle event.
func IsKnownHookType(name string) bool {
	return knownHookTypes[name]
}

// AllHookTypes returns every recognized lifecycle event name.
func AllHookTypes() []string {
	return []string{
		HookTypePreCommit,
		HookTypePreMergeCommit,
		HookTypePrePush,
		HookTypePrepareCommitMsg,
		HookTypeCommitMsg,
		HookTypePostCheckout,
		HookTypePostCommit,
		HookTypePostMerge,
	}
}
