package git

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/gate/command"
)

// ZeroSHA is the all-zero object name git uses for a ref being created or
// deleted in pre-push input.
const ZeroSHA = "0000000000000000000000000000000000000000"

// StagedFiles returns the paths (relative to the repository root) of files
// added, copied, modified, or renamed in the index.
func StagedFiles(ctx context.Context, root string) ([]string, error) {
	return listFiles(ctx, root, "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
}

// FilesInRange returns the paths changed between two commits, as reported
// for an outgoing push.
func FilesInRange(ctx context.Context, root, remoteSHA, localSHA string) ([]string, error) {
	if remoteSHA == ZeroSHA {
		// New branch: diff against the empty tree would list the whole
		// history, so fall back to every tracked file.
		return AllFiles(ctx, root)
	}
	return listFiles(ctx, root, "diff", "--name-only", "--diff-filter=ACMR", "-z", remoteSHA+".."+localSHA)
}

// AllFiles returns every tracked file in the repository.
func AllFiles(ctx context.Context, root string) ([]string, error) {
	return listFiles(ctx, root, "ls-files", "-z")
}

func listFiles(ctx context.Context, root string, args ...string) ([]string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(ctx, "git", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = root
	output, err := execCmd.Output()
	if err != nil {
		return nil, gitError("git "+strings.Join(args, " "), err)
	}

	var files []string
	for _, f := range strings.Split(string(output), "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// HashFiles returns a content hash per path, keyed by path. Paths that do
// not exist hash to the empty string, so a hook deleting a file still shows
// up as a mutation.
func HashFiles(root string, files []string) (map[string]string, error) {
	hashes := make(map[string]string, len(files))
	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(root, file))
		if err != nil {
			if os.IsNotExist(err) {
				hashes[file] = ""
				continue
			}
			return nil, fmt.Errorf("hash %s: %w", file, err)
		}
		sum := sha256.Sum256(data)
		hashes[file] = hex.EncodeToString(sum[:])
	}
	return hashes, nil
}

// ModifiedSince compares two hash snapshots and returns, sorted, the paths
// whose content changed between them.
func ModifiedSince(before, after map[string]string) []string {
	var modified []string
	for file, prev := range before {
		if after[file] != prev {
			modified = append(modified, file)
		}
	}
	sort.Strings(modified)
	return modified
}
