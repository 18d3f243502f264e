package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gateerrors "github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/testutil"
)

func TestStagedFiles(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	testutil.StageFile(t, dir, "src/app.py", "print('hi')\n")
	testutil.StageFile(t, dir, "config.json", "{}\n")

	// An untracked, unstaged file must not appear
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0644))

	files, err := StagedFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/app.py", "config.json"}, files)
}

func TestStagedFilesEmpty(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	files, err := StagedFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesInRange(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	base, err := GetHeadCommit(dir)
	require.NoError(t, err)

	testutil.StageFile(t, dir, "notebook.ipynb", "{}\n")
	testutil.CommitAll(t, dir, "add notebook")

	head, err := GetHeadCommit(dir)
	require.NoError(t, err)

	files, err := FilesInRange(context.Background(), dir, base, head)
	require.NoError(t, err)
	assert.Equal(t, []string{"notebook.ipynb"}, files)
}

func TestStagedFilesGitMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", dir)

	_, err := StagedFiles(context.Background(), dir)
	require.Error(t, err)
	assert.Equal(t, gateerrors.ErrCodeGitNotInstalled, gateerrors.GetCode(err))
}

func TestFilesInRangeUnknownCommit(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	head, err := GetHeadCommit(dir)
	require.NoError(t, err)

	_, err = FilesInRange(context.Background(), dir, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", head)
	require.Error(t, err)
	assert.Equal(t, gateerrors.ErrCodeCommandFailed, gateerrors.GetCode(err))
}

func TestFilesInRangeNewBranch(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	head, err := GetHeadCommit(dir)
	require.NoError(t, err)

	// Zero remote SHA means a branch being created: all tracked files
	files, err := FilesInRange(context.Background(), dir, ZeroSHA, head)
	require.NoError(t, err)
	assert.Contains(t, files, "README.md")
}

func TestGetGitRoot(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	nested := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0755))

	root, err := GetGitRoot(nested)
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, root)
}

func TestGetGitRootOutsideRepo(t *testing.T) {
	testutil.RequireGit(t)

	_, err := GetGitRoot(os.TempDir())
	assert.Error(t, err)
}

func TestHashFilesAndModifiedSince(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{ }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}\n"), 0644))

	before, err := HashFiles(dir, []string{"a.json", "b.json"})
	require.NoError(t, err)

	// Rewrite one file in place, as an autofix hook would
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}\n"), 0644))

	after, err := HashFiles(dir, []string{"a.json", "b.json"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.json"}, ModifiedSince(before, after))
}

func TestModifiedSinceSorted(t *testing.T) {
	dir := t.TempDir()
	names := []string{"z.json", "a.json", "m.json"}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old\n"), 0644))
	}

	before, err := HashFiles(dir, names)
	require.NoError(t, err)

	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("new\n"), 0644))
	}
	after, err := HashFiles(dir, names)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.json", "m.json", "z.json"}, ModifiedSince(before, after))
}

func TestHashFilesMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	before, err := HashFiles(dir, []string{"keep.txt", "gone.txt"})
	require.NoError(t, err)
	assert.Equal(t, "", before["gone.txt"])

	// Deleting a file counts as a mutation
	require.NoError(t, os.Remove(filepath.Join(dir, "keep.txt")))
	after, err := HashFiles(dir, []string{"keep.txt", "gone.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, ModifiedSince(before, after))
}
