package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/testutil"
)

// newHookRepo builds a git repository with a manifest that can serve as a
// clonable hook source.
func newHookRepo(t *testing.T, manifest string) (dir, tag string) {
	t.Helper()
	dir = t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, ManifestFileName, manifest)
	testutil.CommitAll(t, dir, "add manifest")
	testutil.Git(t, dir, "tag", "v1.0.0")
	return dir, "v1.0.0"
}

const sampleManifest = `- id: say-hello
  name: Say hello
  entry: echo hello
  language: system
`

func TestSyncClonesAtRev(t *testing.T) {
	testutil.RequireGit(t)
	src, tag := newHookRepo(t, sampleManifest)

	s := New(t.TempDir())
	path, err := s.Sync(context.Background(), src, tag)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(path, ManifestFileName))
	assert.FileExists(t, filepath.Join(path, readyMarker))
}

func TestSyncReusesCompletedClone(t *testing.T) {
	testutil.RequireGit(t)
	src, tag := newHookRepo(t, sampleManifest)

	s := New(t.TempDir())
	ctx := context.Background()

	first, err := s.Sync(ctx, src, tag)
	require.NoError(t, err)

	// Drop a sentinel into the clone; a re-sync must not rebuild it
	sentinel := filepath.Join(first, "sentinel")
	require.NoError(t, os.WriteFile(sentinel, []byte("x"), 0644))

	second, err := s.Sync(ctx, src, tag)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.FileExists(t, sentinel)
}

func TestSyncRebuildsPartialClone(t *testing.T) {
	testutil.RequireGit(t)
	src, tag := newHookRepo(t, sampleManifest)

	s := New(t.TempDir())
	repoPath := s.RepoPath(src, tag)

	// Simulate an interrupted clone: directory exists, no ready marker
	require.NoError(t, os.MkdirAll(repoPath, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "stale"), []byte("x"), 0644))

	path, err := s.Sync(context.Background(), src, tag)
	require.NoError(t, err)
	assert.Equal(t, repoPath, path)
	assert.NoFileExists(t, filepath.Join(path, "stale"))
	assert.FileExists(t, filepath.Join(path, ManifestFileName))
}

func TestSyncUnresolvableRev(t *testing.T) {
	testutil.RequireGit(t)
	src, _ := newHookRepo(t, sampleManifest)

	s := New(t.TempDir())
	_, err := s.Sync(context.Background(), src, "v99.0.0")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRevUnresolved, errors.GetCode(err))

	// Failed checkout must not leave a half-built cache entry behind
	assert.NoDirExists(t, s.RepoPath(src, "v99.0.0"))
}

func TestSyncCloneFailure(t *testing.T) {
	testutil.RequireGit(t)

	s := New(t.TempDir())
	_, err := s.Sync(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), "v1.0.0")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGitCloneFailed, errors.GetCode(err))
}

func TestRepoPathDistinguishesRevs(t *testing.T) {
	s := New("/cache")
	a := s.RepoPath("https://github.com/psf/black", "24.1.1")
	b := s.RepoPath("https://github.com/psf/black", "23.0.0")
	assert.NotEqual(t, a, b)
}

func TestGC(t *testing.T) {
	testutil.RequireGit(t)
	src, tag := newHookRepo(t, sampleManifest)

	s := New(t.TempDir())
	kept, err := s.Sync(context.Background(), src, tag)
	require.NoError(t, err)

	stale := filepath.Join(s.Dir(), "stale-clone")
	require.NoError(t, os.MkdirAll(stale, 0755))

	removed, err := s.GC(map[string]bool{kept: true})
	require.NoError(t, err)
	assert.Equal(t, []string{stale}, removed)
	assert.DirExists(t, kept)
}
