// Package store caches hook repositories, cloned once per pinned revision.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/gate/command"
	"github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/logging"
)

// readyMarker flags a clone whose checkout completed. A directory without it
// is a partial clone from an interrupted sync and gets rebuilt.
const readyMarker = ".gate-ready"

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Store manages the cache of cloned hook repositories.
type Store struct {
	dir        string
	cmdBuilder *command.SafeBuilder
	log        *logrus.Entry
}

// New creates a store rooted at cacheDir.
func New(cacheDir string) *Store {
	return &Store{
		dir:        cacheDir,
		cmdBuilder: command.NewSafeBuilder(),
		log:        logging.NewLogger("store"),
	}
}

// Dir returns the cache root.
func (s *Store) Dir() string {
	return s.dir
}

// RepoPath returns the cache directory for a (url, rev) pair. The name keeps
// a readable slug of the URL plus a digest so distinct sources never collide.
func (s *Store) RepoPath(url, rev string) string {
	slug := unsafePathChars.ReplaceAllString(filepath.Base(strings.TrimSuffix(url, ".git")), "-")
	sum := sha256.Sum256([]byte(url + "@" + rev))
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s", slug, hex.EncodeToString(sum[:])[:12]))
}

// Sync ensures a clone of url checked out at rev exists in the cache and
// returns its path. Completed clones are immutable and reused as-is.
func (s *Store) Sync(ctx context.Context, url, rev string) (string, error) {
	if err := s.cmdBuilder.Validate("gitRef", rev); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("invalid rev for %s", url))
	}

	repoPath := s.RepoPath(url, rev)
	if _, err := os.Stat(filepath.Join(repoPath, readyMarker)); err == nil {
		return repoPath, nil
	}

	// Partial clone from an interrupted run
	if _, err := os.Stat(repoPath); err == nil {
		s.log.WithField("path", repoPath).Debug("Removing incomplete clone")
		if err := os.RemoveAll(repoPath); err != nil {
			return "", fmt.Errorf("remove incomplete clone: %w", err)
		}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	s.log.WithFields(logrus.Fields{"repo": url, "rev": rev}).Info("Cloning hook repository")

	cloneCmd, err := s.cmdBuilder.Build(ctx, "git", "clone", "--quiet", url, repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	if out, err := cloneCmd.Exec().CombinedOutput(); err != nil {
		return "", errors.CloneFailed(url, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out))))
	}

	checkoutCmd, err := s.cmdBuilder.Build(ctx, "git", "checkout", "--quiet", "--detach", rev)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := checkoutCmd.Exec()
	execCmd.Dir = repoPath
	if err := execCmd.Run(); err != nil {
		_ = os.RemoveAll(repoPath)
		return "", errors.RevUnresolved(url, rev)
	}

	if err := os.WriteFile(filepath.Join(repoPath, readyMarker), []byte(rev+"\n"), 0644); err != nil {
		return "", fmt.Errorf("mark clone ready: %w", err)
	}

	return repoPath, nil
}

// GC removes cached clones whose paths are not in keep. It returns the
// removed directories.
func (s *Store) GC(keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if keep[path] {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		s.log.WithField("path", path).Debug("Removed unreferenced clone")
		removed = append(removed, path)
	}

	return removed, nil
}
