// Package workspace manages the scratch directory that holds per-job
// media artifacts. The root is injected from configuration; all files
// inside it are namespaced by job ID, so concurrent jobs never collide.
package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/clipd/clipd-server/internal/logging"
)

// Manager owns a single scratch root directory.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager creates a Manager bound to root. The directory is not
// created until Ensure is called.
func NewManager(root string, logger *slog.Logger) *Manager {
	return &Manager{root: root, logger: logging.WithComponent(logger, "workspace")}
}

// Root returns the scratch root path.
func (m *Manager) Root() string {
	return m.root
}

// Ensure creates the scratch root if absent and returns its path.
// It is idempotent and safe to call from concurrent requests.
func (m *Manager) Ensure() (string, error) {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return "", err
	}
	return m.root, nil
}

// Remove deletes a single artifact, best effort. Failures are logged and
// never returned so that cleanup of one artifact cannot mask the
// pipeline's own result or abort cleanup of the remaining artifacts.
func (m *Manager) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("failed to delete artifact",
				"path", logging.SanitizePath(path),
				"error", err,
			)
		}
		return
	}
	m.logger.Info("deleted artifact", "path", logging.SanitizePath(path))
}

// SweepStale removes scratch files older than maxAge. It is intended to
// run once at startup to reclaim artifacts left behind by a crashed
// prior process; a file lock on the root serializes sweeps across
// processes sharing the same scratch directory. A maxAge of zero
// disables the sweep.
func (m *Manager) SweepStale(maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}
	if _, err := m.Ensure(); err != nil {
		m.logger.Warn("cannot ensure scratch root for sweep", "error", err)
		return
	}

	lock := flock.New(filepath.Join(m.root, ".sweep.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		if err != nil {
			m.logger.Warn("sweep lock unavailable", "error", err)
		}
		return
	}
	defer lock.Unlock()

	entries, err := os.ReadDir(m.root)
	if err != nil {
		m.logger.Warn("cannot read scratch root", "error", err)
		return
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == ".sweep.lock" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(m.root, entry.Name())
		if err := os.Remove(path); err != nil {
			m.logger.Warn("failed to remove stale artifact",
				"path", logging.SanitizePath(path),
				"error", err,
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		m.logger.Info("swept stale artifacts", "count", removed, "max_age", maxAge)
	}
}
