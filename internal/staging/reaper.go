package staging

import (
	"os"
	"path/filepath"
	"time"
)

// Reaper deletes aged-out entries from the scratch root. It works off
// file modification times, not in-process bookkeeping, so files left
// behind by an earlier process are swept too.
type Reaper struct {
	root   string
	logger Logger
}

// NewReaper creates a reaper for the given scratch root. An empty
// root selects DefaultRoot().
func NewReaper(root string) *Reaper {
	if root == "" {
		root = DefaultRoot()
	}
	return &Reaper{root: root, logger: noopLogger{}}
}

// WithLogger sets the logger used during sweeps.
func (r *Reaper) WithLogger(logger Logger) *Reaper {
	r.logger = logger
	return r
}

// Sweep deletes every entry in the scratch root whose modification
// time is older than maxAge. Sweeping is best-effort: a per-entry
// deletion failure is logged and never blocks the rest of the sweep,
// and a missing or empty root is a no-op.
func (r *Reaper) Sweep(maxAge time.Duration) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("cannot list staging root", "root", r.root, "error", err)
		}
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		entryPath := filepath.Join(r.root, entry.Name())

		info, err := entry.Info()
		if err != nil {
			r.logger.Warn("cannot stat staging entry", "path", entryPath, "error", err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.RemoveAll(entryPath); err != nil {
			r.logger.Warn("cannot remove staging entry", "path", entryPath, "error", err)
			continue
		}
		r.logger.Debug("reaped staging entry", "path", entryPath, "age", time.Since(info.ModTime()))
	}
}
