// Package testutil provides utilities for testing hostbridge in
// isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points hostbridge's directories at per-test temp
// locations so tests never touch the user's real configuration,
// registered manifests, or staging area. Cleanup is handled by
// t.TempDir().
//
// It returns the temp root for tests that need to inspect it.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	t.Setenv("HOSTBRIDGE_CONFIG_DIR", filepath.Join(tmpDir, "config"))

	dirs := []string{
		filepath.Join(tmpDir, "config"),
		filepath.Join(tmpDir, "staging"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return tmpDir
}
