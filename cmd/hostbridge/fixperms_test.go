package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hostbridge/hostbridge/internal/testutil"
)

func TestPermissionTargets(t *testing.T) {
	tmpDir := testutil.SetupTestEnv(t)

	binDir := filepath.Join(tmpDir, "config", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("create bin dir: %v", err)
	}
	helper := filepath.Join(binDir, "helper")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatalf("write helper: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(binDir, "cache"), 0755); err != nil {
		t.Fatalf("create nested dir: %v", err)
	}

	paths, err := permissionTargets()
	if err != nil {
		t.Fatalf("permissionTargets() error: %v", err)
	}

	foundHelper := false
	for _, p := range paths {
		if p == helper {
			foundHelper = true
		}
		if p == filepath.Join(binDir, "cache") {
			t.Error("directories should not be permission targets")
		}
	}
	if !foundHelper {
		t.Errorf("permissionTargets() = %v, missing %s", paths, helper)
	}
	if len(paths) < 2 {
		t.Errorf("expected the executable plus the helper, got %v", paths)
	}
}

func TestPermissionTargets_NoBinDir(t *testing.T) {
	testutil.SetupTestEnv(t)

	paths, err := permissionTargets()
	if err != nil {
		t.Fatalf("permissionTargets() error: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("expected only the executable, got %v", paths)
	}
}

func TestRunFixPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	tmpDir := testutil.SetupTestEnv(t)

	binDir := filepath.Join(tmpDir, "config", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("create bin dir: %v", err)
	}
	helper := filepath.Join(binDir, "helper")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatalf("write helper: %v", err)
	}

	if err := runFixPermissions(nil); err != nil {
		t.Fatalf("runFixPermissions() error: %v", err)
	}

	info, err := os.Stat(helper)
	if err != nil {
		t.Fatalf("stat helper: %v", err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("helper mode = %v, expected execute bits set", info.Mode())
	}
}
