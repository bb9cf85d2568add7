package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hostbridge/hostbridge/internal/config"
	"github.com/hostbridge/hostbridge/internal/registrar"
)

func runFixPermissions(args []string) error {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printFixPermissionsHelp()
			return nil
		default:
			return fmt.Errorf("unknown option: %s", args[i])
		}
	}

	paths, err := permissionTargets()
	if err != nil {
		return err
	}
	if err := registrar.EnsureExecutable(paths); err != nil {
		return fmt.Errorf("fix permissions: %w", err)
	}
	fmt.Println("Permissions checked")
	return nil
}

// permissionTargets is the running binary plus anything installed
// under the config dir's bin/ directory.
func permissionTargets() ([]string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	paths := []string{execPath}

	binDir := filepath.Join(config.Dir(), "bin")
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if os.IsNotExist(err) {
			return paths, nil
		}
		return nil, fmt.Errorf("read %s: %w", binDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(binDir, entry.Name()))
	}
	return paths, nil
}

func printFixPermissionsHelp() {
	fmt.Println("Usage: hostbridge fix-permissions")
	fmt.Println()
	fmt.Println("Restores the execute bit on the bridge binary and any helpers")
	fmt.Println("installed alongside it. Archive extraction on some platforms")
	fmt.Println("drops the bit, which makes browser launches fail silently.")
}
