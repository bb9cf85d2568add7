package registrar

import (
	"fmt"
	"os"
	"runtime"
)

// EnsureExecutable restores execute permission on each path that
// exists and lacks it. Missing files are skipped, not errors, and the
// operation is idempotent: only the execute bits change, and only when
// absent. On Windows execute bits don't exist, so the whole call is a
// no-op there.
func EnsureExecutable(paths []string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		perm := info.Mode().Perm()
		if perm&0111 == 0111 {
			continue
		}

		if err := os.Chmod(path, perm|0111); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}
