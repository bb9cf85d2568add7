//go:build !windows

package platform

import "os"

// Elevated reports whether the current process runs with elevated
// privileges. On Unix platforms this means an effective UID of root.
func Elevated() bool {
	return os.Geteuid() == 0
}
