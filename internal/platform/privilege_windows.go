//go:build windows

package platform

import "golang.org/x/sys/windows"

// Elevated reports whether the current process runs with elevated
// privileges. On Windows this checks the process token's elevation
// state, which is what UAC grants to an "Run as administrator" shell.
func Elevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
