//go:build !windows

package browser

// probeRegistry is only meaningful on Windows. Elsewhere detection
// goes through bundle or PATH probing instead.
func probeRegistry(cfg Config) bool {
	return false
}
