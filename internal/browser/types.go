// Package browser enumerates the browser variants hostbridge can
// register with and detects which of them are installed locally.
package browser

// Variant identifies a supported browser family.
type Variant string

const (
	// VariantChrome is the Google Chrome branded build.
	VariantChrome Variant = "chrome"
	// VariantChromium is the open-source Chromium build.
	VariantChromium Variant = "chromium"
)

// String returns the string representation of the variant.
func (v Variant) String() string {
	return string(v)
}

// Config is the static per-variant record consulted by detection and
// path resolution. It is derived once from the variant and never
// mutated.
type Config struct {
	Variant     Variant
	DisplayName string

	// MacBundles are application bundle paths probed on macOS.
	MacBundles []string

	// BinaryNames are executable names probed on PATH, in order.
	BinaryNames []string

	// DetectRegistryKey is the registry key whose presence indicates
	// an installation on Windows.
	DetectRegistryKey string
}
