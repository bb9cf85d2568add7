package browser

import (
	"os"
	"os/exec"
	"runtime"
)

// DetectInstalled probes the local machine for installed browsers and
// returns the variants found, in catalog order. Each probe is
// independently fault-tolerant: a failed probe contributes nothing and
// never aborts detection of the remaining variants.
func DetectInstalled() []Variant {
	var installed []Variant
	for _, cfg := range catalog {
		if probeVariant(cfg) {
			installed = append(installed, cfg.Variant)
		}
	}
	return installed
}

// probeVariant checks a single variant using the platform's
// convention: registry presence on Windows, application bundles on
// macOS, executables on PATH elsewhere.
func probeVariant(cfg Config) bool {
	switch runtime.GOOS {
	case "windows":
		return probeRegistry(cfg)
	case "darwin":
		return probeBundles(cfg)
	default:
		return probePath(cfg)
	}
}

func probeBundles(cfg Config) bool {
	for _, bundle := range cfg.MacBundles {
		if info, err := os.Stat(bundle); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func probePath(cfg Config) bool {
	for _, name := range cfg.BinaryNames {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
