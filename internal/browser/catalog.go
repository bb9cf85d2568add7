package browser

import "strings"

// catalog holds the static configuration for every supported variant.
var catalog = []Config{
	{
		Variant:     VariantChrome,
		DisplayName: "Google Chrome",
		MacBundles: []string{
			"/Applications/Google Chrome.app",
		},
		BinaryNames: []string{
			"google-chrome", "google-chrome-stable", "chrome",
		},
		DetectRegistryKey: `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths\chrome.exe`,
	},
	{
		Variant:     VariantChromium,
		DisplayName: "Chromium",
		MacBundles: []string{
			"/Applications/Chromium.app",
		},
		BinaryNames: []string{
			"chromium", "chromium-browser",
		},
		DetectRegistryKey: `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths\chromium.exe`,
	},
}

// All returns every supported variant in catalog order.
func All() []Variant {
	variants := make([]Variant, 0, len(catalog))
	for _, cfg := range catalog {
		variants = append(variants, cfg.Variant)
	}
	return variants
}

// Lookup returns the static configuration for a variant.
func Lookup(v Variant) (Config, bool) {
	for _, cfg := range catalog {
		if cfg.Variant == v {
			return cfg, true
		}
	}
	return Config{}, false
}

// Parse matches a user-supplied name against the supported variants,
// case-insensitively. Unmatched input yields ok=false, never an error.
func Parse(name string) (Variant, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, cfg := range catalog {
		if string(cfg.Variant) == normalized {
			return cfg.Variant, true
		}
	}
	return "", false
}

// ResolveTargets decides which variants an operation applies to.
// Precedence: explicit request ("all" expands to every variant) >
// auto-detection (an empty detection falls back to all variants) >
// the caller-supplied default.
func ResolveTargets(requested []Variant, requestedAll bool, autoDetect bool, fallback []Variant) []Variant {
	if requestedAll {
		return All()
	}
	if len(requested) > 0 {
		return requested
	}
	if autoDetect {
		detected := DetectInstalled()
		if len(detected) == 0 {
			return All()
		}
		return detected
	}
	return fallback
}
