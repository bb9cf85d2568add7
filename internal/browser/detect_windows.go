//go:build windows

package browser

import "golang.org/x/sys/windows/registry"

// probeRegistry reports whether the variant's App Paths key exists in
// either the machine or user hive. Key lookup failures mean "not
// installed", never an error.
func probeRegistry(cfg Config) bool {
	if cfg.DetectRegistryKey == "" {
		return false
	}
	for _, hive := range []registry.Key{registry.LOCAL_MACHINE, registry.CURRENT_USER} {
		key, err := registry.OpenKey(hive, cfg.DetectRegistryKey, registry.QUERY_VALUE)
		if err == nil {
			key.Close()
			return true
		}
	}
	return false
}
