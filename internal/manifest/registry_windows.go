//go:build windows

package manifest

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// WriteRegistryValue points the key's default value at the manifest
// file. The parent key is created if needed.
func WriteRegistryValue(tier Tier, keyPath, manifestPath string) error {
	hive := registry.CURRENT_USER
	if tier == TierSystem {
		hive = registry.LOCAL_MACHINE
	}

	key, _, err := registry.CreateKey(hive, keyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create registry key %s: %w", keyPath, err)
	}
	defer key.Close()

	// "" is the key's (Default) value, which is what the browser reads.
	if err := key.SetStringValue("", manifestPath); err != nil {
		return fmt.Errorf("set registry value: %w", err)
	}
	return nil
}

// DeleteRegistryKey removes the host's registry key. A missing key is
// a success no-op.
func DeleteRegistryKey(tier Tier, keyPath string) error {
	hive := registry.CURRENT_USER
	if tier == TierSystem {
		hive = registry.LOCAL_MACHINE
	}

	if err := registry.DeleteKey(hive, keyPath); err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("delete registry key %s: %w", keyPath, err)
	}
	return nil
}
