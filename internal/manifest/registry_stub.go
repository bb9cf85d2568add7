//go:build !windows

package manifest

// WriteRegistryValue is a no-op outside Windows; manifest files alone
// complete a registration there.
func WriteRegistryValue(tier Tier, keyPath, manifestPath string) error {
	return nil
}

// DeleteRegistryKey is a no-op outside Windows.
func DeleteRegistryKey(tier Tier, keyPath string) error {
	return nil
}
