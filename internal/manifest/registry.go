package manifest

import "github.com/hostbridge/hostbridge/internal/browser"

// RegistryKeys holds the Windows registry paths used as an additional
// registration mechanism. The browser reads the default value of the
// key, which must contain the manifest file path.
type RegistryKeys struct {
	User   string // under HKEY_CURRENT_USER
	System string // under HKEY_LOCAL_MACHINE
}

// registryBases maps variants to their NativeMessagingHosts registry
// subtree. Unknown variants fall back to Chrome's, mirroring Resolve.
var registryBases = map[browser.Variant]string{
	browser.VariantChrome:   `Software\Google\Chrome\NativeMessagingHosts\`,
	browser.VariantChromium: `Software\Chromium\NativeMessagingHosts\`,
}

// ResolveRegistryKeys returns the registry key paths for a variant.
// On non-Windows platforms there is no registry; ok is false and
// callers skip the registry step entirely.
func ResolveRegistryKeys(v browser.Variant, goos string) (RegistryKeys, bool) {
	if goos != "windows" {
		return RegistryKeys{}, false
	}
	base, found := registryBases[v]
	if !found {
		base = registryBases[browser.VariantChrome]
	}
	return RegistryKeys{
		User:   base + HostName,
		System: base + HostName,
	}, true
}
