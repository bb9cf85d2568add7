// Package manifest builds native-messaging host manifests and resolves
// the per-browser, per-platform locations they must be written to.
//
// The path conventions in this package are dictated by the browsers
// themselves: a manifest written anywhere else is silently ignored, so
// the resolver reproduces each browser's documented layout exactly,
// including the macOS system-tier asymmetry where Chrome omits the
// "Application Support" segment.
package manifest
