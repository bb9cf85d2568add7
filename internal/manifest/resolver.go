package manifest

import (
	"os"
	"path/filepath"

	"github.com/hostbridge/hostbridge/internal/browser"
)

// Tier is the installation tier a registration targets.
type Tier string

const (
	// TierUser registers the host for the current user only.
	TierUser Tier = "user"
	// TierSystem registers the host machine-wide.
	TierSystem Tier = "system"
)

// Env carries the read-only environment inputs to path resolution.
// Tests construct it directly; production code uses EnvFromOS.
type Env struct {
	Home         string
	AppData      string // Windows %APPDATA%
	ProgramFiles string // Windows %ProgramFiles%

	// RootPrefix replaces the filesystem root for system-tier paths,
	// like DESTDIR in a conventional installer. Empty means "/".
	// Production never sets it; tests use it to exercise system-tier
	// writes inside a scratch directory.
	RootPrefix string
}

// EnvFromOS reads the resolution inputs from the real environment.
func EnvFromOS() Env {
	home, _ := os.UserHomeDir()
	return Env{
		Home:         home,
		AppData:      os.Getenv("APPDATA"),
		ProgramFiles: os.Getenv("ProgramFiles"),
	}
}

// rootKind selects which Env field a path rule is anchored under.
type rootKind int

const (
	rootHome rootKind = iota
	rootAppData
	rootProgramFiles
	rootFilesystem // the filesystem root, "/"
)

type pathKey struct {
	os      string
	variant browser.Variant
	tier    Tier
}

type pathRule struct {
	root     rootKind
	segments []string
}

// pathTable maps (platform, variant, tier) to the directory that holds
// the host manifest. One generic resolver consults it; there is no
// per-platform branch logic anywhere else.
//
// Note the darwin system-tier asymmetry: Chrome's machine-wide
// directory omits "Application Support" while Chromium's keeps it.
// That matches what the browsers actually read and must not be
// "fixed".
var pathTable = map[pathKey]pathRule{
	{"windows", browser.VariantChrome, TierUser}:     {rootAppData, []string{"Google", "Chrome", "NativeMessagingHosts"}},
	{"windows", browser.VariantChrome, TierSystem}:   {rootProgramFiles, []string{"Google", "Chrome", "NativeMessagingHosts"}},
	{"windows", browser.VariantChromium, TierUser}:   {rootAppData, []string{"Chromium", "NativeMessagingHosts"}},
	{"windows", browser.VariantChromium, TierSystem}: {rootProgramFiles, []string{"Chromium", "NativeMessagingHosts"}},

	{"darwin", browser.VariantChrome, TierUser}:     {rootHome, []string{"Library", "Application Support", "Google", "Chrome", "NativeMessagingHosts"}},
	{"darwin", browser.VariantChrome, TierSystem}:   {rootFilesystem, []string{"Library", "Google", "Chrome", "NativeMessagingHosts"}},
	{"darwin", browser.VariantChromium, TierUser}:   {rootHome, []string{"Library", "Application Support", "Chromium", "NativeMessagingHosts"}},
	{"darwin", browser.VariantChromium, TierSystem}: {rootFilesystem, []string{"Library", "Application Support", "Chromium", "NativeMessagingHosts"}},

	{"linux", browser.VariantChrome, TierUser}:     {rootHome, []string{".config", "google-chrome", "NativeMessagingHosts"}},
	{"linux", browser.VariantChrome, TierSystem}:   {rootFilesystem, []string{"etc", "opt", "chrome", "native-messaging-hosts"}},
	{"linux", browser.VariantChromium, TierUser}:   {rootHome, []string{".config", "chromium", "NativeMessagingHosts"}},
	{"linux", browser.VariantChromium, TierSystem}: {rootFilesystem, []string{"etc", "chromium", "native-messaging-hosts"}},
}

// Resolve computes the manifest file path for a variant and tier on
// the given platform.
//
// An unknown variant resolves to Chrome's path. This fallback is a
// deliberate compatibility default so callers holding a stale variant
// still register somewhere a Chrome-family browser will look, rather
// than failing outright. Unknown platforms use the Linux conventions.
func Resolve(v browser.Variant, tier Tier, goos string, env Env) string {
	rule, ok := pathTable[pathKey{normalizeOS(goos), v, tier}]
	if !ok {
		rule = pathTable[pathKey{normalizeOS(goos), browser.VariantChrome, tier}]
	}

	var base string
	switch rule.root {
	case rootHome:
		base = env.Home
	case rootAppData:
		base = env.AppData
	case rootProgramFiles:
		base = env.ProgramFiles
	case rootFilesystem:
		base = env.RootPrefix
		if base == "" {
			base = string(filepath.Separator)
		}
	}

	parts := append([]string{base}, rule.segments...)
	parts = append(parts, FileName())
	return filepath.Join(parts...)
}

// FileName returns the manifest file name, <host>.json.
func FileName() string {
	return HostName + ".json"
}

func normalizeOS(goos string) string {
	switch goos {
	case "windows", "darwin":
		return goos
	default:
		// BSDs and friends follow the Linux layout.
		return "linux"
	}
}
