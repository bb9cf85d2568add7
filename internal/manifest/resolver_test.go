package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hostbridge/hostbridge/internal/browser"
)

var testEnv = Env{
	Home:         filepath.Join(string(filepath.Separator), "home", "tester"),
	AppData:      filepath.Join(string(filepath.Separator), "Users", "tester", "AppData", "Roaming"),
	ProgramFiles: filepath.Join(string(filepath.Separator), "Program Files"),
}

func TestResolveTable(t *testing.T) {
	sep := string(filepath.Separator)

	tests := []struct {
		name    string
		goos    string
		variant browser.Variant
		tier    Tier
		want    string
	}{
		{
			name:    "windows_chrome_user",
			goos:    "windows",
			variant: browser.VariantChrome,
			tier:    TierUser,
			want:    filepath.Join(testEnv.AppData, "Google", "Chrome", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "windows_chrome_system",
			goos:    "windows",
			variant: browser.VariantChrome,
			tier:    TierSystem,
			want:    filepath.Join(testEnv.ProgramFiles, "Google", "Chrome", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "windows_chromium_user",
			goos:    "windows",
			variant: browser.VariantChromium,
			tier:    TierUser,
			want:    filepath.Join(testEnv.AppData, "Chromium", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "darwin_chrome_user",
			goos:    "darwin",
			variant: browser.VariantChrome,
			tier:    TierUser,
			want:    filepath.Join(testEnv.Home, "Library", "Application Support", "Google", "Chrome", "NativeMessagingHosts", FileName()),
		},
		{
			// Machine-wide Chrome on macOS has no "Application Support"
			// segment. The asymmetry is the browser's, not ours.
			name:    "darwin_chrome_system",
			goos:    "darwin",
			variant: browser.VariantChrome,
			tier:    TierSystem,
			want:    filepath.Join(sep, "Library", "Google", "Chrome", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "darwin_chromium_system",
			goos:    "darwin",
			variant: browser.VariantChromium,
			tier:    TierSystem,
			want:    filepath.Join(sep, "Library", "Application Support", "Chromium", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "linux_chrome_user",
			goos:    "linux",
			variant: browser.VariantChrome,
			tier:    TierUser,
			want:    filepath.Join(testEnv.Home, ".config", "google-chrome", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "linux_chrome_system",
			goos:    "linux",
			variant: browser.VariantChrome,
			tier:    TierSystem,
			want:    filepath.Join(sep, "etc", "opt", "chrome", "native-messaging-hosts", FileName()),
		},
		{
			name:    "linux_chromium_user",
			goos:    "linux",
			variant: browser.VariantChromium,
			tier:    TierUser,
			want:    filepath.Join(testEnv.Home, ".config", "chromium", "NativeMessagingHosts", FileName()),
		},
		{
			name:    "linux_chromium_system",
			goos:    "linux",
			variant: browser.VariantChromium,
			tier:    TierSystem,
			want:    filepath.Join(sep, "etc", "chromium", "native-messaging-hosts", FileName()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.variant, tt.tier, tt.goos, testEnv)
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveProperties(t *testing.T) {
	// Every supported triple yields a non-empty path ending in the
	// manifest file name.
	for _, goos := range []string{"windows", "darwin", "linux"} {
		for _, v := range browser.All() {
			for _, tier := range []Tier{TierUser, TierSystem} {
				got := Resolve(v, tier, goos, testEnv)
				if got == "" {
					t.Errorf("Resolve(%s/%s/%s) returned empty path", goos, v, tier)
				}
				if !strings.HasSuffix(got, FileName()) {
					t.Errorf("Resolve(%s/%s/%s) = %q, missing %q suffix", goos, v, tier, got, FileName())
				}
				if !filepath.IsAbs(got) {
					t.Errorf("Resolve(%s/%s/%s) = %q, not absolute", goos, v, tier, got)
				}
			}
		}
	}
}

func TestResolveUnknownVariantFallsBackToChrome(t *testing.T) {
	got := Resolve(browser.Variant("netscape"), TierUser, "linux", testEnv)
	want := Resolve(browser.VariantChrome, TierUser, "linux", testEnv)
	if got != want {
		t.Errorf("unknown variant resolved to %q, want chrome fallback %q", got, want)
	}
}

func TestResolveUnknownOSUsesLinuxLayout(t *testing.T) {
	got := Resolve(browser.VariantChrome, TierUser, "freebsd", testEnv)
	want := Resolve(browser.VariantChrome, TierUser, "linux", testEnv)
	if got != want {
		t.Errorf("freebsd resolved to %q, want linux layout %q", got, want)
	}
}

func TestResolveRegistryKeys(t *testing.T) {
	if _, ok := ResolveRegistryKeys(browser.VariantChrome, "linux"); ok {
		t.Error("registry keys should not exist on linux")
	}
	if _, ok := ResolveRegistryKeys(browser.VariantChrome, "darwin"); ok {
		t.Error("registry keys should not exist on darwin")
	}

	keys, ok := ResolveRegistryKeys(browser.VariantChrome, "windows")
	if !ok {
		t.Fatal("registry keys missing on windows")
	}
	want := `Software\Google\Chrome\NativeMessagingHosts\` + HostName
	if keys.User != want || keys.System != want {
		t.Errorf("chrome keys = %+v, want %q", keys, want)
	}

	keys, ok = ResolveRegistryKeys(browser.VariantChromium, "windows")
	if !ok {
		t.Fatal("registry keys missing on windows")
	}
	want = `Software\Chromium\NativeMessagingHosts\` + HostName
	if keys.User != want {
		t.Errorf("chromium user key = %q, want %q", keys.User, want)
	}

	// Unknown variants fall back to Chrome's subtree like Resolve.
	keys, _ = ResolveRegistryKeys(browser.Variant("netscape"), "windows")
	if !strings.Contains(keys.User, `Google\Chrome`) {
		t.Errorf("unknown variant key = %q, want chrome fallback", keys.User)
	}
}
