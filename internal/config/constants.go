package config

import (
	"os"
	"path/filepath"
)

// Lua schema field names and globals
const (
	luaGlobalHostbridge = "hostbridge"
	luaFieldDesc        = "description"
	luaFieldOrigins     = "allowed_origins"
	luaFieldStaging     = "staging"
	luaFieldDir         = "dir"
	luaFieldRetention   = "retention"
	luaFieldKeyring     = "keyring"
)

// ConfigFileName is the Lua config file looked up inside Dir().
const ConfigFileName = "config.lua"

// Dir returns the hostbridge configuration directory. The
// HOSTBRIDGE_CONFIG_DIR environment variable overrides the default,
// which keeps tests and odd deployments away from the real user
// config.
func Dir() string {
	if dir := os.Getenv("HOSTBRIDGE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No resolvable home. Anchor under the OS temp dir rather
		// than a CWD-relative path.
		return filepath.Join(os.TempDir(), "hostbridge")
	}
	return filepath.Join(home, ".config", "hostbridge")
}

// FilePath returns the full path of the optional Lua config file.
func FilePath() string {
	return filepath.Join(Dir(), ConfigFileName)
}
