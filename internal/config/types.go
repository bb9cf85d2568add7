package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultRetention is how long staged files live before the reaper
// removes them, absent a config override.
const DefaultRetention = time.Hour

// Config is the parsed hostbridge user configuration. All fields are
// optional; the zero value is a valid, fully-defaulted config.
type Config struct {
	// Description overrides the manifest description.
	Description string

	// AllowedOrigins are extension origins appended to the manifest's
	// allowed_origins after the built-in default.
	AllowedOrigins []string

	// Staging tunes the file-staging subsystem.
	Staging StagingOptions

	// Keyring is the path to a GPG keyring used to verify staged
	// downloads that carry a signature.
	Keyring string
}

// StagingOptions tunes the staging scratch area.
type StagingOptions struct {
	// Dir overrides the scratch root directory.
	Dir string

	// Retention overrides how long staged files are kept.
	Retention time.Duration
}

// RetentionOrDefault returns the configured retention, or
// DefaultRetention when unset.
func (s StagingOptions) RetentionOrDefault() time.Duration {
	if s.Retention > 0 {
		return s.Retention
	}
	return DefaultRetention
}

// Validate checks the parsed config for values that would produce a
// manifest the browser rejects.
func (c *Config) Validate() error {
	for _, origin := range c.AllowedOrigins {
		if !strings.HasPrefix(origin, "chrome-extension://") {
			return fmt.Errorf("allowed origin %q must start with chrome-extension://", origin)
		}
		if !strings.HasSuffix(origin, "/") {
			return fmt.Errorf("allowed origin %q must end with a trailing slash", origin)
		}
	}
	if c.Staging.Retention < 0 {
		return fmt.Errorf("staging retention must not be negative")
	}
	return nil
}
