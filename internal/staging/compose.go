package staging

import (
	"github.com/hostbridge/hostbridge/internal/config"
)

// NewStagerFromConfig builds the process stager from the user config:
// staging.dir overrides the scratch root, and keyring enables GPG
// verification of signed downloads. Zero values fall back to the
// stager defaults.
func NewStagerFromConfig(cfg *config.Config) *Stager {
	s := NewStager(cfg.Staging.Dir)
	if cfg.Keyring != "" {
		s = s.WithKeyring(cfg.Keyring)
	}
	return s
}

// NewHandlerFromConfig builds the messaging-channel handler backed by
// a config-built stager.
func NewHandlerFromConfig(cfg *config.Config) *Handler {
	return NewHandler(NewStagerFromConfig(cfg))
}
