package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hostbridge/hostbridge/internal/config"
	"github.com/hostbridge/hostbridge/internal/platform"
)

// loadUserConfig reads the optional Lua config file. A missing file
// yields an empty config; a broken one is reported on stderr and
// ignored so the command can still run with defaults.
func loadUserConfig(ctx context.Context) *config.Config {
	parser := config.NewParser(platform.NewDetector())
	cfg, err := parser.Load(ctx, config.FilePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", err)
		return &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", err)
		return &config.Config{}
	}
	return cfg
}
