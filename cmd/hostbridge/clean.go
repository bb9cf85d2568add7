package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hostbridge/hostbridge/internal/staging"
)

func runClean(args []string) error {
	var maxAgeArg string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printCleanHelp()
			return nil
		case "--max-age":
			if i+1 >= len(args) {
				return fmt.Errorf("--max-age requires a duration value (e.g. 30m, 2h)")
			}
			i++
			maxAgeArg = args[i]
		default:
			return fmt.Errorf("unknown option: %s", args[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := loadUserConfig(ctx)
	maxAge := cfg.Staging.RetentionOrDefault()
	if maxAgeArg != "" {
		parsed, err := time.ParseDuration(maxAgeArg)
		if err != nil {
			return fmt.Errorf("invalid --max-age %q: %w", maxAgeArg, err)
		}
		if parsed < 0 {
			return fmt.Errorf("invalid --max-age %q: must not be negative", maxAgeArg)
		}
		maxAge = parsed
	}

	root := staging.NewStagerFromConfig(cfg).Root()
	staging.NewReaper(root).Sweep(maxAge)
	fmt.Printf("Swept %s (entries older than %s)\n", root, maxAge)
	return nil
}

func printCleanHelp() {
	fmt.Println("Usage: hostbridge clean [--max-age <duration>]")
	fmt.Println()
	fmt.Println("Deletes staged files older than the retention window. The window")
	fmt.Println("comes from the config file's staging.retention, or defaults to 1h.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --max-age <dur>   Override the retention window (e.g. 30m, 2h)")
	fmt.Println("  --help, -h        Show this help")
}
