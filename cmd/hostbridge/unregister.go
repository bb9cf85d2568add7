package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hostbridge/hostbridge/internal/manifest"
	"github.com/hostbridge/hostbridge/internal/registrar"
)

func runUnregister(args []string) error {
	opts, showHelp, err := parseRegisterArgs(args)
	if showHelp {
		printUnregisterHelp()
		return nil
	}
	if err != nil {
		return err
	}
	if opts.Force || opts.Detect {
		// Unregister removes whatever is present; target selection
		// flags apply but --force and --detect do not.
		return fmt.Errorf("unregister accepts only --system and --browser")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reg := registrar.New(runtime.GOOS, manifest.EnvFromOS())
	report := reg.Unregister(ctx, opts)
	printReport(report, "Removed")

	if report.Failed() {
		return fmt.Errorf("unregistration failed for one or more browsers")
	}
	return nil
}

func printUnregisterHelp() {
	fmt.Println("Usage: hostbridge unregister [options]")
	fmt.Println()
	fmt.Println("Removes the native messaging host manifest (and the registry value")
	fmt.Println("on Windows). Missing manifests are not an error.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --system            Remove the machine-wide registration")
	fmt.Println("  --browser <name>    Target a specific browser, or 'all'; repeatable")
	fmt.Println("  --help, -h          Show this help")
}
