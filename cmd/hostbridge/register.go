package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hostbridge/hostbridge/internal/browser"
	"github.com/hostbridge/hostbridge/internal/manifest"
	"github.com/hostbridge/hostbridge/internal/registrar"
)

func runRegister(args []string) error {
	opts, showHelp, err := parseRegisterArgs(args)
	if showHelp {
		printRegisterHelp()
		return nil
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := loadUserConfig(ctx)
	opts.Description = cfg.Description
	opts.ExtraOrigins = cfg.AllowedOrigins

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	opts.ExecPath = execPath

	reg := registrar.New(runtime.GOOS, manifest.EnvFromOS())
	report := reg.Register(ctx, opts)
	printReport(report, "Registered")

	if report.Failed() {
		return registerFailure(report)
	}
	return nil
}

func parseRegisterArgs(args []string) (registrar.Options, bool, error) {
	var opts registrar.Options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			return opts, true, nil
		case "--force":
			opts.Force = true
		case "--system":
			opts.System = true
		case "--detect":
			opts.Detect = true
		case "--browser":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("--browser requires a value (one of: %s, all)", supportedBrowserNames())
			}
			i++
			name := args[i]
			if strings.EqualFold(name, "all") {
				opts.AllBrowsers = true
				continue
			}
			v, ok := browser.Parse(name)
			if !ok {
				return opts, false, fmt.Errorf("unknown browser %q (one of: %s, all)", name, supportedBrowserNames())
			}
			opts.Browsers = append(opts.Browsers, v)
		default:
			return opts, false, fmt.Errorf("unknown option: %s", args[i])
		}
	}
	return opts, false, nil
}

func supportedBrowserNames() string {
	var names []string
	for _, v := range browser.All() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}

func printReport(report registrar.Report, verb string) {
	for _, res := range report.Results {
		name := string(res.Variant)
		if cfg, ok := browser.Lookup(res.Variant); ok {
			name = cfg.DisplayName
		}
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "  %s: %v\n", name, res.Err)
		case res.Unchanged:
			fmt.Printf("  %s: already registered (%s)\n", name, res.ManifestPath)
		default:
			fmt.Printf("  %s: %s %s (%s tier)\n", name, strings.ToLower(verb), res.ManifestPath, report.Tier)
			if res.RegistryKey != "" {
				fmt.Printf("    registry: %s\n", res.RegistryKey)
			}
		}
	}
}

// registerFailure turns a failed report into the command error,
// adding remediation text when elevation was the blocker.
func registerFailure(report registrar.Report) error {
	for _, res := range report.Results {
		if errors.Is(res.Err, registrar.ErrElevationUnavailable) {
			return fmt.Errorf("system-wide registration needs elevated privileges\n" +
				"Re-run with sudo (or from an elevated prompt on Windows), or drop --system for a per-user registration")
		}
	}
	return fmt.Errorf("registration failed for one or more browsers")
}

func printRegisterHelp() {
	fmt.Println("Usage: hostbridge register [options]")
	fmt.Println()
	fmt.Println("Writes the native messaging host manifest so browsers can launch")
	fmt.Println("the bridge. Without options it targets Google Chrome at the tier")
	fmt.Println("matching the current privilege level.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --force             Rewrite manifests even when already registered")
	fmt.Println("  --system            Register machine-wide (needs elevated privileges)")
	fmt.Println("  --browser <name>    Target a specific browser, or 'all'; repeatable")
	fmt.Println("  --detect            Target the browsers detected on this machine")
	fmt.Println("  --help, -h          Show this help")
}
