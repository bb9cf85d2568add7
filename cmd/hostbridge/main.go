package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("hostbridge %s\n", Version)
			return
		case "register":
			if err := runRegister(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "unregister":
			if err := runUnregister(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "fix-permissions":
			if err := runFixPermissions(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "update-port":
			if err := runUpdatePort(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "clean":
			if err := runClean(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("hostbridge - native messaging bridge for browser extensions")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hostbridge --version                    Show version information")
	fmt.Println("  hostbridge register [options]           Register the native messaging host")
	fmt.Println("  hostbridge unregister [options]         Remove the host registration")
	fmt.Println("  hostbridge fix-permissions              Restore execute permissions on installed files")
	fmt.Println("  hostbridge update-port <port>           Update the background process port")
	fmt.Println("  hostbridge clean [--max-age <dur>]      Sweep aged files from the staging area")
	fmt.Println()
	fmt.Println("Register options:")
	fmt.Println("  --force             Rewrite manifests even when already registered")
	fmt.Println("  --system            Register machine-wide (needs elevated privileges)")
	fmt.Println("  --browser <name>    Target a specific browser, or 'all'")
	fmt.Println("  --detect            Target the browsers detected on this machine")
}
