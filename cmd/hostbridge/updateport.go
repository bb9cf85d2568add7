package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hostbridge/hostbridge/internal/config"
)

// portFileName holds the port the extension uses to reach the
// background process, next to the Lua config.
const portFileName = "port.json"

type portFile struct {
	Port int `json:"port"`
}

func runUpdatePort(args []string) error {
	var portArg string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printUpdatePortHelp()
			return nil
		default:
			if portArg != "" {
				return fmt.Errorf("unknown option: %s", args[i])
			}
			portArg = args[i]
		}
	}
	if portArg == "" {
		return fmt.Errorf("update-port requires a port number\nUsage: hostbridge update-port <port>")
	}

	port, err := strconv.Atoi(portArg)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q: must be a number between 1 and 65535", portArg)
	}

	path := filepath.Join(config.Dir(), portFileName)
	if err := writePortFile(path, port); err != nil {
		return fmt.Errorf("update port: %w", err)
	}
	fmt.Printf("Port updated to %d (%s)\n", port, path)
	return nil
}

// writePortFile writes atomically so the extension never reads a
// half-written file.
func writePortFile(path string, port int) error {
	data, err := json.Marshal(portFile{Port: port})
	if err != nil {
		return fmt.Errorf("marshal port: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".port-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func printUpdatePortHelp() {
	fmt.Println("Usage: hostbridge update-port <port>")
	fmt.Println()
	fmt.Println("Records the port of the background process so the extension knows")
	fmt.Println("where to connect. The value must be between 1 and 65535.")
}
