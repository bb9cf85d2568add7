package manifest

import (
	"fmt"
	"os"
	"runtime"
)

const (
	// HostName is the native-messaging host identifier registered with
	// the browser. The extension addresses the host by this name.
	HostName = "com.hostbridge.bridge"

	// DefaultDescription is used when the user config does not
	// override the manifest description.
	DefaultDescription = "hostbridge native messaging bridge"

	// DefaultOrigin is the extension origin allowed to launch the
	// host. Additional origins come from the user config.
	DefaultOrigin = "chrome-extension://knldjmfmopnpolahpmmgbagdohdnhkik/"

	// TypeStdio is the only transport the native-messaging contract
	// supports for hosts.
	TypeStdio = "stdio"
)

// Descriptor is the JSON document a browser reads to learn how to
// launch and trust a native messaging host.
type Descriptor struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Path           string   `json:"path"`
	Type           string   `json:"type"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// NewDescriptor builds a manifest descriptor pointing at the given
// host launcher executable. extraOrigins are appended after the
// default extension origin.
func NewDescriptor(execPath, description string, extraOrigins []string) Descriptor {
	if description == "" {
		description = DefaultDescription
	}
	origins := append([]string{DefaultOrigin}, extraOrigins...)
	return Descriptor{
		Name:           HostName,
		Description:    description,
		Path:           execPath,
		Type:           TypeStdio,
		AllowedOrigins: origins,
	}
}

// Validate checks the descriptor against the native-messaging host
// contract: the name must match the registered host identifier and the
// path must point at an existing executable file.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("manifest name is empty")
	}
	if d.Name != HostName {
		return fmt.Errorf("manifest name %q does not match host identifier %q", d.Name, HostName)
	}
	if d.Type != TypeStdio {
		return fmt.Errorf("manifest type %q is not %q", d.Type, TypeStdio)
	}
	if len(d.AllowedOrigins) == 0 {
		return fmt.Errorf("manifest has no allowed origins")
	}

	info, err := os.Stat(d.Path)
	if err != nil {
		return fmt.Errorf("host launcher %s: %w", d.Path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("host launcher %s is not a regular file", d.Path)
	}
	// Execute bits don't exist on Windows; existence is enough there.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("host launcher %s is not executable", d.Path)
	}
	return nil
}
