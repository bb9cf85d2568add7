package registrar

import (
	"context"
	"errors"

	"github.com/hostbridge/hostbridge/internal/manifest"
)

// ErrElevationUnavailable is returned when a system-tier registration
// needs privileged writes and no elevation mechanism is available.
// Callers surface it with remediation advice rather than retrying.
var ErrElevationUnavailable = errors.New("elevated privileges required for system-tier registration")

// Elevator performs privileged manifest writes on behalf of the
// registrar. How the OS grants the privilege (sudo, UAC, polkit) is
// the implementation's business; the registrar only decides what to
// write and validates the outcome.
//
// Elevation applies to all targets of an invocation at once; there is
// no per-browser elevation.
type Elevator interface {
	WriteManifest(ctx context.Context, path string, d manifest.Descriptor) error
}
