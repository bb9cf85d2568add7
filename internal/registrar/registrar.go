package registrar

import (
	"context"
	"fmt"

	"github.com/hostbridge/hostbridge/internal/browser"
	"github.com/hostbridge/hostbridge/internal/manifest"
	"github.com/hostbridge/hostbridge/internal/platform"
)

// Options configures one registration invocation.
type Options struct {
	// Force rewrites manifests even when an identical one is already
	// in place.
	Force bool

	// System requests system-tier registration explicitly. Without it
	// the tier follows the process's privilege level.
	System bool

	// Browsers are the explicitly requested targets; AllBrowsers
	// expands to every supported variant and wins over Browsers.
	Browsers    []browser.Variant
	AllBrowsers bool

	// Detect resolves targets by probing installed browsers when no
	// explicit request was made.
	Detect bool

	// ExecPath is the host launcher the manifest points at.
	ExecPath string

	// Description overrides the manifest description.
	Description string

	// ExtraOrigins are appended to the manifest's allowed origins.
	ExtraOrigins []string
}

// Result is the outcome of registering (or unregistering) a single
// browser variant.
type Result struct {
	Variant      browser.Variant
	ManifestPath string
	RegistryKey  string // empty outside Windows
	Unchanged    bool   // an identical manifest was already in place
	Err          error
}

// Succeeded reports whether the variant's registration completed.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Report aggregates the per-variant outcomes of one invocation.
type Report struct {
	Tier    manifest.Tier
	Results []Result
}

// Failed reports whether any variant's registration failed.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

// Registrar writes and removes host registrations.
type Registrar struct {
	goos     string
	env      manifest.Env
	elevated bool
	elevator Elevator
}

// New creates a registrar for the current platform and environment.
func New(goos string, env manifest.Env) *Registrar {
	return &Registrar{
		goos:     goos,
		env:      env,
		elevated: platform.Elevated(),
	}
}

// WithElevator sets the collaborator used for privileged writes.
func (r *Registrar) WithElevator(e Elevator) *Registrar {
	r.elevator = e
	return r
}

// WithPrivileged overrides privilege detection. Tests use this to
// exercise both tiers without actually running as root.
func (r *Registrar) WithPrivileged(elevated bool) *Registrar {
	r.elevated = elevated
	return r
}

// ResolveTier decides the installation tier for this invocation:
// system when explicitly requested or when the process already runs
// elevated, user otherwise.
func (r *Registrar) ResolveTier(explicitSystem bool) manifest.Tier {
	if explicitSystem || r.elevated {
		return manifest.TierSystem
	}
	return manifest.TierUser
}

// Register runs the registration state machine. Each target variant
// gets an independent outcome; a failed write never aborts the
// remaining variants.
func (r *Registrar) Register(ctx context.Context, opts Options) Report {
	tier := r.ResolveTier(opts.System)
	// With no selection flags, register only the primary vendor build.
	targets := browser.ResolveTargets(opts.Browsers, opts.AllBrowsers, opts.Detect,
		[]browser.Variant{browser.VariantChrome})

	descriptor := manifest.NewDescriptor(opts.ExecPath, opts.Description, opts.ExtraOrigins)

	report := Report{Tier: tier}

	// One descriptor serves every variant, so validate it once.
	if err := descriptor.Validate(); err != nil {
		for _, variant := range targets {
			report.Results = append(report.Results, Result{
				Variant:      variant,
				ManifestPath: manifest.Resolve(variant, tier, r.goos, r.env),
				Err:          fmt.Errorf("invalid manifest: %w", err),
			})
		}
		return report
	}

	for _, variant := range targets {
		report.Results = append(report.Results, r.registerOne(ctx, variant, tier, descriptor, opts.Force))
	}
	return report
}

func (r *Registrar) registerOne(ctx context.Context, variant browser.Variant, tier manifest.Tier, d manifest.Descriptor, force bool) Result {
	result := Result{
		Variant:      variant,
		ManifestPath: manifest.Resolve(variant, tier, r.goos, r.env),
	}

	if !force && r.alreadyRegistered(result.ManifestPath, d) {
		result.Unchanged = true
		return result
	}

	if err := r.writeManifest(ctx, tier, result.ManifestPath, d); err != nil {
		result.Err = err
		return result
	}

	// Verify the write landed before reporting success.
	written, err := manifest.Read(result.ManifestPath)
	if err != nil {
		result.Err = fmt.Errorf("verify manifest: %w", err)
		return result
	}
	if written.Name != d.Name {
		result.Err = fmt.Errorf("verify manifest: wrote %q, read back %q", d.Name, written.Name)
		return result
	}

	if keys, ok := manifest.ResolveRegistryKeys(variant, r.goos); ok {
		key := keys.User
		if tier == manifest.TierSystem {
			key = keys.System
		}
		result.RegistryKey = key
		if err := manifest.WriteRegistryValue(tier, key, result.ManifestPath); err != nil {
			result.Err = fmt.Errorf("registry registration: %w", err)
			return result
		}
	}

	return result
}

// writeManifest writes directly when the invocation has the needed
// privileges, and delegates to the elevation collaborator otherwise.
func (r *Registrar) writeManifest(ctx context.Context, tier manifest.Tier, path string, d manifest.Descriptor) error {
	if tier == manifest.TierSystem && !r.elevated {
		if r.elevator == nil {
			return ErrElevationUnavailable
		}
		if err := r.elevator.WriteManifest(ctx, path, d); err != nil {
			return fmt.Errorf("elevated write: %w", err)
		}
		return nil
	}

	if err := manifest.Write(path, d); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// alreadyRegistered reports whether an identical manifest is already
// installed, so repeat registrations stay cheap no-ops.
func (r *Registrar) alreadyRegistered(path string, d manifest.Descriptor) bool {
	existing, err := manifest.Read(path)
	if err != nil {
		return false
	}
	if existing.Name != d.Name || existing.Path != d.Path || existing.Description != d.Description {
		return false
	}
	if len(existing.AllowedOrigins) != len(d.AllowedOrigins) {
		return false
	}
	for i := range existing.AllowedOrigins {
		if existing.AllowedOrigins[i] != d.AllowedOrigins[i] {
			return false
		}
	}
	return true
}

// Unregister removes manifests (and registry keys on Windows) for the
// target variants. Missing manifests are success no-ops.
func (r *Registrar) Unregister(ctx context.Context, opts Options) Report {
	tier := r.ResolveTier(opts.System)
	targets := browser.ResolveTargets(opts.Browsers, opts.AllBrowsers, opts.Detect, browser.All())

	report := Report{Tier: tier}
	for _, variant := range targets {
		result := Result{
			Variant:      variant,
			ManifestPath: manifest.Resolve(variant, tier, r.goos, r.env),
		}

		if err := manifest.Remove(result.ManifestPath); err != nil {
			result.Err = err
			report.Results = append(report.Results, result)
			continue
		}

		if keys, ok := manifest.ResolveRegistryKeys(variant, r.goos); ok {
			key := keys.User
			if tier == manifest.TierSystem {
				key = keys.System
			}
			result.RegistryKey = key
			if err := manifest.DeleteRegistryKey(tier, key); err != nil {
				result.Err = err
			}
		}

		report.Results = append(report.Results, result)
	}
	return report
}
