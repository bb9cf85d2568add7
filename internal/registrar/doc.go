// Package registrar orchestrates native-messaging host registration:
// it decides the installation tier, resolves target browsers, writes
// manifests (and registry values on Windows), and repairs execute
// permissions on installed files.
//
// Registration is best-effort per browser: a failure for one variant
// is recorded in that variant's result and never aborts the others.
package registrar
