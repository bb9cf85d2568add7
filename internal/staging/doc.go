// Package staging materializes files exchanged across the
// native-messaging boundary into a bounded scratch area, verifies
// them, and reaps them when they age out.
//
// Every destructive operation is preceded by a containment check: a
// path that is not a descendant of the scratch root is refused, never
// deleted. The filesystem is the only durable record of staged files;
// the reaper works off modification times so files staged by a
// previous process are still cleaned up after a restart.
package staging
