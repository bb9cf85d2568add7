package staging

import (
	"errors"
	"fmt"
	"time"
)

// StagedFile describes a file materialized in the scratch area (or,
// for path sources, verified in place).
type StagedFile struct {
	FilePath  string
	FileName  string
	SizeBytes int64
	CreatedAt time.Time
}

// Source is the tagged union of the three ways a file can be staged.
// Exactly one concrete type is passed per Stage call.
type Source interface {
	isSource()
}

// URLSource stages a file by downloading it.
type URLSource struct {
	URL string

	// SHA256 is an optional hex checksum the downloaded bytes must
	// match.
	SHA256 string

	// SignatureURL optionally points at a detached GPG signature for
	// the downloaded file, verified against the configured keyring.
	SignatureURL string
}

// PayloadSource stages a file from an inline base64 payload, with an
// optional data-URI style prefix.
type PayloadSource struct {
	Encoded string
	Name    string
}

// PathSource references an existing local file. Nothing is copied;
// the path is validated and returned as-is.
type PathSource struct {
	Path string
}

func (URLSource) isSource()     {}
func (PayloadSource) isSource() {}
func (PathSource) isSource()    {}

// ErrNotContained is returned when a cleanup target lies outside the
// scratch root. The operation is refused, never performed.
var ErrNotContained = errors.New("path is outside the staging root")

// DownloadError reports a failed download, carrying the HTTP status
// when the server responded.
type DownloadError struct {
	URL    string
	Status int
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// DecodeError reports an undecodable inline payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode payload: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// VerificationError reports a staged file that failed validation:
// a missing or irregular path source, a checksum mismatch, or a bad
// signature.
type VerificationError struct {
	Reason string
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("verification failed: %s", e.Reason)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Logger is the structured logging interface staging operations emit
// through. The default discards everything.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
