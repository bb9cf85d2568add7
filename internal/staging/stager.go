package staging

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the HTTP request timeout for URL sources.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "hostbridge/1.0"
	// DefaultRootName is the scratch directory created under the OS
	// temp dir when no root is configured.
	DefaultRootName = "hostbridge-staging"
)

// Stager owns the scratch area and materializes staged files into it.
// One Stager is constructed per process with an explicit root, so
// tests can hand it a disposable directory.
type Stager struct {
	root     string
	client   *http.Client
	verifier *Verifier
	logger   Logger
}

// DefaultRoot returns the scratch root used when none is configured.
func DefaultRoot() string {
	return filepath.Join(os.TempDir(), DefaultRootName)
}

// NewStager creates a stager rooted at root. An empty root selects
// DefaultRoot(). The root itself is created lazily on first use.
func NewStager(root string) *Stager {
	if root == "" {
		root = DefaultRoot()
	}
	return &Stager{
		root: root,
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		verifier: NewVerifier(""),
		logger:   noopLogger{},
	}
}

// WithLogger sets the logger used by staging operations.
func (s *Stager) WithLogger(logger Logger) *Stager {
	s.logger = logger
	return s
}

// WithKeyring sets the GPG keyring used to verify signed downloads.
func (s *Stager) WithKeyring(keyringPath string) *Stager {
	s.verifier = NewVerifier(keyringPath)
	return s
}

// Root returns the scratch root directory.
func (s *Stager) Root() string {
	return s.root
}

// Stage materializes a file from the given source and returns its
// metadata. All failures come back as typed errors; nothing panics
// past this boundary.
func (s *Stager) Stage(ctx context.Context, source Source) (*StagedFile, error) {
	switch src := source.(type) {
	case URLSource:
		return s.stageURL(ctx, src)
	case PayloadSource:
		return s.stagePayload(src)
	case PathSource:
		return s.stagePath(src)
	default:
		return nil, fmt.Errorf("unknown source type %T", source)
	}
}

// Cleanup deletes a previously staged file. Paths outside the scratch
// root are refused with ErrNotContained; this containment check is the
// security invariant of the whole subsystem. Deleting a path that no
// longer exists is a success no-op.
func (s *Stager) Cleanup(filePath string) error {
	contained, err := s.contains(filePath)
	if err != nil {
		return fmt.Errorf("resolve cleanup path: %w", err)
	}
	if !contained {
		s.logger.Warn("refused cleanup outside staging root", "path", filePath)
		return ErrNotContained
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}

// contains reports whether filePath is a strict descendant of the
// scratch root after resolving both to absolute form.
func (s *Stager) contains(filePath string) (bool, error) {
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false, nil
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return true, nil
}

// ensureRoot lazily creates the scratch root.
func (s *Stager) ensureRoot() error {
	if err := os.MkdirAll(s.root, 0700); err != nil {
		return fmt.Errorf("create staging root: %w", err)
	}
	return nil
}

func (s *Stager) stageURL(ctx context.Context, src URLSource) (*StagedFile, error) {
	if err := s.ensureRoot(); err != nil {
		return nil, err
	}

	fileName := fileNameFromURL(src.URL)
	destPath := filepath.Join(s.root, fileName)

	if err := s.downloadTo(ctx, src.URL, destPath); err != nil {
		return nil, err
	}

	if err := s.verifyStaged(ctx, destPath, src); err != nil {
		// A file that fails verification must not linger in the
		// scratch area.
		os.Remove(destPath)
		return nil, err
	}

	return s.describe(destPath, fileName)
}

// downloadTo fetches url into destPath via a temp file and rename, so
// a failed download never leaves a partial file under the final name.
func (s *Stager) downloadTo(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &DownloadError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return &DownloadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{URL: rawURL, Status: resp.StatusCode}
	}

	tmpPath := destPath + ".part"
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return &DownloadError{URL: rawURL, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	cleanupNeeded = false
	return nil
}

// verifyStaged applies the optional integrity checks a URL source may
// carry.
func (s *Stager) verifyStaged(ctx context.Context, destPath string, src URLSource) error {
	if src.SHA256 != "" {
		if err := s.verifier.VerifySHA256(destPath, src.SHA256); err != nil {
			return err
		}
	}
	if src.SignatureURL != "" {
		sigPath := destPath + ".sig"
		if err := s.downloadTo(ctx, src.SignatureURL, sigPath); err != nil {
			return err
		}
		defer os.Remove(sigPath)
		if err := s.verifier.VerifyDetachedSignature(destPath, sigPath); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stager) stagePayload(src PayloadSource) (*StagedFile, error) {
	if err := s.ensureRoot(); err != nil {
		return nil, err
	}

	data, err := decodePayload(src.Encoded)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	fileName := src.Name
	if fileName == "" {
		fileName = synthesizeName()
	} else {
		// Caller-supplied names are reduced to their base so a crafted
		// name can't climb out of the scratch root.
		fileName = filepath.Base(fileName)
	}
	destPath := filepath.Join(s.root, fileName)

	if err := os.WriteFile(destPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write staged file: %w", err)
	}

	return s.describe(destPath, fileName)
}

func (s *Stager) stagePath(src PathSource) (*StagedFile, error) {
	info, err := os.Stat(src.Path)
	if err != nil {
		return nil, &VerificationError{Reason: fmt.Sprintf("file %s is not accessible", src.Path), Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &VerificationError{Reason: fmt.Sprintf("file %s is not a regular file", src.Path)}
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, &VerificationError{Reason: fmt.Sprintf("file %s is not readable", src.Path), Err: err}
	}
	f.Close()

	return &StagedFile{
		FilePath:  src.Path,
		FileName:  filepath.Base(src.Path),
		SizeBytes: info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// describe stats a freshly staged file and builds its metadata record.
func (s *Stager) describe(destPath, fileName string) (*StagedFile, error) {
	info, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("stat staged file: %w", err)
	}
	s.logger.Debug("staged file", "path", destPath, "size", info.Size())
	return &StagedFile{
		FilePath:  destPath,
		FileName:  fileName,
		SizeBytes: info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// fileNameFromURL derives a staged file name from the URL's final
// path segment plus a random disambiguating suffix, so two stages of
// the same URL never overwrite each other. A URL with no usable
// segment gets a fully random name.
func fileNameFromURL(rawURL string) string {
	suffix := randomSuffix()

	u, err := url.Parse(rawURL)
	if err != nil {
		return suffix + ".bin"
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return suffix + ".bin"
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%s%s", stem, suffix, ext)
}

// synthesizeName builds a name for a payload staged without one. The
// random component avoids races between two stages in the same
// instant.
func synthesizeName() string {
	return fmt.Sprintf("payload-%s-%s.bin", time.Now().Format("20060102-150405"), randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unheard of; fall back to
		// a timestamp rather than aborting the stage.
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// decodePayload strips an optional data-URI prefix and base64-decodes
// the remainder.
func decodePayload(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 {
			return nil, fmt.Errorf("data URI has no payload separator")
		}
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
