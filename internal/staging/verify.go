package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Verifier checks the integrity of staged downloads.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier. keyringPath may be empty when no
// signature verification is configured.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// VerifySHA256 compares the file's SHA-256 against the expected hex
// digest, case-insensitively.
func (v *Verifier) VerifySHA256(filePath, expectedHex string) error {
	actual, err := calculateSHA256(filePath)
	if err != nil {
		return &VerificationError{Reason: "calculate checksum", Err: err}
	}
	if !strings.EqualFold(actual, expectedHex) {
		return &VerificationError{
			Reason: fmt.Sprintf("checksum mismatch: actual %s, expected %s", actual, expectedHex),
		}
	}
	return nil
}

// VerifyDetachedSignature checks a detached GPG signature over the
// file against the configured keyring. Armored signatures are tried
// first, then binary.
func (v *Verifier) VerifyDetachedSignature(filePath, sigPath string) error {
	if v.keyringPath == "" {
		return &VerificationError{Reason: "signature present but no keyring configured"}
	}

	keyring, err := v.loadKeyring()
	if err != nil {
		return &VerificationError{Reason: "load keyring", Err: err}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return &VerificationError{Reason: "open staged file", Err: err}
	}
	defer file.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return &VerificationError{Reason: "open signature", Err: err}
	}
	defer sig.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, file, sig, nil)
	if err != nil {
		file.Seek(0, io.SeekStart)
		sig.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, file, sig, nil)
	}
	if err != nil {
		return &VerificationError{Reason: "signature does not match", Err: err}
	}
	return nil
}

// loadKeyring reads the configured keyring, accepting armored and
// binary forms.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	f, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		f.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}
	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}
	return keyring, nil
}

func calculateSHA256(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
