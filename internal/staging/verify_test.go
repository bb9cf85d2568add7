package staging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
)

func TestVerifySHA256(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	if err := os.WriteFile(path, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}

	// SHA-256 of "hello"
	sum := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	v := NewVerifier("")
	if err := v.VerifySHA256(path, sum); err != nil {
		t.Errorf("matching checksum failed: %v", err)
	}

	// Case-insensitive comparison.
	upper := "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824"
	if err := v.VerifySHA256(path, upper); err != nil {
		t.Errorf("uppercase checksum failed: %v", err)
	}

	err := v.VerifySHA256(path, "deadbeef")
	var verErr *VerificationError
	if !errors.As(err, &verErr) {
		t.Errorf("mismatch error = %v, want *VerificationError", err)
	}
}

func TestVerifySHA256MissingFile(t *testing.T) {
	v := NewVerifier("")
	err := v.VerifySHA256(filepath.Join(t.TempDir(), "ghost"), "00")
	var verErr *VerificationError
	if !errors.As(err, &verErr) {
		t.Errorf("error = %v, want *VerificationError", err)
	}
}

func TestVerifyDetachedSignatureNoKeyring(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	os.WriteFile(path, []byte("x"), 0600)

	v := NewVerifier("")
	err := v.VerifyDetachedSignature(path, path)
	var verErr *VerificationError
	if !errors.As(err, &verErr) {
		t.Errorf("error = %v, want *VerificationError", err)
	}
}

func TestVerifyDetachedSignature(t *testing.T) {
	dir := t.TempDir()

	entity, err := openpgp.NewEntity("hostbridge test", "", "test@hostbridge.invalid", nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	// Write the public keyring the verifier will trust.
	var pub bytes.Buffer
	if err := entity.Serialize(&pub); err != nil {
		t.Fatalf("serialize key: %v", err)
	}
	keyringPath := filepath.Join(dir, "trusted.gpg")
	if err := os.WriteFile(keyringPath, pub.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	// Sign a payload with a detached signature.
	payload := []byte("signed payload")
	dataPath := filepath.Join(dir, "data")
	if err := os.WriteFile(dataPath, payload, 0600); err != nil {
		t.Fatal(err)
	}

	var sig bytes.Buffer
	if err := openpgp.DetachSign(&sig, entity, bytes.NewReader(payload), nil); err != nil {
		t.Fatalf("sign: %v", err)
	}
	sigPath := filepath.Join(dir, "data.sig")
	if err := os.WriteFile(sigPath, sig.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	v := NewVerifier(keyringPath)
	if err := v.VerifyDetachedSignature(dataPath, sigPath); err != nil {
		t.Errorf("valid signature rejected: %v", err)
	}

	// Tampering with the payload must fail verification.
	if err := os.WriteFile(dataPath, []byte("tampered payload"), 0600); err != nil {
		t.Fatal(err)
	}
	err = v.VerifyDetachedSignature(dataPath, sigPath)
	var verErr *VerificationError
	if !errors.As(err, &verErr) {
		t.Errorf("tampered payload error = %v, want *VerificationError", err)
	}
}
