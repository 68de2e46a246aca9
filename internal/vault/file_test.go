package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
	"github.com/huttonjc/vaultkeep/internal/secret"
)

func tempVaultPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vault.bin")
}

func TestCreateNewThenLoadEmptyVault(t *testing.T) {
	path := tempVaultPath(t)
	pw := secret.FromString("correct horse battery staple")

	if err := CreateNew(path, pw, vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	sess, err := Load(path, secret.FromString("correct horse battery staple"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer sess.Close()

	if len(sess.Entries()) != 0 {
		t.Fatalf("expected empty vault, got %d entries", len(sess.Entries()))
	}
}

func TestCreateNewRejectsExistingPath(t *testing.T) {
	path := tempVaultPath(t)
	pw := secret.FromString("pw")

	if err := CreateNew(path, pw, vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("first CreateNew: %v", err)
	}
	if err := CreateNew(path, pw, vcrypto.ProfileInteractive); !errors.Is(err, ErrFileAlreadyExists) {
		t.Fatalf("expected ErrFileAlreadyExists, got %v", err)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"), secret.FromString("pw"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadRejectsWrongPassword(t *testing.T) {
	path := tempVaultPath(t)
	if err := CreateNew(path, secret.FromString("right"), vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	if _, err := Load(path, secret.FromString("wrong")); !errors.Is(err, ErrCryptoError) {
		t.Fatalf("expected ErrCryptoError, got %v", err)
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := tempVaultPath(t)
	pw := secret.FromString("pw")
	if err := CreateNew(path, pw, vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	sess, err := Load(path, secret.FromString("pw"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := sess.Add(NewRecord("github", "alice", "s3cr3t")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := sess.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sess.Close()

	reloaded, err := Load(path, secret.FromString("pw"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	defer reloaded.Close()

	entries := reloaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", len(entries))
	}
	if string(entries[0].Name.Bytes()) != "github" {
		t.Errorf("expected name %q, got %q", "github", entries[0].Name.Bytes())
	}
}

func TestSaveUsesFreshNonceEachTime(t *testing.T) {
	path := tempVaultPath(t)
	if err := CreateNew(path, secret.FromString("pw"), vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	raw1, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	h1, err := decodeHeader(raw1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	sess, err := Load(path, secret.FromString("pw"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := sess.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sess.Close()

	raw2, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read 2: %v", err)
	}
	h2, err := decodeHeader(raw2)
	if err != nil {
		t.Fatalf("decode 2: %v", err)
	}

	if h1.nonce == h2.nonce {
		t.Errorf("expected a fresh nonce after save")
	}
	if h1.salt != h2.salt {
		t.Errorf("expected salt to be preserved across save")
	}
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	path := tempVaultPath(t)
	if err := os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path, secret.FromString("pw")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	path := tempVaultPath(t)
	if err := CreateNew(path, secret.FromString("pw"), vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	raw[4] = 9
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	if _, err := Load(path, secret.FromString("pw")); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDestroyRemovesFile(t *testing.T) {
	path := tempVaultPath(t)
	if err := CreateNew(path, secret.FromString("pw"), vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	if err := Destroy(path); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if Exists(path) {
		t.Errorf("expected file to be gone after Destroy")
	}
}

func TestCreateNewPersistsChosenProfile(t *testing.T) {
	path := tempVaultPath(t)
	if err := CreateNew(path, secret.FromString("pw"), vcrypto.ProfileModerate); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	h, err := decodeHeader(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if h.argonMemKiB != vcrypto.ProfileModerate.MemoryKiB || h.argonIters != vcrypto.ProfileModerate.Iterations {
		t.Errorf("expected moderate profile params in header, got mem=%d iters=%d", h.argonMemKiB, h.argonIters)
	}

	// Load must re-derive with the persisted profile, not a hardcoded default.
	sess, err := Load(path, secret.FromString("pw"))
	if err != nil {
		t.Fatalf("Load with persisted moderate profile: %v", err)
	}
	sess.Close()
}
