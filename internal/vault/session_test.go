package vault

import (
	"errors"
	"path/filepath"
	"testing"

	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
	"github.com/huttonjc/vaultkeep/internal/secret"
)

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.bin")
	if err := CreateNew(path, secret.FromString("pw"), vcrypto.ProfileInteractive); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	sess, err := Load(path, secret.FromString("pw"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return sess, path
}

func TestSessionAddUpdateRemove(t *testing.T) {
	sess, _ := newTestSession(t)
	defer sess.Close()

	if err := sess.Add(NewRecord("a", "u1", "s1")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := sess.Add(NewRecord("a", "u2", "s2")); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	if err := sess.Update(0, NewRecord("a", "u1-renamed", "s1")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := sess.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(sess.Entries()) != 0 {
		t.Fatalf("expected empty after remove, got %d", len(sess.Entries()))
	}
}

func TestSessionFindByName(t *testing.T) {
	sess, _ := newTestSession(t)
	defer sess.Close()

	_ = sess.Add(NewRecord("github", "alice", "s1"))
	_ = sess.Add(NewRecord("gitlab", "bob", "s2"))

	if idx := sess.FindByName("gitlab"); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := sess.FindByName("nonexistent"); idx != -1 {
		t.Errorf("expected -1, got %d", idx)
	}
}

func TestSessionFilterByName(t *testing.T) {
	sess, _ := newTestSession(t)
	defer sess.Close()

	_ = sess.Add(NewRecord("github-personal", "alice", "s1"))
	_ = sess.Add(NewRecord("github-work", "alice", "s2"))
	_ = sess.Add(NewRecord("email", "alice", "s3"))

	matches := sess.FilterByName("github")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestSessionChangePasswordThenReload(t *testing.T) {
	sess, path := newTestSession(t)
	_ = sess.Add(NewRecord("a", "u", "s"))

	if err := sess.ChangePassword(secret.FromString("new-password")); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	sess.Close()

	if _, err := Load(path, secret.FromString("pw")); !errors.Is(err, ErrCryptoError) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}

	reloaded, err := Load(path, secret.FromString("new-password"))
	if err != nil {
		t.Fatalf("Load with new password: %v", err)
	}
	defer reloaded.Close()

	if len(reloaded.Entries()) != 1 {
		t.Fatalf("expected entry to survive password change, got %d", len(reloaded.Entries()))
	}
}
