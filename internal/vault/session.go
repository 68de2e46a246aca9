package vault

import (
	"fmt"

	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
	"github.com/huttonjc/vaultkeep/internal/secret"
)

// Session is the scoped owner of a vault's decrypted record list, its
// derived key, and the path it was loaded from. A Session is only ever
// produced by Load — there is no public constructor that takes a raw key.
// It is move-only in spirit: callers must not retain a Session after
// Close.
type Session struct {
	path   string
	key    *secret.Buffer
	vault  *Vault
	header *header
}

// Entries returns the ordered, read-only view of the session's records.
func (s *Session) Entries() []Record {
	return s.vault.Entries()
}

// Add appends a record, failing ErrDuplicateName if its name collides.
func (s *Session) Add(r Record) error {
	return s.vault.Add(r)
}

// Update replaces the record at index.
func (s *Session) Update(index int, r Record) error {
	return s.vault.Update(index, r)
}

// Remove deletes the record at index.
func (s *Session) Remove(index int) error {
	return s.vault.Remove(index)
}

// FindByName returns the index of the record named name, or -1 if none
// matches. Comparison is constant-time, consistent with secret.Buffer.Equal
// used throughout this package.
func (s *Session) FindByName(name string) int {
	needle := secret.FromString(name)
	defer needle.Destroy()
	for i, e := range s.vault.Entries() {
		if e.Name.Equal(needle) {
			return i
		}
	}
	return -1
}

// FilterByName returns the indices of every record whose name contains
// substr as a byte-literal substring. Unlike FindByName this is a plain
// (non-constant-time) scan: it's a convenience listing operation, not a
// security-sensitive comparison.
func (s *Session) FilterByName(substr string) []int {
	var matches []int
	for i, e := range s.vault.Entries() {
		if containsBytes(e.Name.Bytes(), []byte(substr)) {
			matches = append(matches, i)
		}
	}
	return matches
}

func containsBytes(haystack, needle []byte) bool {
	if len(needle) == 0 {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Save re-encrypts the current record list under a fresh nonce and
// atomically replaces the backing file.
func (s *Session) Save() error {
	return saveFile(s.path, s.vault, s.key, s.header)
}

// Close zeroes the session's key and destroys its record list, in that
// order. Close is idempotent; it is the deterministic analogue of the
// original C++ session's destructor, which Go has no equivalent of.
func (s *Session) Close() {
	s.key.Destroy()
	s.vault.Destroy()
}

// ChangePassword re-derives the session's key under newPassword (keeping
// the header's KDF profile) and immediately saves under the new key, so a
// crash between derivation and save never leaves the file unreadable under
// both passwords.
func (s *Session) ChangePassword(newPassword *secret.Buffer) error {
	salt, err := vcrypto.RandomBytes(vcrypto.SaltSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	newKey, err := vcrypto.DeriveKey(newPassword, salt, s.header.argonMemKiB, s.header.argonIters, uint8(s.header.argonParallelism))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	newHeader := *s.header
	copy(newHeader.salt[:], salt)

	if err := saveFile(s.path, s.vault, newKey, &newHeader); err != nil {
		newKey.Destroy()
		return err
	}

	s.key.Destroy()
	s.key = newKey
	s.header = &newHeader
	return nil
}
