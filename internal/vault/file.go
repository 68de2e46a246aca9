package vault

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
	"github.com/huttonjc/vaultkeep/internal/secret"
)

// CreateNew writes a brand-new, empty vault at path under password, using
// profile for key derivation. It fails FileAlreadyExists if path already
// exists; the existence check and the create itself are one atomic
// exclusive-create open, never a separate stat-then-open.
func CreateNew(path string, password *secret.Buffer, profile vcrypto.Profile) error {
	salt, err := vcrypto.RandomBytes(vcrypto.SaltSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}
	nonce, err := vcrypto.RandomBytes(vcrypto.NonceSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	key, err := vcrypto.DeriveKey(password, salt, profile.MemoryKiB, profile.Iterations, profile.Parallelism)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}
	defer key.Destroy()

	plaintext := serialize(&Vault{})
	ciphertext, err := vcrypto.Encrypt(key, nonce, plaintext)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	h := &header{
		magic:            magic,
		version:          fileVersion,
		kdfType:          kdfArgon2id,
		argonMemKiB:      profile.MemoryKiB,
		argonIters:       profile.Iterations,
		argonParallelism: uint32(profile.Parallelism),
	}
	copy(h.salt[:], salt)
	copy(h.nonce[:], nonce)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrFileAlreadyExists
		}
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	if _, err := f.Write(h.encode()); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if _, err := f.Write(ciphertext); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}

// Load opens the vault at path, derives its key from password using the
// header's own persisted Argon2id parameters (never a hardcoded default),
// decrypts and parses its record list, and returns an open Session.
func Load(path string, password *secret.Buffer) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}

	ciphertext := raw[headerSize:]
	if len(ciphertext) < vcrypto.TagSize {
		return nil, ErrInvalidFormat
	}

	key, err := vcrypto.DeriveKey(password, h.salt[:], h.argonMemKiB, h.argonIters, uint8(h.argonParallelism))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	plaintext, err := vcrypto.Decrypt(key, h.nonce[:], ciphertext)
	if err != nil {
		key.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	v, err := deserialize(plaintext)
	if err != nil {
		key.Destroy()
		return nil, err
	}

	return &Session{
		path:   path,
		key:    key,
		vault:  v,
		header: h,
	}, nil
}

// saveFile re-encrypts vault under a freshly generated nonce and
// atomically replaces the file at path, preserving the header's salt and
// Argon parameters (re-deriving the key on every save would double its
// cost for no benefit — the key is already known). The write goes to a
// temp file in the same directory, fsynced, then renamed over path so a
// crash never leaves a half-written vault.
func saveFile(path string, v *Vault, key *secret.Buffer, h *header) error {
	nonce, err := vcrypto.RandomBytes(vcrypto.NonceSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	plaintext := serialize(v)
	ciphertext, err := vcrypto.Encrypt(key, nonce, plaintext)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCryptoError, err)
	}

	newHeader := *h
	copy(newHeader.nonce[:], nonce)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vaultkeep-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, newHeader.encode(), ciphertext); err != nil {
		scrubAndRemove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		scrubAndRemove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	h.nonce = newHeader.nonce
	return nil
}

func writeAndClose(f *os.File, header, ciphertext []byte) error {
	if _, err := f.Write(header); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(ciphertext); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// scrubAndRemove overwrites an orphaned temp file with random bytes before
// removing it, so a save that failed partway through never leaves plaintext
// ciphertext fragments recoverable from disk. Mirrors the teacher's
// overwrite-then-remove shutdown path, repointed at a save's temp file
// instead of a whole database file.
func scrubAndRemove(path string) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		os.Remove(path)
		return
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		os.Remove(path)
		return
	}

	size := info.Size()
	buf := make([]byte, 64*1024)
	if _, err := rand.Read(buf); err != nil {
		f.Close()
		os.Remove(path)
		return
	}

	for written := int64(0); written < size; written += int64(len(buf)) {
		if _, err := f.Write(buf); err != nil {
			break
		}
	}

	f.Sync()
	f.Close()
	os.Remove(path)
}

// Exists reports whether a vault file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Destroy scrubs and deletes the vault file at path. Intended for
// deliberate vault shredding, not for cleaning up a failed save (use
// scrubAndRemove for that).
func Destroy(path string) error {
	if !Exists(path) {
		return ErrFileNotFound
	}
	scrubAndRemove(path)
	return nil
}
