// Package crypto provides thin, typed wrappers over the AEAD cipher and
// password KDF the vault file format is built on, plus CSPRNG access. The
// algorithm choices are fixed: they're part of the on-disk contract, not
// tunables.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/huttonjc/vaultkeep/internal/secret"
)

const (
	// KeySize is the XChaCha20-Poly1305 key length, and the derived-key
	// length every Argon2id profile below targets.
	KeySize = chacha20poly1305.KeySize // 32
	// NonceSize is the XChaCha20-Poly1305 (IETF "X" variant) nonce length.
	NonceSize = chacha20poly1305.NonceSizeX // 24
	// TagSize is the Poly1305 authentication tag appended to every
	// ciphertext.
	TagSize = chacha20poly1305.Overhead // 16
	// SaltSize is the Argon2id salt length persisted in the vault header.
	SaltSize = 16
)

var (
	ErrInvalidKey          = errors.New("crypto: invalid key")
	ErrInvalidNonce        = errors.New("crypto: invalid nonce")
	ErrInvalidSalt         = errors.New("crypto: invalid salt")
	ErrKeyDerivationFailed = errors.New("crypto: key derivation failed")
	ErrEncryptionFailed    = errors.New("crypto: encryption failed")
	ErrDecryptionFailed    = errors.New("crypto: decryption failed")
	ErrCryptoInitFailed    = errors.New("crypto: initialization failed")
)

// Profile names an Argon2id parameter set. The profile actually used to
// derive a vault's key is persisted in the vault header so a later load
// reproduces it exactly, rather than re-deriving under a possibly different
// hardcoded default.
type Profile struct {
	Name        string
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}

var (
	// ProfileInteractive trades KDF cost for responsiveness: suitable for a
	// vault unlocked often during interactive use.
	ProfileInteractive = Profile{Name: "interactive", MemoryKiB: 64 * 1024, Iterations: 2, Parallelism: 1}
	// ProfileModerate spends more memory and passes for vaults that are
	// unlocked rarely and should resist offline attack harder.
	ProfileModerate = Profile{Name: "moderate", MemoryKiB: 256 * 1024, Iterations: 3, Parallelism: 1}
)

// ProfileByName resolves a profile by its persisted name, defaulting to
// ProfileInteractive for an empty or unrecognized name.
func ProfileByName(name string) Profile {
	if name == ProfileModerate.Name {
		return ProfileModerate
	}
	return ProfileInteractive
}

// DeriveKey runs Argon2id over password and salt under the given
// parameters, returning a new 32-byte key buffer. The result is
// deterministic in (password, salt, mem, iters, parallelism).
func DeriveKey(password *secret.Buffer, salt []byte, mem, iters uint32, parallelism uint8) (*secret.Buffer, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSalt
	}
	raw := argon2.IDKey(password.Bytes(), salt, iters, mem, parallelism, KeySize)
	if len(raw) != KeySize {
		secret.Zero(raw)
		return nil, ErrKeyDerivationFailed
	}
	key := secret.FromBytes(raw)
	secret.Zero(raw)
	return key, nil
}

// RandomBytes returns n cryptographically random bytes from the OS CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("crypto: random bytes: %w", err)
	}
	return buf, nil
}

// Encrypt seals plaintext under (key, nonce) with XChaCha20-Poly1305 and no
// associated data. The result is exactly len(plaintext)+TagSize bytes.
func Encrypt(key *secret.Buffer, nonce, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	if len(ciphertext) != len(plaintext)+TagSize {
		return nil, ErrEncryptionFailed
	}
	return ciphertext, nil
}

// Decrypt verifies and opens ciphertext under (key, nonce). A tag mismatch
// returns ErrDecryptionFailed and never yields a partial plaintext.
func Decrypt(key *secret.Buffer, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}
	if len(ciphertext) < TagSize {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// SecureZero overwrites buf with zero bytes. It mirrors secret.Zero so that
// crypto's public surface matches the primitive table callers expect from
// this layer; the implementation is not duplicated.
func SecureZero(buf []byte) {
	secret.Zero(buf)
}

func newAEAD(key *secret.Buffer) (cipher.AEAD, error) {
	if key.Len() != KeySize {
		return nil, ErrInvalidKey
	}
	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, ErrCryptoInitFailed
	}
	return aead, nil
}
