package vault

import (
	"encoding/binary"
	"fmt"

	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
)

const (
	magic       uint32 = 0x4C554156 // "VAUL", little-endian on disk
	fileVersion uint8  = 1
	kdfArgon2id uint8  = 1
	headerSize         = 76
)

// header is the fixed 76-byte preamble of a vault file: magic, format
// version, KDF identifier, the Argon2id parameters actually used to derive
// this file's key, the salt, and the AEAD nonce for the current ciphertext.
// Every multi-byte field is little-endian on disk regardless of host
// endianness.
type header struct {
	magic            uint32
	version          uint8
	kdfType          uint8
	reserved         uint16
	argonMemKiB      uint32
	argonIters       uint32
	argonParallelism uint32
	salt             [vcrypto.SaltSize]byte
	nonce            [vcrypto.NonceSize]byte
}

// encode writes h into its canonical 76-byte little-endian form.
func (h *header) encode() []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.magic)
	buf[4] = h.version
	buf[5] = h.kdfType
	binary.LittleEndian.PutUint16(buf[6:8], h.reserved)
	binary.LittleEndian.PutUint32(buf[8:12], h.argonMemKiB)
	binary.LittleEndian.PutUint32(buf[12:16], h.argonIters)
	binary.LittleEndian.PutUint32(buf[16:20], h.argonParallelism)
	copy(buf[20:36], h.salt[:])
	copy(buf[36:60], h.nonce[:])
	// buf[60:76] is reserved tail padding, left zero.
	return buf
}

// decodeHeader parses the first headerSize bytes of buf. It validates magic
// and kdf_type (InvalidFormat on mismatch) and version (UnsupportedVersion
// on mismatch) per spec: unknown versions are rejected outright, never
// heuristically recovered.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, ErrInvalidFormat
	}

	h := &header{
		magic:            binary.LittleEndian.Uint32(buf[0:4]),
		version:          buf[4],
		kdfType:          buf[5],
		reserved:         binary.LittleEndian.Uint16(buf[6:8]),
		argonMemKiB:      binary.LittleEndian.Uint32(buf[8:12]),
		argonIters:       binary.LittleEndian.Uint32(buf[12:16]),
		argonParallelism: binary.LittleEndian.Uint32(buf[16:20]),
	}
	copy(h.salt[:], buf[20:36])
	copy(h.nonce[:], buf[36:60])

	if h.magic != magic || h.kdfType != kdfArgon2id {
		return nil, ErrInvalidFormat
	}
	if h.version != fileVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, h.version)
	}

	return h, nil
}
