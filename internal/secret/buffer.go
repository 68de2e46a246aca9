// Package secret holds byte buffers that carry sensitive material: master
// passwords, derived keys, and the name/username/secret fields of a vault
// record. Every buffer is wiped to zero before its storage is released.
package secret

import "crypto/subtle"

// Buffer owns a byte slice holding sensitive data. There is no copy
// constructor and no method returns an owning copy of the live bytes:
// callers that need a second owner must explicitly construct a new Buffer
// from a snapshot of Bytes(), which is never done inside this package.
type Buffer struct {
	data []byte
}

// New returns a zero-filled Buffer of length n.
func New(n int) *Buffer {
	return &Buffer{data: make([]byte, n)}
}

// FromBytes copies b into a new, independently-owned Buffer.
func FromBytes(b []byte) *Buffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Buffer{data: cp}
}

// FromString copies the bytes of s into a new Buffer. Used for textual
// input such as a master password read off the terminal.
func FromString(s string) *Buffer {
	return FromBytes([]byte(s))
}

// Len reports the number of live bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes returns the live backing slice. The returned slice is only valid
// for as long as the Buffer itself is; it must not be retained past a call
// to Destroy or Move.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Equal reports whether b and other hold identical bytes, compared in
// constant time. The length check short-circuits (as any length-prefixed
// comparison must), so only buffers of equal length take the constant-time
// path.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Len() != other.Len() {
		return false
	}
	if b.Len() == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(b.data, other.data) == 1
}

// Move transfers ownership of b's storage to a new Buffer and leaves b
// empty. b and the returned Buffer must never both be used as if they owned
// the data afterward — only the returned Buffer does.
func (b *Buffer) Move() *Buffer {
	moved := &Buffer{data: b.data}
	b.data = nil
	return moved
}

// Destroy overwrites every byte with zero and releases the storage. Destroy
// is idempotent and safe to call on a nil Buffer or one already destroyed.
func (b *Buffer) Destroy() {
	if b == nil {
		return
	}
	Zero(b.data)
	b.data = nil
}

// Zero overwrites buf with zero bytes in place. It is the primitive every
// other wipe in this package (and internal/crypto's SecureZero) is built on.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
