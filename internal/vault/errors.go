package vault

import "errors"

// Record-level errors: the closed set Vault's mutators can return.
var (
	ErrDuplicateName = errors.New("vault: duplicate name")
	ErrNotFound      = errors.New("vault: not found")
)

// File-level errors: the closed set CreateNew/Load/Save can return. Any
// crypto-layer failure is collapsed into ErrCryptoError at this boundary so
// callers only ever face one file error taxonomy (spec.md §7).
var (
	ErrFileNotFound       = errors.New("vault: file not found")
	ErrFileAlreadyExists  = errors.New("vault: file already exists")
	ErrInvalidFormat      = errors.New("vault: invalid format")
	ErrUnsupportedVersion = errors.New("vault: unsupported version")
	ErrCryptoError        = errors.New("vault: crypto error")
	ErrIO                 = errors.New("vault: io error")
)
