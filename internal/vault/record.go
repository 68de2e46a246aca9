package vault

import (
	"encoding/binary"
	"fmt"

	"github.com/huttonjc/vaultkeep/internal/secret"
)

// Record is a single (name, username, secret) credential. Records are value
// objects: identity is by position in a Vault's entry list, and equality is
// triple-wise byte equality of the three fields.
type Record struct {
	Name     *secret.Buffer
	Username *secret.Buffer
	Secret   *secret.Buffer
}

// NewRecord builds a Record from plain strings, copying each into its own
// secret.Buffer.
func NewRecord(name, username, secretValue string) Record {
	return Record{
		Name:     secret.FromString(name),
		Username: secret.FromString(username),
		Secret:   secret.FromString(secretValue),
	}
}

// Equal reports whether r and other hold identical name, username, and
// secret bytes.
func (r Record) Equal(other Record) bool {
	return r.Name.Equal(other.Name) &&
		r.Username.Equal(other.Username) &&
		r.Secret.Equal(other.Secret)
}

// Destroy wipes all three of the record's secret buffers.
func (r Record) Destroy() {
	r.Name.Destroy()
	r.Username.Destroy()
	r.Secret.Destroy()
}

// Vault is the ordered, in-memory list of records held by a Session. Names
// are unique: Add rejects a record whose name already appears. Update does
// not re-check uniqueness — see DESIGN.md's Open Questions for why this
// spec-flagged ambiguity is intentionally left as-is.
type Vault struct {
	entries []Record
}

// Entries returns the ordered, live view of records. Insertion order is
// preserved and is the stable identity surface callers index into.
func (v *Vault) Entries() []Record {
	return v.entries
}

// Add appends entry iff no existing record shares its name.
func (v *Vault) Add(entry Record) error {
	for _, e := range v.entries {
		if e.Name.Equal(entry.Name) {
			return ErrDuplicateName
		}
	}
	v.entries = append(v.entries, entry)
	return nil
}

// Update replaces the record at index. Uniqueness of names is not
// re-validated here (see the type doc comment).
func (v *Vault) Update(index int, entry Record) error {
	if index < 0 || index >= len(v.entries) {
		return ErrNotFound
	}
	v.entries[index].Destroy()
	v.entries[index] = entry
	return nil
}

// Remove deletes the record at index, shifting subsequent indices down by
// one.
func (v *Vault) Remove(index int) error {
	if index < 0 || index >= len(v.entries) {
		return ErrNotFound
	}
	v.entries[index].Destroy()
	v.entries = append(v.entries[:index], v.entries[index+1:]...)
	return nil
}

// Destroy wipes every record's secret buffers. Called when a Session ends.
func (v *Vault) Destroy() {
	for _, e := range v.entries {
		e.Destroy()
	}
	v.entries = nil
}

// serialize produces the canonical V1 plaintext blob for v: a little-endian
// u32 count, followed per record by three length-prefixed byte runs (name,
// username, secret), in that order. Given the same entries, serialize is
// byte-for-byte reproducible.
func serialize(v *Vault) []byte {
	size := 4
	for _, e := range v.entries {
		size += 4 + e.Name.Len() + 4 + e.Username.Len() + 4 + e.Secret.Len()
	}

	buf := make([]byte, size)
	offset := 0
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(v.entries)))
	offset += 4

	for _, e := range v.entries {
		offset = putField(buf, offset, e.Name.Bytes())
		offset = putField(buf, offset, e.Username.Bytes())
		offset = putField(buf, offset, e.Secret.Bytes())
	}

	return buf
}

func putField(buf []byte, offset int, field []byte) int {
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(field)))
	offset += 4
	copy(buf[offset:], field)
	return offset + len(field)
}

// deserialize parses a V1 plaintext blob into a Vault. It rejects
// truncation, trailing garbage, and any duplicate name that would surface
// during insertion — a well-formed file never contains one.
func deserialize(data []byte) (*Vault, error) {
	offset := 0

	count, ok := readU32(data, &offset)
	if !ok {
		return nil, ErrInvalidFormat
	}

	v := &Vault{entries: make([]Record, 0, count)}
	for i := uint32(0); i < count; i++ {
		name, ok := readField(data, &offset)
		if !ok {
			return nil, ErrInvalidFormat
		}
		username, ok := readField(data, &offset)
		if !ok {
			return nil, ErrInvalidFormat
		}
		secretBytes, ok := readField(data, &offset)
		if !ok {
			return nil, ErrInvalidFormat
		}

		rec := Record{
			Name:     secret.FromBytes(name),
			Username: secret.FromBytes(username),
			Secret:   secret.FromBytes(secretBytes),
		}
		if err := v.Add(rec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}

	if offset != len(data) {
		return nil, ErrInvalidFormat
	}

	return v, nil
}

func readU32(data []byte, offset *int) (uint32, bool) {
	if *offset+4 > len(data) {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(data[*offset:])
	*offset += 4
	return v, true
}

func readField(data []byte, offset *int) ([]byte, bool) {
	length, ok := readU32(data, offset)
	if !ok {
		return nil, false
	}
	if *offset+int(length) > len(data) {
		return nil, false
	}
	field := data[*offset : *offset+int(length)]
	*offset += int(length)
	return field, true
}
