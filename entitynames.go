// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const entityNamesMagic = "none"
const entityNamesHeaderLen = 32 // magic, then zero padding out to the first record
const entityNameFieldLen = 28
const entityNameRecordLen = entityNameFieldLen + 4

// EntityNameEntry is one (id, name) pair from the client's EntityNames
// table (spec.md §4.4, "EntityNames").
type EntityNameEntry struct {
	ID   uint32
	Name string
}

// EntityNamesValue is a parsed EntityNames table.
type EntityNamesValue struct {
	Entries []EntityNameEntry
}

// CheckHeaderEntityNames verifies the leading "none" marker.
func CheckHeaderEntityNames(w ByteWalker) error {
	return w.ExpectUTF8(entityNamesMagic)
}

// ParseEntityNames parses an EntityNames table: the "none" marker, padding
// out to offset 32, then 32-byte (28-byte name, 4-byte id) records until
// fewer than 32 bytes remain.
func ParseEntityNames(w ByteWalker) (*EntityNamesValue, error) {
	if err := CheckHeaderEntityNames(w); err != nil {
		return nil, err
	}
	if err := w.Goto(entityNamesHeaderLen); err != nil {
		return nil, err
	}

	var entries []EntityNameEntry
	for w.Remaining() >= entityNameRecordLen {
		raw, err := w.TakeBytes(entityNameFieldLen)
		if err != nil {
			return nil, err
		}
		id, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		name, err := DecodeText(trimNullPadding(raw), ModeSimple)
		if err != nil {
			return nil, err
		}
		entries = append(entries, EntityNameEntry{ID: id, Name: name})
	}
	return &EntityNamesValue{Entries: entries}, nil
}

// WriteEntityNames writes an EntityNames table. Names longer than 28 bytes
// once encoded are rejected rather than silently truncated.
func WriteEntityNames(w ByteWalker, v *EntityNamesValue) error {
	if err := w.WriteStr(entityNamesMagic); err != nil {
		return err
	}
	if err := w.WriteBytes(make([]byte, entityNamesHeaderLen-uint64(len(entityNamesMagic)))); err != nil {
		return err
	}
	for _, e := range v.Entries {
		encoded, err := EncodeText(e.Name, ModeSimple)
		if err != nil {
			return err
		}
		if len(encoded) > entityNameFieldLen {
			return &UnsupportedVariantError{Format: "entitynames", Detail: "name exceeds 28 bytes once encoded"}
		}
		field := make([]byte, entityNameFieldLen)
		copy(field, encoded)
		if err := w.WriteBytes(field); err != nil {
			return err
		}
		if err := w.WriteU32(e.ID); err != nil {
			return err
		}
	}
	return nil
}

// trimNullPadding returns b up to (not including) its first 0x00 byte, or
// all of b if it contains none.
func trimNullPadding(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
