// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const stringTableEntryLen = 0x40
const stringTableFieldLen = 59

// StringTableEntry is one (id, string) pair. The id is the u32 stored at
// the start of the entry's record; it is not derived from the entry's
// position within the table.
type StringTableEntry struct {
	ID     uint32
	String string
}

// StringTable is a flat 64-byte-record string table. Read-only: the
// client's own tooling never re-serializes this format (original_source's
// `StringTable::write` is an unimplemented stub), so this module does not
// claim a write path it cannot ground or verify.
type StringTable struct {
	Entries []StringTableEntry
}

// CheckHeaderStringTable verifies the buffer's length is a whole number of
// 0x40-byte records and that the first record's terminator byte is 0xFF,
// without consuming w. Grounded on check_type in
// _examples/original_source/crates/dats/src/formats/string_table.rs.
func CheckHeaderStringTable(w ByteWalker) error {
	if w.Len()%stringTableEntryLen != 0 {
		return &UnsupportedVariantError{Format: "stringtable", Detail: "length is not a multiple of 0x40"}
	}
	terminator, err := w.ReadBytesAt(4+stringTableFieldLen, 1)
	if err != nil {
		return err
	}
	if terminator[0] != 0xFF {
		return &HeaderInvalidError{Format: "stringtable", Reason: "expected strings to be terminated by 0xFF"}
	}
	return nil
}

// ParseStringTable parses a StringTable.
func ParseStringTable(w ByteWalker) (*StringTable, error) {
	if err := CheckHeaderStringTable(w); err != nil {
		return nil, err
	}
	count := w.Len() / stringTableEntryLen
	table := &StringTable{Entries: make([]StringTableEntry, 0, count)}
	for idx := uint64(0); idx < count; idx++ {
		id, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		raw, err := w.TakeBytes(stringTableFieldLen)
		if err != nil {
			return nil, err
		}
		str, err := DecodeText(trimNullPadding(raw), ModeSimple)
		if err != nil {
			return nil, err
		}
		if err := w.ExpectU8(0xFF); err != nil {
			return nil, err
		}
		table.Entries = append(table.Entries, StringTableEntry{ID: id, String: str})
	}
	return table, nil
}

// WriteStringTable always fails: this format is read-only in this tool,
// matching original_source's own unimplemented write path.
func WriteStringTable(w ByteWalker, v *StringTable) error {
	return &UnsupportedVariantError{Format: "stringtable", Detail: "write is not supported for this format"}
}
