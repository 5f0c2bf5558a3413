// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const xiStringTableMagic = "XISTRING\x00\x00"
const xiStringTableHeaderLen = 0x38

// xiStringTableUnknown2Default is the most commonly observed value of the
// header's unknown2 field. spec.md documents a second observed value
// (304231515, seen in IngameMessages2); this module preserves whichever
// value a file actually carries rather than rejecting unrecognised ones.
const xiStringTableUnknown2Default = 304091210

// XiStringEntry is one string slot in an XiStringTable. Index is not
// necessarily contiguous: a table may have gaps, which round-trip as
// empty placeholder entries (spec.md §4.4, "XiStringTable").
type XiStringEntry struct {
	String string
	// MetaUnknowns are the three trailing u16 fields of this entry's
	// 12-byte metadata header, almost always zero but observed as
	// {1,0,0} in at least one known table; preserved verbatim rather
	// than validated.
	MetaUnknowns [3]uint16
}

// XiStringTable is the client's pol-message / login-flow string table.
type XiStringTable struct {
	Entries  map[uint32]XiStringEntry
	Unknown2 uint32
}

// CheckHeaderXiStringTable verifies the leading magic and version.
func CheckHeaderXiStringTable(w ByteWalker) error {
	if err := w.ExpectUTF8(xiStringTableMagic); err != nil {
		return err
	}
	return w.ExpectBytes([]byte{2, 0})
}

// ParseXiStringTable parses an XiStringTable.
func ParseXiStringTable(w ByteWalker) (*XiStringTable, error) {
	if err := w.ExpectUTF8(xiStringTableMagic); err != nil {
		return nil, err
	}
	if err := w.ExpectBytes([]byte{2, 0}); err != nil {
		return nil, err
	}
	if err := w.ExpectN(0, 20); err != nil {
		return nil, err
	}

	fileBytes, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(fileBytes) != w.Len() {
		return nil, &HeaderInvalidError{Format: "xistringtable", Reason: "file size field does not match buffer length"}
	}

	entryCount, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	metaBytes, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	dataBytes, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	if metaBytes != entryCount*12 || fileBytes != xiStringTableHeaderLen+metaBytes+dataBytes {
		return nil, &HeaderInvalidError{Format: "xistringtable", Reason: "inconsistent header size fields"}
	}

	unknown1, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	if unknown1 != 0 {
		return nil, &HeaderInvalidError{Format: "xistringtable", Reason: "unknown1 is not zero"}
	}
	unknown2, err := w.ReadU32()
	if err != nil {
		return nil, err
	}

	type meta struct {
		offset, size uint32
		unknowns     [3]uint16
	}
	metas := make([]meta, entryCount)
	for i := range metas {
		offset, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		size, err := w.ReadU16()
		if err != nil {
			return nil, err
		}
		var unknowns [3]uint16
		for j := range unknowns {
			u, err := w.ReadU16()
			if err != nil {
				return nil, err
			}
			unknowns[j] = u
		}
		metas[i] = meta{offset: offset, size: uint32(size), unknowns: unknowns}
	}

	entries := make(map[uint32]XiStringEntry)
	for idx, m := range metas {
		expectedOffset := xiStringTableHeaderLen + metaBytes + m.offset
		if uint64(expectedOffset) != w.Offset() {
			return nil, &HeaderInvalidError{Format: "xistringtable", Reason: "string offset does not match data cursor"}
		}
		raw, err := w.TakeBytes(uint64(m.size))
		if err != nil {
			return nil, err
		}
		str, err := DecodeText(raw, ModeSimple)
		if err != nil {
			return nil, err
		}
		entries[uint32(idx)] = XiStringEntry{String: str, MetaUnknowns: m.unknowns}
	}

	return &XiStringTable{Entries: entries, Unknown2: unknown2}, nil
}

// WriteXiStringTable writes an XiStringTable. Indices with no entry are
// written as empty placeholder strings, matching the sparse map semantics
// of the original BTreeMap<u32,String> representation.
func WriteXiStringTable(w ByteWalker, v *XiStringTable) error {
	var entryCount uint32
	for idx := range v.Entries {
		if idx+1 > entryCount {
			entryCount = idx + 1
		}
	}

	encoded := make([][]byte, entryCount)
	unknowns := make([][3]uint16, entryCount)
	var dataBytes uint32
	for i := uint32(0); i < entryCount; i++ {
		e, ok := v.Entries[i]
		var b []byte
		if ok {
			enc, err := EncodeText(e.String, ModeSimple)
			if err != nil {
				return err
			}
			b = enc
			unknowns[i] = e.MetaUnknowns
		}
		encoded[i] = b
		dataBytes += uint32(len(b)) + 1 // terminating zero byte
	}

	metaBytes := entryCount * 12
	fileBytes := xiStringTableHeaderLen + metaBytes + dataBytes

	if err := w.WriteStr(xiStringTableMagic); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte{2, 0}); err != nil {
		return err
	}
	if err := w.WriteBytes(make([]byte, 20)); err != nil {
		return err
	}
	if err := w.WriteU32(fileBytes); err != nil {
		return err
	}
	if err := w.WriteU32(entryCount); err != nil {
		return err
	}
	if err := w.WriteU32(metaBytes); err != nil {
		return err
	}
	if err := w.WriteU32(dataBytes); err != nil {
		return err
	}
	if err := w.WriteU32(0); err != nil {
		return err
	}
	unknown2 := v.Unknown2
	if unknown2 == 0 {
		unknown2 = xiStringTableUnknown2Default
	}
	if err := w.WriteU32(unknown2); err != nil {
		return err
	}

	var offset uint32
	for i := uint32(0); i < entryCount; i++ {
		stringLen := uint32(len(encoded[i])) + 1
		if err := w.WriteU32(offset); err != nil {
			return err
		}
		if err := w.WriteU16(uint16(stringLen)); err != nil {
			return err
		}
		for _, u := range unknowns[i] {
			if err := w.WriteU16(u); err != nil {
				return err
			}
		}
		offset += stringLen
	}

	for i := uint32(0); i < entryCount; i++ {
		if err := w.WriteBytes(encoded[i]); err != nil {
			return err
		}
		if err := w.WriteU8(0); err != nil {
			return err
		}
	}

	return nil
}
