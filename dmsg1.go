// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "encoding/binary"

const dmsg1Magic = "d_msg\x00\x00\x00"

// Dmsg1Entry is one DMSG v1 record header. Offset and Length are derived
// from Text and recomputed on Write; the remaining fields are undocumented
// in spec.md beyond their wire type, so they are captured and replayed
// verbatim.
type Dmsg1Entry struct {
	Unknown1 uint32
	Unknown2 [2]uint16
	Unknown3 [4]uint32
	Unknown4 [2]uint16
	Text     string
}

// Dmsg1Value is a parsed DMSG v1 string table (spec.md §4.4, "DMSG v1").
type Dmsg1Value struct {
	HeaderReserved [36]byte
	Entries        []Dmsg1Entry
}

// CheckHeaderDMSG1 verifies the magic/version/marker triple and leaves the
// walker positioned right after it.
func CheckHeaderDMSG1(w ByteWalker) error {
	if err := w.ExpectUTF8(dmsg1Magic); err != nil {
		return err
	}
	if err := w.ExpectBytes([]byte{1, 0}); err != nil {
		return err
	}
	return w.ExpectBytes([]byte{2, 3})
}

// ParseDMSG1 parses a DMSG v1 string table.
func ParseDMSG1(w ByteWalker) (*Dmsg1Value, error) {
	if err := CheckHeaderDMSG1(w); err != nil {
		return nil, err
	}
	fileLength, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	count, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	reserved, err := w.TakeBytes(36)
	if err != nil {
		return nil, err
	}
	if uint64(fileLength) != w.Len() {
		return nil, &HeaderInvalidError{Format: "dmsg1", Reason: "file_size field does not match byte length"}
	}

	type rawHeader struct {
		offset uint32
		length int16
	}
	raws := make([]rawHeader, count)
	entries := make([]Dmsg1Entry, count)
	for i := range entries {
		offset, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		unknown1, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		length, err := w.ReadI16()
		if err != nil {
			return nil, err
		}
		var u2 [2]uint16
		if u2[0], err = w.ReadU16(); err != nil {
			return nil, err
		}
		if u2[1], err = w.ReadU16(); err != nil {
			return nil, err
		}
		var u3 [4]uint32
		for j := range u3 {
			if u3[j], err = w.ReadU32(); err != nil {
				return nil, err
			}
		}
		var u4 [2]uint16
		if u4[0], err = w.ReadU16(); err != nil {
			return nil, err
		}
		if u4[1], err = w.ReadU16(); err != nil {
			return nil, err
		}
		raws[i] = rawHeader{offset: offset, length: length}
		entries[i] = Dmsg1Entry{Unknown1: unknown1, Unknown2: u2, Unknown3: u3, Unknown4: u4}
	}

	for i, rh := range raws {
		raw, err := w.ReadBytesAt(uint64(rh.offset), uint64(rh.length))
		if err != nil {
			return nil, err
		}
		text, err := DecodeText(raw, ModeSimple)
		if err != nil {
			return nil, err
		}
		entries[i].Text = text
	}

	var val Dmsg1Value
	copy(val.HeaderReserved[:], reserved)
	val.Entries = entries
	return &val, nil
}

// WriteDMSG1 writes a DMSG v1 string table, recomputing the file length
// and every entry's offset/length from the current string content.
func WriteDMSG1(w ByteWalker, v *Dmsg1Value) error {
	if err := w.WriteStr(dmsg1Magic); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte{1, 0}); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte{2, 3}); err != nil {
		return err
	}
	sizePos := w.Offset()
	if err := w.WriteU32(0); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(v.Entries))); err != nil {
		return err
	}
	if err := w.WriteBytes(v.HeaderReserved[:]); err != nil {
		return err
	}

	encoded := make([][]byte, len(v.Entries))
	for i, e := range v.Entries {
		b, err := EncodeText(e.Text, ModeSimple)
		if err != nil {
			return err
		}
		encoded[i] = b
	}

	headerEnd := w.Offset() + uint64(len(v.Entries))*34
	offsets := make([]uint32, len(v.Entries))
	cur := headerEnd
	for i, b := range encoded {
		offsets[i] = uint32(cur)
		cur += uint64(len(b))
	}

	for i, e := range v.Entries {
		if err := w.WriteU32(offsets[i]); err != nil {
			return err
		}
		if err := w.WriteU32(e.Unknown1); err != nil {
			return err
		}
		if err := w.WriteI16(int16(len(encoded[i]))); err != nil {
			return err
		}
		if err := w.WriteU16(e.Unknown2[0]); err != nil {
			return err
		}
		if err := w.WriteU16(e.Unknown2[1]); err != nil {
			return err
		}
		for _, u := range e.Unknown3 {
			if err := w.WriteU32(u); err != nil {
				return err
			}
		}
		if err := w.WriteU16(e.Unknown4[0]); err != nil {
			return err
		}
		if err := w.WriteU16(e.Unknown4[1]); err != nil {
			return err
		}
	}
	for _, b := range encoded {
		if err := w.WriteBytes(b); err != nil {
			return err
		}
	}

	total := w.Offset()
	sizeBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBytes, uint32(total))
	return w.WriteAt(sizePos, sizeBytes)
}
