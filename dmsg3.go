// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const dmsg3Magic = "d_msg\x00\x00\x00"

const dmsg3HeaderReservedLen = 44 // 64-byte header minus magic(8)+version(2)+marker(2)+count(4)+bytes_per_entry(4)

// Dmsg3Value is a parsed DMSG v3 string table (spec.md §4.4, "DMSG v3"): a
// fixed-width record table whose payload is a DmsgStringList per record.
type Dmsg3Value struct {
	FlipBytes      bool
	BytesPerEntry  uint32
	HeaderReserved [dmsg3HeaderReservedLen]byte
	Records        []DmsgStringList
}

// CheckHeaderDMSG3 verifies the magic/version/marker triple and reports
// the flip_bytes flag carried in the header's second version byte, since
// every later field's XOR mask depends on it.
func CheckHeaderDMSG3(w ByteWalker) (flipBytes bool, err error) {
	if err := w.ExpectUTF8(dmsg3Magic); err != nil {
		return false, err
	}
	if err := w.ExpectU8(1); err != nil {
		return false, err
	}
	flip, err := w.ReadU8()
	if err != nil {
		return false, err
	}
	if flip != 0 && flip != 1 {
		return false, &HeaderInvalidError{Format: "dmsg3", Reason: "flip_bytes flag must be 0 or 1"}
	}
	if err := w.ExpectBytes([]byte{3, 3}); err != nil {
		return false, err
	}
	return flip == 1, nil
}

// ParseDMSG3 parses a DMSG v3 string table.
func ParseDMSG3(w ByteWalker) (*Dmsg3Value, error) {
	flip, err := CheckHeaderDMSG3(w)
	if err != nil {
		return nil, err
	}
	count, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	bytesPerEntry, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	reserved, err := w.TakeBytes(dmsg3HeaderReservedLen)
	if err != nil {
		return nil, err
	}

	mask := byte(0x00)
	if flip {
		mask = 0xFF
	}

	records := make([]DmsgStringList, count)
	for i := range records {
		recStart := w.Offset()
		list, err := parseDmsgStringList(w, mask)
		if err != nil {
			return nil, err
		}
		records[i] = *list
		if err := w.Goto(recStart + uint64(bytesPerEntry)); err != nil {
			return nil, err
		}
	}

	var val Dmsg3Value
	val.FlipBytes = flip
	val.BytesPerEntry = bytesPerEntry
	copy(val.HeaderReserved[:], reserved)
	val.Records = records
	return &val, nil
}

// WriteDMSG3 writes a DMSG v3 string table. BytesPerEntry is treated as
// the record schema's fixed width rather than something to recompute: a
// record whose serialized payload no longer fits is a data error, not
// something this codec silently grows around.
func WriteDMSG3(w ByteWalker, v *Dmsg3Value) error {
	if err := w.WriteStr(dmsg3Magic); err != nil {
		return err
	}
	if err := w.WriteU8(1); err != nil {
		return err
	}
	flipByte := byte(0)
	if v.FlipBytes {
		flipByte = 1
	}
	if err := w.WriteU8(flipByte); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte{3, 3}); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(v.Records))); err != nil {
		return err
	}
	if err := w.WriteU32(v.BytesPerEntry); err != nil {
		return err
	}
	if err := w.WriteBytes(v.HeaderReserved[:]); err != nil {
		return err
	}

	mask := byte(0x00)
	if v.FlipBytes {
		mask = 0xFF
	}

	for i := range v.Records {
		bw := NewBufferWalker(nil)
		if err := writeDmsgStringList(bw, mask, &v.Records[i]); err != nil {
			return err
		}
		body := bw.IntoVec()
		if uint64(len(body)) > uint64(v.BytesPerEntry) {
			return &UnsupportedVariantError{Format: "dmsg3", Detail: "record exceeds bytes_per_entry"}
		}
		if err := w.WriteBytes(body); err != nil {
			return err
		}
		pad := make([]byte, uint64(v.BytesPerEntry)-uint64(len(body)))
		for i := range pad {
			pad[i] = mask
		}
		if err := w.WriteBytes(pad); err != nil {
			return err
		}
	}
	return nil
}
