// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

// DmsgListEntry is one entry of a v3 DmsgStringList: a header (offset,
// flag) pair followed by either a text payload or a numeric value,
// discriminated by flag. Offset records the value read on parse; Write
// does not use it and recomputes each offset from the payload position.
type DmsgListEntry struct {
	Offset uint32
	IsText bool
	Text   string
	Number uint32   // valid when !IsText
	Flags  []uint32 // not read or written by the DmsgStringList codec
}

const dmsgStringPaddingLen = 28

// readDmsgTextPayload reads the shared "28-byte padded prefix, then a
// mask-terminated string, then alignment padding" shape used by both DMSG
// v2 list entries and v3 DmsgStringList entries. mask is 0xFF for v2 (its
// strings are stored XORed with 0xFF) and 0x00/0xFF for v3 depending on
// flip_bytes.
func readDmsgTextPayload(w ByteWalker, mask byte) (string, error) {
	pad, err := w.TakeBytes(dmsgStringPaddingLen)
	if err != nil {
		return "", err
	}
	if pad[0] != 0x01^mask {
		return "", &MismatchError{Offset: w.Offset() - dmsgStringPaddingLen, Expected: []byte{0x01 ^ mask}, Found: pad[:1]}
	}
	for _, b := range pad[1:] {
		if b != mask {
			return "", &MismatchError{Offset: w.Offset() - dmsgStringPaddingLen, Expected: []byte{mask}, Found: []byte{b}}
		}
	}

	raw, err := w.StepUntil(mask)
	if err != nil {
		return "", err
	}
	if err := w.ExpectU8(mask); err != nil {
		return "", err
	}
	unmasked := make([]byte, len(raw))
	for i, b := range raw {
		unmasked[i] = b ^ mask
	}
	text, err := DecodeText(unmasked, ModeSimple)
	if err != nil {
		return "", err
	}
	if err := alignPad(w, 4, mask); err != nil {
		return "", err
	}
	return text, nil
}

func writeDmsgTextPayload(w ByteWalker, mask byte, text string) error {
	pad := make([]byte, dmsgStringPaddingLen)
	pad[0] = 0x01 ^ mask
	for i := 1; i < len(pad); i++ {
		pad[i] = mask
	}
	if err := w.WriteBytes(pad); err != nil {
		return err
	}
	encoded, err := EncodeText(text, ModeSimple)
	if err != nil {
		return err
	}
	masked := make([]byte, len(encoded))
	for i, b := range encoded {
		masked[i] = b ^ mask
	}
	if err := w.WriteBytes(masked); err != nil {
		return err
	}
	if err := w.WriteU8(mask); err != nil {
		return err
	}
	return writeAlignPad(w, 4, mask)
}

// alignPad consumes fill bytes (expected to equal mask) up to the next
// multiple of n relative to the start of the walker.
func alignPad(w ByteWalker, n uint64, mask byte) error {
	rem := w.Offset() % n
	if rem == 0 {
		return nil
	}
	return w.ExpectN(mask, n-rem)
}

func writeAlignPad(w ByteWalker, n uint64, mask byte) error {
	rem := w.Offset() % n
	if rem == 0 {
		return nil
	}
	pad := make([]byte, n-rem)
	for i := range pad {
		pad[i] = mask
	}
	return w.WriteBytes(pad)
}

// DmsgStringList is the per-record payload shared by DMSG v3 (spec.md
// §4.4, "DmsgStringList (shared by v3)"): an entry count, a header table
// of (offset, content_flag) pairs, and the entries' text/number payloads.
type DmsgStringList struct {
	Entries []DmsgListEntry
}

func maskU32(v uint32, mask byte) uint32 {
	if mask == 0 {
		return v
	}
	return v ^ 0xFFFFFFFF
}

// parseDmsgStringList reads a DmsgStringList with the given XOR mask
// (0x00, or 0xFF when the record's flip_bytes flag is set).
func parseDmsgStringList(w ByteWalker, mask byte) (*DmsgStringList, error) {
	count, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	type header struct{ offset, flag uint32 }
	headers := make([]header, count)
	for i := range headers {
		off, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		fl, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		headers[i] = header{offset: off, flag: fl}
	}

	entries := make([]DmsgListEntry, count)
	for i, h := range headers {
		entries[i].Offset = h.offset
		if h.flag == 0 {
			text, err := readDmsgTextPayload(w, mask)
			if err != nil {
				return nil, err
			}
			entries[i].IsText = true
			entries[i].Text = text
		} else {
			num, err := w.ReadU32()
			if err != nil {
				return nil, err
			}
			entries[i].Number = maskU32(num, mask)
		}
	}
	return &DmsgStringList{Entries: entries}, nil
}

// writeDmsgStringList is the inverse of parseDmsgStringList. Each entry's
// offset is recomputed to the position its payload will occupy.
func writeDmsgStringList(w ByteWalker, mask byte, list *DmsgStringList) error {
	if err := w.WriteU32(uint32(len(list.Entries))); err != nil {
		return err
	}
	headerPos := w.Offset()
	if err := w.WriteBytes(make([]byte, uint64(len(list.Entries))*8)); err != nil {
		return err
	}
	offsets := make([]uint32, len(list.Entries))
	flags := make([]uint32, len(list.Entries))
	for i, e := range list.Entries {
		offsets[i] = uint32(w.Offset())
		if e.IsText {
			flags[i] = 0
			if err := writeDmsgTextPayload(w, mask, e.Text); err != nil {
				return err
			}
		} else {
			flags[i] = 1
			if err := w.WriteU32(maskU32(e.Number, mask)); err != nil {
				return err
			}
		}
	}
	end := w.Offset()
	for i := range list.Entries {
		pos := headerPos + uint64(i)*8
		buf := make([]byte, 8)
		leU32(buf[0:4], offsets[i])
		leU32(buf[4:8], flags[i])
		if err := w.WriteAt(pos, buf); err != nil {
			return err
		}
	}
	return w.Goto(end)
}

func leU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
