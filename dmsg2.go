// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "encoding/binary"

const dmsg2Magic = "d_msg\x00\x00\x00"

const dmsg2HeaderReservedLen = 48 // 64-byte header minus magic(8)+version(2)+marker(2)+list_count(4)

// Dmsg2Entry is one entry of a DMSG v2 list: either a tag-encoded string
// or a sequence of raw 32-bit "flags" values, discriminated by the
// on-disk flag field (0 => text, >0 => flag count).
type Dmsg2Entry struct {
	IsText bool
	Text   string
	Flags  []uint32
}

// Dmsg2List is one ordered list of entries inside a DMSG v2 file.
type Dmsg2List struct {
	Entries []Dmsg2Entry
}

// Dmsg2Value is a parsed DMSG v2 string table (spec.md §4.4, "DMSG v2"),
// used for the client's "area_names" record among others.
type Dmsg2Value struct {
	HeaderReserved [dmsg2HeaderReservedLen]byte
	Lists          []Dmsg2List
}

// FirstString returns the first text entry of the list at listIndex, used
// by zone-name loading where list index == zone id.
func (v *Dmsg2Value) FirstString(listIndex int) (string, bool) {
	if listIndex < 0 || listIndex >= len(v.Lists) {
		return "", false
	}
	for _, e := range v.Lists[listIndex].Entries {
		if e.IsText {
			return e.Text, true
		}
	}
	return "", false
}

// CheckHeaderDMSG2 verifies the magic/version/marker triple.
func CheckHeaderDMSG2(w ByteWalker) error {
	if err := w.ExpectUTF8(dmsg2Magic); err != nil {
		return err
	}
	if err := w.ExpectBytes([]byte{1, 1}); err != nil {
		return err
	}
	return w.ExpectBytes([]byte{3, 3})
}

func readInvertedU32(w ByteWalker) (uint32, error) {
	v, err := w.ReadU32()
	if err != nil {
		return 0, err
	}
	return ^v, nil
}

func writeInvertedU32(w ByteWalker, v uint32) error {
	return w.WriteU32(^v)
}

// ParseDMSG2 parses a DMSG v2 string table.
func ParseDMSG2(w ByteWalker) (*Dmsg2Value, error) {
	if err := CheckHeaderDMSG2(w); err != nil {
		return nil, err
	}
	listCount, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	reserved, err := w.TakeBytes(dmsg2HeaderReservedLen)
	if err != nil {
		return nil, err
	}

	type listHeader struct{ offset, length uint32 }
	headers := make([]listHeader, listCount)
	for i := range headers {
		off, err := readInvertedU32(w)
		if err != nil {
			return nil, err
		}
		ln, err := readInvertedU32(w)
		if err != nil {
			return nil, err
		}
		headers[i] = listHeader{offset: off, length: ln}
	}

	lists := make([]Dmsg2List, listCount)
	for i, h := range headers {
		if err := w.Goto(uint64(h.offset)); err != nil {
			return nil, err
		}
		list, err := parseDmsg2ListBody(w)
		if err != nil {
			return nil, err
		}
		lists[i] = *list
	}

	var val Dmsg2Value
	copy(val.HeaderReserved[:], reserved)
	val.Lists = lists
	return &val, nil
}

func parseDmsg2ListBody(w ByteWalker) (*Dmsg2List, error) {
	count, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	entries := make([]Dmsg2Entry, count)
	for i := range entries {
		if _, err := readInvertedU32(w); err != nil { // per-entry offset: recomputed on write, not needed to interpret content
			return nil, err
		}
		flag, err := readInvertedU32(w)
		if err != nil {
			return nil, err
		}
		if flag == 0 {
			text, err := readDmsgTextPayload(w, 0xFF)
			if err != nil {
				return nil, err
			}
			entries[i] = Dmsg2Entry{IsText: true, Text: text}
		} else {
			vals := make([]uint32, flag)
			for j := range vals {
				if vals[j], err = readInvertedU32(w); err != nil {
					return nil, err
				}
			}
			entries[i] = Dmsg2Entry{Flags: vals}
		}
	}
	return &Dmsg2List{Entries: entries}, nil
}

// WriteDMSG2 writes a DMSG v2 string table, recomputing every list/entry
// offset and length from the current content.
func WriteDMSG2(w ByteWalker, v *Dmsg2Value) error {
	if err := w.WriteStr(dmsg2Magic); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte{1, 1}); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte{3, 3}); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(v.Lists))); err != nil {
		return err
	}
	if err := w.WriteBytes(v.HeaderReserved[:]); err != nil {
		return err
	}

	tablePos := w.Offset()
	for range v.Lists {
		if err := w.WriteU32(0); err != nil {
			return err
		}
		if err := w.WriteU32(0); err != nil {
			return err
		}
	}

	bodies := make([][]byte, len(v.Lists))
	for i := range v.Lists {
		bw := NewBufferWalker(nil)
		if err := writeDmsg2ListBody(bw, &v.Lists[i]); err != nil {
			return err
		}
		bodies[i] = bw.IntoVec()
	}

	offsets := make([]uint32, len(v.Lists))
	cur := w.Offset()
	for i, b := range bodies {
		offsets[i] = uint32(cur)
		cur += uint64(len(b))
	}
	for _, b := range bodies {
		if err := w.WriteBytes(b); err != nil {
			return err
		}
	}

	for i := range v.Lists {
		pos := tablePos + uint64(i)*8
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint32(buf[0:4], ^offsets[i])
		binary.LittleEndian.PutUint32(buf[4:8], ^uint32(len(bodies[i])))
		if err := w.WriteAt(pos, buf); err != nil {
			return err
		}
	}
	return nil
}

func writeDmsg2ListBody(w ByteWalker, list *Dmsg2List) error {
	if err := w.WriteU32(uint32(len(list.Entries))); err != nil {
		return err
	}
	for _, e := range list.Entries {
		payloadOffset := uint32(w.Offset() + 8)
		if e.IsText {
			if err := writeInvertedU32(w, payloadOffset); err != nil {
				return err
			}
			if err := writeInvertedU32(w, 0); err != nil {
				return err
			}
			if err := writeDmsgTextPayload(w, 0xFF, e.Text); err != nil {
				return err
			}
		} else {
			if err := writeInvertedU32(w, payloadOffset); err != nil {
				return err
			}
			if err := writeInvertedU32(w, uint32(len(e.Flags))); err != nil {
				return err
			}
			for _, v := range e.Flags {
				if err := writeInvertedU32(w, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
