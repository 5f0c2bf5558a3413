// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const dialogMask32 = 0x80808080
const dialogMask8 = 0x80

// Dialog is an ordered map of zone dialog strings, keyed by their index in
// the record. Entries are emitted in key order on write, matching the
// BTreeMap<u32,String> ordering of the source representation.
type Dialog struct {
	Entries map[uint32]string
}

func dialogHeaderValues(w ByteWalker) (fileSize, stringCount uint32, err error) {
	sizeInfo, err := w.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	if sizeInfo == 0 {
		return 0, 0, &HeaderInvalidError{Format: "dialog", Reason: "possible empty dialog DAT"}
	}
	fileSize = (sizeInfo ^ 0x10000000) + 4
	if uint64(fileSize) != w.Len() {
		return 0, 0, &HeaderInvalidError{Format: "dialog", Reason: "file size field does not match buffer length"}
	}

	shiftedCount, err := w.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	shiftedCount ^= dialogMask32
	if shiftedCount%4 != 0 || uint64(shiftedCount) > w.Len() || shiftedCount < 4 {
		return 0, 0, &HeaderInvalidError{Format: "dialog", Reason: "invalid shifted string count"}
	}
	return fileSize, shiftedCount >> 2, nil
}

// CheckHeaderDialog verifies the header without parsing the full record.
func CheckHeaderDialog(w ByteWalker) error {
	_, _, err := dialogHeaderValues(w)
	return err
}

func parseDialogString(w ByteWalker, end uint32) (string, error) {
	n := uint64(end) - w.Offset()
	raw, err := w.TakeBytes(n)
	if err != nil {
		return "", err
	}
	unmasked := make([]byte, len(raw))
	for i, b := range raw {
		unmasked[i] = b ^ dialogMask8
	}
	return DecodeText(unmasked, ModeDialog)
}

// ParseDialog parses a Dialog record.
func ParseDialog(w ByteWalker) (*Dialog, error) {
	fileSize, stringCount, err := dialogHeaderValues(w)
	if err != nil {
		return nil, err
	}

	ends := make([]uint32, 0, stringCount)
	for i := uint32(0); i < stringCount-1; i++ {
		raw, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		ends = append(ends, (raw^dialogMask32)+4)
	}
	ends = append(ends, fileSize)

	entries := make(map[uint32]string, len(ends))
	for idx, end := range ends {
		s, err := parseDialogString(w, end)
		if err != nil {
			return nil, err
		}
		entries[uint32(idx)] = s
	}
	return &Dialog{Entries: entries}, nil
}

// WriteDialog writes a Dialog record.
func WriteDialog(w ByteWalker, v *Dialog) error {
	count := 0
	for k := range v.Entries {
		if k+1 > uint32(count) {
			count = int(k + 1)
		}
	}

	encoded := make([][]byte, count)
	for i := 0; i < count; i++ {
		s := v.Entries[uint32(i)]
		enc, err := EncodeText(s, ModeDialog)
		if err != nil {
			return err
		}
		encoded[i] = enc
	}

	headerEnd := 4 + len(encoded)*4
	fileSize := headerEnd
	for _, b := range encoded {
		fileSize += len(b)
	}
	if pad := fileSize % 4; pad != 0 {
		fileSize += 4 - pad
	}

	if err := w.SetSize(uint64(fileSize)); err != nil {
		return err
	}
	sizeInfo := (uint32(fileSize) ^ 0x10000000) - 4
	if err := w.WriteU32(sizeInfo); err != nil {
		return err
	}

	if err := w.WriteU32((uint32(len(encoded)) << 2) ^ dialogMask32); err != nil {
		return err
	}

	current := headerEnd
	if len(encoded) > 0 {
		current += len(encoded[0]) - 4
	}
	for i := 1; i < len(encoded); i++ {
		if err := w.WriteU32(uint32(current) ^ dialogMask32); err != nil {
			return err
		}
		current += len(encoded[i])
	}

	for _, enc := range encoded {
		masked := make([]byte, len(enc))
		for i, b := range enc {
			masked[i] = b ^ dialogMask8
		}
		if err := w.WriteBytes(masked); err != nil {
			return err
		}
	}

	for w.Remaining() > 0 {
		if err := w.WriteU8(dialogMask8); err != nil {
			return err
		}
	}
	return nil
}
