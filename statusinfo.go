// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const statusInfoEntryLen = 0x1800
const statusInfoDataLen = 0x280

// StatusInfo is one status-effect description record (spec.md §4.4,
// "StatusInfoTable").
type StatusInfo struct {
	ID          uint16
	Flag        uint16
	Description string
	IconBytes   Base64Bytes
}

// StatusInfoTable is the client's status-effect description table.
type StatusInfoTable struct {
	StatusInfos []StatusInfo
}

// ParseStatusInfoTable parses a StatusInfoTable: fixed-size 0x1800-byte
// records, each a popcount-rotated 0x280-byte header/description block
// followed by a length-prefixed icon and terminal 0xFF.
func ParseStatusInfoTable(w ByteWalker) (*StatusInfoTable, error) {
	if w.Len()%statusInfoEntryLen != 0 {
		return nil, &UnsupportedVariantError{Format: "statusinfo", Detail: "length is not a multiple of 0x1800"}
	}
	count := w.Len() / statusInfoEntryLen
	table := &StatusInfoTable{StatusInfos: make([]StatusInfo, 0, count)}
	for i := uint64(0); i < count; i++ {
		info, err := parseStatusInfo(w)
		if err != nil {
			return nil, err
		}
		table.StatusInfos = append(table.StatusInfos, *info)
	}
	return table, nil
}

func parseStatusInfo(w ByteWalker) (*StatusInfo, error) {
	entryStart := w.Offset()

	raw, err := w.TakeBytes(statusInfoDataLen)
	if err != nil {
		return nil, err
	}
	data := append([]byte(nil), raw...)
	shift := dataShiftSize(data)
	rotateAllRight(data, shift)

	dw := NewSliceWalker(data)
	id, err := dw.ReadU16()
	if err != nil {
		return nil, err
	}
	flag, err := dw.ReadU16()
	if err != nil {
		return nil, err
	}
	for _, want := range []uint32{1, 12, 0, 1} {
		got, err := dw.ReadU32()
		if err != nil {
			return nil, err
		}
		if got != want {
			return nil, &HeaderInvalidError{Format: "statusinfo", Reason: "unexpected constant in record header"}
		}
	}
	if err := dw.ExpectN(0, 24); err != nil {
		return nil, err
	}
	descRaw, err := dw.StepUntil(0)
	if err != nil {
		return nil, err
	}
	description, err := DecodeText(descRaw, ModeSimple)
	if err != nil {
		return nil, err
	}

	iconSize, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	iconBytes, err := w.TakeBytes(uint64(iconSize))
	if err != nil {
		return nil, err
	}

	entryEnd := entryStart + statusInfoEntryLen
	padding := entryEnd - w.Offset() - 1
	if err := w.ExpectN(0, padding); err != nil {
		return nil, err
	}
	if err := w.ExpectU8(0xFF); err != nil {
		return nil, err
	}

	return &StatusInfo{ID: id, Flag: flag, Description: description, IconBytes: Base64Bytes(iconBytes)}, nil
}

// WriteStatusInfoTable writes a StatusInfoTable.
func WriteStatusInfoTable(w ByteWalker, v *StatusInfoTable) error {
	if err := w.SetSize(uint64(len(v.StatusInfos)) * statusInfoEntryLen); err != nil {
		return err
	}
	for i := range v.StatusInfos {
		if err := writeStatusInfo(w, &v.StatusInfos[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeStatusInfo(w ByteWalker, info *StatusInfo) error {
	entryStart := w.Offset()

	dw := NewBufferWalker(nil)
	if err := dw.SetSize(statusInfoDataLen); err != nil {
		return err
	}
	if err := dw.WriteU16(info.ID); err != nil {
		return err
	}
	if err := dw.WriteU16(info.Flag); err != nil {
		return err
	}
	for _, v := range []uint32{1, 12, 0, 1} {
		if err := dw.WriteU32(v); err != nil {
			return err
		}
	}
	if err := dw.Skip(24); err != nil {
		return err
	}
	encoded, err := EncodeText(info.Description, ModeSimple)
	if err != nil {
		return err
	}
	if err := dw.WriteBytes(encoded); err != nil {
		return err
	}

	data := dw.IntoVec()
	shift := dataShiftSize(data)
	rotateAllRight(data, 8-shift)
	if err := w.WriteBytes(data); err != nil {
		return err
	}

	if err := w.WriteU32(uint32(len(info.IconBytes))); err != nil {
		return err
	}
	if err := w.WriteBytes(info.IconBytes); err != nil {
		return err
	}

	entryEnd := entryStart + statusInfoEntryLen
	padding := entryEnd - w.Offset() - 1
	if err := w.WriteBytes(make([]byte, padding)); err != nil {
		return err
	}
	return w.WriteU8(0xFF)
}
