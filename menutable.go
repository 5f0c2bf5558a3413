// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const menuTableMagic = "menu"
const menuTableVersion = 0x101

const (
	menuSectionTagMnc2 = "mnc2"
	menuSectionTagMon  = "mon_"
	menuSectionTagLevc = "levc"
	menuSectionTagComm = "comm"
	menuSectionTagMgc  = "mgc_"
	menuSectionTagEnd  = "end\x00"
)

var menuSectionUnknownInfo = map[string]uint32{
	menuSectionTagMnc2: 4,
	menuSectionTagMon:  4,
	menuSectionTagLevc: 4,
	menuSectionTagComm: 83,
	menuSectionTagMgc:  73,
	menuSectionTagEnd:  0,
}

// AbilityInfo is one "comm" section entry (spec.md §4.4, "MenuTable"):
// abilities, job abilities, and weaponskills.
type AbilityInfo struct {
	ID            uint16
	AbilityType   uint8
	IconID        uint8
	Unknown1      uint16
	MPCost        uint16
	SharedTimerID uint16
	ValidTargets  FlagNames
	TPCost        int16
	Unknowns      HexBytes
}

const abilityInfoEntryLen = 48

func parseAbilityInfo(buf []byte) (*AbilityInfo, error) {
	data := append([]byte(nil), buf...)
	shift := dataShiftSize(data)
	maskedRotateRight(data, shift)
	w := NewSliceWalker(data)

	id, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	abilityType, err := w.ReadU8()
	if err != nil {
		return nil, err
	}
	iconID, err := w.ReadU8()
	if err != nil {
		return nil, err
	}
	unknown1, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	mpCost, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	sharedTimerID, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	validTargetsRaw, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	tpCost, err := w.ReadI16()
	if err != nil {
		return nil, err
	}
	unknowns, err := w.TakeBytes(w.Remaining() - 1)
	if err != nil {
		return nil, err
	}
	if err := w.ExpectU8(0xFF); err != nil {
		return nil, err
	}

	return &AbilityInfo{
		ID: id, AbilityType: abilityType, IconID: iconID, Unknown1: unknown1,
		MPCost: mpCost, SharedTimerID: sharedTimerID, ValidTargets: validTargets(uint64(validTargetsRaw)),
		TPCost: tpCost, Unknowns: HexBytes(unknowns),
	}, nil
}

func writeAbilityInfo(a *AbilityInfo) ([]byte, error) {
	bw := NewBufferWalker(nil)
	if err := bw.WriteU16(a.ID); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(a.AbilityType); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(a.IconID); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(a.Unknown1); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(a.MPCost); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(a.SharedTimerID); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(uint16(a.ValidTargets.Value)); err != nil {
		return nil, err
	}
	if err := bw.WriteI16(a.TPCost); err != nil {
		return nil, err
	}
	if err := bw.WriteBytes(a.Unknowns); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(0xFF); err != nil {
		return nil, err
	}
	data := bw.IntoVec()
	if len(data) != abilityInfoEntryLen {
		return nil, &UnsupportedVariantError{Format: "menutable", Detail: "ability entry did not pad to 48 bytes"}
	}
	shift := dataShiftSize(data)
	maskedRotateRight(data, 8-shift)
	return data, nil
}

// MagicInfo is one "mgc_" section entry: a spell, with its per-job
// required level table (job slot index -> level, omitting jobs that
// cannot learn it).
type MagicInfo struct {
	Index          uint16
	MagicType      uint16
	Element        Element
	ValidTargets   FlagNames
	SkillType      SkillType
	MPCost         uint16
	CastTime       uint8
	RecastTime     uint8
	LevelByJobSlot map[uint8]uint16
	ID             uint16
	IconID         uint8
	Unknowns       HexBytes
}

const magicInfoEntryLen = 100
const magicInfoJobSlots = 24

func parseMagicInfo(buf []byte) (*MagicInfo, error) {
	data := append([]byte(nil), buf...)
	shift := dataShiftSize(data)
	maskedRotateRight(data, shift)
	w := NewSliceWalker(data)

	index, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	magicType, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	element, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	validTargetsRaw, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	skillType, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	mpCost, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	castTime, err := w.ReadU8()
	if err != nil {
		return nil, err
	}
	recastTime, err := w.ReadU8()
	if err != nil {
		return nil, err
	}

	levels := make(map[uint8]uint16)
	for slot := 0; slot < magicInfoJobSlots; slot++ {
		level, err := w.ReadI16()
		if err != nil {
			return nil, err
		}
		if level != -1 {
			levels[uint8(slot)] = uint16(level)
		}
	}

	id, err := w.ReadU16()
	if err != nil {
		return nil, err
	}
	iconID, err := w.ReadU8()
	if err != nil {
		return nil, err
	}
	unknowns, err := w.TakeBytes(w.Remaining() - 1)
	if err != nil {
		return nil, err
	}
	if err := w.ExpectU8(0xFF); err != nil {
		return nil, err
	}

	return &MagicInfo{
		Index: index, MagicType: magicType, Element: Element(element),
		ValidTargets: validTargets(uint64(validTargetsRaw)), SkillType: SkillType(skillType),
		MPCost: mpCost, CastTime: castTime, RecastTime: recastTime,
		LevelByJobSlot: levels, ID: id, IconID: iconID, Unknowns: HexBytes(unknowns),
	}, nil
}

func writeMagicInfo(m *MagicInfo) ([]byte, error) {
	bw := NewBufferWalker(nil)
	if err := bw.WriteU16(m.Index); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(m.MagicType); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(uint16(m.Element)); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(uint16(m.ValidTargets.Value)); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(uint16(m.SkillType)); err != nil {
		return nil, err
	}
	if err := bw.WriteU16(m.MPCost); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(m.CastTime); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(m.RecastTime); err != nil {
		return nil, err
	}
	for slot := 0; slot < magicInfoJobSlots; slot++ {
		level, ok := m.LevelByJobSlot[uint8(slot)]
		v := int16(-1)
		if ok {
			v = int16(level)
		}
		if err := bw.WriteI16(v); err != nil {
			return nil, err
		}
	}
	if err := bw.WriteU16(m.ID); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(m.IconID); err != nil {
		return nil, err
	}
	if err := bw.WriteBytes(m.Unknowns); err != nil {
		return nil, err
	}
	if err := bw.WriteU8(0xFF); err != nil {
		return nil, err
	}
	data := bw.IntoVec()
	if len(data) != magicInfoEntryLen {
		return nil, &UnsupportedVariantError{Format: "menutable", Detail: "magic entry did not pad to 100 bytes"}
	}
	shift := dataShiftSize(data)
	maskedRotateRight(data, 8-shift)
	return data, nil
}

// MenuSection is one top-level block of a MenuTable. Exactly one of Raw,
// Abilities or Magic is populated, selected by Tag.
type MenuSection struct {
	Tag       string
	Raw       Base64Bytes
	Abilities []AbilityInfo
	Magic     []MagicInfo
}

// MenuTable is the client's ability/spell/monster-ability menu data
// (spec.md §4.4, "MenuTable"): a tagged sequence of sections terminated by
// an "end\0" marker.
type MenuTable struct {
	Sections []MenuSection
}

// CheckHeaderMenuTable verifies the leading "menu" tag.
func CheckHeaderMenuTable(w ByteWalker) error {
	return w.ExpectUTF8(menuTableMagic)
}

// ParseMenuTable parses a MenuTable.
func ParseMenuTable(w ByteWalker) (*MenuTable, error) {
	if err := CheckHeaderMenuTable(w); err != nil {
		return nil, err
	}
	version, err := w.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != menuTableVersion {
		return nil, &HeaderInvalidError{Format: "menutable", Reason: "unexpected version"}
	}
	if err := w.ExpectN(0, 24); err != nil {
		return nil, err
	}

	var sections []MenuSection
	for {
		tag, err := w.TakeBytes(4)
		if err != nil {
			return nil, err
		}
		tagStr := string(tag)
		sizeInfo, err := w.ReadU32()
		if err != nil {
			return nil, err
		}
		if err := w.ExpectN(0, 8); err != nil {
			return nil, err
		}
		sectionSize := ((sizeInfo & 0xFFFFFF80) >> 3) - 16
		unknownInfo := sizeInfo & 0x7F

		wantUnknown, ok := menuSectionUnknownInfo[tagStr]
		if !ok {
			return nil, &UnsupportedVariantError{Format: "menutable", Detail: "unknown section code " + tagStr}
		}
		if unknownInfo != wantUnknown {
			return nil, &HeaderInvalidError{Format: "menutable", Reason: "section subtype tag mismatch for " + tagStr}
		}

		if tagStr == menuSectionTagEnd {
			break
		}

		body, err := w.TakeBytes(uint64(sectionSize))
		if err != nil {
			return nil, err
		}

		section := MenuSection{Tag: tagStr}
		switch tagStr {
		case menuSectionTagMnc2, menuSectionTagMon, menuSectionTagLevc:
			section.Raw = Base64Bytes(body)
		case menuSectionTagComm:
			if len(body)%abilityInfoEntryLen != 0 {
				return nil, &UnsupportedVariantError{Format: "menutable", Detail: "comm section size not a multiple of 48"}
			}
			for off := 0; off < len(body); off += abilityInfoEntryLen {
				info, err := parseAbilityInfo(body[off : off+abilityInfoEntryLen])
				if err != nil {
					return nil, err
				}
				section.Abilities = append(section.Abilities, *info)
			}
		case menuSectionTagMgc:
			if len(body)%magicInfoEntryLen != 0 {
				return nil, &UnsupportedVariantError{Format: "menutable", Detail: "mgc_ section size not a multiple of 100"}
			}
			for off := 0; off < len(body); off += magicInfoEntryLen {
				info, err := parseMagicInfo(body[off : off+magicInfoEntryLen])
				if err != nil {
					return nil, err
				}
				section.Magic = append(section.Magic, *info)
			}
		}
		sections = append(sections, section)
	}

	if w.Remaining() != 0 {
		return nil, &UnsupportedVariantError{Format: "menutable", Detail: "trailing bytes after end section"}
	}
	return &MenuTable{Sections: sections}, nil
}

func menuSectionInfo(tag string, contentLen uint32) uint32 {
	return ((contentLen + 16) << 3) + menuSectionUnknownInfo[tag]
}

// WriteMenuTable writes a MenuTable.
func WriteMenuTable(w ByteWalker, v *MenuTable) error {
	if err := w.WriteStr(menuTableMagic); err != nil {
		return err
	}
	if err := w.WriteU32(menuTableVersion); err != nil {
		return err
	}
	if err := w.WriteBytes(make([]byte, 24)); err != nil {
		return err
	}

	for _, section := range v.Sections {
		if err := writeMenuSection(w, &section); err != nil {
			return err
		}
	}

	if err := w.WriteStr(menuSectionTagEnd); err != nil {
		return err
	}
	if err := w.WriteU32(menuSectionInfo(menuSectionTagEnd, 0)); err != nil {
		return err
	}
	return w.WriteBytes(make([]byte, 8))
}

func writeMenuSection(w ByteWalker, section *MenuSection) error {
	switch section.Tag {
	case menuSectionTagMnc2, menuSectionTagMon, menuSectionTagLevc:
		if err := w.WriteStr(section.Tag); err != nil {
			return err
		}
		if err := w.WriteU32(menuSectionInfo(section.Tag, uint32(len(section.Raw)))); err != nil {
			return err
		}
		if err := w.WriteBytes(make([]byte, 8)); err != nil {
			return err
		}
		return w.WriteBytes(section.Raw)

	case menuSectionTagComm:
		if err := w.WriteStr(section.Tag); err != nil {
			return err
		}
		sizeInfoPos := w.Offset()
		if err := w.WriteBytes(make([]byte, 12)); err != nil {
			return err
		}
		var contentLen uint32
		for i := range section.Abilities {
			data, err := writeAbilityInfo(&section.Abilities[i])
			if err != nil {
				return err
			}
			if err := w.WriteBytes(data); err != nil {
				return err
			}
			contentLen += uint32(len(data))
		}
		sizeInfoBuf := make([]byte, 4)
		leU32(sizeInfoBuf, menuSectionInfo(section.Tag, contentLen))
		return w.WriteAt(sizeInfoPos, sizeInfoBuf)

	case menuSectionTagMgc:
		if err := w.WriteStr(section.Tag); err != nil {
			return err
		}
		sizeInfoPos := w.Offset()
		if err := w.WriteBytes(make([]byte, 12)); err != nil {
			return err
		}
		var contentLen uint32
		for i := range section.Magic {
			data, err := writeMagicInfo(&section.Magic[i])
			if err != nil {
				return err
			}
			if err := w.WriteBytes(data); err != nil {
				return err
			}
			contentLen += uint32(len(data))
		}
		sizeInfoBuf := make([]byte, 4)
		leU32(sizeInfoBuf, menuSectionInfo(section.Tag, contentLen))
		return w.WriteAt(sizeInfoPos, sizeInfoBuf)

	default:
		return &UnsupportedVariantError{Format: "menutable", Detail: "unknown section tag " + section.Tag}
	}
}
