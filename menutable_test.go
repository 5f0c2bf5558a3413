// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func TestMenuTableRoundTrip(t *testing.T) {
	// Every section body is sized so that body length + 16 is a multiple of
	// 16: size_info packs (len+16)<<3 next to a 7-bit subtype tag, so other
	// lengths do not survive the round trip.
	table := &MenuTable{
		Sections: []MenuSection{
			{Tag: menuSectionTagMnc2, Raw: Base64Bytes{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
			{Tag: menuSectionTagLevc, Raw: Base64Bytes{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}},
			{
				Tag: menuSectionTagComm,
				Abilities: []AbilityInfo{
					{
						ID: 1, AbilityType: 1, IconID: 2, Unknown1: 0, MPCost: 0,
						SharedTimerID: 0, ValidTargets: validTargets(0x02), TPCost: -1,
						Unknowns: HexBytes(make([]byte, abilityInfoEntryLen-15)),
					},
					{
						ID: 512, AbilityType: 3, IconID: 9, Unknown1: 7, MPCost: 50,
						SharedTimerID: 3, ValidTargets: validTargets(0x9D), TPCost: 1000,
						Unknowns: HexBytes(make([]byte, abilityInfoEntryLen-15)),
					},
				},
			},
			{
				Tag: menuSectionTagMgc,
				Magic: []MagicInfo{
					{
						Index: 1, MagicType: 1, Element: ElementFire, ValidTargets: validTargets(0x12),
						SkillType: SkillTypeNone, MPCost: 8, CastTime: 20, RecastTime: 40,
						LevelByJobSlot: map[uint8]uint16{4: 1, 9: 5},
						ID: 1, IconID: 10, Unknowns: HexBytes(make([]byte, magicInfoEntryLen-66)),
					},
					{
						Index: 2, MagicType: 1, Element: ElementFire, ValidTargets: validTargets(0x12),
						SkillType: SkillTypeNone, MPCost: 16, CastTime: 20, RecastTime: 40,
						LevelByJobSlot: map[uint8]uint16{4: 10},
						ID: 2, IconID: 10, Unknowns: HexBytes(make([]byte, magicInfoEntryLen-66)),
					},
					{
						Index: 3, MagicType: 1, Element: ElementFire, ValidTargets: validTargets(0x12),
						SkillType: SkillTypeNone, MPCost: 24, CastTime: 20, RecastTime: 40,
						LevelByJobSlot: map[uint8]uint16{4: 20},
						ID: 3, IconID: 10, Unknowns: HexBytes(make([]byte, magicInfoEntryLen-66)),
					},
					{
						Index: 4, MagicType: 1, Element: ElementFire, ValidTargets: validTargets(0x12),
						SkillType: SkillTypeNone, MPCost: 32, CastTime: 20, RecastTime: 40,
						LevelByJobSlot: map[uint8]uint16{4: 30},
						ID: 4, IconID: 10, Unknowns: HexBytes(make([]byte, magicInfoEntryLen-66)),
					},
				},
			},
		},
	}

	bw := NewBufferWalker(nil)
	if err := WriteMenuTable(bw, table); err != nil {
		t.Fatalf("WriteMenuTable: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseMenuTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseMenuTable: %v", err)
	}
	if len(got.Sections) != 4 {
		t.Fatalf("got %d sections, want 4", len(got.Sections))
	}
	comm := got.Sections[2]
	if len(comm.Abilities) != 2 || comm.Abilities[1].TPCost != 1000 {
		t.Fatalf("comm section mismatch: %+v", comm.Abilities)
	}
	mgc := got.Sections[3]
	if len(mgc.Magic) != 4 || mgc.Magic[0].LevelByJobSlot[9] != 5 {
		t.Fatalf("mgc_ section mismatch: %+v", mgc.Magic)
	}
	if _, ok := mgc.Magic[0].LevelByJobSlot[0]; ok {
		t.Fatalf("job slot 0 should be absent (encoded as -1), got present")
	}

	vw := NewVerifyWalker(raw)
	if err := WriteMenuTable(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}

func TestMenuTableEmpty(t *testing.T) {
	table := &MenuTable{}
	bw := NewBufferWalker(nil)
	if err := WriteMenuTable(bw, table); err != nil {
		t.Fatalf("WriteMenuTable: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseMenuTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseMenuTable: %v", err)
	}
	if len(got.Sections) != 0 {
		t.Fatalf("got %d sections, want 0", len(got.Sections))
	}

	vw := NewVerifyWalker(raw)
	if err := WriteMenuTable(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}
