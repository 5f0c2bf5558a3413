// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func buildItem(id uint32, strings *ItemStrings) ItemInfo {
	item := ItemInfo{
		ID:           id,
		Flags:        itemFlags(0),
		StackSize:    1,
		ItemType:     ItemTypeWeapon,
		ResourceID:   100,
		ValidTargets: validTargets(0x9D), // Corpse combined flag
		Strings:      strings,
		IconBytes:    Base64Bytes{1, 2, 3, 4},
	}
	if c := classifyItemID(id); c == ItemCategoryWeapon || c == ItemCategoryArmor {
		item.Equipment = &EquipmentData{Level: 1, Slots: equipmentSlots(0x0001), Races: equipmentRaces(0x01FE), Jobs: equipmentJobs(0x007FFFFE)}
	}
	if classifyItemID(id) == ItemCategoryWeapon {
		item.Weapon = &WeaponData{Damage: 1, Delay: 240, DPS: 0, SkillType: SkillTypeSword, JugSize: 0}
	}
	return item
}

func TestItemInfoTableRoundTripWeapon(t *testing.T) {
	table := &ItemInfoTable{
		Items: make([]ItemInfo, 4330),
	}
	for i := range table.Items {
		table.Items[i] = buildItem(uint32(i)+0x4000, nil)
	}
	table.Items[4329] = buildItem(4329+0x4000, &ItemStrings{
		Name: "Excalipoor", HasEnglish: true, Article: EnglishArticleAn,
		Singular: "Excalipoor", Plural: "Excalipoors", Description: "DMG:1 Delay:240",
	})

	bw := NewBufferWalker(nil)
	if err := WriteItemInfoTable(bw, table); err != nil {
		t.Fatalf("WriteItemInfoTable: %v", err)
	}
	raw := bw.IntoVec()
	if uint64(len(raw)) != uint64(len(table.Items))*itemInfoRecordLen {
		t.Fatalf("unexpected length %d", len(raw))
	}

	got, err := ParseItemInfoTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseItemInfoTable: %v", err)
	}
	s := got.Items[4329].Strings
	if s == nil || !s.HasEnglish {
		t.Fatalf("item 4329: missing english strings")
	}
	if s.Name != "Excalipoor" || s.Article != EnglishArticleAn || s.Singular != "Excalipoor" ||
		s.Plural != "Excalipoors" || s.Description != "DMG:1 Delay:240" {
		t.Errorf("item 4329: got %+v", s)
	}
	if got.Items[4329].ValidTargets.set.Names(got.Items[4329].ValidTargets.Value)[0] != "Corpse" {
		t.Errorf("item 4329: valid targets did not render as combined Corpse flag, got %v",
			got.Items[4329].ValidTargets.set.Names(got.Items[4329].ValidTargets.Value))
	}

	vw := NewVerifyWalker(raw)
	if err := WriteItemInfoTable(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}

func TestCheckHeaderItemInfoTableRejectsBadLength(t *testing.T) {
	raw := make([]byte, itemInfoRecordLen+1)
	if err := CheckHeaderItemInfoTable(NewSliceWalker(raw)); err == nil {
		t.Fatal("expected error for length not a multiple of 0xC00")
	}
}

func TestCheckHeaderItemInfoTableAcceptsValidRecord(t *testing.T) {
	bw := NewBufferWalker(nil)
	if err := WriteItemInfoTable(bw, &ItemInfoTable{Items: []ItemInfo{buildItem(0x4000, nil)}}); err != nil {
		t.Fatalf("WriteItemInfoTable: %v", err)
	}
	if err := CheckHeaderItemInfoTable(NewSliceWalker(bw.IntoVec())); err != nil {
		t.Fatalf("CheckHeaderItemInfoTable: %v", err)
	}
}

func TestItemInfoTableRoundTripArmorMultilineDescription(t *testing.T) {
	table := &ItemInfoTable{Items: make([]ItemInfo, 3828)}
	for i := range table.Items {
		table.Items[i] = buildItem(uint32(i)+0x2800, nil)
	}
	table.Items[3827] = buildItem(3827+0x2800, &ItemStrings{
		Name: "Voodoo Mail", HasEnglish: true, Article: EnglishArticleSuitsOf,
		Singular: "voodoo mail", Plural: "suits of voodoo mail",
		Description: "The envious aura that looms over\nthis mail seems to invite utter\nruin to descend upon its bearer.",
	})

	bw := NewBufferWalker(nil)
	if err := WriteItemInfoTable(bw, table); err != nil {
		t.Fatalf("WriteItemInfoTable: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseItemInfoTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseItemInfoTable: %v", err)
	}
	s := got.Items[3827].Strings
	want := "The envious aura that looms over\nthis mail seems to invite utter\nruin to descend upon its bearer."
	if s == nil || s.Description != want {
		t.Errorf("got description %q, want %q", s.Description, want)
	}

	vw := NewVerifyWalker(raw)
	if err := WriteItemInfoTable(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}
