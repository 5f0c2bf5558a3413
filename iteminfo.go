// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

const itemInfoRecordLen = 0xC00
const itemInfoDataLen = 0x280
const itemInfoReadShift = 5
const itemInfoWriteShift = 3

// ItemCategory buckets an item id range into the set of category-specific
// fields ItemInfo carries, mirroring the client's per-id-range field
// layout.
type ItemCategory int

const (
	ItemCategoryUnknown ItemCategory = iota
	ItemCategoryCurrency
	ItemCategoryItem
	ItemCategoryArmor
	ItemCategoryWeapon
	ItemCategoryPuppetItem
	ItemCategoryUsableItem
	ItemCategorySlip
	ItemCategoryInstinct
	ItemCategoryMonipulator
)

// classifyItemID reproduces the id-range table item_info.rs uses to decide
// which category-specific fields a record carries.
func classifyItemID(id uint32) ItemCategory {
	switch {
	case id == 0xFFFF:
		return ItemCategoryCurrency
	case id <= 0xFFF:
		return ItemCategoryItem
	case id <= 0x1FFF:
		return ItemCategoryUsableItem
	case id <= 0x21FF:
		return ItemCategoryPuppetItem
	case id <= 0x27FF:
		return ItemCategoryItem
	case id <= 0x3FFF:
		return ItemCategoryArmor
	case id <= 0x59FF:
		return ItemCategoryWeapon
	case id <= 0x6FFF:
		return ItemCategoryArmor
	case id <= 0x73FF:
		return ItemCategorySlip
	case id <= 0x77FF:
		return ItemCategoryInstinct
	case id <= 0xF1FF:
		return ItemCategoryMonipulator
	default:
		return ItemCategoryItem
	}
}

// ElementValues unpacks a u32 field into eight 4-bit element charges.
type ElementValues struct {
	Fire, Ice, Wind, Earth, Lightning, Water, Light, Dark uint8
}

func elementValuesFromU32(v uint32) ElementValues {
	nibble := func(pos uint) uint8 { return uint8((v >> (4 * pos)) & 0xF) }
	return ElementValues{
		Fire: nibble(0), Ice: nibble(1), Wind: nibble(2), Earth: nibble(3),
		Lightning: nibble(4), Water: nibble(5), Light: nibble(6), Dark: nibble(7),
	}
}

func (e ElementValues) toU32() uint32 {
	return uint32(e.Fire) | uint32(e.Ice)<<4 | uint32(e.Wind)<<8 | uint32(e.Earth)<<12 |
		uint32(e.Lightning)<<16 | uint32(e.Water)<<20 | uint32(e.Light)<<24 | uint32(e.Dark)<<28
}

// EquipmentData is the common tail shared by Armor and Weapon records,
// with WeaponData inserted between the equipment fields and this tail when
// the record is a weapon.
type EquipmentData struct {
	Level         uint16
	Slots         FlagNames
	Races         FlagNames
	Jobs          FlagNames
	SuperiorLevel uint16
	ShieldSize    uint16
	MaxCharges    uint8
	CastingTime   uint8
	UseDelay      uint16
	ReuseDelay    uint32
	Unknown1      uint16
	ILevel        uint8
	Unknown2      uint8
	Unknown3      uint32
}

type WeaponData struct {
	Damage    uint16
	Delay     uint16
	DPS       uint16
	SkillType SkillType
	JugSize   uint8
	Unknown1  uint32
}

type PuppetItemData struct {
	Slot          PuppetSlot
	ElementCharge ElementValues
	Unknown1      uint32
}

type InstinctData struct {
	Unknown1     uint32
	Unknown2     uint32
	Unknown3     uint16
	InstinctCost uint16
	Unknown4     uint16
	Unknown5     uint32
	Unknown6     uint32
	Unknown7     uint32
}

type FurnishingData struct {
	Element      Element
	StorageSlots uint32
	Unknown3     uint32
}

type UsableItemData struct {
	ActivationTime uint16
	Unknown1       uint32
	Unknown2       uint32
	Unknown3       uint32
}

type CurrencyData struct {
	Unknown1 uint16
}

type SlipData struct {
	Unknown1 uint16
	Unknowns [17]uint32
}

type MonipulatorData struct {
	Unknown1 uint16
	Unknowns [24]uint32
}

// ItemStrings is the item's localized name data, either a bare name or a
// full English grammar set (article + singular/plural + description).
type ItemStrings struct {
	Name        string
	HasEnglish  bool
	Article     EnglishArticle
	Singular    string
	Plural      string
	Description string
}

// ItemInfo is one record of an ItemInfoTable (spec.md §4.4, "ItemInfoTable"),
// grounded directly on original_source's item_info.rs.
type ItemInfo struct {
	ID           uint32
	Flags        FlagNames
	StackSize    uint16
	ItemType     ItemType
	ResourceID   uint16
	ValidTargets FlagNames
	Strings      *ItemStrings

	Equipment   *EquipmentData
	Weapon      *WeaponData
	Puppet      *PuppetItemData
	Instinct    *InstinctData
	Furnishing  *FurnishingData
	UsableItem  *UsableItemData
	Currency    *CurrencyData
	Slip        *SlipData
	Monipulator *MonipulatorData

	IconBytes Base64Bytes
}

// ItemInfoTable is the client's item database (weapons, armor, key items,
// currencies, and so on): a flat array of fixed-size ItemInfo records.
type ItemInfoTable struct {
	Items []ItemInfo
}

// CheckHeaderItemInfoTable verifies the buffer's length is a whole number
// of 0xC00-byte records and that the first record parses, without
// consuming w. Grounded on check_type in
// _examples/original_source/crates/dats/src/formats/item_info.rs:637.
func CheckHeaderItemInfoTable(w ByteWalker) error {
	if w.Len()%itemInfoRecordLen != 0 {
		return &UnsupportedVariantError{Format: "iteminfo", Detail: "length is not a multiple of 0xC00"}
	}
	raw, err := w.ReadBytesAt(0, itemInfoRecordLen)
	if err != nil {
		return err
	}
	_, err = parseItemInfo(NewSliceWalker(raw))
	return err
}

// ParseItemInfoTable parses every 0xC00-byte record in w.
func ParseItemInfoTable(w ByteWalker) (*ItemInfoTable, error) {
	if err := CheckHeaderItemInfoTable(w); err != nil {
		return nil, err
	}
	count := w.Len() / itemInfoRecordLen
	items := make([]ItemInfo, count)
	for i := range items {
		item, err := parseItemInfo(w)
		if err != nil {
			return nil, err
		}
		items[i] = *item
	}
	return &ItemInfoTable{Items: items}, nil
}

// WriteItemInfoTable writes every record back, each independently rotated.
func WriteItemInfoTable(w ByteWalker, v *ItemInfoTable) error {
	for i := range v.Items {
		if err := writeItemInfo(w, &v.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func parseItemInfo(w ByteWalker) (*ItemInfo, error) {
	raw, err := w.TakeBytes(itemInfoRecordLen)
	if err != nil {
		return nil, err
	}
	rec := append([]byte(nil), raw...)
	rotateAllRight(rec, itemInfoReadShift)

	iconWalker := NewSliceWalker(rec[itemInfoDataLen:])
	iconLen, err := iconWalker.ReadU32()
	if err != nil {
		return nil, err
	}
	iconBytes, err := iconWalker.TakeBytes(uint64(iconLen))
	if err != nil {
		return nil, err
	}
	if err := iconWalker.ExpectN(0, iconWalker.Remaining()-1); err != nil {
		return nil, err
	}
	if err := iconWalker.ExpectU8(0xFF); err != nil {
		return nil, err
	}

	data := NewSliceWalker(rec[:itemInfoDataLen])
	item := &ItemInfo{IconBytes: Base64Bytes(iconBytes)}

	id, err := data.ReadU32()
	if err != nil {
		return nil, err
	}
	item.ID = id
	category := classifyItemID(id)

	flags, err := data.ReadU16()
	if err != nil {
		return nil, err
	}
	item.Flags = itemFlags(uint64(flags))
	if item.StackSize, err = data.ReadU16(); err != nil {
		return nil, err
	}
	itemType, err := data.ReadU16()
	if err != nil {
		return nil, err
	}
	item.ItemType = ItemType(itemType)
	if item.ResourceID, err = data.ReadU16(); err != nil {
		return nil, err
	}
	validTargets, err := data.ReadU16()
	if err != nil {
		return nil, err
	}
	item.ValidTargets = validTargets64(validTargets)

	if err := parseItemCategoryFields(data, category, item); err != nil {
		return nil, err
	}

	if err := parseItemStrings(data, item); err != nil {
		return nil, err
	}

	if err := data.ExpectN(0, data.Remaining()/4*4); err != nil {
		return nil, err
	}
	return item, nil
}

func validTargets64(v uint16) FlagNames { return validTargets(uint64(v)) }

func parseItemCategoryFields(data ByteWalker, category ItemCategory, item *ItemInfo) error {
	switch category {
	case ItemCategoryArmor, ItemCategoryWeapon:
		level, err := data.ReadU16()
		if err != nil {
			return err
		}
		slots, err := data.ReadU16()
		if err != nil {
			return err
		}
		races, err := data.ReadU16()
		if err != nil {
			return err
		}
		jobs, err := data.ReadU32()
		if err != nil {
			return err
		}
		superiorLevel, err := data.ReadU16()
		if err != nil {
			return err
		}
		shieldSize, err := data.ReadU16()
		if err != nil {
			return err
		}

		if category == ItemCategoryWeapon {
			damage, err := data.ReadU16()
			if err != nil {
				return err
			}
			delay, err := data.ReadU16()
			if err != nil {
				return err
			}
			dps, err := data.ReadU16()
			if err != nil {
				return err
			}
			skillType, err := data.ReadU8()
			if err != nil {
				return err
			}
			jugSize, err := data.ReadU8()
			if err != nil {
				return err
			}
			unk1, err := data.ReadU32()
			if err != nil {
				return err
			}
			item.Weapon = &WeaponData{
				Damage: damage, Delay: delay, DPS: dps,
				SkillType: SkillType(skillType), JugSize: jugSize, Unknown1: unk1,
			}
		}

		maxCharges, err := data.ReadU8()
		if err != nil {
			return err
		}
		castingTime, err := data.ReadU8()
		if err != nil {
			return err
		}
		useDelay, err := data.ReadU16()
		if err != nil {
			return err
		}
		reuseDelay, err := data.ReadU32()
		if err != nil {
			return err
		}
		unk1, err := data.ReadU16()
		if err != nil {
			return err
		}
		ilevel, err := data.ReadU8()
		if err != nil {
			return err
		}
		unk2, err := data.ReadU8()
		if err != nil {
			return err
		}
		unk3, err := data.ReadU32()
		if err != nil {
			return err
		}
		item.Equipment = &EquipmentData{
			Level: level, Slots: equipmentSlots(uint64(slots)), Races: equipmentRaces(uint64(races)),
			Jobs: equipmentJobs(uint64(jobs)), SuperiorLevel: superiorLevel, ShieldSize: shieldSize,
			MaxCharges: maxCharges, CastingTime: castingTime, UseDelay: useDelay, ReuseDelay: reuseDelay,
			Unknown1: unk1, ILevel: ilevel, Unknown2: unk2, Unknown3: unk3,
		}

	case ItemCategoryPuppetItem:
		slot, err := data.ReadU16()
		if err != nil {
			return err
		}
		charge, err := data.ReadU32()
		if err != nil {
			return err
		}
		unk1, err := data.ReadU32()
		if err != nil {
			return err
		}
		item.Puppet = &PuppetItemData{Slot: PuppetSlot(slot), ElementCharge: elementValuesFromU32(charge), Unknown1: unk1}

	case ItemCategoryInstinct:
		u1, err := data.ReadU32()
		if err != nil {
			return err
		}
		u2, err := data.ReadU32()
		if err != nil {
			return err
		}
		u3, err := data.ReadU16()
		if err != nil {
			return err
		}
		cost, err := data.ReadU16()
		if err != nil {
			return err
		}
		u4, err := data.ReadU16()
		if err != nil {
			return err
		}
		u5, err := data.ReadU32()
		if err != nil {
			return err
		}
		u6, err := data.ReadU32()
		if err != nil {
			return err
		}
		u7, err := data.ReadU32()
		if err != nil {
			return err
		}
		item.Instinct = &InstinctData{Unknown1: u1, Unknown2: u2, Unknown3: u3, InstinctCost: cost, Unknown4: u4, Unknown5: u5, Unknown6: u6, Unknown7: u7}

	case ItemCategoryItem:
		element, err := data.ReadU16()
		if err != nil {
			return err
		}
		storage, err := data.ReadU32()
		if err != nil {
			return err
		}
		unk3, err := data.ReadU32()
		if err != nil {
			return err
		}
		item.Furnishing = &FurnishingData{Element: Element(element), StorageSlots: storage, Unknown3: unk3}

	case ItemCategoryUsableItem:
		activation, err := data.ReadU16()
		if err != nil {
			return err
		}
		u1, err := data.ReadU32()
		if err != nil {
			return err
		}
		u2, err := data.ReadU32()
		if err != nil {
			return err
		}
		u3, err := data.ReadU32()
		if err != nil {
			return err
		}
		item.UsableItem = &UsableItemData{ActivationTime: activation, Unknown1: u1, Unknown2: u2, Unknown3: u3}

	case ItemCategoryCurrency:
		u1, err := data.ReadU16()
		if err != nil {
			return err
		}
		item.Currency = &CurrencyData{Unknown1: u1}

	case ItemCategorySlip:
		u1, err := data.ReadU16()
		if err != nil {
			return err
		}
		var arr [17]uint32
		for i := range arr {
			if arr[i], err = data.ReadU32(); err != nil {
				return err
			}
		}
		item.Slip = &SlipData{Unknown1: u1, Unknowns: arr}

	case ItemCategoryMonipulator:
		u1, err := data.ReadU16()
		if err != nil {
			return err
		}
		var arr [24]uint32
		for i := range arr {
			if arr[i], err = data.ReadU32(); err != nil {
				return err
			}
		}
		item.Monipulator = &MonipulatorData{Unknown1: u1, Unknowns: arr}
	}
	return nil
}

func parseItemStrings(data ByteWalker, item *ItemInfo) error {
	count, err := data.ReadU32()
	if err != nil {
		return err
	}
	if count > 9 {
		return &UnsupportedVariantError{Format: "iteminfo", Detail: "string content count exceeds 9"}
	}
	type meta struct{ offset, kind uint32 }
	metas := make([]meta, count)
	for i := range metas {
		off, err := data.ReadU32()
		if err != nil {
			return err
		}
		kind, err := data.ReadU32()
		if err != nil {
			return err
		}
		metas[i] = meta{off, kind}
	}

	switch count {
	case 0:
		return nil
	case 1:
		name, err := readDmsgTextPayload(data, 0)
		if err != nil {
			return err
		}
		item.Strings = &ItemStrings{Name: name}
		return nil
	case 5:
		name, err := readDmsgTextPayload(data, 0)
		if err != nil {
			return err
		}
		article, err := data.ReadU32()
		if err != nil {
			return err
		}
		singular, err := readDmsgTextPayload(data, 0)
		if err != nil {
			return err
		}
		plural, err := readDmsgTextPayload(data, 0)
		if err != nil {
			return err
		}
		description, err := readDmsgTextPayload(data, 0)
		if err != nil {
			return err
		}
		item.Strings = &ItemStrings{
			Name: name, HasEnglish: true, Article: EnglishArticle(article),
			Singular: singular, Plural: plural, Description: description,
		}
		return nil
	default:
		return &UnsupportedVariantError{Format: "iteminfo", Detail: "unsupported string content count"}
	}
}

func writeItemInfo(w ByteWalker, item *ItemInfo) error {
	bw := NewBufferWalker(nil)
	if err := bw.SetSize(itemInfoRecordLen); err != nil {
		return err
	}

	if err := bw.WriteU32(item.ID); err != nil {
		return err
	}
	if err := bw.WriteU16(uint16(item.Flags.Value)); err != nil {
		return err
	}
	if err := bw.WriteU16(item.StackSize); err != nil {
		return err
	}
	if err := bw.WriteU16(uint16(item.ItemType)); err != nil {
		return err
	}
	if err := bw.WriteU16(item.ResourceID); err != nil {
		return err
	}
	if err := bw.WriteU16(uint16(item.ValidTargets.Value)); err != nil {
		return err
	}

	if err := writeItemCategoryFields(bw, item); err != nil {
		return err
	}
	if err := writeItemStrings(bw, item); err != nil {
		return err
	}

	if err := bw.Goto(itemInfoDataLen); err != nil {
		return err
	}
	if err := bw.WriteU32(uint32(len(item.IconBytes))); err != nil {
		return err
	}
	if err := bw.WriteBytes(item.IconBytes); err != nil {
		return err
	}
	if err := bw.WriteAt(itemInfoRecordLen-1, []byte{0xFF}); err != nil {
		return err
	}

	rec := bw.IntoVec()
	rotateAllRight(rec, itemInfoWriteShift)
	return w.WriteBytes(rec)
}

func writeItemCategoryFields(bw ByteWalker, item *ItemInfo) error {
	if eq := item.Equipment; eq != nil {
		if err := bw.WriteU16(eq.Level); err != nil {
			return err
		}
		if err := bw.WriteU16(uint16(eq.Slots.Value)); err != nil {
			return err
		}
		if err := bw.WriteU16(uint16(eq.Races.Value)); err != nil {
			return err
		}
		if err := bw.WriteU32(uint32(eq.Jobs.Value)); err != nil {
			return err
		}
		if err := bw.WriteU16(eq.SuperiorLevel); err != nil {
			return err
		}
		if err := bw.WriteU16(eq.ShieldSize); err != nil {
			return err
		}

		if wp := item.Weapon; wp != nil {
			if err := bw.WriteU16(wp.Damage); err != nil {
				return err
			}
			if err := bw.WriteU16(wp.Delay); err != nil {
				return err
			}
			if err := bw.WriteU16(wp.DPS); err != nil {
				return err
			}
			if err := bw.WriteU8(uint8(wp.SkillType)); err != nil {
				return err
			}
			if err := bw.WriteU8(wp.JugSize); err != nil {
				return err
			}
			if err := bw.WriteU32(wp.Unknown1); err != nil {
				return err
			}
		}

		if err := bw.WriteU8(eq.MaxCharges); err != nil {
			return err
		}
		if err := bw.WriteU8(eq.CastingTime); err != nil {
			return err
		}
		if err := bw.WriteU16(eq.UseDelay); err != nil {
			return err
		}
		if err := bw.WriteU32(eq.ReuseDelay); err != nil {
			return err
		}
		if err := bw.WriteU16(eq.Unknown1); err != nil {
			return err
		}
		if err := bw.WriteU8(eq.ILevel); err != nil {
			return err
		}
		if err := bw.WriteU8(eq.Unknown2); err != nil {
			return err
		}
		return bw.WriteU32(eq.Unknown3)
	}
	if p := item.Puppet; p != nil {
		if err := bw.WriteU16(uint16(p.Slot)); err != nil {
			return err
		}
		if err := bw.WriteU32(p.ElementCharge.toU32()); err != nil {
			return err
		}
		return bw.WriteU32(p.Unknown1)
	}
	if ins := item.Instinct; ins != nil {
		for _, v := range []uint32{ins.Unknown1, ins.Unknown2} {
			if err := bw.WriteU32(v); err != nil {
				return err
			}
		}
		if err := bw.WriteU16(ins.Unknown3); err != nil {
			return err
		}
		if err := bw.WriteU16(ins.InstinctCost); err != nil {
			return err
		}
		if err := bw.WriteU16(ins.Unknown4); err != nil {
			return err
		}
		for _, v := range []uint32{ins.Unknown5, ins.Unknown6, ins.Unknown7} {
			if err := bw.WriteU32(v); err != nil {
				return err
			}
		}
		return nil
	}
	if f := item.Furnishing; f != nil {
		if err := bw.WriteU16(uint16(f.Element)); err != nil {
			return err
		}
		if err := bw.WriteU32(f.StorageSlots); err != nil {
			return err
		}
		return bw.WriteU32(f.Unknown3)
	}
	if u := item.UsableItem; u != nil {
		if err := bw.WriteU16(u.ActivationTime); err != nil {
			return err
		}
		for _, v := range []uint32{u.Unknown1, u.Unknown2, u.Unknown3} {
			if err := bw.WriteU32(v); err != nil {
				return err
			}
		}
		return nil
	}
	if c := item.Currency; c != nil {
		return bw.WriteU16(c.Unknown1)
	}
	if s := item.Slip; s != nil {
		if err := bw.WriteU16(s.Unknown1); err != nil {
			return err
		}
		for _, v := range s.Unknowns {
			if err := bw.WriteU32(v); err != nil {
				return err
			}
		}
		return nil
	}
	if m := item.Monipulator; m != nil {
		if err := bw.WriteU16(m.Unknown1); err != nil {
			return err
		}
		for _, v := range m.Unknowns {
			if err := bw.WriteU32(v); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func writeItemStrings(bw ByteWalker, item *ItemInfo) error {
	if item.Strings == nil {
		return bw.WriteU32(0)
	}
	type content struct {
		isNumber bool
		number   uint32
		text     string
	}
	var contents []content
	if item.Strings.HasEnglish {
		contents = []content{
			{text: item.Strings.Name},
			{isNumber: true, number: uint32(item.Strings.Article)},
			{text: item.Strings.Singular},
			{text: item.Strings.Plural},
			{text: item.Strings.Description},
		}
	} else {
		contents = []content{{text: item.Strings.Name}}
	}

	if err := bw.WriteU32(uint32(len(contents))); err != nil {
		return err
	}
	encodedStrings := make(map[int][]byte)
	currentOffset := uint32(len(contents))*8 + 4
	for i, c := range contents {
		if c.isNumber {
			if err := bw.WriteU32(currentOffset); err != nil {
				return err
			}
			if err := bw.WriteU32(1); err != nil {
				return err
			}
			currentOffset += 4
			continue
		}
		sw := NewBufferWalker(nil)
		if err := writeDmsgTextPayload(sw, 0, c.text); err != nil {
			return err
		}
		encoded := sw.IntoVec()
		encodedStrings[i] = encoded
		if err := bw.WriteU32(currentOffset); err != nil {
			return err
		}
		if err := bw.WriteU32(0); err != nil {
			return err
		}
		currentOffset += uint32(len(encoded))
	}
	for i, c := range contents {
		if c.isNumber {
			if err := bw.WriteU32(c.number); err != nil {
				return err
			}
			continue
		}
		if err := bw.WriteBytes(encodedStrings[i]); err != nil {
			return err
		}
	}
	return nil
}
