// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

// ValidTargetsFlags names ItemInfoTable's valid-targets bitmask. Corpse and
// Object are combined flags: spec.md §9's "prefer combined bitflag name"
// rule means a record whose mask equals exactly 0x9D renders as
// ["Corpse"], never ["CorpseOnly","NPC","Ally","PartyMember","SelfTarget"].
var ValidTargetsFlags = FlagSet{
	{Name: "Corpse", Bits: 0x9D},
	{Name: "Object", Bits: 0x60},
	{Name: "SelfTarget", Bits: 0x01},
	{Name: "Player", Bits: 0x02},
	{Name: "PartyMember", Bits: 0x04},
	{Name: "Ally", Bits: 0x08},
	{Name: "NPC", Bits: 0x10},
	{Name: "Enemy", Bits: 0x20},
	{Name: "Unknown", Bits: 0x40},
	{Name: "CorpseOnly", Bits: 0x80},
}

// ItemFlagFlags names ItemInfoTable's item-flag bitmask.
var ItemFlagFlags = FlagSet{
	{Name: "Ex", Bits: 0x6040},
	{Name: "WallHanging", Bits: 0x0001},
	{Name: "Flag01", Bits: 0x0002},
	{Name: "MysteryBox", Bits: 0x0004},
	{Name: "MogGarden", Bits: 0x0008},
	{Name: "CanSendPOL", Bits: 0x0010},
	{Name: "Inscribable", Bits: 0x0020},
	{Name: "NoAuction", Bits: 0x0040},
	{Name: "Scroll", Bits: 0x0080},
	{Name: "Linkshell", Bits: 0x0100},
	{Name: "CanUse", Bits: 0x0200},
	{Name: "CanTradeNPC", Bits: 0x0400},
	{Name: "CanEquip", Bits: 0x0800},
	{Name: "NoSale", Bits: 0x1000},
	{Name: "NoDelivery", Bits: 0x2000},
	{Name: "NoTradePC", Bits: 0x4000},
	{Name: "Rare", Bits: 0x8000},
}

// EquipmentSlotFlags names ItemInfoTable's equipment-slot bitmask. Ears and
// Rings are combined flags.
var EquipmentSlotFlags = FlagSet{
	{Name: "Ears", Bits: 0x1800},
	{Name: "Rings", Bits: 0x6000},
	{Name: "Main", Bits: 0x0001},
	{Name: "Sub", Bits: 0x0002},
	{Name: "Range", Bits: 0x0004},
	{Name: "Ammo", Bits: 0x0008},
	{Name: "Head", Bits: 0x0010},
	{Name: "Body", Bits: 0x0020},
	{Name: "Hands", Bits: 0x0040},
	{Name: "Legs", Bits: 0x0080},
	{Name: "Feet", Bits: 0x0100},
	{Name: "Neck", Bits: 0x0200},
	{Name: "Waist", Bits: 0x0400},
	{Name: "LEar", Bits: 0x0800},
	{Name: "REar", Bits: 0x1000},
	{Name: "LRing", Bits: 0x2000},
	{Name: "RRing", Bits: 0x4000},
	{Name: "Back", Bits: 0x8000},
}

// RaceFlags names ItemInfoTable's equippable-race bitmask. All, AnyMale,
// AnyFemale, Hume, Elvaan and Tarutaru are combined flags, preferred over
// their constituent base races.
var RaceFlags = FlagSet{
	{Name: "All", Bits: 0x01FE},
	{Name: "AnyMale", Bits: 0x012A},
	{Name: "AnyFemale", Bits: 0x00D4},
	{Name: "Hume", Bits: 0x0006},
	{Name: "Elvaan", Bits: 0x0018},
	{Name: "Tarutaru", Bits: 0x0060},
	{Name: "HumeMale", Bits: 0x0002},
	{Name: "HumeFemale", Bits: 0x0004},
	{Name: "ElvaanMale", Bits: 0x0008},
	{Name: "ElvaanFemale", Bits: 0x0010},
	{Name: "TarutaruMale", Bits: 0x0020},
	{Name: "TarutaruFemale", Bits: 0x0040},
	{Name: "Mithra", Bits: 0x0080},
	{Name: "Galka", Bits: 0x0100},
}

// JobFlagFlags names ItemInfoTable's equippable-job bitmask.
var JobFlagFlags = FlagSet{
	{Name: "All", Bits: 0x007FFFFE},
	{Name: "WAR", Bits: 0x00000002}, {Name: "MNK", Bits: 0x00000004}, {Name: "WHM", Bits: 0x00000008},
	{Name: "BLM", Bits: 0x00000010}, {Name: "RDM", Bits: 0x00000020}, {Name: "THF", Bits: 0x00000040},
	{Name: "PLD", Bits: 0x00000080}, {Name: "DRK", Bits: 0x00000100}, {Name: "BST", Bits: 0x00000200},
	{Name: "BRD", Bits: 0x00000400}, {Name: "RNG", Bits: 0x00000800}, {Name: "SAM", Bits: 0x00001000},
	{Name: "NIN", Bits: 0x00002000}, {Name: "DRG", Bits: 0x00004000}, {Name: "SMN", Bits: 0x00008000},
	{Name: "BLU", Bits: 0x00010000}, {Name: "COR", Bits: 0x00020000}, {Name: "PUP", Bits: 0x00040000},
	{Name: "DNC", Bits: 0x00080000}, {Name: "SCH", Bits: 0x00100000}, {Name: "GEO", Bits: 0x00200000},
	{Name: "RUN", Bits: 0x00400000}, {Name: "MON", Bits: 0x00800000},
}

// FlagNames wraps a FlagSet+value pair for YAML serialization as a plain
// list of names (e.g. ["Hume","NIN"]).
type FlagNames struct {
	set   FlagSet
	Value uint64
}

func (f FlagNames) MarshalYAML() (interface{}, error) {
	return f.set.Names(f.Value), nil
}

func (f *FlagNames) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var names []string
	if err := unmarshal(&names); err != nil {
		return err
	}
	v, err := f.set.Value(names)
	if err != nil {
		return err
	}
	f.Value = v
	return nil
}

func validTargets(v uint64) FlagNames    { return FlagNames{set: ValidTargetsFlags, Value: v} }
func itemFlags(v uint64) FlagNames       { return FlagNames{set: ItemFlagFlags, Value: v} }
func equipmentSlots(v uint64) FlagNames  { return FlagNames{set: EquipmentSlotFlags, Value: v} }
func equipmentRaces(v uint64) FlagNames  { return FlagNames{set: RaceFlags, Value: v} }
func equipmentJobs(v uint64) FlagNames   { return FlagNames{set: JobFlagFlags, Value: v} }
