// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "fmt"

// ItemType is ItemInfoTable's catch-all item-type enum. Unrecognised values
// round-trip as their numeric form rather than being rejected, since the
// client defines far more item types than this tool names.
type ItemType uint16

const (
	ItemTypeNone         ItemType = 0
	ItemTypeItem         ItemType = 1
	ItemTypeQuestItem    ItemType = 2
	ItemTypeFish         ItemType = 3
	ItemTypeWeapon       ItemType = 4
	ItemTypeArmor        ItemType = 5
	ItemTypeLinkshell    ItemType = 6
	ItemTypeUsableItem   ItemType = 7
	ItemTypeCrystal      ItemType = 8
	ItemTypeCurrency     ItemType = 9
	ItemTypeFurnishing   ItemType = 10
	ItemTypePlant        ItemType = 11
	ItemTypeFlowerpot    ItemType = 12
	ItemTypePuppetItem   ItemType = 13
	ItemTypeMannequin    ItemType = 14
	ItemTypeBook         ItemType = 15
	ItemTypeRacingForm   ItemType = 16
	ItemTypeBettingSlip  ItemType = 17
	ItemTypeSoulPlate    ItemType = 18
	ItemTypeReflector    ItemType = 19
	ItemTypeLotteryTicket ItemType = 21
	ItemTypeMazeTabulaM  ItemType = 22
	ItemTypeMazeTabulaR  ItemType = 23
	ItemTypeMazeVoucher  ItemType = 24
	ItemTypeMazeRune     ItemType = 25
	ItemTypeStorageSlip  ItemType = 27
	ItemTypeInstinct     ItemType = 30
)

var itemTypeNames = map[ItemType]string{
	ItemTypeNone: "None", ItemTypeItem: "Item", ItemTypeQuestItem: "QuestItem",
	ItemTypeFish: "Fish", ItemTypeWeapon: "Weapon", ItemTypeArmor: "Armor",
	ItemTypeLinkshell: "Linkshell", ItemTypeUsableItem: "UsableItem", ItemTypeCrystal: "Crystal",
	ItemTypeCurrency: "Currency", ItemTypeFurnishing: "Furnishing", ItemTypePlant: "Plant",
	ItemTypeFlowerpot: "Flowerpot", ItemTypePuppetItem: "PuppetItem", ItemTypeMannequin: "Mannequin",
	ItemTypeBook: "Book", ItemTypeRacingForm: "RacingForm", ItemTypeBettingSlip: "BettingSlip",
	ItemTypeSoulPlate: "SoulPlate", ItemTypeReflector: "Reflector", ItemTypeLotteryTicket: "LotteryTicket",
	ItemTypeMazeTabulaM: "MazeTabulaM", ItemTypeMazeTabulaR: "MazeTabulaR", ItemTypeMazeVoucher: "MazeVoucher",
	ItemTypeMazeRune: "MazeRune", ItemTypeStorageSlip: "StorageSlip", ItemTypeInstinct: "Instinct",
}

var itemTypeByName = reverseNameMap(itemTypeNames)

func (t ItemType) String() string {
	if n, ok := itemTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

func (t ItemType) MarshalYAML() (interface{}, error) {
	if n, ok := itemTypeNames[t]; ok {
		return n, nil
	}
	return uint16(t), nil
}

func (t *ItemType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := decodeNamedEnum(raw, itemTypeByName)
	if err != nil {
		return fmt.Errorf("item-type: %w", err)
	}
	*t = ItemType(v)
	return nil
}

// SkillType is the weapon-category enum used by ItemInfoTable's weapon
// fields.
type SkillType uint8

const (
	SkillTypeNone            SkillType = 0x00
	SkillTypeHandToHand      SkillType = 0x01
	SkillTypeDagger          SkillType = 0x02
	SkillTypeSword           SkillType = 0x03
	SkillTypeGreatSword      SkillType = 0x04
	SkillTypeAxe             SkillType = 0x05
	SkillTypeGreatAxe        SkillType = 0x06
	SkillTypeScythe          SkillType = 0x07
	SkillTypePoleArm         SkillType = 0x08
	SkillTypeKatana          SkillType = 0x09
	SkillTypeGreatKatana     SkillType = 0x0a
	SkillTypeClub            SkillType = 0x0b
	SkillTypeStaff           SkillType = 0x0c
	SkillTypeAutomatonMelee  SkillType = 0x16
	SkillTypeAutomatonRange  SkillType = 0x17
	SkillTypeAutomatonMagic  SkillType = 0x18
	SkillTypeRanged          SkillType = 0x19
	SkillTypeMarksmanship    SkillType = 0x1a
	SkillTypeThrown          SkillType = 0x1b
	SkillTypeSpecial         SkillType = 0xff
)

var skillTypeNames = map[SkillType]string{
	SkillTypeNone: "None", SkillTypeHandToHand: "HandToHand", SkillTypeDagger: "Dagger",
	SkillTypeSword: "Sword", SkillTypeGreatSword: "GreatSword", SkillTypeAxe: "Axe",
	SkillTypeGreatAxe: "GreatAxe", SkillTypeScythe: "Scythe", SkillTypePoleArm: "PoleArm",
	SkillTypeKatana: "Katana", SkillTypeGreatKatana: "GreatKatana", SkillTypeClub: "Club",
	SkillTypeStaff: "Staff", SkillTypeAutomatonMelee: "AutomatonMelee", SkillTypeAutomatonRange: "AutomatonRange",
	SkillTypeAutomatonMagic: "AutomatonMagic", SkillTypeRanged: "Ranged", SkillTypeMarksmanship: "Marksmanship",
	SkillTypeThrown: "Thrown", SkillTypeSpecial: "Special",
}

var skillTypeByName = reverseNameMap(skillTypeNames)

func (t SkillType) String() string {
	if n, ok := skillTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

func (t SkillType) MarshalYAML() (interface{}, error) {
	if n, ok := skillTypeNames[t]; ok {
		return n, nil
	}
	return uint8(t), nil
}

func (t *SkillType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := decodeNamedEnum(raw, skillTypeByName)
	if err != nil {
		return fmt.Errorf("skill-type: %w", err)
	}
	*t = SkillType(v)
	return nil
}

// PuppetSlot identifies which automaton slot a PuppetItem occupies.
type PuppetSlot uint16

const (
	PuppetSlotNone       PuppetSlot = 0
	PuppetSlotHead       PuppetSlot = 1
	PuppetSlotBody       PuppetSlot = 2
	PuppetSlotAttachment PuppetSlot = 3
)

var puppetSlotNames = map[PuppetSlot]string{
	PuppetSlotNone: "None", PuppetSlotHead: "Head", PuppetSlotBody: "Body", PuppetSlotAttachment: "Attachment",
}
var puppetSlotByName = reverseNameMap(puppetSlotNames)

func (s PuppetSlot) MarshalYAML() (interface{}, error) {
	if n, ok := puppetSlotNames[s]; ok {
		return n, nil
	}
	return uint16(s), nil
}

func (s *PuppetSlot) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := decodeNamedEnum(raw, puppetSlotByName)
	if err != nil {
		return fmt.Errorf("puppet-slot: %w", err)
	}
	*s = PuppetSlot(v)
	return nil
}

// Element is a FurnishingData/PuppetItemData elemental affinity.
type Element uint16

const (
	ElementFire      Element = 0x00
	ElementIce       Element = 0x01
	ElementAir       Element = 0x02
	ElementEarth     Element = 0x03
	ElementThunder   Element = 0x04
	ElementWater     Element = 0x05
	ElementLight     Element = 0x06
	ElementDark      Element = 0x07
	ElementSpecial   Element = 0x0F
	ElementUndecided Element = 0xFFFF
)

var elementNames = map[Element]string{
	ElementFire: "Fire", ElementIce: "Ice", ElementAir: "Air", ElementEarth: "Earth",
	ElementThunder: "Thunder", ElementWater: "Water", ElementLight: "Light", ElementDark: "Dark",
	ElementSpecial: "Special", ElementUndecided: "Undecided",
}
var elementByName = reverseNameMap(elementNames)

func (e Element) MarshalYAML() (interface{}, error) {
	if n, ok := elementNames[e]; ok {
		return n, nil
	}
	return uint16(e), nil
}

func (e *Element) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := decodeNamedEnum(raw, elementByName)
	if err != nil {
		return fmt.Errorf("element: %w", err)
	}
	*e = Element(v)
	return nil
}

// EnglishArticle selects how an item's singular/plural names are combined
// into display text ("a Main Gauche", "a pair of Gloves", ...).
type EnglishArticle uint32

const (
	EnglishArticleA       EnglishArticle = 0
	EnglishArticleAn      EnglishArticle = 1
	EnglishArticlePairOf  EnglishArticle = 2
	EnglishArticleSuitsOf EnglishArticle = 3
)

var englishArticleNames = map[EnglishArticle]string{
	EnglishArticleA: "A", EnglishArticleAn: "An", EnglishArticlePairOf: "PairOf", EnglishArticleSuitsOf: "SuitsOf",
}
var englishArticleByName = reverseNameMap(englishArticleNames)

func (a EnglishArticle) MarshalYAML() (interface{}, error) {
	if n, ok := englishArticleNames[a]; ok {
		return n, nil
	}
	return uint32(a), nil
}

func (a *EnglishArticle) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := decodeNamedEnum(raw, englishArticleByName)
	if err != nil {
		return fmt.Errorf("english-article: %w", err)
	}
	*a = EnglishArticle(v)
	return nil
}

func reverseNameMap[T comparable](m map[T]string) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// decodeNamedEnum resolves a YAML scalar, which may be a name string or a
// bare number, into its numeric enum value.
func decodeNamedEnum[T comparable](raw interface{}, byName map[string]T) (uint64, error) {
	switch v := raw.(type) {
	case string:
		if t, ok := byName[v]; ok {
			return enumToUint64(t), nil
		}
		return 0, fmt.Errorf("unknown name %q", v)
	case int:
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("unsupported value %#v", raw)
	}
}

func enumToUint64[T comparable](t T) uint64 {
	switch v := any(t).(type) {
	case ItemType:
		return uint64(v)
	case SkillType:
		return uint64(v)
	case PuppetSlot:
		return uint64(v)
	case Element:
		return uint64(v)
	case EnglishArticle:
		return uint64(v)
	default:
		return 0
	}
}
