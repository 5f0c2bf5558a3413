// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// zoneKind discriminates the three per-zone DatDescriptor shapes.
type zoneKind int

const (
	zoneKindNone zoneKind = iota
	zoneKindEntityNames
	zoneKindDialog
	zoneKindDialog2
)

// DatDescriptor names one logical file: either a fixed, zone-independent
// dat identified by Name (matching DatIdMapping.Named's keys and this
// descriptor's own relative path), or a per-zone dat identified by Zone
// and zoneKind.
type DatDescriptor struct {
	Name string
	Zone uint32
	kind zoneKind
}

// NamedDescriptor returns the descriptor for a fixed logical file, e.g.
// NamedDescriptor(NameWeapons).
func NamedDescriptor(name string) DatDescriptor {
	return DatDescriptor{Name: name}
}

// EntityNamesDescriptor returns the per-zone EntityNames descriptor.
func EntityNamesDescriptor(zoneID uint32) DatDescriptor {
	return DatDescriptor{Zone: zoneID, kind: zoneKindEntityNames}
}

// DialogDescriptor returns the per-zone primary Dialog descriptor.
func DialogDescriptor(zoneID uint32) DatDescriptor {
	return DatDescriptor{Zone: zoneID, kind: zoneKindDialog}
}

// Dialog2Descriptor returns the per-zone secondary Dialog descriptor.
func Dialog2Descriptor(zoneID uint32) DatDescriptor {
	return DatDescriptor{Zone: zoneID, kind: zoneKindDialog2}
}

func (d DatDescriptor) zoneDirName() string {
	switch d.kind {
	case zoneKindEntityNames:
		return "entity_names"
	case zoneKindDialog:
		return "dialog"
	case zoneKindDialog2:
		return "dialog2"
	default:
		return ""
	}
}

// String renders a descriptor for log/error messages.
func (d DatDescriptor) String() string {
	if d.kind == zoneKindNone {
		return d.Name
	}
	return fmt.Sprintf("%s(zone %d)", d.zoneDirName(), d.Zone)
}

// RelativePath returns the text-tree location of this descriptor's YAML
// file, without the ".yml" suffix (spec.md §4.5).
func (d DatDescriptor) RelativePath(ctx *Context) (string, error) {
	if d.kind == zoneKindNone {
		return d.Name, nil
	}
	zn, ok := ctx.ZoneNames[d.Zone]
	if !ok {
		return "", fmt.Errorf("no zone name found for zone id %d", d.Zone)
	}
	return d.zoneDirName() + "/" + zn.FileName, nil
}

func (d DatDescriptor) resolveDatID(ctx *Context) (DatId, error) {
	var (
		id DatId
		ok bool
	)
	switch d.kind {
	case zoneKindEntityNames:
		id, ok = ctx.Mapping.LookupEntityNames(d.Zone)
	case zoneKindDialog:
		id, ok = ctx.Mapping.LookupDialog(d.Zone)
	case zoneKindDialog2:
		id, ok = ctx.Mapping.LookupDialog2(d.Zone)
	default:
		id, ok = ctx.Mapping.Lookup(d.Name)
	}
	if !ok {
		return 0, &DatNotFoundError{ID: id}
	}
	return id, nil
}

// formatOps adapts one per-format codec to the generic dat<->yaml pipeline.
type formatOps struct {
	parse    func(ByteWalker) (any, error)
	write    func(ByteWalker, any) error
	newValue func() any
}

func dmsg2Ops() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseDMSG2(w) },
		write: func(w ByteWalker, v any) error { return WriteDMSG2(w, v.(*Dmsg2Value)) },
		newValue: func() any { return &Dmsg2Value{} },
	}
}

func dmsg3Ops() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseDMSG3(w) },
		write: func(w ByteWalker, v any) error { return WriteDMSG3(w, v.(*Dmsg3Value)) },
		newValue: func() any { return &Dmsg3Value{} },
	}
}

func xiStringOps() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseXiStringTable(w) },
		write: func(w ByteWalker, v any) error { return WriteXiStringTable(w, v.(*XiStringTable)) },
		newValue: func() any { return &XiStringTable{} },
	}
}

func statusInfoOps() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseStatusInfoTable(w) },
		write: func(w ByteWalker, v any) error { return WriteStatusInfoTable(w, v.(*StatusInfoTable)) },
		newValue: func() any { return &StatusInfoTable{} },
	}
}

func itemInfoOps() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseItemInfoTable(w) },
		write: func(w ByteWalker, v any) error { return WriteItemInfoTable(w, v.(*ItemInfoTable)) },
		newValue: func() any { return &ItemInfoTable{} },
	}
}

func dialogOps() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseDialog(w) },
		write: func(w ByteWalker, v any) error { return WriteDialog(w, v.(*Dialog)) },
		newValue: func() any { return &Dialog{} },
	}
}

func menuTableOps() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseMenuTable(w) },
		write: func(w ByteWalker, v any) error { return WriteMenuTable(w, v.(*MenuTable)) },
		newValue: func() any { return &MenuTable{} },
	}
}

func entityNamesOps() formatOps {
	return formatOps{
		parse: func(w ByteWalker) (any, error) { return ParseEntityNames(w) },
		write: func(w ByteWalker, v any) error { return WriteEntityNames(w, v.(*EntityNamesValue)) },
		newValue: func() any { return &EntityNamesValue{} },
	}
}

// namedFormats maps every zone-independent descriptor name to its codec,
// mirroring id_mapping.rs's per-field types one for one.
var namedFormats = map[string]formatOps{
	NameDataMenu: menuTableOps(),

	NameMonsterSkillNames: dialogOps(),
	NameStatusNamesDialog: dialogOps(),
	NameEmoteMessages:     dialogOps(),
	NameSystemMessages1:   dialogOps(),
	NameSystemMessages2:   dialogOps(),
	NameSystemMessages3:   dialogOps(),
	NameSystemMessages4:   dialogOps(),
	NameUnityDialogs:      dialogOps(),

	NameAbilityNames:         dmsg3Ops(),
	NameAbilityDescriptions:  dmsg3Ops(),
	NameAreaNames:            dmsg2Ops(),
	NameAreaNamesAlt:         dmsg2Ops(),
	NameCharacterSelect:      dmsg2Ops(),
	NameChatFilterTypes:      dmsg2Ops(),
	NameDayNames:             dmsg2Ops(),
	NameDirections:           dmsg2Ops(),
	NameEquipmentLocations:   dmsg2Ops(),
	NameErrorMessages:        dmsg2Ops(),
	NameIngameMessages1:      dmsg2Ops(),
	NameIngameMessages2:      xiStringOps(),
	NameJobNames:             dmsg2Ops(),
	NameKeyItems:             dmsg3Ops(),
	NameMenuItemsDescription: dmsg2Ops(),
	NameMenuItemsText:        dmsg2Ops(),
	NameMoonPhases:           dmsg2Ops(),
	NamePolMessages:          xiStringOps(),
	NameRaceNames:            dmsg2Ops(),
	NameRegionNames:          dmsg2Ops(),
	NameSpellNames:           dmsg3Ops(),
	NameSpellDescriptions:    dmsg3Ops(),
	NameStatusInfo:           statusInfoOps(),
	NameStatusNames:          dmsg2Ops(),
	NameTimeAndPronouns:      xiStringOps(),
	NameTitles:               dmsg3Ops(),
	NameMisc1:                dmsg2Ops(),
	NameMisc2:                dmsg2Ops(),
	NameWeatherTypes:         dmsg2Ops(),

	NameArmor:            itemInfoOps(),
	NameArmor2:           itemInfoOps(),
	NameCurrency:         itemInfoOps(),
	NameGeneralItems:     itemInfoOps(),
	NameGeneralItems2:    itemInfoOps(),
	NamePuppetItems:      itemInfoOps(),
	NameUsableItems:      itemInfoOps(),
	NameWeapons:          itemInfoOps(),
	NameVouchersAndSlips: itemInfoOps(),
	NameMonipulator:      itemInfoOps(),
	NameInstincts:        itemInfoOps(),
}

func (d DatDescriptor) ops() (formatOps, error) {
	switch d.kind {
	case zoneKindEntityNames:
		return entityNamesOps(), nil
	case zoneKindDialog, zoneKindDialog2:
		return dialogOps(), nil
	default:
		ops, ok := namedFormats[d.Name]
		if !ok {
			return formatOps{}, fmt.Errorf("no codec registered for descriptor %q", d.Name)
		}
		return ops, nil
	}
}

// DatToYAML resolves this descriptor to a DAT id, loads and parses its
// bytes, and writes the resulting value as YAML under
// rawRoot/RelativePath()+".yml", creating parent directories as needed.
func (d DatDescriptor) DatToYAML(ctx *Context, rawRoot string) error {
	ops, err := d.ops()
	if err != nil {
		return err
	}
	id, err := d.resolveDatID(ctx)
	if err != nil {
		return err
	}
	datPath, err := ctx.Resolve(id)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(ctx.AbsPath(datPath))
	if err != nil {
		return &LoadError{ID: id, Cause: err}
	}
	value, err := ops.parse(NewSliceWalker(raw))
	if err != nil {
		return &LoadError{ID: id, Cause: err}
	}

	relPath, err := d.RelativePath(ctx)
	if err != nil {
		return err
	}
	yamlPath := filepath.Join(rawRoot, filepath.FromSlash(relPath)+".yml")
	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return err
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(yamlPath, out, 0o644)
}

// YAMLToDat is the inverse of DatToYAML: it deserializes the descriptor's
// YAML file and writes the resulting DAT bytes under datRoot, at the
// physical rom/folder/file path the descriptor resolves to.
func (d DatDescriptor) YAMLToDat(ctx *Context, rawRoot, datRoot string) error {
	ops, err := d.ops()
	if err != nil {
		return err
	}
	id, err := d.resolveDatID(ctx)
	if err != nil {
		return err
	}
	datPath, err := ctx.Resolve(id)
	if err != nil {
		return err
	}

	relPath, err := d.RelativePath(ctx)
	if err != nil {
		return err
	}
	yamlPath := filepath.Join(rawRoot, filepath.FromSlash(relPath)+".yml")
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return err
	}
	value := ops.newValue()
	if err := yaml.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("decoding %s: %w", yamlPath, err)
	}

	bw := NewBufferWalker(nil)
	if err := ops.write(bw, value); err != nil {
		return &LoadError{ID: id, Cause: err}
	}

	outPath := filepath.Join(datRoot, RelativeDatPath(datPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, bw.IntoVec(), 0o644)
}

// DescriptorFromPath derives a DatDescriptor from a YAML file path inside
// rawRoot, mirroring dat_descriptor.rs's from_path: inspect the immediate
// parent directory (entity_names/dialog/dialog2/items/global_dialog, or
// none for root-level files) and the file stem, consulting ctx for
// zone-name lookups where needed. Returns false if the path cannot be
// mapped to any known descriptor.
func DescriptorFromPath(path, rawRoot string, ctx *Context) (DatDescriptor, bool) {
	rel, err := filepath.Rel(rawRoot, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	stem := strings.TrimSuffix(filepath.Base(rel), ".yml")

	dir := filepath.ToSlash(filepath.Dir(rel))
	parent := filepath.Base(dir)

	switch parent {
	case "entity_names":
		if zoneID, ok := ctx.ZoneIDByFileName[stem]; ok {
			return EntityNamesDescriptor(zoneID), true
		}
		return DatDescriptor{}, false
	case "dialog":
		if zoneID, ok := ctx.ZoneIDByFileName[stem]; ok {
			return DialogDescriptor(zoneID), true
		}
		return DatDescriptor{}, false
	case "dialog2":
		if zoneID, ok := ctx.ZoneIDByFileName[stem]; ok {
			return Dialog2Descriptor(zoneID), true
		}
		return DatDescriptor{}, false
	case "items":
		name := "items/" + stem
		if _, ok := namedFormats[name]; ok {
			return NamedDescriptor(name), true
		}
		return DatDescriptor{}, false
	case "global_dialog":
		name := "global_dialog/" + stem
		if _, ok := namedFormats[name]; ok {
			return NamedDescriptor(name), true
		}
		return DatDescriptor{}, false
	}

	// Root-level file: parent is "." (dir == rawRoot) or empty.
	if _, ok := namedFormats[stem]; ok {
		return NamedDescriptor(stem), true
	}
	return DatDescriptor{}, false
}
