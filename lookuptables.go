// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vanadiel/dattool/internal/log"
)

// LookupTableDir and ZoneMappingFile name the project-local mirror of the
// install's VTABLE/FTABLE files and the serialized zone-name table,
// spec.md §6's lookup_tables/ persistence fallback for use when the live
// install isn't reachable.
const (
	LookupTableDir  = "lookup_tables"
	ZoneMappingFile = "zones.yml"
)

// CopyLookupTables mirrors ctx's VTABLE/FTABLE pair for every discovered
// ROM, plus the zone name table, into projectRoot/lookup_tables. Grounded
// on copy_lookup_tables in
// _examples/original_source/client/src-tauri/src/commands.rs, which clears
// any prior mirror before copying.
func CopyLookupTables(ctx *Context, projectRoot string) error {
	dir := filepath.Join(projectRoot, LookupTableDir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing old lookup tables: %w", err)
	}

	copyTable := func(relPath string) error {
		from := filepath.Join(ctx.InstallRoot, relPath)
		to := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return err
		}
		raw, err := os.ReadFile(from)
		if err != nil {
			return fmt.Errorf("copying lookup table %s: %w", relPath, err)
		}
		return os.WriteFile(to, raw, 0o644)
	}

	if err := copyTable("VTABLE.DAT"); err != nil {
		return err
	}
	if err := copyTable("FTABLE.DAT"); err != nil {
		return err
	}
	for rom := 2; ; rom++ {
		vtableRel := fmt.Sprintf("ROM%d/VTABLE%d.DAT", rom, rom)
		if !fileExists(filepath.Join(ctx.InstallRoot, vtableRel)) {
			break
		}
		if err := copyTable(vtableRel); err != nil {
			return err
		}
		ftableRel := fmt.Sprintf("ROM%d/FTABLE%d.DAT", rom, rom)
		if err := copyTable(ftableRel); err != nil {
			return err
		}
	}

	return writeZoneMappings(ctx, projectRoot)
}

// writeZoneMappings serializes ctx.ZoneNames as lookup_tables/zones.yml,
// keyed by zone id, per spec.md §6.
func writeZoneMappings(ctx *Context, projectRoot string) error {
	dir := filepath.Join(projectRoot, LookupTableDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	out, err := yaml.Marshal(ctx.ZoneNames)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ZoneMappingFile), out, 0o644)
}

// BuildContextFromLookupTables constructs a Context from a project's
// lookup_tables/ mirror instead of a live install, for when the original
// FFXI install isn't reachable. Grounded on
// DatContext::from_path_and_zone_mappings and its caller export_all_dats in
// _examples/original_source/client/src-tauri/src/cli.rs: the zone table
// comes from the persisted zones.yml rather than a live parse of
// area_names, and the mirrored VTABLE/FTABLE files stand in for the
// install's own.
func BuildContextFromLookupTables(projectRoot string, logger *log.Helper) (*Context, error) {
	dir := filepath.Join(projectRoot, LookupTableDir)

	raw, err := os.ReadFile(filepath.Join(dir, ZoneMappingFile))
	if err != nil {
		return nil, fmt.Errorf("reading zone mapping file: %w", err)
	}
	var zoneNames map[uint32]ZoneName
	if err := yaml.Unmarshal(raw, &zoneNames); err != nil {
		return nil, fmt.Errorf("decoding zone mapping file: %w", err)
	}

	ix := NewIndexer(dir, logger)
	root, err := ix.locateRoot()
	if err != nil {
		return nil, err
	}
	roms, err := ix.discoverRoms(root)
	if err != nil {
		return nil, err
	}

	paths := make(map[DatId]DatPath)
	for _, rom := range roms {
		vtablePath, ftablePath := romTablePaths(root, rom)
		vtable, err := os.ReadFile(vtablePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", vtablePath, err)
		}
		ftable, err := os.ReadFile(ftablePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", ftablePath, err)
		}
		local, err := parseRomTables(rom, vtable, ftable)
		if err != nil {
			return nil, err
		}
		for k, v := range local {
			paths[k] = v
		}
	}

	byFile := make(map[string]uint32, len(zoneNames))
	for id, zn := range zoneNames {
		byFile[zn.FileName] = id
	}

	return &Context{
		InstallRoot:      root,
		Mapping:          GetDatIdMapping(),
		Paths:            paths,
		ZoneNames:        zoneNames,
		ZoneIDByFileName: byFile,
		log:              logger,
	}, nil
}
