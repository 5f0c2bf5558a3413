// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeRom1Tables(t *testing.T, installRoot string, id DatId, folder, file int) {
	t.Helper()
	vtable := make([]byte, int(id)+1)
	vtable[id] = 1
	ftable := make([]byte, (int(id)+1)*2)
	binary.LittleEndian.PutUint16(ftable[int(id)*2:], uint16(folder<<7|file))

	if err := os.WriteFile(filepath.Join(installRoot, "VTABLE.DAT"), vtable, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(installRoot, "FTABLE.DAT"), ftable, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCopyLookupTablesAndBuildContextRoundTrip(t *testing.T) {
	id, ok := GetDatIdMapping().Lookup(NameUnityDialogs)
	if !ok {
		t.Fatal("NameUnityDialogs missing from DatIdMapping")
	}

	installRoot := t.TempDir()
	writeRom1Tables(t, installRoot, id, 5, 10)

	ctx := &Context{
		InstallRoot: installRoot,
		Mapping:     GetDatIdMapping(),
		Paths:       map[DatId]DatPath{id: {Rom: 1, Folder: 5, File: 10}},
		ZoneNames: map[uint32]ZoneName{
			0: {DisplayName: "Bastok Mines", FileName: "Bastok_Mines"},
			1: {DisplayName: "_unnamed_ID-1", FileName: "_unnamed_ID-1"},
		},
	}

	projectRoot := t.TempDir()
	if err := CopyLookupTables(ctx, projectRoot); err != nil {
		t.Fatalf("CopyLookupTables: %v", err)
	}

	for _, name := range []string{"VTABLE.DAT", "FTABLE.DAT", ZoneMappingFile} {
		if _, err := os.Stat(filepath.Join(projectRoot, LookupTableDir, name)); err != nil {
			t.Fatalf("expected mirrored %s: %v", name, err)
		}
	}

	restored, err := BuildContextFromLookupTables(projectRoot, nil)
	if err != nil {
		t.Fatalf("BuildContextFromLookupTables: %v", err)
	}

	gotPath, err := restored.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if gotPath != (DatPath{Rom: 1, Folder: 5, File: 10}) {
		t.Fatalf("got %+v, want Rom 1 Folder 5 File 10", gotPath)
	}

	if got := restored.ZoneNames[0]; got.DisplayName != "Bastok Mines" {
		t.Fatalf("zone 0 = %+v", got)
	}
	if got := restored.ZoneNames[1]; got.DisplayName != "_unnamed_ID-1" {
		t.Fatalf("zone 1 = %+v", got)
	}
	if gotID, ok := restored.ZoneIDByFileName["Bastok_Mines"]; !ok || gotID != 0 {
		t.Fatalf("ZoneIDByFileName[Bastok_Mines] = %d, %v", gotID, ok)
	}
}
