// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadZoneNamesDisambiguatesDisplayName(t *testing.T) {
	val := &Dmsg2Value{Lists: []Dmsg2List{
		{Entries: []Dmsg2Entry{{IsText: true, Text: "Bastok Mines"}}},
		{Entries: []Dmsg2Entry{{IsText: true, Text: "Bastok Mines"}}}, // duplicate display name
		{Entries: []Dmsg2Entry{{IsText: true, Text: ""}}},             // empty display name
	}}
	bw := NewBufferWalker(nil)
	if err := WriteDMSG2(bw, val); err != nil {
		t.Fatalf("WriteDMSG2: %v", err)
	}

	id, ok := GetDatIdMapping().Lookup(NameAreaNames)
	if !ok {
		t.Fatal("NameAreaNames missing from DatIdMapping")
	}
	p := DatPath{Rom: 1, Folder: 5, File: 11}

	tmp := t.TempDir()
	ctx := &Context{
		InstallRoot: tmp,
		Mapping:     GetDatIdMapping(),
		Paths:       map[DatId]DatPath{id: p},
	}
	datPath := ctx.AbsPath(p)
	if err := os.MkdirAll(filepath.Dir(datPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(datPath, bw.IntoVec(), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ctx.loadZoneNames(); err != nil {
		t.Fatalf("loadZoneNames: %v", err)
	}

	if got := ctx.ZoneNames[0]; got.DisplayName != "Bastok Mines" || got.FileName != "Bastok_Mines" {
		t.Errorf("zone 0 = %+v, want unsuffixed", got)
	}
	if got := ctx.ZoneNames[1]; got.DisplayName != "Bastok Mines ID-1" || got.FileName != "Bastok_Mines_ID-1" {
		t.Errorf("zone 1 = %+v, want disambiguated display_name AND file_name", got)
	}
	if got := ctx.ZoneNames[2]; got.DisplayName != "_unnamed_ID-2" || got.FileName != "_unnamed_ID-2" {
		t.Errorf("zone 2 = %+v, want synthesized unnamed display_name", got)
	}
}
