// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func buildStringTableRecord(id uint32, s string) []byte {
	field := make([]byte, stringTableFieldLen)
	copy(field, s)
	rec := make([]byte, 0, stringTableEntryLen)
	idBytes := make([]byte, 4)
	leU32(idBytes, id)
	rec = append(rec, idBytes...)
	rec = append(rec, field...)
	rec = append(rec, 0xFF)
	return rec
}

func TestParseStringTable(t *testing.T) {
	var raw []byte
	raw = append(raw, buildStringTableRecord(1, "Searching for lobby server.")...)
	raw = append(raw, buildStringTableRecord(2, "Select a character to play.")...)
	raw = append(raw, buildStringTableRecord(3, "")...)

	got, err := ParseStringTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseStringTable: %v", err)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(got.Entries))
	}
	if got.Entries[0].String != "Searching for lobby server." {
		t.Errorf("entry 0: got %q", got.Entries[0].String)
	}
	if got.Entries[1].ID != 2 || got.Entries[1].String != "Select a character to play." {
		t.Errorf("entry 1: got %+v", got.Entries[1])
	}
	if got.Entries[2].String != "" {
		t.Errorf("entry 2: expected empty string, got %q", got.Entries[2].String)
	}
}

func TestCheckHeaderStringTableRejectsBadLength(t *testing.T) {
	raw := make([]byte, stringTableEntryLen+1)
	if err := CheckHeaderStringTable(NewSliceWalker(raw)); err == nil {
		t.Fatal("expected error for length not a multiple of 0x40")
	}
}

func TestCheckHeaderStringTableRejectsMissingTerminator(t *testing.T) {
	raw := buildStringTableRecord(1, "Searching for lobby server.")
	raw[stringTableEntryLen-1] = 0x00
	if err := CheckHeaderStringTable(NewSliceWalker(raw)); err == nil {
		t.Fatal("expected error for missing 0xFF terminator")
	}
}

func TestCheckHeaderStringTableAcceptsValidRecord(t *testing.T) {
	raw := buildStringTableRecord(1, "Searching for lobby server.")
	if err := CheckHeaderStringTable(NewSliceWalker(raw)); err != nil {
		t.Fatalf("CheckHeaderStringTable: %v", err)
	}
}

func TestWriteStringTableUnsupported(t *testing.T) {
	if err := WriteStringTable(NewBufferWalker(nil), &StringTable{}); err == nil {
		t.Fatal("expected WriteStringTable to return an error")
	}
}
