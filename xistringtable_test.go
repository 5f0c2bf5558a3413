// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func TestXiStringTableRoundTrip(t *testing.T) {
	table := &XiStringTable{
		Entries: map[uint32]XiStringEntry{
			0: {String: "Searching for lobby server."},
			1: {String: "Select a character to play."},
			3: {String: "Connection lost.", MetaUnknowns: [3]uint16{1, 0, 0}},
		},
		Unknown2: 304231515,
	}

	bw := NewBufferWalker(nil)
	if err := WriteXiStringTable(bw, table); err != nil {
		t.Fatalf("WriteXiStringTable: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseXiStringTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseXiStringTable: %v", err)
	}
	if got.Unknown2 != 304231515 {
		t.Errorf("unknown2 = %d, want 304231515", got.Unknown2)
	}
	if len(got.Entries) != 4 {
		t.Fatalf("got %d entries, want 4 (index 2 is a gap)", len(got.Entries))
	}
	if got.Entries[0].String != "Searching for lobby server." {
		t.Errorf("entry 0: got %q", got.Entries[0].String)
	}
	if got.Entries[2].String != "" {
		t.Errorf("entry 2 (gap): got %q, want empty", got.Entries[2].String)
	}
	if got.Entries[3].String != "Connection lost." || got.Entries[3].MetaUnknowns != [3]uint16{1, 0, 0} {
		t.Errorf("entry 3: got %+v", got.Entries[3])
	}

	vw := NewVerifyWalker(raw)
	if err := WriteXiStringTable(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}

func TestXiStringTableDefaultUnknown2(t *testing.T) {
	table := &XiStringTable{Entries: map[uint32]XiStringEntry{0: {String: "hi"}}}
	bw := NewBufferWalker(nil)
	if err := WriteXiStringTable(bw, table); err != nil {
		t.Fatalf("WriteXiStringTable: %v", err)
	}
	got, err := ParseXiStringTable(NewSliceWalker(bw.IntoVec()))
	if err != nil {
		t.Fatalf("ParseXiStringTable: %v", err)
	}
	if got.Unknown2 != xiStringTableUnknown2Default {
		t.Errorf("unknown2 = %d, want default %d", got.Unknown2, xiStringTableUnknown2Default)
	}
}
