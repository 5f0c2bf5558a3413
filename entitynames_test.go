// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func TestEntityNamesRoundTrip(t *testing.T) {
	v := &EntityNamesValue{
		Entries: []EntityNameEntry{
			{ID: 1, Name: "Tarutaru"},
			{ID: 2, Name: ""},
			{ID: 3, Name: "Mithra"},
		},
	}
	bw := NewBufferWalker(nil)
	if err := WriteEntityNames(bw, v); err != nil {
		t.Fatalf("WriteEntityNames: %v", err)
	}
	raw := bw.IntoVec()
	if len(raw) != entityNamesHeaderLen+len(v.Entries)*entityNameRecordLen {
		t.Fatalf("unexpected length %d", len(raw))
	}

	got, err := ParseEntityNames(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseEntityNames: %v", err)
	}
	if len(got.Entries) != len(v.Entries) {
		t.Fatalf("got %d entries, want %d", len(got.Entries), len(v.Entries))
	}
	for i, e := range got.Entries {
		if e != v.Entries[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, e, v.Entries[i])
		}
	}

	vw := NewVerifyWalker(raw)
	if err := WriteEntityNames(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}

func TestEntityNamesTruncatesAtPartialRecord(t *testing.T) {
	raw := make([]byte, entityNamesHeaderLen+entityNameRecordLen+10)
	copy(raw, entityNamesMagic)
	got, err := ParseEntityNames(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseEntityNames: %v", err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(got.Entries))
	}
}
