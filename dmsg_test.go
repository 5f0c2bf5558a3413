// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func TestDMSG1RoundTrip(t *testing.T) {
	v := &Dmsg1Value{
		Entries: []Dmsg1Entry{
			{Unknown1: 1, Text: "Excalipoor"},
			{Unknown1: 2, Text: "Voodoo Mail"},
			{Unknown1: 3, Text: ""},
		},
	}
	bw := NewBufferWalker(nil)
	if err := WriteDMSG1(bw, v); err != nil {
		t.Fatalf("WriteDMSG1: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseDMSG1(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseDMSG1: %v", err)
	}
	if len(got.Entries) != len(v.Entries) {
		t.Fatalf("got %d entries, want %d", len(got.Entries), len(v.Entries))
	}
	for i, e := range got.Entries {
		if e.Text != v.Entries[i].Text {
			t.Errorf("entry %d: got text %q, want %q", i, e.Text, v.Entries[i].Text)
		}
		if e.Unknown1 != v.Entries[i].Unknown1 {
			t.Errorf("entry %d: got Unknown1 %d, want %d", i, e.Unknown1, v.Entries[i].Unknown1)
		}
	}

	vw := NewVerifyWalker(raw)
	if err := WriteDMSG1(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}

func TestDMSG2RoundTrip(t *testing.T) {
	v := &Dmsg2Value{
		Lists: []Dmsg2List{
			{Entries: []Dmsg2Entry{{IsText: true, Text: "La Theine Plateau"}}},
			{Entries: []Dmsg2Entry{{IsText: true, Text: "Valkurm Dunes"}}},
			{Entries: []Dmsg2Entry{{IsText: true, Text: ""}}},
			{Entries: []Dmsg2Entry{{Flags: []uint32{1, 2, 3}}}},
		},
	}
	bw := NewBufferWalker(nil)
	if err := WriteDMSG2(bw, v); err != nil {
		t.Fatalf("WriteDMSG2: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseDMSG2(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseDMSG2: %v", err)
	}
	if len(got.Lists) != len(v.Lists) {
		t.Fatalf("got %d lists, want %d", len(got.Lists), len(v.Lists))
	}
	for i, list := range got.Lists {
		want := v.Lists[i]
		if len(list.Entries) != len(want.Entries) {
			t.Fatalf("list %d: got %d entries, want %d", i, len(list.Entries), len(want.Entries))
		}
		for j, e := range list.Entries {
			we := want.Entries[j]
			if e.IsText != we.IsText || e.Text != we.Text {
				t.Errorf("list %d entry %d: got %+v, want %+v", i, j, e, we)
			}
			if !we.IsText {
				if len(e.Flags) != len(we.Flags) {
					t.Fatalf("list %d entry %d: got %d flags, want %d", i, j, len(e.Flags), len(we.Flags))
				}
				for k := range e.Flags {
					if e.Flags[k] != we.Flags[k] {
						t.Errorf("list %d entry %d flag %d: got %d, want %d", i, j, k, e.Flags[k], we.Flags[k])
					}
				}
			}
		}
	}

	got0, ok := got.FirstString(0)
	if !ok || got0 != "La Theine Plateau" {
		t.Errorf("FirstString(0) = %q, %v", got0, ok)
	}
}

func TestDMSG3RoundTrip(t *testing.T) {
	for _, flip := range []bool{false, true} {
		v := &Dmsg3Value{
			FlipBytes:     flip,
			BytesPerEntry: 64,
			Records: []DmsgStringList{
				{Entries: []DmsgListEntry{{IsText: true, Text: "Hume"}, {Number: 42}}},
				{Entries: []DmsgListEntry{{IsText: true, Text: ""}}},
			},
		}
		bw := NewBufferWalker(nil)
		if err := WriteDMSG3(bw, v); err != nil {
			t.Fatalf("flip=%v WriteDMSG3: %v", flip, err)
		}
		raw := bw.IntoVec()

		got, err := ParseDMSG3(NewSliceWalker(raw))
		if err != nil {
			t.Fatalf("flip=%v ParseDMSG3: %v", flip, err)
		}
		if got.FlipBytes != flip {
			t.Fatalf("flip=%v: got FlipBytes=%v", flip, got.FlipBytes)
		}
		if len(got.Records) != len(v.Records) {
			t.Fatalf("flip=%v: got %d records, want %d", flip, len(got.Records), len(v.Records))
		}
		for i, rec := range got.Records {
			want := v.Records[i]
			for j, e := range rec.Entries {
				we := want.Entries[j]
				if e.IsText != we.IsText || e.Text != we.Text || e.Number != we.Number {
					t.Errorf("flip=%v record %d entry %d: got %+v, want %+v", flip, i, j, e, we)
				}
			}
		}

		vw := NewVerifyWalker(raw)
		if err := WriteDMSG3(vw, got); err != nil {
			t.Fatalf("flip=%v verify write mismatched original bytes: %v", flip, err)
		}
	}
}
