// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func TestStatusInfoTableRoundTrip(t *testing.T) {
	table := &StatusInfoTable{
		StatusInfos: []StatusInfo{
			{ID: 1, Flag: 0, Description: "You have been knocked unconscious.", IconBytes: Base64Bytes{1, 2, 3}},
			{ID: 615, Flag: 2, Description: "Ullegore is making you forget the true meaning of \"fun\"!", IconBytes: Base64Bytes{4, 5, 6, 7, 8}},
			{ID: 2, Flag: 0, Description: "", IconBytes: nil},
		},
	}

	bw := NewBufferWalker(nil)
	if err := WriteStatusInfoTable(bw, table); err != nil {
		t.Fatalf("WriteStatusInfoTable: %v", err)
	}
	raw := bw.IntoVec()
	if uint64(len(raw)) != uint64(len(table.StatusInfos))*statusInfoEntryLen {
		t.Fatalf("unexpected length %d", len(raw))
	}

	got, err := ParseStatusInfoTable(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseStatusInfoTable: %v", err)
	}
	if got.StatusInfos[0].Description != "You have been knocked unconscious." {
		t.Errorf("got description %q", got.StatusInfos[0].Description)
	}
	if got.StatusInfos[1].Description != "Ullegore is making you forget the true meaning of \"fun\"!" {
		t.Errorf("got description %q", got.StatusInfos[1].Description)
	}
	if got.StatusInfos[2].Description != "" {
		t.Errorf("expected empty description, got %q", got.StatusInfos[2].Description)
	}

	vw := NewVerifyWalker(raw)
	if err := WriteStatusInfoTable(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}
