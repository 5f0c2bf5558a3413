// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "testing"

func TestDialogRoundTrip(t *testing.T) {
	d := &Dialog{Entries: map[uint32]string{
		0: "Hello there.",
		1: "You observe no changes.",
		2: "",
	}}

	bw := NewBufferWalker(nil)
	if err := WriteDialog(bw, d); err != nil {
		t.Fatalf("WriteDialog: %v", err)
	}
	raw := bw.IntoVec()

	got, err := ParseDialog(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseDialog: %v", err)
	}
	if got.Entries[1] != "You observe no changes." {
		t.Errorf("entry 1 = %q", got.Entries[1])
	}
	if len(got.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(got.Entries))
	}

	vw := NewVerifyWalker(raw)
	if err := WriteDialog(vw, got); err != nil {
		t.Fatalf("verify write mismatched original bytes: %v", err)
	}
}

func TestDialogEmptyHeaderRejected(t *testing.T) {
	raw := make([]byte, 8)
	if err := CheckHeaderDialog(NewSliceWalker(raw)); err == nil {
		t.Fatal("expected error for zero size_info")
	}
}
