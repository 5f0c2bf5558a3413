// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func drainUntil(t *testing.T, p *Processor, want int) []Message {
	t.Helper()
	var got []Message
	timeout := time.After(5 * time.Second)
	for len(got) < want {
		select {
		case msg := <-p.Messages():
			if msg.State != StateWorking {
				got = append(got, msg)
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %d messages, got %d", want, len(got))
		}
	}
	return got
}

func TestProcessorDatToYAML(t *testing.T) {
	ctx, _, p := newTestContext(t)

	d := &Dialog{Entries: map[uint32]string{0: "A pleasant wind blows."}}
	bw := NewBufferWalker(nil)
	if err := WriteDialog(bw, d); err != nil {
		t.Fatalf("WriteDialog: %v", err)
	}
	datPath := ctx.AbsPath(p)
	if err := os.MkdirAll(filepath.Dir(datPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(datPath, bw.IntoVec(), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := NewProcessor(2, nil)
	defer proc.Close()

	rawRoot := t.TempDir()
	proc.DatToYAML(NamedDescriptor(NameUnityDialogs), ctx, rawRoot)

	msgs := drainUntil(t, proc, 1)
	if msgs[0].State != StateFinished {
		t.Fatalf("want Finished, got %+v", msgs[0])
	}

	yamlPath := filepath.Join(rawRoot, "global_dialog", "unity_dialogs.yml")
	if _, err := os.Stat(yamlPath); err != nil {
		t.Fatalf("expected yaml file: %v", err)
	}
}

func TestProcessorDatToYAMLUnresolvedID(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ctx.Paths = map[DatId]DatPath{}

	proc := NewProcessor(1, nil)
	defer proc.Close()

	rawRoot := t.TempDir()
	proc.DatToYAML(NamedDescriptor(NameUnityDialogs), ctx, rawRoot)

	msgs := drainUntil(t, proc, 1)
	if msgs[0].State != StateError {
		t.Fatalf("want Error, got %+v", msgs[0])
	}
}

func TestProcessorAllYAMLToDats(t *testing.T) {
	ctx, _, p := newTestContext(t)

	d := &Dialog{Entries: map[uint32]string{0: "Round trip me."}}
	bw := NewBufferWalker(nil)
	if err := WriteDialog(bw, d); err != nil {
		t.Fatalf("WriteDialog: %v", err)
	}
	datPath := ctx.AbsPath(p)
	if err := os.MkdirAll(filepath.Dir(datPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(datPath, bw.IntoVec(), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := NewProcessor(2, nil)
	defer proc.Close()

	rawRoot := t.TempDir()
	desc := NamedDescriptor(NameUnityDialogs)
	if err := desc.DatToYAML(ctx, rawRoot); err != nil {
		t.Fatalf("seed DatToYAML: %v", err)
	}
	// Unrelated file under rawRoot should be skipped, not fail the batch.
	if err := os.WriteFile(filepath.Join(rawRoot, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	datRoot := t.TempDir()
	count := proc.AllYAMLToDats(ctx, rawRoot, datRoot)
	if count != 1 {
		t.Fatalf("want 1 job queued, got %d", count)
	}

	msgs := drainUntil(t, proc, 1)
	if msgs[0].State != StateFinished {
		t.Fatalf("want Finished, got %+v", msgs[0])
	}

	outPath := filepath.Join(datRoot, RelativeDatPath(p))
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected regenerated dat: %v", err)
	}
}
