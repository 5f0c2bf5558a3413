// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestContext(t *testing.T) (*Context, DatId, DatPath) {
	t.Helper()
	tmp := t.TempDir()
	id, ok := GetDatIdMapping().Lookup(NameUnityDialogs)
	if !ok {
		t.Fatal("NameUnityDialogs missing from DatIdMapping")
	}
	p := DatPath{Rom: 1, Folder: 5, File: 10}
	ctx := &Context{
		InstallRoot: tmp,
		Mapping:     GetDatIdMapping(),
		Paths:       map[DatId]DatPath{id: p},
	}
	return ctx, id, p
}

func TestDatToYAMLAndBack(t *testing.T) {
	ctx, _, p := newTestContext(t)

	d := &Dialog{Entries: map[uint32]string{0: "Welcome to the unity concord."}}
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

	desc := NamedDescriptor(NameUnityDialogs)
	rawRoot := t.TempDir()
	if err := desc.DatToYAML(ctx, rawRoot); err != nil {
		t.Fatalf("DatToYAML: %v", err)
	}

	yamlPath := filepath.Join(rawRoot, "global_dialog", "unity_dialogs.yml")
	if _, err := os.Stat(yamlPath); err != nil {
		t.Fatalf("expected yaml file: %v", err)
	}

	if got, ok := DescriptorFromPath(yamlPath, rawRoot, ctx); !ok || got != desc {
		t.Errorf("DescriptorFromPath = %+v, %v, want %+v, true", got, ok, desc)
	}

	datRoot := t.TempDir()
	if err := desc.YAMLToDat(ctx, rawRoot, datRoot); err != nil {
		t.Fatalf("YAMLToDat: %v", err)
	}
	outPath := filepath.Join(datRoot, RelativeDatPath(p))
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading regenerated dat: %v", err)
	}
	got, err := ParseDialog(NewSliceWalker(raw))
	if err != nil {
		t.Fatalf("ParseDialog on regenerated bytes: %v", err)
	}
	if got.Entries[0] != "Welcome to the unity concord." {
		t.Errorf("round-tripped entry = %q", got.Entries[0])
	}
}

func TestDescriptorFromPathPerZone(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ctx.ZoneNames = map[uint32]ZoneName{42: {DisplayName: "Southern San d'Oria", FileName: "Southern_San_dOria"}}
	ctx.ZoneIDByFileName = map[string]uint32{"Southern_San_dOria": 42}

	rawRoot := "/raw"
	path := filepath.Join(rawRoot, "dialog", "Southern_San_dOria.yml")
	got, ok := DescriptorFromPath(path, rawRoot, ctx)
	if !ok {
		t.Fatal("expected descriptor to resolve")
	}
	want := DialogDescriptor(42)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	relPath, err := got.RelativePath(ctx)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if relPath != "dialog/Southern_San_dOria" {
		t.Errorf("RelativePath = %q", relPath)
	}
}

func TestDescriptorFromPathUnknown(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	if _, ok := DescriptorFromPath("/raw/not_a_real_file.yml", "/raw", ctx); ok {
		t.Fatal("expected unknown root-level file to not resolve")
	}
}
