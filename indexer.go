// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vanadiel/dattool/internal/log"
)

// DatPath is a DatId resolved to a physical location inside the install.
type DatPath struct {
	Rom    int
	Folder int
	File   int
}

// Context is the read-only, reference-shared handle to one game install:
// the DatId -> DatPath table built by the Indexer plus the zone name
// tables derived from it. Every field is immutable after Indexer.Build (or
// BuildContextFromLookupTables) returns, so a *Context may be shared across worker goroutines without
// further synchronization.
type Context struct {
	InstallRoot string
	Mapping     *DatIdMapping
	Paths       map[DatId]DatPath

	ZoneNames        map[uint32]ZoneName
	ZoneIDByFileName map[string]uint32

	log *log.Helper
}

// Resolve looks up the physical path for a DatId.
func (c *Context) Resolve(id DatId) (DatPath, error) {
	p, ok := c.Paths[id]
	if !ok {
		return DatPath{}, &DatNotFoundError{ID: id}
	}
	return p, nil
}

// RelativeDatPath renders a DatPath as a path relative to some ROM tree
// root (either the install root or a generated-output root): "ROM/<folder>/
// <file>.DAT" for ROM 1, "ROM{n}/<folder>/<file>.DAT" otherwise.
func RelativeDatPath(p DatPath) string {
	name := strconv.Itoa(p.File) + ".DAT"
	romDir := fmt.Sprintf("ROM%d", p.Rom)
	if p.Rom == 1 {
		romDir = "ROM"
	}
	return filepath.Join(romDir, strconv.Itoa(p.Folder), name)
}

// AbsPath renders a DatPath as an absolute filesystem path under the
// install root. Data files always live under a "ROM{n}" subfolder, but
// ROM 1's subfolder is spelled "ROM" with no trailing digit — this is
// distinct from the *lookup* tables (VTABLE.DAT/FTABLE.DAT), which for
// ROM 1 sit directly at the install root with no ROM subfolder at all.
func (c *Context) AbsPath(p DatPath) string {
	return filepath.Join(c.InstallRoot, RelativeDatPath(p))
}

// Indexer locates a game install and builds its Context. Grounded on
// distr1-distri's cmd/distri/batch.go, which uses errgroup to fan out
// independent, fail-fast I/O across a bounded set of inputs — exactly the
// shape of reading N ROMs' VTABLE/FTABLE pairs, where one bad ROM should
// abort the whole Build rather than silently produce a partial Context.
type Indexer struct {
	root string
	log  *log.Helper
}

// NewIndexer returns an Indexer rooted at root. logger may be nil.
func NewIndexer(root string, logger *log.Helper) *Indexer {
	return &Indexer{root: root, log: logger}
}

// Build scans the install's VTABLE/FTABLE pairs and returns a ready
// Context.
func (ix *Indexer) Build(ctx context.Context) (*Context, error) {
	root, err := ix.locateRoot()
	if err != nil {
		return nil, err
	}
	ix.log.Debugf("indexer: using install root %s", root)

	roms, err := ix.discoverRoms(root)
	if err != nil {
		return nil, err
	}
	ix.log.Debugf("indexer: found %d ROM archive(s)", len(roms))

	paths := make(map[DatId]DatPath)
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, rom := range roms {
		rom := rom
		g.Go(func() error {
			vtablePath, ftablePath := romTablePaths(root, rom)
			vtable, err := os.ReadFile(vtablePath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", vtablePath, err)
			}
			ftable, err := os.ReadFile(ftablePath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", ftablePath, err)
			}
			local, err := parseRomTables(rom, vtable, ftable)
			if err != nil {
				return err
			}
			mu.Lock()
			for k, v := range local {
				paths[k] = v
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Context{
		InstallRoot: root,
		Mapping:     GetDatIdMapping(),
		Paths:       paths,
		log:         ix.log,
	}
	if err := c.loadZoneNames(); err != nil {
		return nil, err
	}
	return c, nil
}

// locateRoot implements spec.md §4.3's placement heuristics, grounded on
// find_ffxi_path in
// _examples/original_source/crates/dats/src/context.rs: use root directly
// if it holds VTABLE.DAT; otherwise inspect root's final path component —
// "FINAL FANTASY XI" is assumed already correct, "SquareEnix" gets that
// name appended, and anything else gets "SquareEnix/FINAL FANTASY XI"
// appended and must exist.
func (ix *Indexer) locateRoot() (string, error) {
	if fileExists(filepath.Join(ix.root, "VTABLE.DAT")) {
		return ix.root, nil
	}

	switch filepath.Base(ix.root) {
	case "FINAL FANTASY XI":
		return ix.root, nil
	case "SquareEnix":
		return filepath.Join(ix.root, "FINAL FANTASY XI"), nil
	default:
		p := filepath.Join(ix.root, "SquareEnix", "FINAL FANTASY XI")
		if _, err := os.Stat(p); err != nil {
			return "", &HeaderInvalidError{Format: "indexer", Reason: "could not find a FFXI install at the given path"}
		}
		return p, nil
	}
}

// discoverRoms returns [1, 2, ..., N] where N is the last ROM whose
// VTABLE is present; ROM 1 is always included without a check (locateRoot
// only confirms its VTABLE.DAT when root itself holds it), so a missing
// one surfaces as a read error in Build.
func (ix *Indexer) discoverRoms(root string) ([]int, error) {
	roms := []int{1}
	for n := 2; ; n++ {
		vtablePath, _ := romTablePaths(root, n)
		if !fileExists(vtablePath) {
			break
		}
		roms = append(roms, n)
	}
	return roms, nil
}

func romTablePaths(root string, rom int) (vtable, ftable string) {
	if rom == 1 {
		return filepath.Join(root, "VTABLE.DAT"), filepath.Join(root, "FTABLE.DAT")
	}
	sub := filepath.Join(root, fmt.Sprintf("ROM%d", rom))
	return filepath.Join(sub, fmt.Sprintf("VTABLE%d.DAT", rom)), filepath.Join(sub, fmt.Sprintf("FTABLE%d.DAT", rom))
}

// parseRomTables implements the VTABLE/FTABLE cross-reference from
// spec.md §4.3: every offset in vtable whose byte equals rom contributes
// one DatId -> DatPath entry, with folder/file decoded from the matching
// 16-bit little-endian entry in ftable.
func parseRomTables(rom int, vtable, ftable []byte) (map[DatId]DatPath, error) {
	out := make(map[DatId]DatPath)
	for offset, b := range vtable {
		if int(b) != rom {
			continue
		}
		ftOffset := offset * 2
		if ftOffset+2 > len(ftable) {
			return nil, &OutOfRangeError{BufferLen: uint64(len(ftable)), Requested: uint64(ftOffset + 2)}
		}
		v := binary.LittleEndian.Uint16(ftable[ftOffset : ftOffset+2])
		out[DatId(offset)] = DatPath{
			Rom:    rom,
			Folder: int(v >> 7),
			File:   int(v & 0x7F),
		}
	}
	return out, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
