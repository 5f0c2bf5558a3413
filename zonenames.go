// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"fmt"
	"os"
	"strings"
)

// ZoneName pairs a zone's in-game display name with the sanitized file
// name used for its on-disk YAML tree.
type ZoneName struct {
	DisplayName string
	FileName    string
}

// reservedFileChars are stripped from a display name before it becomes a
// FileName, per spec.md §4.3.
const reservedFileChars = `<>:"/\|?*'`

// sanitizeZoneName turns a zone display name into a filesystem-safe file
// name: " - " collapses to "-", remaining spaces become "_", and the
// reserved characters are dropped outright.
func sanitizeZoneName(name string) string {
	name = strings.ReplaceAll(name, " - ", "-")
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(reservedFileChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadZoneNames resolves the area_names DMSG v2 record, iterates its lists
// in insertion order (list index == zone id), and builds the zone-id <->
// file-name maps. Called once from Indexer.Build.
func (c *Context) loadZoneNames() error {
	id, ok := c.Mapping.Lookup(NameAreaNames)
	if !ok {
		return &DatNotFoundError{ID: id}
	}
	path, err := c.Resolve(id)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(c.AbsPath(path))
	if err != nil {
		return &LoadError{ID: id, Cause: err}
	}
	val, err := ParseDMSG2(NewSliceWalker(raw))
	if err != nil {
		return &LoadError{ID: id, Cause: err}
	}

	names := make(map[uint32]ZoneName, len(val.Lists))
	byFile := make(map[string]uint32, len(val.Lists))
	seen := make(map[string]int, len(val.Lists))

	for i := range val.Lists {
		zoneID := uint32(i)
		raw := strings.TrimSpace(firstStringOrEmpty(val, i))

		displayName := raw
		switch {
		case raw == "":
			displayName = fmt.Sprintf("_unnamed_ID-%d", zoneID)
		case seen[raw] > 0:
			displayName = fmt.Sprintf("%s ID-%d", raw, zoneID)
		}
		seen[raw]++

		zn := ZoneName{DisplayName: displayName, FileName: sanitizeZoneName(displayName)}
		names[zoneID] = zn
		byFile[zn.FileName] = zoneID
	}

	c.ZoneNames = names
	c.ZoneIDByFileName = byFile
	return nil
}

func firstStringOrEmpty(v *Dmsg2Value, listIndex int) string {
	s, ok := v.FirstString(listIndex)
	if !ok {
		return ""
	}
	return s
}
