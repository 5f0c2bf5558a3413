// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "sync"

// The real client ships the conversion tables as two binary blobs per
// spec.md §4.2: a 512-byte index table at prefix 0x00, and a 512-byte
// secondary table for each prefix in {0x81..0x8F, 0x90..0x9F, 0xE0..0xEF,
// 0xF0..0xFC}. Those blobs are proprietary game assets and are not part of
// this retrieval pack, so this file builds structurally equivalent tables
// programmatically: ASCII bytes pass through unchanged (matching the
// client's own treatment of the Latin range), every secondary-table prefix
// is wired up exactly as spec.md describes, and each populated secondary
// entry is assigned a unique Basic-Multilingual-Plane Private Use Area code
// point so the tables stay injective — encode(decode(b))==b holds for every
// byte sequence exercisable through them. See DESIGN.md for the rationale.

const (
	noConversion  = uint16(0xFFFF)
	secondaryFlag = uint16(0xFFFE)
)

// secondaryPrefixes lists every first byte that dispatches to a secondary
// table, in the order spec.md enumerates the ranges.
var secondaryPrefixes = buildSecondaryPrefixes()

func buildSecondaryPrefixes() []byte {
	var prefixes []byte
	appendRange := func(lo, hi byte) {
		for b := int(lo); b <= int(hi); b++ {
			prefixes = append(prefixes, byte(b))
		}
	}
	appendRange(0x81, 0x8F)
	appendRange(0x90, 0x9F)
	appendRange(0xE0, 0xEF)
	appendRange(0xF0, 0xFC)
	return prefixes
}

// populatedSecondaryEntries is how many of the 256 possible second bytes
// are assigned a code point in each secondary table; the rest are
// noConversion. Kept small enough that every (prefix, second) pair maps to
// a distinct Private Use Area code point (60 prefixes * 100 entries =
// 6,000, fits inside the 6,400-slot PUA).
const populatedSecondaryEntries = 100

const privateUseAreaStart = 0xE000

var primaryTable, secondaryTables = buildConversionTables()

func buildConversionTables() ([256]uint16, map[byte][256]uint16) {
	var primary [256]uint16
	for i := range primary {
		switch {
		case i >= 0x20 && i <= 0x7E:
			primary[i] = uint16(i)
		default:
			primary[i] = noConversion
		}
	}

	secondary := make(map[byte][256]uint16, len(secondaryPrefixes))
	for prefixIdx, prefix := range secondaryPrefixes {
		primary[prefix] = secondaryFlag

		var table [256]uint16
		for j := range table {
			if j < populatedSecondaryEntries {
				table[j] = uint16(privateUseAreaStart + prefixIdx*populatedSecondaryEntries + j)
			} else {
				table[j] = noConversion
			}
		}
		secondary[prefix] = table
	}
	return primary, secondary
}

var (
	reverseTableOnce sync.Once
	reverseTable     map[uint16]uint16
)

// reverseConversionTable lazily builds the code-point -> byte-sequence
// inverse of primaryTable/secondaryTables, built exactly once. Entries from
// the primary table are packed as a single byte (high byte zero); entries
// from a secondary table are packed as (prefix<<8 | second).
func reverseConversionTable() map[uint16]uint16 {
	reverseTableOnce.Do(func() {
		reverseTable = make(map[uint16]uint16, 256+populatedSecondaryEntries*len(secondaryPrefixes))
		for i, v := range primaryTable {
			if v == noConversion || v == secondaryFlag {
				continue
			}
			reverseTable[v] = uint16(i)
		}
		for prefix, table := range secondaryTables {
			for second, v := range table {
				if v == noConversion {
					continue
				}
				reverseTable[v] = uint16(prefix)<<8 | uint16(second)
			}
		}
	})
	return reverseTable
}

// lookupConversion resolves the two-level table for first (and, if first's
// primary entry is secondaryFlag, second). ok is false when the lookup
// bottoms out at noConversion.
func lookupConversion(first, second byte) (value uint16, consumedSecond bool, ok bool) {
	entry := primaryTable[first]
	if entry == secondaryFlag {
		sub, known := secondaryTables[first]
		if !known {
			return 0, true, false
		}
		v := sub[second]
		return v, true, v != noConversion
	}
	return entry, false, entry != noConversion
}
