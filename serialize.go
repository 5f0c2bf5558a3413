// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Base64Bytes renders as unpadded base64 in YAML, for binary blobs spec.md
// §9 calls out as base64 (icon bitmaps, item icon blocks).
type Base64Bytes []byte

func (b Base64Bytes) MarshalYAML() (interface{}, error) {
	return base64.RawStdEncoding.EncodeToString(b), nil
}

func (b *Base64Bytes) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	decoded, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// HexBytes renders as "0xHH..." in YAML, for opaque byte arrays whose
// internal structure this codec does not interpret (e.g. the trailing
// unknown bytes of MenuTable ability and magic entries).
type HexBytes []byte

func (b HexBytes) MarshalYAML() (interface{}, error) {
	return "0x" + strings.ToUpper(hex.EncodeToString(b)), nil
}

func (b *HexBytes) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// FlagDef names one bit or combination of bits in a bitflag field.
type FlagDef struct {
	Name string
	Bits uint64
}

// FlagSet is an ordered table of named bits/bit-combinations for one
// bitflag field, used to render the field as a short list of names for
// YAML instead of a raw numeric mask.
type FlagSet []FlagDef

// Names renders value as the minimal set of flag names that exactly cover
// its set bits, preferring multi-bit combined names (e.g. "SecondAndThird")
// over the individual names they're made of, per spec.md §9's "prefer
// combined bitflag name" rule. Any bits left uncovered by a known name are
// appended as a trailing hex literal. Grounded on saferwall-pe's
// PrettySectionFlags, extended with the combined-name preference.
func (fs FlagSet) Names(value uint64) []string {
	defs := append(FlagSet(nil), fs...)
	sort.SliceStable(defs, func(i, j int) bool {
		return bits.OnesCount64(defs[i].Bits) > bits.OnesCount64(defs[j].Bits)
	})

	remaining := value
	var names []string
	for _, d := range defs {
		if d.Bits == 0 {
			continue
		}
		if remaining&d.Bits == d.Bits {
			names = append(names, d.Name)
			remaining &^= d.Bits
		}
	}
	if remaining != 0 {
		names = append(names, fmt.Sprintf("0x%X", remaining))
	}
	return names
}

// Value parses a list of flag names (as produced by Names) back into a
// numeric bitmask. A trailing "0x..." literal is OR'd in verbatim.
func (fs FlagSet) Value(names []string) (uint64, error) {
	byName := make(map[string]uint64, len(fs))
	for _, d := range fs {
		byName[d.Name] = d.Bits
	}
	var v uint64
	for _, n := range names {
		if bitsVal, ok := byName[n]; ok {
			v |= bitsVal
			continue
		}
		if strings.HasPrefix(n, "0x") || strings.HasPrefix(n, "0X") {
			var parsed uint64
			if _, err := fmt.Sscanf(n, "0x%X", &parsed); err != nil {
				return 0, &UnsupportedVariantError{Format: "bitflags", Detail: fmt.Sprintf("unparseable flag literal %q", n)}
			}
			v |= parsed
			continue
		}
		return 0, &UnsupportedVariantError{Format: "bitflags", Detail: fmt.Sprintf("unknown flag name %q", n)}
	}
	return v, nil
}
