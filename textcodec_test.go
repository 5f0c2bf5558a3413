// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"reflect"
	"testing"
)

func TestEncodeTextEmptyDialogTermination(t *testing.T) {
	got, err := EncodeText("", ModeDialog)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	want := []byte{0x00, 0x07}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestEncodeTextPromptWithTrailingSpace(t *testing.T) {
	got, err := EncodeText("${prompt} ", ModeDialog)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	want := []byte{0x7F, 0x31, 0x00, 0x20, 0x07}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestEncodeTextPromptOnly(t *testing.T) {
	got, err := EncodeText("${prompt}", ModeDialog)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	want := []byte{0x7F, 0x31, 0x00, 0x07}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTextCodecRoundTripSimple(t *testing.T) {
	cases := []string{
		"",
		"Hello, adventurer.",
		"line one\nline two",
	}
	for _, s := range cases {
		encoded, err := EncodeText(s, ModeSimple)
		if err != nil {
			t.Fatalf("EncodeText(%q): %v", s, err)
		}
		decoded, err := DecodeText(encoded, ModeSimple)
		if err != nil {
			t.Fatalf("DecodeText(%x): %v", encoded, err)
		}
		if decoded != s {
			t.Fatalf("round trip mismatch: %q -> %x -> %q", s, encoded, decoded)
		}
	}
}

func TestTextCodecRoundTripDialogTags(t *testing.T) {
	cases := []string{
		"${name-player}, welcome.",
		"${name-npc} bows.\n${selection-lines}\nOption one\nOption two",
		"${fire}${ice}${on}${off}",
		"${choice-player-gender} ${choice-source-gender} ${choice-target-gender}",
		"${related-entity}${entity-wrap-start}name${entity-wrap-end}",
		"${number: 1} items remain.",
		"${item-plural: 0[2]}",
		"${item-singular: 5[1]}, ${species-plural: 12[4]}",
		"${resource: 0xDEADBEEF}",
	}
	for _, s := range cases {
		encoded, err := EncodeText(s, ModeDialog)
		if err != nil {
			t.Fatalf("EncodeText(%q): %v", s, err)
		}
		decoded, err := DecodeText(encoded, ModeDialog)
		if err != nil {
			t.Fatalf("DecodeText(%x): %v", encoded, err)
		}
		if decoded != s {
			t.Fatalf("round trip mismatch: %q -> %x -> %q", s, encoded, decoded)
		}
	}
}

func TestDecodeTextDialogNewlineAndTrim(t *testing.T) {
	raw := []byte{'H', 'i', 0x07, 0x00, 0x07}
	got, err := DecodeText(raw, ModeDialog)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if got != "Hi" {
		t.Fatalf("got %q, want %q", got, "Hi")
	}
}

func TestDecodeTextUnknownControlByteRoundTrips(t *testing.T) {
	raw := []byte{0x03, 0xAB, 'x'}
	decoded, err := DecodeText(raw, ModeSimple)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	encoded, err := EncodeText(decoded, ModeSimple)
	if err != nil {
		t.Fatalf("EncodeText(%q): %v", decoded, err)
	}
	if !reflect.DeepEqual(encoded, raw) {
		t.Fatalf("got %#v, want %#v", encoded, raw)
	}
}

func TestDecodeTextIconFallbackRoundTrips(t *testing.T) {
	raw := []byte{0xEF, 0xFF}
	decoded, err := DecodeText(raw, ModeSimple)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	encoded, err := EncodeText(decoded, ModeSimple)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	if !reflect.DeepEqual(encoded, raw) {
		t.Fatalf("got %#v, want %#v", encoded, raw)
	}
}

func TestEncodeRuneUTF16Fallback(t *testing.T) {
	// U+3042 (hiragana "a") has no conversion-table entry (the table's
	// Private Use Area code points start at U+E000, well above it), so encodeRune
	// must fall through to the UTF-16LE encoder.
	r := rune(0x3042)
	if _, ok := reverseConversionTable()[uint16(r)]; ok {
		t.Fatalf("test rune %U unexpectedly has a conversion-table entry", r)
	}
	got, err := encodeRune(r)
	if err != nil {
		t.Fatalf("encodeRune: %v", err)
	}
	want := []byte{0x42, 0x30} // UTF-16LE code unit 0x3042
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestLookupConversionInjective(t *testing.T) {
	seen := make(map[uint16]bool)
	for i := 0x20; i <= 0x7E; i++ {
		v, _, ok := lookupConversion(byte(i), 0)
		if !ok {
			t.Fatalf("ascii byte 0x%02X should convert", i)
		}
		if seen[v] {
			t.Fatalf("code point %d produced by more than one byte", v)
		}
		seen[v] = true
	}
	for _, prefix := range secondaryPrefixes {
		for second := 0; second < populatedSecondaryEntries; second++ {
			v, consumed, ok := lookupConversion(prefix, byte(second))
			if !consumed || !ok {
				t.Fatalf("prefix 0x%02X second 0x%02X should convert", prefix, second)
			}
			if seen[v] {
				t.Fatalf("code point %d produced by more than one (prefix,second) pair", v)
			}
			seen[v] = true
		}
	}
}
