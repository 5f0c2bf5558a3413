// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// utf16LEEncoder is the UTF-8 -> UTF-16LE boundary encoder used for runes
// that have no entry in the client's conversion tables, grounded on the
// teacher's DecodeUTF16String (helper.go), which decodes the other
// direction with the same unicode.UTF16 codec.
var utf16LEEncoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()

// TextMode selects which control-byte grammar DecodeText/EncodeText use.
// Dialog strings use 0x07 as newline and a longer tag grammar; every other
// string table uses the simple grammar.
type TextMode int

const (
	// ModeSimple is used by DMSG v1/v2/v3, EntityNames, StatusInfoTable
	// descriptions and StringTable entries.
	ModeSimple TextMode = iota
	// ModeDialog is used only by the Dialog format.
	ModeDialog
)

// iconTagNames is the fixed lookup table for the 0xEF icon opcode.
var iconTagNames = [16]string{
	"fire", "ice", "wind", "earth", "lightning", "water", "light", "dark",
	"at-open", "at-close", "on", "off", "oui", "non", "ein", "aus",
}

func iconTagIndex(name string) (int, bool) {
	for i, n := range iconTagNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// baseLength1Tags covers the handful of single-byte opcodes (outside
// 0x00-0x19 and the other fixed dispatches) that take one parameter byte
// and render as "${name: N}". The client's full vocabulary for this table
// is not recoverable from spec.md alone; these names are a documented
// placeholder (see DESIGN.md) that keeps the grammar fully invertible.
var baseLength1Tags = map[byte]string{
	0x1A: "number",
	0x1B: "item-singular",
	0x1C: "item-plural",
	0x1D: "species-singular",
	0x1E: "species-plural",
	0x1F: "job",
	0x80: "percent",
}

var baseLength1TagBytes = invertByteNames(baseLength1Tags)

// sevenFLength1Tags covers the 0x7F-prefixed single-parameter opcodes not
// covered by the fixed cases (prompt, unknown-38, the gender/entity
// choices, entity-wrap-*).
var sevenFLength1Tags = map[byte]string{
	0x10: "cutscene",
	0x20: "key-item",
	0x40: "zone-name",
}

var sevenFLength1TagBytes = invertByteNames(sevenFLength1Tags)

// subBlockSelectors maps the 0x01 sub-block's tag-selector byte to a name.
var subBlockSelectors = map[byte]string{
	0x00: "item-plural",
	0x01: "item-singular",
	0x02: "species-plural",
	0x03: "species-singular",
}

var subBlockSelectorBytes = invertByteNames(subBlockSelectors)

func invertByteNames(m map[byte]string) map[string]byte {
	out := make(map[string]byte, len(m))
	for b, name := range m {
		out[name] = b
	}
	return out
}

// DecodeText converts game-internal bytes into a Unicode string containing
// the tag grammar described in spec.md §4.2. Dialog strings are trimmed of
// trailing '\n'/'\0' before returning.
func DecodeText(data []byte, mode TextMode) (string, error) {
	var out strings.Builder
	i := 0
	n := len(data)

outer:
	for i < n {
		b := data[i]
		switch {
		case b == 0x00:
			if mode == ModeDialog {
				if i+1 < n && data[i+1] == 0x07 {
					i += 2
					break outer
				}
				out.WriteByte(0)
				i++
				continue
			}
			i++
			break outer

		case mode == ModeDialog && b == 0x07:
			out.WriteByte('\n')
			i++

		case mode == ModeSimple && b == 0x0A:
			out.WriteByte('\n')
			i++

		case b == 0x08:
			out.WriteString("${name-player}")
			i++

		case b == 0x09:
			out.WriteString("${name-npc}")
			i++

		case b == 0x0B:
			out.WriteString("${selection-lines}\n")
			i++

		case mode == ModeDialog && b == 0x01:
			consumed, tag, err := decodeSubBlock(data[i:])
			if err != nil {
				return "", err
			}
			out.WriteString(tag)
			i += consumed

		case b == 0x02:
			if i+6 > n {
				return "", &OutOfRangeError{BufferLen: uint64(n), Requested: uint64(i + 6)}
			}
			out.WriteString(fmt.Sprintf("${unknown: 0x%X}", data[i+1:i+6]))
			i += 6

		case b == 0xEF:
			if i+1 >= n {
				return "", &OutOfRangeError{BufferLen: uint64(n), Requested: uint64(i + 2)}
			}
			idx := data[i+1]
			if int(idx) < len(iconTagNames) {
				out.WriteString(fmt.Sprintf("${%s}", iconTagNames[idx]))
			} else {
				out.WriteString(fmt.Sprintf("${unknown-icon: 0x%02X}", idx))
			}
			i += 2

		case mode == ModeDialog && b == 0x7F:
			consumed, tag, terminate, err := decode7F(data[i:])
			if err != nil {
				return "", err
			}
			out.WriteString(tag)
			i += consumed
			if terminate {
				break outer
			}

		case b == 0xFD:
			if i+6 > n || data[i+5] != 0xFD {
				return "", &MismatchError{Offset: uint64(i), Expected: []byte{0xFD}, Found: data[min64(i+5, n-1):min64(i+6, n)]}
			}
			out.WriteString(fmt.Sprintf("${resource: 0x%X}", data[i+1:i+5]))
			i += 6

		case mode == ModeDialog && isBaseLength1Tag(b):
			if i+1 >= n {
				return "", &OutOfRangeError{BufferLen: uint64(n), Requested: uint64(i + 2)}
			}
			out.WriteString(fmt.Sprintf("${%s: %d}", baseLength1Tags[b], data[i+1]))
			i += 2

		case b <= 0x19:
			if i+2 <= n {
				out.WriteString(fmt.Sprintf("${unknown: 0x%02X%02X}", b, data[i+1]))
				i += 2
			} else {
				out.WriteString(fmt.Sprintf("${unknown: 0x%02X}", b))
				i++
			}

		default:
			var second byte
			consumed := 1
			_, needSecond, _ := lookupConversion(b, 0)
			var val uint16
			var ok bool
			if needSecond {
				if i+1 >= n {
					return "", &OutOfRangeError{BufferLen: uint64(n), Requested: uint64(i + 2)}
				}
				second = data[i+1]
				val, _, ok = lookupConversion(b, second)
				consumed = 2
			} else {
				val, _, ok = lookupConversion(b, 0)
			}
			if !ok {
				if needSecond {
					out.WriteString(fmt.Sprintf("${unknown-table: 0x%02X%02X}", b, second))
				} else {
					out.WriteString(fmt.Sprintf("${unknown-table: 0x%02X}", b))
				}
			} else {
				out.WriteRune(rune(val))
			}
			i += consumed
		}
	}

	s := out.String()
	if mode == ModeDialog {
		s = strings.TrimRight(s, "\n\x00")
	}
	return s, nil
}

func min64(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func isBaseLength1Tag(b byte) bool {
	_, ok := baseLength1Tags[b]
	return ok
}

// subBlockParam is one "value[len]" tuple inside a 0x01 sub-block.
type subBlockParam struct {
	Value uint64
	Len   int
}

func (p subBlockParam) String() string { return fmt.Sprintf("%d[%d]", p.Value, p.Len) }

func decodeSubBlock(data []byte) (consumed int, tag string, err error) {
	if len(data) < 3 {
		return 0, "", &OutOfRangeError{BufferLen: uint64(len(data)), Requested: 3}
	}
	l := int(data[1])
	selector := data[2]
	if l < 1 {
		return 0, "", &HeaderInvalidError{Format: "dialog-subblock", Reason: "length byte is zero"}
	}
	paramLen := l - 1
	if 3+paramLen > len(data) {
		return 0, "", &OutOfRangeError{BufferLen: uint64(len(data)), Requested: uint64(3 + paramLen)}
	}
	params, err := decodeSubBlockParams(data[3 : 3+paramLen])
	if err != nil {
		return 0, "", err
	}
	name, ok := subBlockSelectors[selector]
	if !ok {
		name = fmt.Sprintf("block-%02x", selector)
	}
	strs := make([]string, len(params))
	for i, p := range params {
		strs[i] = p.String()
	}
	tag = fmt.Sprintf("${%s: %s}", name, strings.Join(strs, ", "))
	return 3 + paramLen, tag, nil
}

func decodeSubBlockParams(buf []byte) ([]subBlockParam, error) {
	var params []subBlockParam
	i := 0
	for i < len(buf) {
		if i >= len(buf) {
			break
		}
		l := int(buf[i] ^ 0x80)
		if l != 1 && l != 2 && l != 4 {
			return nil, &HeaderInvalidError{Format: "dialog-subblock", Reason: fmt.Sprintf("invalid parameter length %d", l)}
		}
		if i+1+l+1 > len(buf) {
			return nil, &OutOfRangeError{BufferLen: uint64(len(buf)), Requested: uint64(i + 1 + l + 1)}
		}
		var value uint64
		for j := 0; j < l; j++ {
			value |= uint64(buf[i+1+j]^0x80) << (8 * uint(j))
		}
		if buf[i+1+l] != 0x80 {
			return nil, &MismatchError{Offset: uint64(i + 1 + l), Expected: []byte{0x80}, Found: []byte{buf[i+1+l]}}
		}
		params = append(params, subBlockParam{Value: value, Len: l})
		i += 1 + l + 1
	}
	return params, nil
}

func decode7F(data []byte) (consumed int, tag string, terminate bool, err error) {
	if len(data) < 2 {
		return 0, "", false, &OutOfRangeError{BufferLen: uint64(len(data)), Requested: 2}
	}
	sub := data[1]
	switch sub {
	case 0x31: // prompt
		if len(data) < 3 || data[2] != 0x00 {
			return 0, "", false, &HeaderInvalidError{Format: "dialog-prompt", Reason: "expected 0x00 after 0x7F 0x31"}
		}
		if len(data) >= 4 && data[3] == 0x07 {
			return 4, "${prompt}", true, nil
		}
		return 3, "${prompt}", false, nil
	case 0x38:
		if len(data) < 4 {
			return 0, "", false, &OutOfRangeError{BufferLen: uint64(len(data)), Requested: 4}
		}
		return 4, fmt.Sprintf("${unknown-sub: 0x%02X%02X}", data[2], data[3]), false, nil
	case 0x85:
		return 2, "${choice-player-gender}", false, nil
	case 0x90:
		return 2, "${choice-source-gender}", false, nil
	case 0x91:
		return 2, "${choice-target-gender}", false, nil
	case 0x93:
		return 2, "${related-entity}", false, nil
	case 0xFB:
		return 2, "${entity-wrap-end}", false, nil
	case 0xFC:
		return 2, "${entity-wrap-start}", false, nil
	default:
		if name, ok := sevenFLength1Tags[sub]; ok {
			if len(data) < 3 {
				return 0, "", false, &OutOfRangeError{BufferLen: uint64(len(data)), Requested: 3}
			}
			return 3, fmt.Sprintf("${%s: %d}", name, data[2]), false, nil
		}
		return 2, fmt.Sprintf("${unknown-sub-op: 0x%02X}", sub), false, nil
	}
}

// EncodeText is the inverse of DecodeText.
func EncodeText(s string, mode TextMode) ([]byte, error) {
	runes := []rune(s)
	var out []byte
	hadPrompt := false
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '$' && i+1 < len(runes) && runes[i+1] == '{':
			end := indexRune(runes, i+2, '}')
			if end < 0 {
				return nil, &HeaderInvalidError{Format: "text-encode", Reason: "unterminated tag"}
			}
			body := string(runes[i+2 : end])
			name, params := splitTagBody(body)
			b, consumedExtra, err := encodeTag(name, params, runes, end+1)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
			if name == "prompt" {
				hadPrompt = true
			}
			i = end + 1 + consumedExtra

		case r == '\n':
			if mode == ModeDialog {
				out = append(out, 0x07)
			} else {
				out = append(out, 0x0A)
			}
			i++

		case r == 0:
			out = append(out, 0x00)
			i++

		default:
			b, err := encodeRune(r)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
			i++
		}
	}

	if mode == ModeDialog {
		trailingNull := len(out) > 0 && out[len(out)-1] == 0x00
		if !hadPrompt && !trailingNull {
			out = append(out, 0x00)
		}
		out = append(out, 0x07)
	}
	return out, nil
}

func indexRune(runes []rune, start int, target rune) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func splitTagBody(body string) (name string, params string) {
	parts := strings.SplitN(body, ":", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		params = strings.TrimSpace(parts[1])
	}
	return
}

// encodeTag renders one "${name[: params]}" tag back to bytes.
// consumedExtra reports additional runes consumed past the closing brace
// (used by selection-lines, which swallows one following '\n').
func encodeTag(name, params string, runes []rune, after int) (b []byte, consumedExtra int, err error) {
	switch name {
	case "name-player":
		return []byte{0x08}, 0, nil
	case "name-npc":
		return []byte{0x09}, 0, nil
	case "selection-lines":
		extra := 0
		if after < len(runes) && runes[after] == '\n' {
			extra = 1
		}
		return []byte{0x0B}, extra, nil
	case "prompt":
		return []byte{0x7F, 0x31, 0x00}, 0, nil
	case "choice-player-gender":
		return []byte{0x7F, 0x85}, 0, nil
	case "choice-source-gender":
		return []byte{0x7F, 0x90}, 0, nil
	case "choice-target-gender":
		return []byte{0x7F, 0x91}, 0, nil
	case "related-entity":
		return []byte{0x7F, 0x93}, 0, nil
	case "entity-wrap-end":
		return []byte{0x7F, 0xFB}, 0, nil
	case "entity-wrap-start":
		return []byte{0x7F, 0xFC}, 0, nil
	case "resource":
		v, err := parseHexParam(params)
		if err != nil {
			return nil, 0, err
		}
		b := []byte{0xFD, byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v), 0xFD}
		return b, 0, nil
	case "unknown":
		raw, err := hexBytesParam(params)
		if err != nil {
			return nil, 0, err
		}
		switch len(raw) {
		case 5:
			return append([]byte{0x02}, raw...), 0, nil
		case 2:
			return raw, 0, nil // the opcode byte IS raw[0]
		default:
			return nil, 0, &UnsupportedVariantError{Format: "text-encode", Detail: "unknown tag with unexpected byte length"}
		}
	case "unknown-sub":
		raw, err := hexBytesParam(params)
		if err != nil {
			return nil, 0, err
		}
		return append([]byte{0x7F, 0x38}, raw...), 0, nil
	case "unknown-sub-op":
		raw, err := hexBytesParam(params)
		if err != nil {
			return nil, 0, err
		}
		return []byte{0x7F, raw[0]}, 0, nil
	case "unknown-icon":
		raw, err := hexBytesParam(params)
		if err != nil {
			return nil, 0, err
		}
		return []byte{0xEF, raw[0]}, 0, nil
	case "unknown-table":
		raw, err := hexBytesParam(params)
		if err != nil {
			return nil, 0, err
		}
		return raw, 0, nil
	}

	if idx, ok := iconTagIndex(name); ok {
		return []byte{0xEF, byte(idx)}, 0, nil
	}
	if opByte, ok := baseLength1TagBytes[name]; ok {
		n, err := strconv.Atoi(params)
		if err != nil {
			return nil, 0, fmt.Errorf("tag %q: %w", name, err)
		}
		return []byte{opByte, byte(n)}, 0, nil
	}
	if opByte, ok := sevenFLength1TagBytes[name]; ok {
		n, err := strconv.Atoi(params)
		if err != nil {
			return nil, 0, fmt.Errorf("tag %q: %w", name, err)
		}
		return []byte{0x7F, opByte, byte(n)}, 0, nil
	}
	if selector, ok := subBlockSelectorBytes[name]; ok {
		return encodeSubBlockTag(selector, params)
	}
	if strings.HasPrefix(name, "block-") {
		n, err := strconv.ParseUint(strings.TrimPrefix(name, "block-"), 16, 8)
		if err != nil {
			return nil, 0, fmt.Errorf("tag %q: %w", name, err)
		}
		return encodeSubBlockTag(byte(n), params)
	}
	return nil, 0, &UnsupportedVariantError{Format: "text-encode", Detail: fmt.Sprintf("unrecognised tag %q", name)}
}

func encodeSubBlockTag(selector byte, params string) ([]byte, int, error) {
	var parts []string
	if params != "" {
		parts = strings.Split(params, ",")
	}
	var paramBytes []byte
	for _, part := range parts {
		part = strings.TrimSpace(part)
		open := strings.IndexByte(part, '[')
		closeIdx := strings.IndexByte(part, ']')
		if open < 0 || closeIdx < open {
			return nil, 0, &HeaderInvalidError{Format: "text-encode", Reason: fmt.Sprintf("malformed sub-block param %q", part)}
		}
		value, err := strconv.ParseUint(part[:open], 10, 64)
		if err != nil {
			return nil, 0, err
		}
		length, err := strconv.Atoi(part[open+1 : closeIdx])
		if err != nil {
			return nil, 0, err
		}
		if length != 1 && length != 2 && length != 4 {
			return nil, 0, &UnsupportedVariantError{Format: "text-encode", Detail: "sub-block param length must be 1, 2 or 4"}
		}
		paramBytes = append(paramBytes, byte(length)^0x80)
		for j := 0; j < length; j++ {
			paramBytes = append(paramBytes, byte(value>>(8*uint(j)))^0x80)
		}
		paramBytes = append(paramBytes, 0x80)
	}
	l := 1 + len(paramBytes)
	out := []byte{0x01, byte(l), selector}
	out = append(out, paramBytes...)
	return out, 0, nil
}

func parseHexParam(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	return strconv.ParseUint(s, 16, 64)
}

func hexBytesParam(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// encodeRune converts one rune back to its game-internal byte form via the
// reverse conversion table, falling back to the rune's UTF-16LE encoding
// when it has no table entry.
func encodeRune(r rune) ([]byte, error) {
	if r >= 0 && r < 0x10000 {
		if packed, ok := reverseConversionTable()[uint16(r)]; ok {
			if packed>>8 == 0 {
				return []byte{byte(packed)}, nil
			}
			return []byte{byte(packed >> 8), byte(packed)}, nil
		}
	}
	out, err := utf16LEEncoder.Bytes([]byte(string(r)))
	if err != nil {
		return nil, fmt.Errorf("encoding rune %U as UTF-16LE: %w", r, err)
	}
	return out, nil
}
