// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "math/bits"

// rotateByteRight rotates b right by shift bits, for shift in 1..=7.
func rotateByteRight(b byte, shift uint) byte {
	return (b >> shift) | (b << (8 - shift))
}

// rotateByteLeft rotates b left by shift bits, for shift in 1..=7. It is
// the inverse of rotateByteRight for the same shift.
func rotateByteLeft(b byte, shift uint) byte {
	return (b << shift) | (b >> (8 - shift))
}

// rotateAllRight applies rotateByteRight to every byte of buf in place and
// returns buf for chaining.
func rotateAllRight(buf []byte, shift uint) []byte {
	for i, b := range buf {
		buf[i] = rotateByteRight(b, shift)
	}
	return buf
}

// rotateAllLeft applies rotateByteLeft to every byte of buf in place and
// returns buf for chaining.
func rotateAllLeft(buf []byte, shift uint) []byte {
	for i, b := range buf {
		buf[i] = rotateByteLeft(b, shift)
	}
	return buf
}

// dataShiftSize implements get_data_shift_size: a popcount-derived rotation
// amount used by the MenuTable's comm/mgc_ entries. Buffers shorter than 13
// bytes are never rotated.
func dataShiftSize(buf []byte) uint {
	if len(buf) < 13 {
		return 0
	}
	n := bits.OnesCount8(buf[2]) - bits.OnesCount8(buf[11]) + bits.OnesCount8(buf[12])
	if n < 0 {
		n = -n
	}
	switch n % 5 {
	case 0:
		return 7
	case 1:
		return 1
	case 2:
		return 6
	case 3:
		return 2
	default: // 4
		return 5
	}
}

// maskedRotateRight rotates every byte of buf right by shift, except that
// the bytes at indices 2, 11 and 12 are left untouched. Used by MenuTable
// ability/magic entries. buf must be at least 13 bytes long.
func maskedRotateRight(buf []byte, shift uint) []byte {
	b2, b11, b12 := buf[2], buf[11], buf[12]
	rotateAllRight(buf, shift)
	buf[2], buf[11], buf[12] = b2, b11, b12
	return buf
}

// maskedRotateLeft is the inverse of maskedRotateRight.
func maskedRotateLeft(buf []byte, shift uint) []byte {
	b2, b11, b12 := buf[2], buf[11], buf[12]
	rotateAllLeft(buf, shift)
	buf[2], buf[11], buf[12] = b2, b11, b12
	return buf
}
