// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import "encoding/binary"

// VerifyWalker wraps a read-only ByteWalker and turns every write into an
// assertion that the written bytes equal what is already at that position.
// It is the round-trip oracle described in spec.md §4.1: a format's Write
// is run once against a VerifyWalker seeded with the original bytes, and
// any divergence surfaces as a *RoundTripMismatchError carrying the first
// differing offset and a ±10-byte hex window, rather than silently
// succeeding.
type VerifyWalker struct {
	source []byte
	pos    uint64
}

// NewVerifyWalker returns a VerifyWalker over the original bytes of a
// previously-parsed file. Read operations return bytes from source; write
// operations assert equality against it.
func NewVerifyWalker(source []byte) *VerifyWalker {
	return &VerifyWalker{source: source}
}

func (w *VerifyWalker) Offset() uint64    { return w.pos }
func (w *VerifyWalker) Len() uint64       { return uint64(len(w.source)) }
func (w *VerifyWalker) Remaining() uint64 { return w.Len() - w.pos }

func (w *VerifyWalker) Goto(offset uint64) error {
	if offset > w.Len() {
		return &OutOfRangeError{BufferLen: w.Len(), Requested: offset}
	}
	w.pos = offset
	return nil
}

func (w *VerifyWalker) Skip(n uint64) error { return w.Goto(w.pos + n) }

func (w *VerifyWalker) ReadBytesAt(offset, n uint64) ([]byte, error) {
	if offset+n > w.Len() || offset+n < offset {
		return nil, &OutOfRangeError{BufferLen: w.Len(), Requested: offset + n}
	}
	return w.source[offset : offset+n], nil
}

func (w *VerifyWalker) TakeBytes(n uint64) ([]byte, error) {
	b, err := w.ReadBytesAt(w.pos, n)
	if err != nil {
		return nil, err
	}
	w.pos += n
	return b, nil
}

func (w *VerifyWalker) ReadU8() (uint8, error) {
	b, err := w.TakeBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}
func (w *VerifyWalker) ReadU16() (uint16, error) {
	b, err := w.TakeBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}
func (w *VerifyWalker) ReadU32() (uint32, error) {
	b, err := w.TakeBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
func (w *VerifyWalker) ReadU64() (uint64, error) {
	b, err := w.TakeBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
func (w *VerifyWalker) ReadI16() (int16, error) { v, err := w.ReadU16(); return int16(v), err }
func (w *VerifyWalker) ReadI32() (int32, error) { v, err := w.ReadU32(); return int32(v), err }
func (w *VerifyWalker) ReadI64() (int64, error) { v, err := w.ReadU64(); return int64(v), err }

func (w *VerifyWalker) ReadU16BE() (uint16, error) {
	b, err := w.TakeBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}
func (w *VerifyWalker) ReadU32BE() (uint32, error) {
	b, err := w.TakeBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}
func (w *VerifyWalker) ReadU64BE() (uint64, error) {
	b, err := w.TakeBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
func (w *VerifyWalker) ReadI16BE() (int16, error) { v, err := w.ReadU16BE(); return int16(v), err }
func (w *VerifyWalker) ReadI32BE() (int32, error) { v, err := w.ReadU32BE(); return int32(v), err }
func (w *VerifyWalker) ReadI64BE() (int64, error) { v, err := w.ReadU64BE(); return int64(v), err }

func (w *VerifyWalker) ReadU16At(offset uint64) (uint16, error) {
	b, err := w.ReadBytesAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}
func (w *VerifyWalker) ReadU32At(offset uint64) (uint32, error) {
	b, err := w.ReadBytesAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (w *VerifyWalker) StepUntil(b byte) ([]byte, error) {
	start := w.pos
	for w.pos < w.Len() {
		if w.source[w.pos] == b {
			return w.source[start:w.pos], nil
		}
		w.pos++
	}
	return w.source[start:w.pos], nil
}

func (w *VerifyWalker) StepWhile(pred func(byte) bool) ([]byte, error) {
	start := w.pos
	for w.pos < w.Len() && pred(w.source[w.pos]) {
		w.pos++
	}
	return w.source[start:w.pos], nil
}

func (w *VerifyWalker) StepUntilChars(chars []byte) ([]byte, error) {
	start := w.pos
	for {
		if w.pos+uint64(len(chars)) > w.Len() {
			w.pos = w.Len()
			return w.source[start:w.pos], nil
		}
		if string(w.source[w.pos:w.pos+uint64(len(chars))]) == string(chars) {
			return w.source[start:w.pos], nil
		}
		w.pos++
	}
}

func (w *VerifyWalker) StepUntilEscaped(end, escape byte) ([]byte, error) {
	start := w.pos
	for w.pos < w.Len() {
		b := w.source[w.pos]
		if b == escape {
			w.pos += 2
			continue
		}
		if b == end {
			return w.source[start:w.pos], nil
		}
		w.pos++
	}
	return w.source[start:w.pos], nil
}

func (w *VerifyWalker) ExpectU8(value uint8) error {
	off := w.pos
	got, err := w.ReadU8()
	if err != nil {
		return err
	}
	if got != value {
		return &MismatchError{Offset: off, Expected: []byte{value}, Found: []byte{got}}
	}
	return nil
}

func (w *VerifyWalker) ExpectBytes(value []byte) error {
	off := w.pos
	got, err := w.TakeBytes(uint64(len(value)))
	if err != nil {
		return err
	}
	for i := range value {
		if got[i] != value[i] {
			return &MismatchError{Offset: off, Expected: value, Found: got}
		}
	}
	return nil
}

func (w *VerifyWalker) ExpectN(value uint8, n uint64) error {
	off := w.pos
	got, err := w.TakeBytes(n)
	if err != nil {
		return err
	}
	for _, b := range got {
		if b != value {
			return &MismatchError{Offset: off, Expected: []byte{value}, Found: got}
		}
	}
	return nil
}

func (w *VerifyWalker) ExpectUTF8(s string) error { return w.ExpectBytes([]byte(s)) }

// assertWrite is the core of the oracle: it compares b against the bytes
// already present at the cursor, advancing on match and failing with a
// *RoundTripMismatchError carrying a ±10-byte hex window on the first
// divergent byte.
func (w *VerifyWalker) assertWrite(b []byte) error {
	end := w.pos + uint64(len(b))
	if end > w.Len() {
		return &OutOfRangeError{BufferLen: w.Len(), Requested: end}
	}
	for i, got := range b {
		want := w.source[w.pos+uint64(i)]
		if got != want {
			off := w.pos + uint64(i)
			return &RoundTripMismatchError{Offset: off, Window: hexWindow(w.source, off, 10)}
		}
	}
	w.pos = end
	return nil
}

func (w *VerifyWalker) WriteBytes(b []byte) error { return w.assertWrite(b) }
func (w *VerifyWalker) WriteStr(s string) error   { return w.assertWrite([]byte(s)) }

func (w *VerifyWalker) WriteU8(v uint8) error { return w.assertWrite([]byte{v}) }
func (w *VerifyWalker) WriteU16(v uint16) error {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return w.assertWrite(b)
}
func (w *VerifyWalker) WriteU32(v uint32) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return w.assertWrite(b)
}
func (w *VerifyWalker) WriteU64(v uint64) error {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return w.assertWrite(b)
}
func (w *VerifyWalker) WriteI16(v int16) error { return w.WriteU16(uint16(v)) }
func (w *VerifyWalker) WriteI32(v int32) error { return w.WriteU32(uint32(v)) }
func (w *VerifyWalker) WriteI64(v int64) error { return w.WriteU64(uint64(v)) }
func (w *VerifyWalker) WriteU16BE(v uint16) error {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return w.assertWrite(b)
}
func (w *VerifyWalker) WriteU32BE(v uint32) error {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return w.assertWrite(b)
}

func (w *VerifyWalker) WriteAt(offset uint64, b []byte) error {
	saved := w.pos
	w.pos = offset
	err := w.assertWrite(b)
	w.pos = saved
	return err
}

// SetSize is a no-op for VerifyWalker: the source length is fixed and any
// write past it already fails via assertWrite's bounds check.
func (w *VerifyWalker) SetSize(uint64) error { return nil }

func (w *VerifyWalker) IntoVec() []byte { return w.source }
