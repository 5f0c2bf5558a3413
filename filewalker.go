// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// FileWalker is a read-only ByteWalker backed by a memory-mapped file,
// grounded on pe.New's use of github.com/edsrzf/mmap-go in the teacher's
// file.go. It embeds a sliceWalker over the mapped region so every read
// operation is shared with NewSliceWalker.
type FileWalker struct {
	ByteWalker
	data mmap.MMap
	f    *os.File
}

// OpenFileWalker memory-maps path read-only and returns a FileWalker over
// its contents. Callers must call Close when done.
func OpenFileWalker(path string) (*FileWalker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileWalker{
		ByteWalker: NewSliceWalker(data),
		data:       data,
		f:          f,
	}, nil
}

// Close unmaps the file and closes the underlying descriptor.
func (w *FileWalker) Close() error {
	if w.data != nil {
		_ = w.data.Unmap()
	}
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}
