/*
   Copyright 2025 The Myrrh Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package file provides the exception-safe file primitives used by the
// rotation policy engine: position scanning, ranged copying, and
// transactional in-place rewriting.
package file

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// ErrNotOpen is returned when a scan is attempted against a nil or closed
// file handle.
var ErrNotOpen = errors.New("myrrh/file: not open")

// PositionScanner computes a byte offset inside an open file without
// disturbing the file's read position: Scan always restores the original
// offset before returning, on every path including errors.
type PositionScanner interface {
	// Scan returns the byte offset this scanner searches for in f.
	// The returned offset satisfies 0 <= offset <= size(f).
	Scan(f *os.File) (int64, error)
}

// Start scans to the beginning of the file, offset 0.
func Start() PositionScanner { return toEdge{end: false} }

// End scans to the end of the file, offset == size(f).
func End() PositionScanner { return toEdge{end: true} }

type toEdge struct{ end bool }

func (t toEdge) Scan(f *os.File) (int64, error) {
	if f == nil {
		return 0, ErrNotOpen
	}
	orig, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ErrNotOpen
	}
	defer f.Seek(orig, io.SeekStart) //nolint:errcheck // best-effort restore

	if !t.end {
		return 0, nil
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ErrNotOpen
	}
	return size, nil
}

// FromStart scans forward from byte offset p and returns the position
// immediately after the next newline, or size(f) if p is at or beyond the
// end of the file, or if no newline follows p before end of file.
func FromStart(p int64) PositionScanner { return fromStart{point: p} }

type fromStart struct{ point int64 }

func (s fromStart) Scan(f *os.File) (int64, error) {
	if f == nil {
		return 0, ErrNotOpen
	}
	orig, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ErrNotOpen
	}
	defer f.Seek(orig, io.SeekStart) //nolint:errcheck

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ErrNotOpen
	}

	point := s.point
	if point < 0 {
		point = 0
	}
	if point >= size {
		return size, nil
	}

	if _, err := f.Seek(point, io.SeekStart); err != nil {
		return 0, ErrNotOpen
	}
	return scanPastNewline(f, size)
}

// FromEnd scans backward k bytes from the end of the file and returns the
// position immediately after the next newline from there, or size(f) if k
// is at or beyond the size of the file.
func FromEnd(k int64) PositionScanner { return fromEnd{bytesFromEnd: k} }

type fromEnd struct{ bytesFromEnd int64 }

func (s fromEnd) Scan(f *os.File) (int64, error) {
	if f == nil {
		return 0, ErrNotOpen
	}
	orig, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ErrNotOpen
	}
	defer f.Seek(orig, io.SeekStart) //nolint:errcheck

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ErrNotOpen
	}

	k := s.bytesFromEnd
	if k < 0 {
		k = 0
	}
	if k >= size {
		return size, nil
	}

	return fromStart{point: size - k}.Scan(f)
}

// scanPastNewline advances the file's current read position past the next
// '\n' and returns the resulting offset, or size if no newline is found
// before the end of the file. Callers must have already seeked to the
// desired starting point.
func scanPastNewline(f *os.File, size int64) (int64, error) {
	r := bufio.NewReader(f)
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ErrNotOpen
	}
	for {
		b, err := r.ReadByte()
		if err != nil {
			// EOF without a trailing newline: the position is the end.
			return size, nil
		}
		pos++
		if b == '\n' {
			return pos, nil
		}
	}
}
