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

package policy

import (
	"os"
	"path/filepath"

	"github.com/byon/myrrh/file"
)

// FileHandle wraps an open output file together with the byte count
// already written to it (from previous writes, or the file's existing
// size at append-open time).
type FileHandle struct {
	path        string
	f           *os.File
	writtenSize int64
}

// Path returns the filesystem path this handle refers to.
func (h *FileHandle) Path() string { return h.path }

// WrittenSize returns the number of bytes already accounted for against
// this handle.
func (h *FileHandle) WrittenSize() int64 { return h.writtenSize }

// Write appends text to the file, returning the bytes written, or −1 on
// failure. It never panics or returns a Go error: failures are reported
// only through the sentinel return value, per the no-throw write contract.
func (h *FileHandle) Write(text string) int64 {
	if h.f == nil {
		return -1
	}
	n, err := h.f.WriteString(text)
	if err != nil {
		return -1
	}
	h.writtenSize += int64(n)
	return int64(n)
}

// Close releases the underlying OS handle. Safe to call on a failed
// handle.
func (h *FileHandle) Close() {
	if h.f != nil {
		h.f.Close()
		h.f = nil
	}
}

// Failed reports whether this handle resulted from a failed open: it will
// report WrittenSize()==0 and fail every subsequent write.
func (h *FileHandle) Failed() bool { return h.f == nil }

// Equal reports whether two handles refer to the same filesystem path.
func (h *FileHandle) Equal(other *FileHandle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.path == other.path
}

// failedHandle returns a handle that reports WrittenSize()==0 and fails
// every subsequent write, per the Opener no-throw contract.
func failedHandle(path string) *FileHandle {
	return &FileHandle{path: path}
}

// Opener opens a FileHandle ready to receive writes for a Path. Every
// Opener provides a no-throw contract: internal failures yield a handle
// whose WrittenSize is 0 and whose writes always fail, rather than a Go
// error.
type Opener interface {
	Open(p *Path) *FileHandle
}

// mkdirParent best-effort creates the parent directory of path. An
// existing file where a directory is expected is tolerated: the caller's
// subsequent open attempt will simply fail on its own.
func mkdirParent(path string) {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return
	}
	_ = os.MkdirAll(dir, 0o755)
}

// Creator truncates (or creates) the generated path and opens it for
// writing.
type Creator struct{}

func NewCreator() Creator { return Creator{} }

func (Creator) Open(p *Path) *FileHandle {
	path := p.Generate()
	mkdirParent(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return failedHandle(path)
	}
	return &FileHandle{path: path, f: f, writtenSize: 0}
}

// Appender scans the path's parent directory for the latest existing file
// matching the path's entities and appends to it; if no candidate is
// found anywhere along the walk, it falls back to creating a brand new
// path.
type Appender struct{}

func NewAppender() Appender { return Appender{} }

func (Appender) Open(p *Path) *FileHandle {
	path, ok := findLatest(p)
	if !ok {
		path = p.Generate()
	}
	mkdirParent(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return failedHandle(path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return failedHandle(path)
	}
	return &FileHandle{path: path, f: f, writtenSize: info.Size()}
}

// findLatest walks the path's entities, descending from the parent
// directory and at each level picking the ranked-latest matching child,
// per the leaf entity adopting the match as the target file rather than
// descending further.
func findLatest(p *Path) (string, bool) {
	entities := p.Entities()
	if len(entities) == 0 {
		return "", false
	}

	dir := p.ParentPath()
	if dir == "" {
		dir = "."
	}

	for i, e := range entities {
		names, err := matchingChildren(dir, e)
		if err != nil || len(names) == 0 {
			return "", false
		}
		best := rankLatest(e, names)
		dir = filepath.Join(dir, best)
		if i == len(entities)-1 {
			return dir, true
		}
		info, err := os.Stat(dir)
		if err != nil {
			return "", false
		}
		if !info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

func matchingChildren(dir string, e *Entity) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	matcher := e.Matcher()
	var names []string
	for _, entry := range entries {
		if matcher.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Resizer opens the generated path, cropping any existing content to its
// last sizeLeft whole-line-aligned bytes, and opens the result for
// appending.
type Resizer struct {
	sizeLeft int64
}

// NewResizer returns a Resizer that keeps at most sizeLeft trailing bytes
// of existing content, realigned to the next newline.
func NewResizer(sizeLeft int64) Resizer {
	return Resizer{sizeLeft: sizeLeft}
}

func (r Resizer) Open(p *Path) *FileHandle {
	path := p.Generate()

	if _, err := os.Stat(path); err == nil {
		resize := file.NewFileResize(path, file.FromEnd(r.sizeLeft), file.End())
		if err := resize.Resize(); err != nil {
			return failedHandle(path)
		}
	} else {
		mkdirParent(path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return failedHandle(path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return failedHandle(path)
	}
	return &FileHandle{path: path, f: f, writtenSize: info.Size()}
}
