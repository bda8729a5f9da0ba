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

package file

import "os"

// FileResize crops a file in place to the byte range described by a
// PartialCopy, composing SafeRewrite (transactional in-place replace) with
// PartialCopy (ranged copy). If the copy fails, the original file is left
// untouched.
type FileResize struct {
	path string
	copy PartialCopy
}

// NewFileResize returns a FileResize that crops path to [start, end) as
// resolved against the file's current content.
func NewFileResize(path string, start, end PositionScanner) FileResize {
	return FileResize{path: path, copy: NewPartialCopy(start, end)}
}

// Resize performs the crop. It is strongly exception-safe: on any failure
// path retains its original content.
func (r FileResize) Resize() error {
	in, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	tx, err := Begin(r.path)
	if err != nil {
		return err
	}
	defer tx.Close() //nolint:errcheck // rolls back unless Commit was called

	out, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := r.copy.Copy(in, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return tx.Commit()
}
