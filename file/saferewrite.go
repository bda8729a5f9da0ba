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

import (
	"os"
)

// tempSuffix names the side file a SafeRewrite moves the original content
// to while the rewrite is in progress.
const tempSuffix = ".myrrh-tmp"

// SafeRewrite is a transactional in-place rewrite of a single path: the
// original content is moved aside, the caller rebuilds path from scratch,
// and Commit discards the saved original. If Commit is never called,
// Rollback (or Close without a prior Commit) restores the original,
// undoing whatever the caller wrote to path.
type SafeRewrite struct {
	path      string
	temp      string
	committed bool
	done      bool
}

// Begin moves path aside and returns a SafeRewrite transaction. It is not
// an error for path to not exist; in that case path is simply reserved and
// Rollback will remove whatever the caller created.
func Begin(path string) (*SafeRewrite, error) {
	temp := path + tempSuffix

	if err := os.Rename(path, temp); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		temp = ""
	}
	return &SafeRewrite{path: path, temp: temp}, nil
}

// TempPath returns the path the original content was moved to, or "" if
// path did not exist when the rewrite began.
func (s *SafeRewrite) TempPath() string {
	return s.temp
}

// Commit discards the saved original. After Commit, Close is a no-op.
func (s *SafeRewrite) Commit() error {
	if s.done {
		return nil
	}
	s.committed = true
	s.done = true
	if s.temp == "" {
		return nil
	}
	if err := os.Remove(s.temp); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Rollback restores the original content: whatever the caller wrote to
// path is removed, and the saved original (if any) is renamed back.
func (s *SafeRewrite) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if s.temp == "" {
		return nil
	}
	return os.Rename(s.temp, s.path)
}

// Close finalizes the transaction: it rolls back unless Commit was already
// called. Safe to call unconditionally via defer after Begin.
func (s *SafeRewrite) Close() error {
	if s.committed {
		return nil
	}
	return s.Rollback()
}
