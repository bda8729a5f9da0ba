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

// The functions in this file build commonly-needed Policy configurations.
// They are intentionally not configurable beyond their parameters: callers
// that need anything more specific should build a Path and Policy directly
// from the PathPart/Opener/Restriction primitives.

// SizeRestrictedLog builds a policy that appends to a single file
// "<baseName>.log" in dir, resizing it down to half of maxBytes
// (realigned to the nearest whole line) once it would exceed maxBytes.
func SizeRestrictedLog(dir, baseName string, maxBytes int64) (*Policy, error) {
	path := NewPath(dir)
	if err := appendBaseName(path, baseName, ".log"); err != nil {
		return nil, err
	}

	p := NewPolicy(path, NewAppender(), NewResizer(maxBytes/2))
	p.AddRestriction(NewSizeRestriction(maxBytes))
	return p, nil
}

// SizeRestrictedLogs builds a policy that starts a new timestamped file
// "<baseName><time>.log" each time the active file would exceed maxBytes.
func SizeRestrictedLogs(dir, baseName string, maxBytes int64) (*Policy, error) {
	path := NewPath(dir)
	text, err := NewText(baseName)
	if err != nil {
		return nil, err
	}
	if err := path.Append(text, NewTime()); err != nil {
		return nil, err
	}
	if err := path.AppendString(".log"); err != nil {
		return nil, err
	}

	p := NewPolicy(path, NewAppender(), NewCreator())
	p.AddRestriction(NewSizeRestriction(maxBytes))
	return p, nil
}

// DatedFolderLog builds a policy that writes "<baseName>.log" inside a
// subfolder of dir named after the current date, moving to a fresh file
// whenever the date changes (Date's DateChanged restriction is added
// automatically by NewPolicy).
func DatedFolderLog(dir, baseName string) (*Policy, error) {
	path := NewPath(dir)
	if err := path.Append(NewDate(), NewFolder()); err != nil {
		return nil, err
	}
	if err := appendBaseName(path, baseName, ".log"); err != nil {
		return nil, err
	}

	return NewPolicy(path, NewAppender(), NewCreator()), nil
}

// IndexedLog builds a policy that names files "<baseName><index><ext>",
// with index starting at 1. The initial open resumes the highest-numbered
// existing file; callers drive rotation by calling AddRestriction (for
// example with a SizeRestriction) since IndexedLog imposes none of its
// own.
func IndexedLog(dir, baseName, ext string) (*Policy, error) {
	path := NewPath(dir)
	text, err := NewText(baseName)
	if err != nil {
		return nil, err
	}
	if err := path.Append(text, NewIndex()); err != nil {
		return nil, err
	}
	if err := path.AppendString(ext); err != nil {
		return nil, err
	}

	return NewPolicy(path, NewAppender(), NewCreator()), nil
}

func appendBaseName(path *Path, baseName, ext string) error {
	text, err := NewText(baseName)
	if err != nil {
		return err
	}
	if err := path.Append(text); err != nil {
		return err
	}
	return path.AppendString(ext)
}
