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
	"strings"
	"sync/atomic"
)

// Policy composes a Path, an initial Opener, a subsequent Opener and a
// RestrictionStore into a single write-accepting log sink. It owns
// exactly one FileHandle at a time, fully closing the old one before a
// new one is opened.
//
// Policy is not internally synchronized: callers sharing one Policy
// across goroutines must serialize Write calls themselves (mlog.Log does
// this with its write-mutex). This mirrors the source design, where
// restriction and path-part state only ever changes while that outer
// mutex is held.
type Policy struct {
	path       *Path
	subsequent Opener
	store      *RestrictionStore
	current    *FileHandle

	rotations    atomic.Int64
	failedWrites atomic.Int64
}

// NewPolicy builds a Policy: path's own restrictions (e.g. Date's
// DateChanged) are registered first, then the policy is opened with
// initial, and subsequent becomes the opener used on every later
// rotation.
func NewPolicy(path *Path, initial, subsequent Opener) *Policy {
	store := NewRestrictionStore()
	path.AppendRestrictions(store)

	p := &Policy{path: path, subsequent: subsequent, store: store}
	p.current = initial.Open(path)
	return p
}

// AddRestriction appends a caller-supplied restriction, evaluated after
// the ones contributed by the Path's own parts.
func (p *Policy) AddRestriction(r Restriction) {
	p.store.Add(r)
}

// Write writes text to the active file, rotating first if any
// restriction requires it. It never panics; on failure it returns −1.
func (p *Policy) Write(text string) int64 {
	original := p.current.Path()
	pending := int64(len(text))

	first := true
	for p.store.IsRestricted(p.current.WrittenSize(), pending) {
		p.current.Close()

		next := p.subsequent.Open(p.path)
		if next.Failed() {
			p.current = next
			p.failedWrites.Add(1)
			return -1
		}
		p.rotations.Add(1)

		// Past the first pass, a reopen that lands on the original path or
		// on a fresh empty file cannot make further progress.
		stop := !first && (next.Path() == original || next.WrittenSize() == 0)
		p.current = next
		if stop {
			break
		}
		first = false
	}

	n := p.current.Write(text)
	if n < 0 {
		p.failedWrites.Add(1)
		return -1
	}
	newlines := int64(strings.Count(text, "\n"))
	if n == pending || n == pending+newlines {
		return pending
	}
	return n
}

// CurrentPath returns the path of the currently open file.
func (p *Policy) CurrentPath() string { return p.current.Path() }

// IsOpen reports whether the currently open file handle is usable.
func (p *Policy) IsOpen() bool { return !p.current.Failed() }

// Rotations returns the number of times Write has reopened the file.
func (p *Policy) Rotations() int64 { return p.rotations.Load() }

// FailedWrites returns the number of Write calls that returned −1.
func (p *Policy) FailedWrites() int64 { return p.failedWrites.Load() }
