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

// Package policy implements the file rotation policy engine: path
// generation rules, rotation restrictions, file openers, and the
// top-level Policy that ties them together into a single write-accepting
// log sink.
package policy

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PathPart generates one component of a filesystem path and can match
// previously-generated components of the same kind.
type PathPart interface {
	// Generate returns a new string usable as a path component.
	Generate() string
	// Regex returns an expression matching anything Generate can produce.
	Regex() *regexp.Regexp
	// IsEarlier reports whether a sorts before b under this part's rules.
	// a and b are substrings already known to match Regex.
	IsEarlier(a, b string) bool
	// AppendRestrictions adds any restrictions this part implies to store.
	AppendRestrictions(store *RestrictionStore)
}

// ErrIllegalText is returned by NewText when the literal contains a
// folder separator.
var ErrIllegalText = errors.New("myrrh/policy: text part must not contain a folder separator")

// Text is a hard-coded literal path component.
type Text struct{ s string }

// NewText returns a Text part. It fails if s contains '/' or '\'.
func NewText(s string) (Text, error) {
	if strings.ContainsAny(s, "/\\") {
		return Text{}, fmt.Errorf("%w: %q", ErrIllegalText, s)
	}
	return Text{s: s}, nil
}

func (t Text) Generate() string { return t.s }

func (t Text) Regex() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(t.s))
}

func (t Text) IsEarlier(a, b string) bool { return false }

func (t Text) AppendRestrictions(store *RestrictionStore) {}

// Folder is a folder separator path part.
type Folder struct{}

func NewFolder() Folder { return Folder{} }

func (Folder) Generate() string          { return "/" }
func (Folder) Regex() *regexp.Regexp     { return regexp.MustCompile(`/`) }
func (Folder) IsEarlier(a, b string) bool { return a < b }
func (Folder) AppendRestrictions(*RestrictionStore) {}

// Date is a path part that generates the local date as YYYYMMDD and
// contributes a DateChanged restriction.
type Date struct{ now func() time.Time }

func NewDate() Date { return Date{now: time.Now} }

var dateRegex = regexp.MustCompile(`\d{4}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])`)

func (d Date) nowFunc() func() time.Time {
	if d.now != nil {
		return d.now
	}
	return time.Now
}

func (d Date) Generate() string {
	return d.nowFunc()().Format("20060102")
}

func (Date) Regex() *regexp.Regexp { return dateRegex }

func (Date) IsEarlier(a, b string) bool { return a < b }

// AppendRestrictions adds a DateChanged restriction driven by the same
// clock this Date part uses to generate strings, so a rotation is
// triggered exactly when the path's own date component would change.
func (d Date) AppendRestrictions(store *RestrictionStore) {
	store.Add(&DateChangedRestriction{now: d.nowFunc()})
}

// Time is a path part that generates a sub-second-unique timestamp of the
// form HHMMSS-FFFFFF-k, where FFFFFF is the microsecond fraction and k
// disambiguates successive calls that land within the same microsecond
// tick.
type Time struct {
	now func() time.Time
	mu  sync.Mutex
	last string
	counter int
}

func NewTime() *Time { return &Time{now: time.Now} }

var timeRegex = regexp.MustCompile(`([01]\d|2[0-3])[0-5]\d[0-5]\d-\d{6}-\d+`)

func (t *Time) Generate() string {
	nowFn := t.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	stamp := fmt.Sprintf("%s-%06d", now.Format("150405"), now.Nanosecond()/1000)

	t.mu.Lock()
	defer t.mu.Unlock()
	if stamp == t.last {
		t.counter++
	} else {
		t.last = stamp
		t.counter = 0
	}
	return fmt.Sprintf("%s-%d", stamp, t.counter)
}

func (*Time) Regex() *regexp.Regexp { return timeRegex }

func (*Time) IsEarlier(a, b string) bool { return a < b }

func (*Time) AppendRestrictions(*RestrictionStore) {}

// Index is a path part that generates a monotonically increasing decimal
// counter, starting at 1.
type Index struct {
	mu      sync.Mutex
	counter uint64
}

func NewIndex() *Index { return &Index{} }

var indexRegex = regexp.MustCompile(`\d+`)

func (idx *Index) Generate() string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.counter++
	return strconv.FormatUint(idx.counter, 10)
}

func (*Index) Regex() *regexp.Regexp { return indexRegex }

func (*Index) IsEarlier(a, b string) bool {
	an, aerr := strconv.ParseUint(a, 10, 64)
	bn, berr := strconv.ParseUint(b, 10, 64)
	if aerr != nil || berr != nil {
		return a < b
	}
	return an < bn
}

func (*Index) AppendRestrictions(*RestrictionStore) {}

// ProcessID is a path part that generates the current process id.
type ProcessID struct{ pid string }

func NewProcessID() ProcessID {
	return ProcessID{pid: strconv.Itoa(os.Getpid())}
}

func (p ProcessID) Generate() string { return p.pid }

func (p ProcessID) Regex() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(p.pid))
}

func (p ProcessID) IsEarlier(a, b string) bool { return false }

func (p ProcessID) AppendRestrictions(*RestrictionStore) {}

// splitText tokenizes a free-form string on '/' and '\': maximal runs of
// non-separator characters become Text parts, each separator becomes a
// Folder part.
func splitText(s string) ([]PathPart, error) {
	var parts []PathPart
	var run strings.Builder
	flush := func() error {
		if run.Len() == 0 {
			return nil
		}
		t, err := NewText(run.String())
		if err != nil {
			return err
		}
		parts = append(parts, t)
		run.Reset()
		return nil
	}
	for _, r := range s {
		if r == '/' || r == '\\' {
			if err := flush(); err != nil {
				return nil, err
			}
			parts = append(parts, NewFolder())
			continue
		}
		run.WriteRune(r)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return parts, nil
}
