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

import "time"

// Restriction decides whether the active file must be reopened before the
// next write.
type Restriction interface {
	// IsRestricted reports whether the file should be reopened, given its
	// currently written size and the size of the pending write.
	IsRestricted(writtenSize int64, pending int64) bool
}

// SizeRestriction triggers a reopen once the pending write would exceed
// a maximum size.
type SizeRestriction struct{ max int64 }

// NewSizeRestriction returns a SizeRestriction that restricts once
// writtenSize+pending would exceed max.
func NewSizeRestriction(max int64) *SizeRestriction {
	return &SizeRestriction{max: max}
}

func (s *SizeRestriction) IsRestricted(writtenSize, pending int64) bool {
	return writtenSize+pending > s.max
}

// DateChangedRestriction triggers a reopen exactly once per date change,
// observed lazily: the first call after construction establishes the
// baseline and reports false; afterward it reports true exactly once, the
// first time the observed date differs from the baseline.
type DateChangedRestriction struct {
	now  func() time.Time
	last string
	seen bool
}

// NewDateChangedRestriction returns a DateChangedRestriction using the
// system clock.
func NewDateChangedRestriction() *DateChangedRestriction {
	return &DateChangedRestriction{now: time.Now}
}

func (d *DateChangedRestriction) IsRestricted(int64, int64) bool {
	today := d.now().Format("20060102")
	if !d.seen {
		d.seen = true
		d.last = today
		return false
	}
	if today == d.last {
		return false
	}
	d.last = today
	return true
}

// RestrictionStore holds restrictions in insertion order. IsRestricted
// evaluates them in that order up to and including the first one that
// reports true, and reports true if any of them does; restrictions after
// the first true result are not evaluated.
type RestrictionStore struct {
	restrictions []Restriction
}

// NewRestrictionStore returns an empty store.
func NewRestrictionStore() *RestrictionStore {
	return &RestrictionStore{}
}

// Add appends a restriction.
func (s *RestrictionStore) Add(r Restriction) {
	s.restrictions = append(s.restrictions, r)
}

// IsRestricted walks the restrictions in insertion order and reports true
// as soon as one of them does, without evaluating the rest. Restrictions
// before the first true result are always evaluated, so stateful ones
// (DateChanged) observe every check that precedes a trigger.
func (s *RestrictionStore) IsRestricted(writtenSize, pending int64) bool {
	for _, r := range s.restrictions {
		if r.IsRestricted(writtenSize, pending) {
			return true
		}
	}
	return false
}
