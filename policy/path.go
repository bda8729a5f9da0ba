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
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrPathRule is returned when a Path would begin with, or contain two
// consecutive, folder separators.
var ErrPathRule = errors.New("myrrh/policy: invalid path rule")

// Path accumulates PathParts into ordered Entities and generates new
// filesystem paths from them. An Entity is the run of non-Folder parts
// between two folder separators (or between the start/end of the path and
// the nearest separator); it represents one path component.
type Path struct {
	parent   string
	entities []*Entity
	current  *Entity
}

// NewPath returns an empty Path rooted at parent. An empty parent means
// generated paths are relative to the process's working directory.
func NewPath(parent string) *Path {
	return &Path{parent: parent, current: &Entity{}}
}

// ParentPath returns the parent directory passed to NewPath.
func (p *Path) ParentPath() string { return p.parent }

// Append adds path parts, in order, to the path.
func (p *Path) Append(parts ...PathPart) error {
	for _, part := range parts {
		if _, isFolder := part.(Folder); isFolder {
			if len(p.current.parts) == 0 {
				return fmt.Errorf("%w: %s", ErrPathRule, p.folderErrorReason())
			}
			p.entities = append(p.entities, p.current)
			p.current = &Entity{}
			continue
		}
		p.current.parts = append(p.current.parts, part)
	}
	return nil
}

func (p *Path) folderErrorReason() string {
	if len(p.entities) == 0 {
		return "folder not allowed as first path part"
	}
	return "two unseparated folders not allowed in path"
}

// AppendString tokenizes s on '/' and '\' and appends the resulting Text
// and Folder parts.
func (p *Path) AppendString(s string) error {
	parts, err := splitText(s)
	if err != nil {
		return err
	}
	return p.Append(parts...)
}

// entitiesSnapshot returns all entities, including the in-progress leaf
// entity if it has any parts.
func (p *Path) entitiesSnapshot() []*Entity {
	all := make([]*Entity, len(p.entities), len(p.entities)+1)
	copy(all, p.entities)
	if len(p.current.parts) > 0 {
		all = append(all, p.current)
	}
	return all
}

// Entities returns the ordered entities that make up the path.
func (p *Path) Entities() []*Entity { return p.entitiesSnapshot() }

// Generate produces a new filesystem path from the contained parts. It is
// not guaranteed that the result is not already in use.
func (p *Path) Generate() string {
	entities := p.entitiesSnapshot()
	segments := make([]string, len(entities))
	for i, e := range entities {
		segments[i] = e.Generate()
	}
	joined := strings.Join(segments, string(filepath.Separator))
	if p.parent == "" {
		return joined
	}
	return filepath.Join(p.parent, joined)
}

// AppendRestrictions forwards to every entity's parts.
func (p *Path) AppendRestrictions(store *RestrictionStore) {
	for _, e := range p.entitiesSnapshot() {
		e.AppendRestrictions(store)
	}
}

// Entity is a contiguous run of PathParts that together produce one path
// component (one directory name or the leaf file name).
type Entity struct {
	parts []PathPart
}

// Generate produces the string this entity contributes to a new path.
func (e *Entity) Generate() string {
	var b strings.Builder
	for _, part := range e.parts {
		b.WriteString(part.Generate())
	}
	return b.String()
}

// Matcher returns a regular expression matching anything this entity can
// generate.
func (e *Entity) Matcher() *regexp.Regexp {
	var b strings.Builder
	b.WriteByte('^')
	for _, part := range e.parts {
		b.WriteString(part.Regex().String())
	}
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}

// Comparer returns a strict total order over candidate strings that both
// match Matcher: it walks the parts left to right, extracting the first
// substring each part's regex matches and comparing with IsEarlier,
// returning at the first difference.
func (e *Entity) Comparer() func(a, b string) bool {
	return func(a, b string) bool {
		ra, rb := a, b
		for _, part := range e.parts {
			re := part.Regex()
			ma := re.FindString(ra)
			mb := re.FindString(rb)
			if ma != mb {
				if part.IsEarlier(ma, mb) {
					return true
				}
				if part.IsEarlier(mb, ma) {
					return false
				}
			}
			ra = strings.TrimPrefix(ra, ma)
			rb = strings.TrimPrefix(rb, mb)
		}
		return false
	}
}

// AppendRestrictions forwards to each part.
func (e *Entity) AppendRestrictions(store *RestrictionStore) {
	for _, part := range e.parts {
		part.AppendRestrictions(store)
	}
}

// rankLatest returns the candidate in names that the entity's Comparer
// ranks as the latest (i.e. none of the others is ranked later). names
// must be non-empty.
func rankLatest(e *Entity, names []string) string {
	less := e.Comparer()
	sorted := append([]string(nil), names...)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted[len(sorted)-1]
}
