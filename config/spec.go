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

// Package config loads a declarative, static description of a Log and
// its targets from YAML and assembles it into a ready-to-use mlog.Log.
// There is no watch/hot-reload surface: configuration changes require a
// process restart, matching the Non-goal on hot reconfiguration.
package config

import (
	"fmt"
	"os"

	"github.com/byon/myrrh/level"
	"gopkg.in/yaml.v3"
)

// Spec is a declarative myrrh configuration: one global level, one
// header kind, and an ordered list of targets.
type Spec struct {
	GlobalLevel string       `yaml:"globalLevel,omitempty"`
	Header      string       `yaml:"header,omitempty"`
	Targets     []TargetSpec `yaml:"targets"`
}

// TargetSpec describes one registered target.
type TargetSpec struct {
	Kind     string        `yaml:"kind"`
	Name     string        `yaml:"name"`
	MinLevel string        `yaml:"minLevel,omitempty"`
	Path     string        `yaml:"path,omitempty"`
	Rotation *RotationSpec `yaml:"rotation,omitempty"`
}

// RotationSpec describes how a "file" target's policy.Policy rotates.
// Kind selects which policy preset backs the target:
//   - "size-resize": policy.SizeRestrictedLog  (resize in place at MaxBytes)
//   - "size-new":    policy.SizeRestrictedLogs (new timestamped file at MaxBytes)
//   - "dated":       policy.DatedFolderLog     (new folder per calendar day)
//   - "indexed":     policy.IndexedLog         (plain incrementing suffix, no automatic rotation)
type RotationSpec struct {
	Kind     string `yaml:"kind"`
	MaxBytes int64  `yaml:"maxBytes,omitempty"`
}

const defaultHeaderKind = "timestamp"

var validTargetKinds = map[string]bool{"stdout": true, "stderr": true, "file": true}
var validRotationKinds = map[string]bool{"size-resize": true, "size-new": true, "dated": true, "indexed": true}

// Load reads and validates a Spec from a YAML file at path.
func Load(path string) (*Spec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var spec Spec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if spec.Header == "" {
		spec.Header = defaultHeaderKind
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks every target-kind, level, and rotation value is
// recognized, and that "file" targets carry a Path. Load-time errors are
// expected to terminate configuration, per spec.md §7.
func (s *Spec) Validate() error {
	if s.GlobalLevel != "" {
		if _, err := level.Parse(s.GlobalLevel); err != nil {
			return fmt.Errorf("globalLevel: %w", err)
		}
	}
	if s.Header != "" && s.Header != defaultHeaderKind {
		return fmt.Errorf("header: unknown header kind %q", s.Header)
	}

	seen := make(map[string]bool, len(s.Targets))
	for i, target := range s.Targets {
		if err := target.validate(); err != nil {
			return fmt.Errorf("targets[%d] (%s): %w", i, target.Name, err)
		}
		if target.Name != "" {
			if seen[target.Name] {
				return fmt.Errorf("targets[%d]: duplicate target name %q", i, target.Name)
			}
			seen[target.Name] = true
		}
	}
	return nil
}

func (t *TargetSpec) validate() error {
	if !validTargetKinds[t.Kind] {
		return fmt.Errorf("unknown target kind %q", t.Kind)
	}
	if t.Name == "" {
		return fmt.Errorf("target name must not be empty")
	}
	if t.Kind == "file" && t.Path == "" {
		return fmt.Errorf("kind %q requires a path", t.Kind)
	}
	if t.MinLevel != "" {
		if _, err := level.Parse(t.MinLevel); err != nil {
			return fmt.Errorf("minLevel: %w", err)
		}
	}
	if t.Rotation != nil && !validRotationKinds[t.Rotation.Kind] {
		return fmt.Errorf("unknown rotation kind %q", t.Rotation.Kind)
	}
	return nil
}

// minLevelOrDefault parses MinLevel, defaulting to level.Trace (admit
// everything) when unset. Validate must be called first.
func (t *TargetSpec) minLevelOrDefault() level.Severity {
	if t.MinLevel == "" {
		return level.Trace
	}
	lvl, _ := level.Parse(t.MinLevel)
	return lvl
}

// globalLevelOrDefault parses GlobalLevel, defaulting to level.Info.
// Validate must be called first.
func (s *Spec) globalLevelOrDefault() level.Severity {
	if s.GlobalLevel == "" {
		return level.Info
	}
	lvl, _ := level.Parse(s.GlobalLevel)
	return lvl
}
