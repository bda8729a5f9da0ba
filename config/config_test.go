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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/byon/myrrh/level"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "myrrh.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_ValidSpec(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
globalLevel: info
targets:
  - kind: stdout
    name: console
  - kind: file
    name: main
    path: `+filepath.Join(dir, "logs", "myrrh.log")+`
    rotation:
      kind: size-resize
      maxBytes: 1048576
`)

	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.GlobalLevel != "info" {
		t.Fatalf("GlobalLevel = %q", spec.GlobalLevel)
	}
	if len(spec.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(spec.Targets))
	}
	if spec.Header != defaultHeaderKind {
		t.Fatalf("Header = %q, want default %q", spec.Header, defaultHeaderKind)
	}
}

func TestLoad_UnknownTargetKind(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
targets:
  - kind: carrier-pigeon
    name: bad
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown target kind") {
		t.Fatalf("Load() err = %v, want unknown target kind", err)
	}
}

func TestLoad_FileTargetMissingPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
targets:
  - kind: file
    name: main
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "requires a path") {
		t.Fatalf("Load() err = %v, want requires a path", err)
	}
}

func TestLoad_UnparseableLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
globalLevel: maximum-overdrive
targets: []
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load() expected an error for an invalid level")
	}
}

func TestBuild_RegistersFileTarget(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	spec := &Spec{
		GlobalLevel: "trace",
		Header:      defaultHeaderKind,
		Targets: []TargetSpec{
			{Kind: "file", Name: "main", MinLevel: "trace", Path: filepath.Join(logDir, "myrrh.log")},
		},
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	log, guards, err := Build(context.Background(), spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() {
		for _, g := range guards {
			g.Release()
		}
	}()

	if len(guards) != 1 {
		t.Fatalf("got %d guards, want 1", len(guards))
	}
	if !log.IsWritable(level.Info) {
		t.Fatalf("log should be writable at Info given globalLevel=trace")
	}

	r := log.Info()
	r.Write([]byte("hello"))
	r.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in log dir, want 1", len(entries))
	}
}
