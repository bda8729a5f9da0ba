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
	"testing"
)

// TestAppender_PicksLatestExisting is scenario S1: directory contains
// several "myrrhN.log" files; Appender must pick the numerically largest.
func TestAppender_PicksLatestExisting(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"myrrh2.log", "myrrh10.log", "myrrh01.log",
		"myrrh11.log", "myrrh1234.log", "myrrh1300.log",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	path := NewPath(dir)
	text, err := NewText("myrrh")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	if err := path.Append(text, NewIndex()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := path.AppendString(".log"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}

	h := NewAppender().Open(path)
	defer h.Close()

	want := filepath.Join(dir, "myrrh1300.log")
	if h.Path() != want {
		t.Fatalf("Appender picked %q, want %q", h.Path(), want)
	}
}

func TestAppender_FallsBackToGenerateWhenNoCandidates(t *testing.T) {
	dir := t.TempDir()
	path := NewPath(dir)
	if err := path.AppendString("myrrh.log"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}

	h := NewAppender().Open(path)
	defer h.Close()

	want := filepath.Join(dir, "myrrh.log")
	if h.Path() != want {
		t.Fatalf("Appender fallback opened %q, want %q", h.Path(), want)
	}
	if h.WrittenSize() != 0 {
		t.Fatalf("fresh file should start at WrittenSize 0, got %d", h.WrittenSize())
	}
}

func TestCreator_TruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "myrrh.log")
	if err := os.WriteFile(full, []byte("stale content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	path := NewPath(dir)
	if err := path.AppendString("myrrh.log"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}

	h := NewCreator().Open(path)
	defer h.Close()

	if h.WrittenSize() != 0 {
		t.Fatalf("Creator should report WrittenSize 0, got %d", h.WrittenSize())
	}
	got, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Creator should truncate existing content, got %q", got)
	}
}

// TestResizer_CropsWholeLines is scenario S2.
func TestResizer_CropsWholeLines(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "myrrh.log")
	line := "Original content\n"
	content := ""
	for i := 0; i < 6; i++ {
		content += line
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	path := NewPath(dir)
	if err := path.AppendString("myrrh.log"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}

	h := NewResizer(64).Open(path)
	defer h.Close()

	n := h.Write("New content\n")
	if n != int64(len("New content\n")) {
		t.Fatalf("Write returned %d, want %d", n, len("New content\n"))
	}

	got, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := line + line + line + "New content\n"
	if string(got) != want {
		t.Fatalf("resized+appended content = %q, want %q", got, want)
	}
}
