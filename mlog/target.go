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

package mlog

import (
	"fmt"
	"io"

	"github.com/byon/myrrh/policy"
)

// Target is a registered output destination for Log. Write must not
// block indefinitely and must never panic; any error it returns is
// swallowed by Record.Close (the log-write contract forbids raising).
type Target interface {
	Name() string
	Write(p []byte) (int, error)
	Flush() error
}

// writerTarget adapts a plain io.Writer (e.g. os.Stdout) to Target.
type writerTarget struct {
	name string
	w    io.Writer
}

// NewWriterTarget wraps w as a Target identified by name. Flush calls w's
// Flush or Sync method if it has one, otherwise it is a no-op.
func NewWriterTarget(name string, w io.Writer) Target {
	return &writerTarget{name: name, w: w}
}

func (t *writerTarget) Name() string { return t.name }

func (t *writerTarget) Write(p []byte) (int, error) { return t.w.Write(p) }

func (t *writerTarget) Flush() error {
	switch f := t.w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case interface{ Sync() error }:
		return f.Sync()
	default:
		return nil
	}
}

// PolicyTarget adapts a *policy.Policy to Target.
//
// policy.Policy.Write(text string) int64 is its own primitive operation
// (the Write algorithm, independently tested in the policy package); it
// cannot also satisfy Target's Write([]byte) (int, error) signature on
// the same type, so PolicyTarget wraps rather than embeds.
type PolicyTarget struct {
	name string
	p    *policy.Policy
}

// NewPolicyTarget adapts p for registration as a Target named name.
func NewPolicyTarget(name string, p *policy.Policy) *PolicyTarget {
	return &PolicyTarget{name: name, p: p}
}

func (t *PolicyTarget) Name() string { return t.name }

// Policy returns the wrapped Policy, for callers (such as package
// health) that need to inspect its rotation and failure counters.
func (t *PolicyTarget) Policy() *policy.Policy { return t.p }

func (t *PolicyTarget) Write(p []byte) (int, error) {
	n := t.p.Write(string(p))
	if n < 0 {
		return 0, fmt.Errorf("mlog: policy write failed for target %q", t.name)
	}
	return int(n), nil
}

// Flush is a no-op: Policy.Write is synchronous and unbuffered.
func (t *PolicyTarget) Flush() error { return nil }
