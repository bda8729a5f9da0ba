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

// Package mlog is the process-wide log front end: Log, OutputGuard, and
// the Record builder that call sites construct and close once per log
// statement.
package mlog

import (
	"bytes"
	"sync"

	"github.com/byon/myrrh/header"
	"github.com/byon/myrrh/level"
)

// Log is the process-wide sink. The zero value is not usable; construct
// one with New, or reach the process singleton via Instance.
//
// Configuration methods (SetGlobalLevel, AddTarget, RemoveAllTargets,
// SetHeader) are not safe for concurrent use against each other or
// against concurrent logging, matching myrrh's original design: callers
// must configure a Log before concurrent producers start, or during a
// quiescent interval.
type Log struct {
	mu      sync.Mutex
	targets []*target
	global  level.Severity
	header  header.Header
	buf     bytes.Buffer
	onEmit  func(level.Severity)
}

type target struct {
	sink Target
	min  level.Severity
}

// New returns an independently configured Log. Most call sites should
// use Instance instead; New exists for tests and for callers that
// deliberately want more than one Log in a process.
func New() *Log {
	return &Log{global: level.Info, header: header.NewTimestamp()}
}

var (
	instance     *Log
	instanceOnce sync.Once
)

// Instance returns the process-wide Log, constructing it on first call.
// First touch from multiple goroutines is not supported: call Instance
// once from main before spawning producer goroutines.
func Instance() *Log {
	instanceOnce.Do(func() {
		instance = New()
	})
	return instance
}

// SetGlobalLevel sets the threshold below which Records become inert.
func (l *Log) SetGlobalLevel(lvl level.Severity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.global = lvl
}

// GlobalLevel returns the current threshold.
func (l *Log) GlobalLevel() level.Severity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.global
}

// IsWritable reports whether lvl is admitted by the current global
// level: lvl <= global.
func (l *Log) IsWritable(lvl level.Severity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lvl <= l.global
}

// SetHeader replaces the header writer. A nil h reverts to the
// Timestamp default.
func (l *Log) SetHeader(h header.Header) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h == nil {
		h = header.NewTimestamp()
	}
	l.header = h
}

// SetEmitHook installs fn to be called, after every writable Record's
// targets have been written, with that Record's severity. It exists so
// that package metrics can count emitted Records by level without
// mlog importing metrics. A nil fn disables the hook.
func (l *Log) SetEmitHook(fn func(level.Severity)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onEmit = fn
}

// AddTarget registers t to receive every Record at or below minLevel,
// subject to the global level. It returns an OutputGuard; dropping it
// (calling Release) removes the registration and flushes t.
func (l *Log) AddTarget(t Target, minLevel level.Severity) *OutputGuard {
	l.mu.Lock()
	defer l.mu.Unlock()
	tg := &target{sink: t, min: minLevel}
	l.targets = append(l.targets, tg)
	return &OutputGuard{log: l, t: tg}
}

// RemoveAllTargets drops every registered target without flushing them.
func (l *Log) RemoveAllTargets() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.targets = nil
}

// NamedTarget is a snapshot of one registered target, returned by
// Targets for callers (such as package health) that need to introspect
// the Log's sinks without reaching into its internals.
type NamedTarget struct {
	Sink     Target
	MinLevel level.Severity
}

// Targets returns a snapshot of the currently registered targets, in
// registration order.
func (l *Log) Targets() []NamedTarget {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]NamedTarget, len(l.targets))
	for i, t := range l.targets {
		out[i] = NamedTarget{Sink: t.sink, MinLevel: t.min}
	}
	return out
}

func (l *Log) removeTarget(tg *target) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, x := range l.targets {
		if x == tg {
			l.targets = append(l.targets[:i], l.targets[i+1:]...)
			return
		}
	}
}

// newRecord is the entry point used by the severity-named constructors
// below. A record whose level is filtered out by the global level is
// inert: it takes no lock and the log's scratch buffer is untouched.
//
// Reading l.global here without the mutex is deliberate and matches the
// documented contract on Log: the global level is not mutated
// concurrently with logging, so an unguarded read is safe and keeps the
// filtered-out fast path free of synchronization cost.
func (l *Log) newRecord(sev level.Severity) *Record {
	if sev > l.global {
		return &Record{log: l, sev: sev, writable: false, closed: true}
	}
	l.mu.Lock()
	l.buf.Reset()
	l.header.Write(&l.buf, sev.Char())
	return &Record{log: l, sev: sev, writable: true}
}

// Crit starts a Record at the Crit severity.
func (l *Log) Crit() *Record { return l.newRecord(level.Crit) }

// Error starts a Record at the Error severity.
func (l *Log) Error() *Record { return l.newRecord(level.Error) }

// Warn starts a Record at the Warn severity.
func (l *Log) Warn() *Record { return l.newRecord(level.Warn) }

// Notify starts a Record at the Notify severity.
func (l *Log) Notify() *Record { return l.newRecord(level.Notify) }

// Info starts a Record at the Info severity.
func (l *Log) Info() *Record { return l.newRecord(level.Info) }

// Debug starts a Record at the Debug severity.
func (l *Log) Debug() *Record { return l.newRecord(level.Debug) }

// Trace starts a Record at the Trace severity.
func (l *Log) Trace() *Record { return l.newRecord(level.Trace) }

// OutputGuard is the move-only handle returned by AddTarget. Release (or
// the zero-cost equivalent of letting it be garbage collected after a
// process exit) removes the registration; unlike the original's
// reference-counted C++ handle, Go has no implicit destructor, so
// callers must call Release explicitly when they are done with a
// target, typically via defer.
type OutputGuard struct {
	mu       sync.Mutex
	log      *Log
	t        *target
	released bool
}

// Release removes the guarded target from its Log and flushes it. It is
// idempotent: calling it more than once after the first has no effect.
func (g *OutputGuard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.released {
		return
	}
	g.released = true
	g.log.removeTarget(g.t)
	g.t.sink.Flush()
}
