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

	"github.com/byon/myrrh/level"
)

// Record is the per-call-site builder returned by Log's severity-named
// constructors (Info, Error, ...). It accumulates caller content into
// the owning Log's scratch buffer and, on Close, emits the accumulated
// line to every target whose per-target threshold admits this Record's
// level, then releases the write-mutex it acquired at construction.
//
// A Record whose level exceeds the Log's global level at construction
// time is inert: every method on it is a no-op and Close does nothing.
// Go has no destructors, so callers must call Close explicitly,
// typically via defer immediately after construction:
//
//	r := myLog.Info()
//	defer r.Close()
//	fmt.Fprintf(r, "request served in %s", elapsed)
type Record struct {
	log      *Log
	sev      level.Severity
	writable bool
	closed   bool
}

// Write implements io.Writer, appending p to the record's line. It is a
// no-op returning (len(p), nil) when the record is inert.
func (r *Record) Write(p []byte) (int, error) {
	if !r.writable {
		return len(p), nil
	}
	return r.log.buf.Write(p)
}

// WriteString appends s to the record's line.
func (r *Record) WriteString(s string) (int, error) {
	if !r.writable {
		return len(s), nil
	}
	return r.log.buf.WriteString(s)
}

// Printf appends a formatted string to the record's line.
func (r *Record) Printf(format string, args ...interface{}) {
	if !r.writable {
		return
	}
	fmt.Fprintf(&r.log.buf, format, args...)
}

// Level returns the severity this record was constructed at.
func (r *Record) Level() level.Severity { return r.sev }

// Writable reports whether this record will actually emit on Close.
func (r *Record) Writable() bool { return r.writable }

// Close finalizes the record: appends a trailing newline, writes the
// accumulated line to every target whose minimum level admits this
// record's severity, and releases the write-mutex. It is idempotent and
// safe to call multiple times (only the first call has any effect).
// Target write/flush errors are swallowed, per the log-write contract.
func (r *Record) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if !r.writable {
		return
	}
	defer r.log.mu.Unlock()

	r.log.buf.WriteByte('\n')
	payload := r.log.buf.Bytes()
	for _, t := range r.log.targets {
		if r.sev > t.min {
			continue
		}
		if _, err := t.sink.Write(payload); err != nil {
			continue
		}
		_ = t.sink.Flush()
	}
	if r.log.onEmit != nil {
		r.log.onEmit(r.sev)
	}
}
