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

// Package header writes the per-line prefix that precedes every record
// mlog emits. The default implementation, Timestamp, is swappable via
// mlog.Log.SetHeader.
package header

import (
	"fmt"
	"io"
	"time"
)

// Header writes the prefix of one output line. Write is called once per
// record, under the caller's write-mutex; the written bytes must not
// contain a newline.
type Header interface {
	Write(w io.Writer, id byte) error
}

const timestampLayout = "2006.01.02 15:04:05"

// Timestamp is the default Header. It writes a timestamp with
// microsecond precision followed by the severity's character id:
//
//	YYYY.MM.DD HH:MM:SS:SSSSSS <id>
//
// The trailing space separates the header from the caller's content.
type Timestamp struct {
	now func() time.Time
}

// NewTimestamp returns a Timestamp header using the system clock.
func NewTimestamp() *Timestamp {
	return &Timestamp{now: time.Now}
}

func (t *Timestamp) nowFunc() func() time.Time {
	if t.now != nil {
		return t.now
	}
	return time.Now
}

// Write implements Header.
func (t *Timestamp) Write(w io.Writer, id byte) error {
	now := t.nowFunc()()
	micros := now.Nanosecond() / 1000
	_, err := fmt.Fprintf(w, "%s:%06d %c ", now.Format(timestampLayout), micros, id)
	return err
}
