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

package metrics

import (
	"github.com/byon/myrrh/mlog"
)

// instrumentedTarget wraps an mlog.Target, reporting every Write's
// outcome (and, for a Policy-backed target, every rotation) to a
// Collector under name.
type instrumentedTarget struct {
	name string
	t    mlog.Target
	c    *Collector

	rotationsSeen int64
}

// Instrument wraps t so that every Write and rotation it performs is
// observed by c under the given name. It is transparent: the returned
// Target delegates Name and Flush to t unchanged.
func Instrument(name string, t mlog.Target, c *Collector) mlog.Target {
	return &instrumentedTarget{name: name, t: t, c: c}
}

func (it *instrumentedTarget) Name() string { return it.t.Name() }

func (it *instrumentedTarget) Write(p []byte) (int, error) {
	n, err := it.t.Write(p)
	it.c.observeWrite(it.name, n, err)

	if pt, ok := it.t.(*mlog.PolicyTarget); ok {
		total := pt.Policy().Rotations()
		if delta := total - it.rotationsSeen; delta > 0 {
			for i := int64(0); i < delta; i++ {
				it.c.observeRotation(it.name)
			}
			it.rotationsSeen = total
		}
	}
	return n, err
}

func (it *instrumentedTarget) Flush() error { return it.t.Flush() }
