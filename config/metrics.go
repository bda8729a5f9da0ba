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
	"fmt"

	"github.com/byon/myrrh/level"
	"github.com/byon/myrrh/metrics"
	"github.com/byon/myrrh/mlog"
	"github.com/byon/myrrh/registry"
)

// BuildWithMetrics is Build plus instrumentation: every target is
// wrapped with metrics.Instrument before registration, and the Log's
// emit hook feeds myrrh_log_records_emitted_total. Callers that do not
// need metrics should use Build instead.
func BuildWithMetrics(ctx context.Context, spec *Spec, c *metrics.Collector) (*mlog.Log, []*mlog.OutputGuard, error) {
	log := mlog.New()
	log.SetGlobalLevel(spec.globalLevelOrDefault())
	log.SetEmitHook(func(lvl level.Severity) {
		c.RecordEmitted(lvl.String())
	})

	var guards []*mlog.OutputGuard
	for _, t := range spec.Targets {
		target, err := targetBuilders.Build(ctx, registry.Key{Kind: t.Kind}, t)
		if err != nil {
			for _, g := range guards {
				g.Release()
			}
			return nil, nil, fmt.Errorf("config: target %q: %w", t.Name, err)
		}
		target = metrics.Instrument(t.Name, target, c)
		guards = append(guards, log.AddTarget(target, t.minLevelOrDefault()))
	}
	return log, guards, nil
}
