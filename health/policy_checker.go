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

package health

import (
	"context"
	"time"

	"github.com/byon/myrrh/mlog"
	"github.com/byon/myrrh/policy"
)

// PolicyChecker reports the health of a Policy-backed target: unhealthy
// if it has no open file, degraded if a write has ever failed, healthy
// otherwise. It reads only Policy's atomic counters, so it never
// contends the write-mutex a Log holds while logging through p.
func PolicyChecker(p *policy.Policy) Checker {
	return CheckFunc(func(_ context.Context) (Result, error) {
		result := Result{
			ObservedAt: time.Now(),
			Details: map[string]any{
				"path":          p.CurrentPath(),
				"rotations":     p.Rotations(),
				"failed_writes": p.FailedWrites(),
			},
		}
		switch {
		case !p.IsOpen():
			result.Status = StatusUnhealthy
		case p.FailedWrites() > 0:
			result.Status = StatusDegraded
		default:
			result.Status = StatusHealthy
		}
		return result, nil
	})
}

// LogReport runs one Checker per target registered on l and merges the
// Results into a Report. Policy-backed targets (added via
// mlog.NewPolicyTarget) are introspected with PolicyChecker; any other
// Target reports StatusUnknown, since a plain io.Writer exposes no
// health signal of its own.
func LogReport(ctx context.Context, l *mlog.Log) Report {
	agg := NewAggregator()
	for _, t := range l.Targets() {
		if pt, ok := t.Sink.(*mlog.PolicyTarget); ok {
			agg.Add(t.Sink.Name(), PolicyChecker(pt.Policy()))
			continue
		}
		name := t.Sink.Name()
		agg.Add(name, CheckFunc(func(_ context.Context) (Result, error) {
			return Result{Name: name, Status: StatusUnknown, ObservedAt: time.Now()}, nil
		}))
	}
	return agg.Run(ctx)
}
