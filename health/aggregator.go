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

import "context"

type namedChecker struct {
	name    string
	checker Checker
}

// Aggregator runs a set of named Checkers and merges their Results into
// one Report.
type Aggregator struct {
	checkers []namedChecker
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add registers a Checker under name. Checkers run in registration order.
func (a *Aggregator) Add(name string, c Checker) {
	a.checkers = append(a.checkers, namedChecker{name: name, checker: c})
}

// Run executes every registered Checker and merges the Results. A Checker
// that returns an error is recorded as StatusUnhealthy with that error.
func (a *Aggregator) Run(ctx context.Context) Report {
	report := Report{Status: StatusUnknown}
	if len(a.checkers) == 0 {
		report.Status = StatusUnknown
		return report
	}

	for _, nc := range a.checkers {
		result, err := nc.checker.Check(ctx)
		if result.Name == "" {
			result.Name = nc.name
		}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Error = err
		}
		report.Results = append(report.Results, result)
		report.Status = worse(report.Status, result.Status)
	}
	return report
}
