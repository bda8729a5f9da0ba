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
	"errors"
	"testing"
)

func TestAggregator_EmptyIsUnknown(t *testing.T) {
	report := NewAggregator().Run(context.Background())
	if report.Status != StatusUnknown {
		t.Fatalf("Status = %v, want %v", report.Status, StatusUnknown)
	}
}

func TestAggregator_MergesWorstStatus(t *testing.T) {
	agg := NewAggregator()
	agg.Add("a", CheckFunc(func(context.Context) (Result, error) {
		return Result{Status: StatusHealthy}, nil
	}))
	agg.Add("b", CheckFunc(func(context.Context) (Result, error) {
		return Result{Status: StatusDegraded}, nil
	}))
	agg.Add("c", CheckFunc(func(context.Context) (Result, error) {
		return Result{Status: StatusHealthy}, nil
	}))

	report := agg.Run(context.Background())
	if report.Status != StatusDegraded {
		t.Fatalf("Status = %v, want %v", report.Status, StatusDegraded)
	}
	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(report.Results))
	}
}

func TestAggregator_CheckerErrorIsUnhealthy(t *testing.T) {
	agg := NewAggregator()
	agg.Add("broken", CheckFunc(func(context.Context) (Result, error) {
		return Result{}, errors.New("boom")
	}))

	report := agg.Run(context.Background())
	if report.Status != StatusUnhealthy {
		t.Fatalf("Status = %v, want %v", report.Status, StatusUnhealthy)
	}
	if report.Results[0].Error == nil {
		t.Fatalf("Result.Error should be set")
	}
	if report.Results[0].Name != "broken" {
		t.Fatalf("Result.Name = %q, want %q", report.Results[0].Name, "broken")
	}
}

func TestAggregator_DefaultsResultName(t *testing.T) {
	agg := NewAggregator()
	agg.Add("target-1", CheckFunc(func(context.Context) (Result, error) {
		return Result{Status: StatusHealthy}, nil
	}))
	report := agg.Run(context.Background())
	if report.Results[0].Name != "target-1" {
		t.Fatalf("Result.Name = %q, want %q", report.Results[0].Name, "target-1")
	}
}

func TestResult_OK(t *testing.T) {
	if !(Result{Status: StatusHealthy}).OK() {
		t.Fatalf("OK() should be true for StatusHealthy")
	}
	if (Result{Status: StatusDegraded}).OK() {
		t.Fatalf("OK() should be false for StatusDegraded")
	}
}
