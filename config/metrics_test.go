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
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/byon/myrrh/metrics"
)

func TestBuildWithMetrics_InstrumentsAndEmits(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	spec := &Spec{
		GlobalLevel: "info",
		Header:      defaultHeaderKind,
		Targets: []TargetSpec{
			{Kind: "file", Name: "main", MinLevel: "info", Path: filepath.Join(logDir, "myrrh.log")},
		},
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	collector := metrics.NewCollector(nil)
	log, guards, err := BuildWithMetrics(context.Background(), spec, collector)
	if err != nil {
		t.Fatalf("BuildWithMetrics: %v", err)
	}
	defer func() {
		for _, g := range guards {
			g.Release()
		}
	}()

	r := log.Info()
	r.WriteString("hello")
	r.Close()

	handler := promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `myrrh_log_records_emitted_total{level="info"} 1`) {
		t.Fatalf("expected records-emitted counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, `myrrh_policy_bytes_written_total{target="main"}`) {
		t.Fatalf("expected bytes-written counter in output, got:\n%s", body)
	}
}
