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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestHealthCommandExists(t *testing.T) {
	if healthCmd == nil {
		t.Fatal("healthCmd is nil")
	}
	if healthCmd.Use != "health" {
		t.Errorf("healthCmd.Use = %q, want %q", healthCmd.Use, "health")
	}
	if healthCmd.RunE == nil {
		t.Error("healthCmd.RunE should not be nil")
	}
}

func TestRunHealth_HealthyConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "myrrh.yaml")
	contents := `
globalLevel: info
targets:
  - kind: file
    name: main
    path: ` + filepath.Join(dir, "logs", "myrrh.log") + `
`
	if err := os.WriteFile(cfgPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	origCfgFile := cfgFile
	cfgFile = cfgPath
	defer func() { cfgFile = origCfgFile }()

	healthCmd.SetContext(context.Background())
	if err := runHealth(healthCmd, nil); err != nil {
		t.Fatalf("runHealth: %v", err)
	}
}
