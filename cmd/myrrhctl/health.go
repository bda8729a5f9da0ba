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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byon/myrrh/config"
	"github.com/byon/myrrh/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Build the configured Log and print a one-shot health report",
	Long: `health loads the configuration, builds its targets, runs one health
check per target, prints the result, and exits non-zero if the merged
status is not healthy.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	spec, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, guards, err := config.Build(cmd.Context(), spec)
	if err != nil {
		return err
	}
	defer func() {
		for _, g := range guards {
			g.Release()
		}
	}()

	report := health.LogReport(cmd.Context(), log)
	fmt.Printf("status: %s\n", report.Status)
	for _, r := range report.Results {
		fmt.Printf("  %s: %s\n", r.Name, r.Status)
		if r.Error != nil {
			fmt.Printf("    error: %v\n", r.Error)
		}
	}

	if report.Status != health.StatusHealthy {
		return fmt.Errorf("log is %s", report.Status)
	}
	return nil
}
