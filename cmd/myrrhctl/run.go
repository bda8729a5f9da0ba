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
	"bufio"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/byon/myrrh/config"
	"github.com/byon/myrrh/diag"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the configured Log, tail stdin into it at Info, and block until interrupted",
	Long: `run loads the configuration, registers every configured target, and
tails os.Stdin line by line into the Log at Info level as a
demonstrative producer. On SIGINT or SIGTERM it releases every target's
OutputGuard cleanly before exiting.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := diag.New(verbose)
	defer logger.Sync()

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

	logger.Infow("myrrh log running", "config", cfgFile, "targets", len(guards))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				logger.Infow("stdin closed, shutting down")
				return nil
			}
			r := log.Info()
			r.WriteString(line)
			r.Close()
		case received := <-sig:
			logger.Infow("received signal, shutting down", "signal", received.String())
			return nil
		}
	}
}
