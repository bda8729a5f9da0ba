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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/byon/myrrh/config"
	"github.com/byon/myrrh/diag"
	"github.com/byon/myrrh/metrics"
)

var serveMetricsFlags struct {
	addr string
}

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Build the configured Log with metrics instrumentation and serve /metrics",
	Long: `serve-metrics loads the configuration, builds the Log with every
target wrapped for Prometheus instrumentation, and serves the
resulting metrics in Prometheus exposition format over HTTP until
interrupted.`,
	RunE: runServeMetrics,
}

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
	serveMetricsCmd.Flags().StringVar(&serveMetricsFlags.addr, "addr", ":9090", "address to serve /metrics on")
}

func runServeMetrics(cmd *cobra.Command, args []string) error {
	logger := diag.New(verbose)
	defer logger.Sync()

	spec, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(nil)
	_, guards, err := config.BuildWithMetrics(cmd.Context(), spec, collector)
	if err != nil {
		return err
	}
	defer func() {
		for _, g := range guards {
			g.Release()
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: serveMetricsFlags.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("serving metrics", "addr", serveMetricsFlags.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case received := <-sig:
		logger.Infow("received signal, shutting down", "signal", received.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
