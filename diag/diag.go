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

// Package diag provides the operator-facing diagnostic logger used by
// cmd/myrrhctl.
// It is independent of mlog: mlog.Log is the thing being configured
// and inspected, diag is what reports on the inspecting.
package diag

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a SugaredLogger suitable for CLI/operator output: a
// human-readable console encoder at normal verbosity, or a more
// detailed development configuration when verbose is true.
func New(verbose bool) *zap.SugaredLogger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		// zap.Config.Build only fails on a malformed EncoderConfig or
		// sink URL, neither of which this package constructs; fall back
		// to a guaranteed-valid logger rather than returning an error
		// callers would have to handle on every CLI invocation.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
