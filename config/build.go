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
	"os"
	"path/filepath"
	"strings"

	"github.com/byon/myrrh/mlog"
	"github.com/byon/myrrh/registry"
)

// targetBuilders maps a TargetSpec.Kind to the code that builds a live
// mlog.Target from it. Kind is the only part of Key used here; Name is
// always empty since builders are shared across every target instance
// of a given kind.
var targetBuilders = registry.New[mlog.Target, TargetSpec]()

func init() {
	registry.MustRegister(targetBuilders, registry.Key{Kind: "stdout"}, func(_ context.Context, name string, _ TargetSpec) (mlog.Target, error) {
		return mlog.NewWriterTarget(name, os.Stdout), nil
	})
	registry.MustRegister(targetBuilders, registry.Key{Kind: "stderr"}, func(_ context.Context, name string, _ TargetSpec) (mlog.Target, error) {
		return mlog.NewWriterTarget(name, os.Stderr), nil
	})
	registry.MustRegister(targetBuilders, registry.Key{Kind: "file"}, buildFileTarget)
}

func buildFileTarget(_ context.Context, name string, spec TargetSpec) (mlog.Target, error) {
	dir, base := filepath.Split(spec.Path)
	dir = strings.TrimSuffix(dir, string(filepath.Separator))
	ext := filepath.Ext(base)
	baseName := strings.TrimSuffix(base, ext)

	kind := "indexed"
	var maxBytes int64
	if spec.Rotation != nil {
		kind = spec.Rotation.Kind
		maxBytes = spec.Rotation.MaxBytes
	}

	p, err := buildPolicy(kind, dir, baseName, ext, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("building policy: %w", err)
	}
	return mlog.NewPolicyTarget(name, p), nil
}

// Build assembles a ready-to-use Log from spec, registering its targets
// in file order. On the first target build failure, every guard already
// created is released before the error is returned.
func Build(ctx context.Context, spec *Spec) (*mlog.Log, []*mlog.OutputGuard, error) {
	log := mlog.New()
	log.SetGlobalLevel(spec.globalLevelOrDefault())

	var guards []*mlog.OutputGuard
	for _, t := range spec.Targets {
		target, err := targetBuilders.Build(ctx, registry.Key{Kind: t.Kind}, t)
		if err != nil {
			for _, g := range guards {
				g.Release()
			}
			return nil, nil, fmt.Errorf("config: target %q: %w", t.Name, err)
		}
		guards = append(guards, log.AddTarget(target, t.minLevelOrDefault()))
	}
	return log, guards, nil
}
