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

// Package registry is a generic, string-keyed component registry. It
// lets config turn a declarative (kind, name) pair into a live value of
// type T built from a Spec, without config needing to import every
// concrete target/policy constructor.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrSealed is returned by Register once the registry has been sealed.
var ErrSealed = errors.New("myrrh/registry: registry is sealed")

// ErrDuplicate is returned by Register when Key is already registered.
var ErrDuplicate = errors.New("myrrh/registry: duplicate registration")

// ErrNotFound is returned by Build when no builder is registered for Key.
var ErrNotFound = errors.New("myrrh/registry: no builder registered")

// Key identifies a registered builder by its kind (e.g. "file", "stdout")
// and an instance name.
type Key struct {
	Kind string
	Name string
}

// Builder constructs a T from a Spec for a given instance name.
type Builder[T any, Spec any] func(ctx context.Context, name string, spec Spec) (T, error)

// Option configures a Registry at construction time.
type Option func(*options)

type options struct {
	caseFold bool
}

// WithCaseFoldLower makes Key lookups case-insensitive by lower-casing
// Kind and Name before comparison.
func WithCaseFoldLower() Option {
	return func(o *options) { o.caseFold = true }
}

// Registry is a concurrency-safe map from Key to Builder[T, Spec].
type Registry[T any, Spec any] struct {
	mu       sync.RWMutex
	builders map[Key]Builder[T, Spec]
	sealed   bool
	opts     options
}

// New constructs an empty Registry.
func New[T any, Spec any](opts ...Option) *Registry[T, Spec] {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return &Registry[T, Spec]{
		builders: make(map[Key]Builder[T, Spec]),
		opts:     o,
	}
}

func (r *Registry[T, Spec]) normalize(key Key) Key {
	if !r.opts.caseFold {
		return key
	}
	return Key{Kind: strings.ToLower(key.Kind), Name: strings.ToLower(key.Name)}
}

// Register adds b under key. It fails if the registry is sealed or key
// is already registered.
func (r *Registry[T, Spec]) Register(key Key, b Builder[T, Spec]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: %+v", ErrSealed, key)
	}
	key = r.normalize(key)
	if _, exists := r.builders[key]; exists {
		return fmt.Errorf("%w: %+v", ErrDuplicate, key)
	}
	r.builders[key] = b
	return nil
}

// MustRegister calls Register and panics on error. Intended for use from
// package init() where a duplicate or post-seal registration is a
// programming error, not a runtime condition to recover from.
func MustRegister[T any, Spec any](r *Registry[T, Spec], key Key, b Builder[T, Spec]) {
	if err := r.Register(key, b); err != nil {
		panic(err)
	}
}

// Build looks up the builder registered under key and invokes it.
func (r *Registry[T, Spec]) Build(ctx context.Context, key Key, spec Spec) (T, error) {
	r.mu.RLock()
	b, ok := r.builders[r.normalize(key)]
	r.mu.RUnlock()

	var zero T
	if !ok {
		return zero, fmt.Errorf("%w: %+v", ErrNotFound, key)
	}
	return b(ctx, key.Name, spec)
}

// Seal prevents further registration. Intended to be called once all
// init()-time registrations are complete.
func (r *Registry[T, Spec]) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}
