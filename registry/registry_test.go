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

package registry

import (
	"context"
	"errors"
	"testing"
)

type widget struct{ name string }

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := New[*widget, string]()
	err := r.Register(Key{Kind: "widget", Name: "a"}, func(_ context.Context, name string, spec string) (*widget, error) {
		return &widget{name: name + ":" + spec}, nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	w, err := r.Build(context.Background(), Key{Kind: "widget", Name: "a"}, "spec1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.name != "a:spec1" {
		t.Fatalf("widget.name = %q", w.name)
	}
}

func TestRegistry_BuildUnknownKey(t *testing.T) {
	r := New[*widget, string]()
	_, err := r.Build(context.Background(), Key{Kind: "missing"}, "spec")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Build() err = %v, want ErrNotFound", err)
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := New[*widget, string]()
	b := func(_ context.Context, name string, spec string) (*widget, error) { return &widget{name: name}, nil }
	if err := r.Register(Key{Kind: "widget", Name: "a"}, b); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(Key{Kind: "widget", Name: "a"}, b); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second Register() err = %v, want ErrDuplicate", err)
	}
}

func TestMustRegister_PanicsOnDuplicate(t *testing.T) {
	r := New[*widget, string]()
	b := func(_ context.Context, name string, spec string) (*widget, error) { return &widget{name: name}, nil }
	MustRegister(r, Key{Kind: "widget", Name: "a"}, b)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustRegister to panic on duplicate")
		}
	}()
	MustRegister(r, Key{Kind: "widget", Name: "a"}, b)
}

func TestRegistry_SealPreventsFurtherRegistration(t *testing.T) {
	r := New[*widget, string]()
	r.Seal()
	b := func(_ context.Context, name string, spec string) (*widget, error) { return &widget{name: name}, nil }
	if err := r.Register(Key{Kind: "widget", Name: "a"}, b); !errors.Is(err, ErrSealed) {
		t.Fatalf("Register() after Seal err = %v, want ErrSealed", err)
	}
}

func TestRegistry_CaseFoldLower(t *testing.T) {
	r := New[*widget, string](WithCaseFoldLower())
	b := func(_ context.Context, name string, spec string) (*widget, error) { return &widget{name: name}, nil }
	if err := r.Register(Key{Kind: "File", Name: "Primary"}, b); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Build(context.Background(), Key{Kind: "file", Name: "primary"}, "x"); err != nil {
		t.Fatalf("Build with differing case: %v", err)
	}
}
