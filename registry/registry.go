/*
   Copyright 2025 The DIRPX Authors.

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
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/xschema/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("xschema(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("xschema(registry): empty name provided")
	// ErrNotNamed is returned when a type without a name (e.g. []int) is registered.
	ErrNotNamed = errors.New("xschema(registry): type has no name")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type or a name with a different counterpart.
	ErrConflictingRegistration = errors.New("xschema(registry): conflicting type registration")
)

// New constructs an empty TypeRegistry.
func New() apis.TypeRegistry {
	return &registry{}
}

// TypeName derives the stable "pkg.Type" name of t: the last element of the
// package path plus the type name without generic instantiation parameters.
// Types without a package (builtins) yield just the type name.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	name, _, _ := strings.Cut(t.Name(), "[")
	if name == "" {
		return ""
	}
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	return name
}

// registry is a two-way TypeRegistry backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// byType maps reflect.Type to registered name.
	byType sync.Map // map[reflect.Type]string
	// byName maps registered name to reflect.Type.
	byName sync.Map // map[string]reflect.Type
	// count tracks the number of registered entries.
	count int
}

// Register associates t with name.
// It is idempotent for the same (type,name) pair.
func (r *registry) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	if t.Name() == "" {
		return ErrNotNamed
	}

	// Fast read path: idempotency / conflict check without locking.
	if done, err := r.check(t, name); done {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if done, err := r.check(t, name); done {
		return err
	}

	r.byType.Store(t, name)
	r.byName.Store(name, t)
	r.count++
	return nil
}

// check reports whether t or name is already taken, and whether that is a conflict.
func (r *registry) check(t reflect.Type, name string) (bool, error) {
	if old, ok := r.byType.Load(t); ok {
		if old.(string) == name {
			return true, nil
		}
		return true, ErrConflictingRegistration
	}
	if _, ok := r.byName.Load(name); ok {
		return true, ErrConflictingRegistration
	}
	return false, nil
}

// RegisterType registers t under TypeName(t).
func (r *registry) RegisterType(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrNilType
	}
	name := TypeName(t)
	if name == "" {
		return "", ErrNotNamed
	}
	return name, r.Register(t, name)
}

// Lookup returns the type registered under name.
func (r *registry) Lookup(name string) (reflect.Type, bool) {
	if v, ok := r.byName.Load(name); ok {
		return v.(reflect.Type), true
	}
	return nil, false
}

// NameOf returns the name registered for t.
func (r *registry) NameOf(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	if v, ok := r.byType.Load(t); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.byType.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			Name: value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType.Clear()
	r.byName.Clear()
	r.count = 0
}
