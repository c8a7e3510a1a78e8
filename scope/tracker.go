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

// Package scope decides which assemblies a schema context considers.
//
// A Tracker is either fixed (closed world: an explicit assembly list) or
// dynamic (open world: every assembly loaded into an apis.Domain, including
// ones loaded later). Only dynamic trackers subscribe to load notifications,
// and they must be closed to release that subscription.
package scope

import (
	"log/slog"
	"slices"
	"sync"

	"dirpx.dev/xschema/apis"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker's logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// Tracker supplies the assemblies in scope.
type Tracker struct {
	fixed  bool
	list   []apis.Assembly
	domain apis.Domain
	log    *slog.Logger

	// mu guards cancel and closed.
	mu     sync.Mutex
	cancel func()
	closed bool
}

// Ensure Tracker implements apis.Scope.
var _ apis.Scope = (*Tracker)(nil)

// Fixed returns a closed-world tracker over exactly the given assemblies.
// Order and duplicates are preserved.
func Fixed(assemblies []apis.Assembly, opts ...Option) *Tracker {
	t := &Tracker{fixed: true, list: slices.Clone(assemblies), log: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dynamic returns an open-world tracker over domain.
func Dynamic(domain apis.Domain, opts ...Option) *Tracker {
	t := &Tracker{domain: domain, log: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsFixed reports whether the tracker is closed-world.
func (t *Tracker) IsFixed() bool { return t.fixed }

// Assemblies returns the assemblies in scope at call time.
func (t *Tracker) Assemblies() []apis.Assembly {
	if t.fixed {
		return slices.Clone(t.list)
	}
	return t.domain.Assemblies()
}

// Watch subscribes fn to the domain's load notifications. Fixed trackers
// never subscribe. Only the first Watch on an open tracker takes effect;
// it reports whether fn was subscribed.
func (t *Tracker) Watch(fn func(apis.Assembly)) bool {
	if t.fixed || fn == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.cancel != nil {
		return false
	}
	t.cancel = t.domain.Subscribe(fn)
	return true
}

// Close releases the load subscription, if any. It is safe to call more
// than once and on trackers that never watched.
func (t *Tracker) Close() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.closed = true
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		t.log.Debug("load subscription released")
	}
}
