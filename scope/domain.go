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

package scope

import (
	"slices"
	"sync"
	"sync/atomic"

	"dirpx.dev/xschema/apis"
)

// current is the process-wide domain.
var current = NewDomain()

// CurrentDomain returns the process-wide domain: the set of assemblies the
// host has loaded so far. Hosts call Load on it as they bring assemblies in.
func CurrentDomain() *Domain {
	return current
}

// Domain is an apis.Domain kept in memory.
//
// The loaded set is an immutable snapshot published through an atomic
// pointer, so Assemblies never takes a lock. Load and Subscribe serialize
// on a mutex and publish a brand-new snapshot.
type Domain struct {
	// mu serializes writers and guards subs/next.
	mu sync.Mutex
	// snap is the published loaded set; never mutate a published slice.
	snap atomic.Pointer[[]apis.Assembly]
	// subs are the live subscriptions in subscription order.
	subs []subscription
	// next is the id of the next subscription.
	next uint64
}

type subscription struct {
	id uint64
	fn func(apis.Assembly)
}

// Ensure Domain implements apis.Domain.
var _ apis.Domain = (*Domain)(nil)

// NewDomain constructs a Domain with the given assemblies already loaded.
// Nil and non-comparable assemblies are skipped, as in Load.
func NewDomain(loaded ...apis.Assembly) *Domain {
	d := &Domain{}
	snap := make([]apis.Assembly, 0, len(loaded))
	for _, a := range loaded {
		if apis.Comparable(a) && !slices.Contains(snap, a) {
			snap = append(snap, a)
		}
	}
	d.snap.Store(&snap)
	return d
}

// Assemblies returns the currently loaded assemblies in load order.
func (d *Domain) Assemblies() []apis.Assembly {
	return slices.Clone(*d.snap.Load())
}

// Load adds a to the loaded set and notifies every subscriber, in
// subscription order, on the calling goroutine. The assembly is visible in
// Assemblies before any subscriber runs. Loading nil, a non-comparable
// assembly or one that is already loaded does nothing and reports false.
func (d *Domain) Load(a apis.Assembly) bool {
	if !apis.Comparable(a) {
		return false
	}

	d.mu.Lock()
	old := *d.snap.Load()
	if slices.Contains(old, a) {
		d.mu.Unlock()
		return false
	}
	next := make([]apis.Assembly, len(old), len(old)+1)
	copy(next, old)
	next = append(next, a)
	d.snap.Store(&next)
	subs := slices.Clone(d.subs)
	d.mu.Unlock()

	// Subscribers run outside the lock so they may query the domain.
	for _, s := range subs {
		s.fn(a)
	}
	return true
}

// Subscribe registers fn for every assembly loaded after this call.
// The returned cancel func is safe to call more than once.
func (d *Domain) Subscribe(fn func(apis.Assembly)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	d.mu.Lock()
	id := d.next
	d.next++
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.subs = slices.DeleteFunc(d.subs, func(s subscription) bool { return s.id == id })
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (d *Domain) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
