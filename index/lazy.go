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

package index

import (
	"sync"

	"dirpx.dev/xschema/apis"
)

// lazy is one independently populated cache.
//
// It starts unpopulated. The first read fills it from the complete scope;
// afterwards only update merges new assemblies in. Every transition happens
// under mu, and seen records which assemblies are already merged so a load
// notification racing the first fill is applied exactly once.
type lazy[T any] struct {
	name  string
	mu    sync.Mutex
	ready bool
	seen  map[apis.Assembly]struct{}
	data  T

	// init returns the empty value of the cache.
	init func() T
	// merge scans one assembly into data and returns the new data.
	merge func(data T, a apis.Assembly) T
}

// read populates the cache from scope if needed and calls fn with the data
// while still holding the lock. It reports whether this call populated it.
func (c *lazy[T]) read(scope apis.Scope, fn func(T)) (filled bool, scanned int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		scanned = c.fill(scope.Assemblies())
		filled = true
	}
	fn(c.data)
	return filled, scanned
}

// fill merges every assembly, duplicates included, in scope order. Nil
// entries are skipped. It returns the number of assemblies merged.
func (c *lazy[T]) fill(assemblies []apis.Assembly) int {
	c.data = c.init()
	c.seen = make(map[apis.Assembly]struct{}, len(assemblies))
	merged := 0
	for _, a := range assemblies {
		if a == nil {
			continue
		}
		c.data = c.merge(c.data, a)
		c.remember(a)
		merged++
	}
	c.ready = true
	return merged
}

// update merges a into a populated cache. Unpopulated caches are left alone:
// they will see a when first read. It reports whether a was merged.
func (c *lazy[T]) update(a apis.Assembly) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready || a == nil {
		return false
	}
	if apis.Comparable(a) {
		if _, ok := c.seen[a]; ok {
			return false
		}
	}
	c.data = c.merge(c.data, a)
	c.remember(a)
	return true
}

// remember marks a as merged. Assemblies that cannot be map keys are not
// tracked.
func (c *lazy[T]) remember(a apis.Assembly) {
	if apis.Comparable(a) {
		c.seen[a] = struct{}{}
	}
}

// populated reports whether the cache has been filled.
func (c *lazy[T]) populated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}
