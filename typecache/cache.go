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

// Package typecache memoizes schema type descriptors per Go type.
package typecache

import (
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/xschema/apis"
)

// Cache hands out one *apis.SchemaType per reflect.Type for its owning context.
// Entries are never evicted: a type's identity does not change within a process.
type Cache struct {
	// ctx is the context every descriptor is bound to.
	ctx apis.SchemaContext
	// m maps reflect.Type to *apis.SchemaType.
	m sync.Map
	// n counts stored descriptors.
	n atomic.Int64
	// onCreate is called after a new descriptor has been stored.
	onCreate func(size int)
}

// New constructs an empty Cache owned by ctx. onCreate may be nil.
func New(ctx apis.SchemaContext, onCreate func(size int)) *Cache {
	return &Cache{ctx: ctx, onCreate: onCreate}
}

// Get returns the descriptor for t, creating it on first use.
// Concurrent first calls for the same type agree on one instance.
// A nil type yields nil.
func (c *Cache) Get(t reflect.Type) *apis.SchemaType {
	if t == nil {
		return nil
	}
	if v, ok := c.m.Load(t); ok {
		return v.(*apis.SchemaType)
	}

	v, loaded := c.m.LoadOrStore(t, apis.NewSchemaType(t, c.ctx))
	if !loaded {
		size := int(c.n.Add(1))
		if c.onCreate != nil {
			c.onCreate(size)
		}
	}
	return v.(*apis.SchemaType)
}

// Len returns the number of memoized descriptors.
func (c *Cache) Len() int {
	return int(c.n.Load())
}
