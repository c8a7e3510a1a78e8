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

// Package index holds the lazily built namespace caches of a schema context.
//
// The four caches (namespace list, prefixes, compatibility links and types
// by namespace) are independent: each one is filled from the complete scope
// the first time it is queried and never before. When the scope grows,
// OnAssemblyLoaded merges the new assembly into the caches that are already
// populated and leaves the others untouched.
package index

import (
	"log/slog"
	"reflect"
	"slices"

	"dirpx.dev/xschema/apis"
	"dirpx.dev/xschema/metrics"
	"dirpx.dev/xschema/scanner"
)

// DefaultPrefix is returned by Prefix for namespaces without a declared prefix.
const DefaultPrefix = "p"

// Cache names one of the index caches.
type Cache string

// Index caches.
const (
	CacheNamespaces      Cache = "namespaces"
	CachePrefixes        Cache = "prefixes"
	CacheCompatibilities Cache = "compatibilities"
	CacheTypes           Cache = "types"
)

// Option configures an Index.
type Option func(*Index)

// WithScanner replaces the default scanner.
func WithScanner(s apis.Scanner) Option {
	return func(ix *Index) {
		if s != nil {
			ix.scan = s
		}
	}
}

// WithLogger sets the index logger.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Index) {
		if l != nil {
			ix.log = l
		}
	}
}

// WithMetrics records fills and scans into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(ix *Index) {
		ix.metrics = m
	}
}

// Index is the set of namespace caches over one scope. It is safe for
// concurrent use; each cache is guarded by its own mutex.
type Index struct {
	scope   apis.Scope
	scan    apis.Scanner
	resolve func(reflect.Type) *apis.SchemaType
	log     *slog.Logger
	metrics *metrics.Metrics

	namespaces lazy[[]string]
	prefixes   lazy[map[string]string]
	compat     lazy[map[string]string]
	types      lazy[map[string][]*apis.SchemaType]
}

// New constructs an Index over scope. resolve maps a Go type to its
// descriptor and is used when filling the types cache.
func New(scope apis.Scope, resolve func(reflect.Type) *apis.SchemaType, opts ...Option) *Index {
	ix := &Index{
		scope:   scope,
		scan:    scanner.New(),
		resolve: resolve,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}

	ix.namespaces.name = string(CacheNamespaces)
	ix.namespaces.init = func() []string { return []string{} }
	ix.namespaces.merge = func(d []string, a apis.Assembly) []string {
		return append(d, ix.scan.ScanNamespaces(a)...)
	}

	ix.prefixes.name = string(CachePrefixes)
	ix.prefixes.init = func() map[string]string { return map[string]string{} }
	ix.prefixes.merge = func(d map[string]string, a apis.Assembly) map[string]string {
		for _, p := range ix.scan.ScanPrefixes(a) {
			if old, ok := d[p.XmlNamespace]; ok && old != p.Prefix {
				ix.log.Debug("prefix overwritten",
					"namespace", p.XmlNamespace, "old", old, "new", p.Prefix, "assembly", a.Name())
			}
			d[p.XmlNamespace] = p.Prefix
		}
		return d
	}

	ix.compat.name = string(CacheCompatibilities)
	ix.compat.init = func() map[string]string { return map[string]string{} }
	ix.compat.merge = func(d map[string]string, a apis.Assembly) map[string]string {
		for _, c := range ix.scan.ScanCompatibilities(a) {
			if old, ok := d[c.OldNamespace]; ok && old != c.NewNamespace {
				ix.log.Debug("compatible namespace overwritten",
					"namespace", c.OldNamespace, "old", old, "new", c.NewNamespace, "assembly", a.Name())
			}
			d[c.OldNamespace] = c.NewNamespace
		}
		return d
	}

	ix.types.name = string(CacheTypes)
	ix.types.init = func() map[string][]*apis.SchemaType { return map[string][]*apis.SchemaType{} }
	ix.types.merge = func(d map[string][]*apis.SchemaType, a apis.Assembly) map[string][]*apis.SchemaType {
		for _, g := range ix.scan.ScanTypes(a, ix.resolve) {
			d[g.XmlNamespace] = append(d[g.XmlNamespace], g.Types...)
		}
		return d
	}

	return ix
}

// Namespaces returns every declared markup namespace, one entry per
// declaration, in scan order.
func (ix *Index) Namespaces() []string {
	var out []string
	ix.observe(readCache(&ix.namespaces, ix.scope, func(d []string) {
		out = slices.Clone(d)
	}))
	return out
}

// Types returns the types mapped into ns, or an empty slice if ns is unknown.
func (ix *Index) Types(ns string) ([]*apis.SchemaType, error) {
	if ns == "" {
		return nil, apis.ErrEmptyNamespace
	}
	out := []*apis.SchemaType{}
	ix.observe(readCache(&ix.types, ix.scope, func(d map[string][]*apis.SchemaType) {
		out = append(out, d[ns]...)
	}))
	return out, nil
}

// Prefix returns the preferred prefix of ns, or DefaultPrefix if none is declared.
func (ix *Index) Prefix(ns string) (string, error) {
	if ns == "" {
		return "", apis.ErrEmptyNamespace
	}
	prefix := DefaultPrefix
	ix.observe(readCache(&ix.prefixes, ix.scope, func(d map[string]string) {
		if p, ok := d[ns]; ok {
			prefix = p
		}
	}))
	return prefix, nil
}

// Compatible returns the namespace that supersedes ns.
func (ix *Index) Compatible(ns string) (string, bool, error) {
	if ns == "" {
		return "", false, apis.ErrEmptyNamespace
	}
	var (
		compatible string
		found      bool
	)
	ix.observe(readCache(&ix.compat, ix.scope, func(d map[string]string) {
		compatible, found = d[ns]
	}))
	return compatible, found, nil
}

// OnAssemblyLoaded merges a into every cache that is already populated.
func (ix *Index) OnAssemblyLoaded(a apis.Assembly) {
	if a == nil {
		return
	}
	ix.metrics.RecordNotification()

	ix.applyUpdate(ix.namespaces.name, ix.namespaces.update(a), a)
	ix.applyUpdate(ix.prefixes.name, ix.prefixes.update(a), a)
	ix.applyUpdate(ix.compat.name, ix.compat.update(a), a)
	ix.applyUpdate(ix.types.name, ix.types.update(a), a)
}

// Populated reports whether cache c has been filled.
func (ix *Index) Populated(c Cache) bool {
	switch c {
	case CacheNamespaces:
		return ix.namespaces.populated()
	case CachePrefixes:
		return ix.prefixes.populated()
	case CacheCompatibilities:
		return ix.compat.populated()
	case CacheTypes:
		return ix.types.populated()
	default:
		return false
	}
}

// fillResult describes what a cache read did.
type fillResult struct {
	cache   string
	filled  bool
	scanned int
}

func readCache[T any](c *lazy[T], scope apis.Scope, fn func(T)) fillResult {
	filled, scanned := c.read(scope, fn)
	return fillResult{cache: c.name, filled: filled, scanned: scanned}
}

// observe logs and records a cache read that populated its cache.
func (ix *Index) observe(r fillResult) {
	if !r.filled {
		return
	}
	ix.metrics.RecordFill(r.cache, false)
	ix.metrics.RecordScans(r.cache, r.scanned)
	ix.log.Debug("cache populated", "cache", r.cache, "assemblies", r.scanned)
}

// applyUpdate logs and records an incremental merge.
func (ix *Index) applyUpdate(cache string, merged bool, a apis.Assembly) {
	if !merged {
		return
	}
	ix.metrics.RecordFill(cache, true)
	ix.metrics.RecordScans(cache, 1)
	ix.log.Debug("cache updated", "cache", cache, "assembly", a.Name())
}
