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

package index_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/xschema/apis"
	"dirpx.dev/xschema/assembly"
	"dirpx.dev/xschema/index"
	"dirpx.dev/xschema/metrics"
	"dirpx.dev/xschema/scope"
	"dirpx.dev/xschema/typecache"
)

func newIndex(sc apis.Scope, s apis.Scanner) (*index.Index, *typecache.Cache) {
	tc := typecache.New(nil, nil)
	return index.New(sc, tc.Get, index.WithScanner(s)), tc
}

func uiAssembly() *assembly.Static {
	return assembly.New("ui",
		assembly.WithTypes(buttonType, labelType, circleType),
		assembly.WithDefinition("urn:ui", controlsPkg),
		assembly.WithPrefix("urn:ui", "ui"),
		assembly.WithCompatibility("urn:ui:2008", "urn:ui"),
	)
}

func TestIndex_Queries(t *testing.T) {
	ix, tc := newIndex(scope.Fixed([]apis.Assembly{uiAssembly()}), newCountingScanner())

	assert.Equal(t, []string{"urn:ui"}, ix.Namespaces())

	types, err := ix.Types("urn:ui")
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{buttonType, labelType}, underlying(types))
	assert.Same(t, tc.Get(buttonType), types[0], "types come from the descriptor cache")

	prefix, err := ix.Prefix("urn:ui")
	require.NoError(t, err)
	assert.Equal(t, "ui", prefix)

	compat, ok, err := ix.Compatible("urn:ui:2008")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "urn:ui", compat)
}

func TestIndex_IdempotentPopulation(t *testing.T) {
	s := newCountingScanner()
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{uiAssembly(), assembly.New("empty")}), s)

	first := ix.Namespaces()
	second := ix.Namespaces()
	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, s.namespaces.Load(), "one scan per assembly, once")

	t1, _ := ix.Types("urn:ui")
	t2, _ := ix.Types("urn:ui")
	assert.Equal(t, t1, t2)
	assert.EqualValues(t, 2, s.types.Load())

	p1, _ := ix.Prefix("urn:ui")
	p2, _ := ix.Prefix("urn:ui")
	assert.Equal(t, p1, p2)
	assert.EqualValues(t, 2, s.prefixes.Load())

	c1, ok1, _ := ix.Compatible("urn:ui:2008")
	c2, ok2, _ := ix.Compatible("urn:ui:2008")
	assert.Equal(t, c1, c2)
	assert.Equal(t, ok1, ok2)
	assert.EqualValues(t, 2, s.compat.Load())
}

func TestIndex_LazyIsolation(t *testing.T) {
	s := newCountingScanner()
	prefixOnly := assembly.New("prefix-only", assembly.WithPrefix("urn:ui", "u"))
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{prefixOnly}), s)

	prefix, err := ix.Prefix("urn:ui")
	require.NoError(t, err)
	assert.Equal(t, "u", prefix)

	assert.EqualValues(t, 1, s.prefixes.Load())
	assert.Zero(t, s.namespaces.Load(), "namespace fill must not run")
	assert.Zero(t, s.types.Load(), "types fill must not run")
	assert.Zero(t, s.compat.Load(), "compat fill must not run")

	assert.True(t, ix.Populated(index.CachePrefixes))
	assert.False(t, ix.Populated(index.CacheNamespaces))
	assert.False(t, ix.Populated(index.CacheTypes))
	assert.False(t, ix.Populated(index.CacheCompatibilities))
	assert.False(t, ix.Populated(index.Cache("bogus")))
}

func TestIndex_UnknownNamespaceDefaults(t *testing.T) {
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{uiAssembly()}), newCountingScanner())

	types, err := ix.Types("urn:unknown")
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types)

	prefix, err := ix.Prefix("urn:unknown")
	require.NoError(t, err)
	assert.Equal(t, index.DefaultPrefix, prefix)
	assert.Equal(t, "p", prefix)

	compat, ok, err := ix.Compatible("urn:unknown")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, compat)
}

func TestIndex_EmptyNamespaceArgument(t *testing.T) {
	s := newCountingScanner()
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{uiAssembly()}), s)

	_, err := ix.Types("")
	assert.ErrorIs(t, err, apis.ErrEmptyNamespace)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)

	_, err = ix.Prefix("")
	assert.ErrorIs(t, err, apis.ErrEmptyNamespace)

	_, _, err = ix.Compatible("")
	assert.ErrorIs(t, err, apis.ErrEmptyNamespace)

	assert.Zero(t, s.total(), "argument errors must not touch any cache")
	for _, c := range []index.Cache{index.CacheNamespaces, index.CachePrefixes, index.CacheCompatibilities, index.CacheTypes} {
		assert.False(t, ix.Populated(c), "cache %s", c)
	}
}

func TestIndex_DuplicateDeclarations(t *testing.T) {
	a := assembly.New("a",
		assembly.WithTypes(buttonType, circleType),
		assembly.WithDefinition("urn:ui", controlsPkg),
		assembly.WithDefinition("urn:ui", shapesPkg),
		assembly.WithPrefix("urn:ui", "first"),
	)
	b := assembly.New("b",
		assembly.WithPrefix("urn:ui", "second"),
		assembly.WithCompatibility("urn:old", "urn:ui"),
	)
	c := assembly.New("c",
		assembly.WithCompatibility("urn:old", "urn:ui:2"),
	)
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{a, b, c}), newCountingScanner())

	assert.Equal(t, []string{"urn:ui", "urn:ui"}, ix.Namespaces(), "duplicate declarations are kept")

	types, err := ix.Types("urn:ui")
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{buttonType, circleType}, underlying(types), "groups of the same namespace are concatenated")

	prefix, _ := ix.Prefix("urn:ui")
	assert.Equal(t, "second", prefix, "last declaration wins")

	compat, _, _ := ix.Compatible("urn:old")
	assert.Equal(t, "urn:ui:2", compat, "last declaration wins")
}

func TestIndex_FixedScopeDuplicatesScannedTwice(t *testing.T) {
	s := newCountingScanner()
	a := uiAssembly()
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{a, a}), s)

	assert.Equal(t, []string{"urn:ui", "urn:ui"}, ix.Namespaces())
	assert.EqualValues(t, 2, s.namespaces.Load())
}

func TestIndex_ResultsAreCopies(t *testing.T) {
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{uiAssembly()}), newCountingScanner())

	nss := ix.Namespaces()
	nss[0] = "urn:mutated"
	assert.Equal(t, []string{"urn:ui"}, ix.Namespaces())

	types, _ := ix.Types("urn:ui")
	types[0] = nil
	again, _ := ix.Types("urn:ui")
	assert.NotNil(t, again[0])
}

func TestIndex_NonComparableAssembly(t *testing.T) {
	v := sliceAssembly{name: "v", defs: []apis.NamespaceDefinition{{XmlNamespace: "urn:v", ClrNamespace: "v"}}}
	ix, _ := newIndex(scope.Fixed([]apis.Assembly{v, uiAssembly()}), nil)

	var got []string
	require.NotPanics(t, func() { got = ix.Namespaces() })
	assert.Equal(t, []string{"urn:v", "urn:ui"}, got)

	require.NotPanics(t, func() { ix.OnAssemblyLoaded(sliceAssembly{name: "w"}) })
	types, err := ix.Types("urn:v")
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestIndex_ScanMetricsCountMergedAssemblies(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "scan")
	require.NoError(t, err)

	tc := typecache.New(nil, nil)
	ix := index.New(scope.Fixed([]apis.Assembly{nil, uiAssembly(), nil}), tc.Get, index.WithMetrics(m))
	assert.Equal(t, []string{"urn:ui"}, ix.Namespaces())

	const want = `
# HELP xschema_index_assembly_scans_total Number of assemblies scanned, by cache
# TYPE xschema_index_assembly_scans_total counter
xschema_index_assembly_scans_total{cache="namespaces",context="scan"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "xschema_index_assembly_scans_total"))
}
