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
	"sync/atomic"

	"dirpx.dev/xschema/apis"
	"dirpx.dev/xschema/internal/sample/controls"
	"dirpx.dev/xschema/internal/sample/legacy"
	"dirpx.dev/xschema/internal/sample/shapes"
	"dirpx.dev/xschema/scanner"
)

var (
	controlsPkg = reflect.TypeFor[controls.Button]().PkgPath()
	shapesPkg   = reflect.TypeFor[shapes.Circle]().PkgPath()
	legacyPkg   = reflect.TypeFor[legacy.OldButton]().PkgPath()

	buttonType = reflect.TypeFor[controls.Button]()
	labelType  = reflect.TypeFor[controls.Label]()
	circleType = reflect.TypeFor[shapes.Circle]()
	rectType   = reflect.TypeFor[shapes.Rect]()
	oldType    = reflect.TypeFor[legacy.OldButton]()
)

// countingScanner counts every scan call, per kind.
type countingScanner struct {
	inner apis.Scanner

	namespaces atomic.Int64
	prefixes   atomic.Int64
	compat     atomic.Int64
	types      atomic.Int64
}

func newCountingScanner() *countingScanner {
	return &countingScanner{inner: scanner.New()}
}

func (s *countingScanner) ScanNamespaces(a apis.Assembly) []string {
	s.namespaces.Add(1)
	return s.inner.ScanNamespaces(a)
}

func (s *countingScanner) ScanPrefixes(a apis.Assembly) []apis.NamespacePrefix {
	s.prefixes.Add(1)
	return s.inner.ScanPrefixes(a)
}

func (s *countingScanner) ScanCompatibilities(a apis.Assembly) []apis.NamespaceCompatibility {
	s.compat.Add(1)
	return s.inner.ScanCompatibilities(a)
}

func (s *countingScanner) ScanTypes(a apis.Assembly, resolve func(reflect.Type) *apis.SchemaType) []apis.TypeGroup {
	s.types.Add(1)
	return s.inner.ScanTypes(a, resolve)
}

func (s *countingScanner) total() int64 {
	return s.namespaces.Load() + s.prefixes.Load() + s.compat.Load() + s.types.Load()
}

// Ensure countingScanner implements apis.Scanner.
var _ apis.Scanner = (*countingScanner)(nil)

func underlying(types []*apis.SchemaType) []reflect.Type {
	out := make([]reflect.Type, 0, len(types))
	for _, x := range types {
		out = append(out, x.UnderlyingType())
	}
	return out
}

// sliceAssembly is an Assembly value that cannot be a map key.
type sliceAssembly struct {
	name string
	defs []apis.NamespaceDefinition
}

func (a sliceAssembly) Name() string { return a.name }
func (a sliceAssembly) NamespaceDefinitions() []apis.NamespaceDefinition { return a.defs }
func (sliceAssembly) NamespacePrefixes() []apis.NamespacePrefix { return nil }
func (sliceAssembly) NamespaceCompatibilities() []apis.NamespaceCompatibility { return nil }
func (sliceAssembly) Types() []reflect.Type { return nil }
