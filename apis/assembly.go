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

package apis

import "reflect"

// Assembly is a unit of compiled type metadata supplied by the host.
// The registry only reads it.
//
// Implementations must be comparable (typically a pointer), since caches
// remember which assemblies they have already scanned. See Comparable.
type Assembly interface {
	// Name returns the assembly name used by ResolveAssembly lookups.
	Name() string
	// NamespaceDefinitions returns the markup namespace declarations in declaration order.
	NamespaceDefinitions() []NamespaceDefinition
	// NamespacePrefixes returns the preferred prefix hints in declaration order.
	NamespacePrefixes() []NamespacePrefix
	// NamespaceCompatibilities returns the compatible-with links in declaration order.
	NamespaceCompatibilities() []NamespaceCompatibility
	// Types returns every type defined by the assembly.
	Types() []reflect.Type
}

// Comparable reports whether a can be used as a map key. It is false for
// nil and for values holding slices, maps or funcs.
func Comparable(a Assembly) bool {
	if a == nil {
		return false
	}
	return reflect.ValueOf(a).Comparable()
}

// NamespaceDefinition maps an assembly-local source namespace to a markup namespace.
type NamespaceDefinition struct {
	// XmlNamespace is the declared markup namespace.
	XmlNamespace string
	// ClrNamespace is the source namespace (a Go package path) it maps from.
	ClrNamespace string
}

// NamespacePrefix is a preferred short name for a markup namespace.
type NamespacePrefix struct {
	XmlNamespace string
	Prefix       string
}

// NamespaceCompatibility marks OldNamespace as superseded by NewNamespace.
type NamespaceCompatibility struct {
	OldNamespace string
	NewNamespace string
}
