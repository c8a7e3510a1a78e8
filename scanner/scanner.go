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

// Package scanner extracts markup namespace declarations from assemblies.
package scanner

import (
	"reflect"

	"dirpx.dev/xschema/apis"
)

// New returns the default apis.Scanner.
func New() apis.Scanner {
	return scanner{}
}

// scanner reads declarations straight off the assembly. It holds no state.
type scanner struct{}

// Ensure scanner implements apis.Scanner.
var _ apis.Scanner = scanner{}

// ScanNamespaces returns the markup namespace of every definition, duplicates kept.
func (scanner) ScanNamespaces(a apis.Assembly) []string {
	if a == nil {
		return nil
	}
	defs := a.NamespaceDefinitions()
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.XmlNamespace)
	}
	return out
}

// ScanPrefixes returns the prefix hints of a.
func (scanner) ScanPrefixes(a apis.Assembly) []apis.NamespacePrefix {
	if a == nil {
		return nil
	}
	return a.NamespacePrefixes()
}

// ScanCompatibilities returns the compatible-with links of a.
func (scanner) ScanCompatibilities(a apis.Assembly) []apis.NamespaceCompatibility {
	if a == nil {
		return nil
	}
	return a.NamespaceCompatibilities()
}

// ScanTypes returns one group per definition of a, in declaration order.
// A group holds the types whose package path equals the definition's
// source namespace, in the assembly's type order. Groups are never merged,
// even when two definitions share a markup namespace.
func (scanner) ScanTypes(a apis.Assembly, resolve func(reflect.Type) *apis.SchemaType) []apis.TypeGroup {
	if a == nil {
		return nil
	}
	defs := a.NamespaceDefinitions()
	if len(defs) == 0 {
		return nil
	}
	types := a.Types()

	groups := make([]apis.TypeGroup, 0, len(defs))
	for _, d := range defs {
		g := apis.TypeGroup{XmlNamespace: d.XmlNamespace, Types: []*apis.SchemaType{}}
		for _, t := range types {
			if t.PkgPath() == d.ClrNamespace {
				g.Types = append(g.Types, resolve(t))
			}
		}
		groups = append(groups, g)
	}
	return groups
}
