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

// Scope supplies the assemblies a schema context considers.
type Scope interface {
	// Assemblies returns the assemblies in scope at call time.
	Assemblies() []Assembly
}

// Domain is the host's set of loaded assemblies plus its load notification feed.
type Domain interface {
	Scope
	// Subscribe registers fn to be called once for every assembly loaded
	// after the call. The returned cancel func removes the subscription.
	Subscribe(fn func(Assembly)) (cancel func())
}

// Scanner extracts declarative facts from one assembly.
// Implementations are stateless; every method is a pure function of its input.
type Scanner interface {
	// ScanNamespaces returns one markup namespace per definition, duplicates kept.
	ScanNamespaces(a Assembly) []string
	// ScanPrefixes returns the prefix hints of a.
	ScanPrefixes(a Assembly) []NamespacePrefix
	// ScanCompatibilities returns the compatible-with links of a.
	ScanCompatibilities(a Assembly) []NamespaceCompatibility
	// ScanTypes returns one group per namespace definition of a.
	ScanTypes(a Assembly, resolve func(reflect.Type) *SchemaType) []TypeGroup
}

// TypeGroup is the set of types one namespace definition contributes.
type TypeGroup struct {
	XmlNamespace string
	Types        []*SchemaType
}
