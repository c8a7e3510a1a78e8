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

// Package assembly provides an immutable, in-memory apis.Assembly.
//
// Go has no assembly-level attributes, so the declarations a markup
// namespace registry scans are attached explicitly, either with options:
//
//	asm := assembly.New("example.controls",
//		assembly.WithTypes(reflect.TypeFor[controls.Button]()),
//		assembly.WithDefinition("urn:example:controls", "example.dev/controls"),
//		assembly.WithPrefix("urn:example:controls", "c"),
//	)
//
// or from a YAML/JSON manifest via ParseManifest.
package assembly

import (
	"reflect"
	"slices"

	"dirpx.dev/xschema/apis"
)

// Static is an apis.Assembly whose contents are fixed at construction.
type Static struct {
	name   string
	defs   []apis.NamespaceDefinition
	prefix []apis.NamespacePrefix
	compat []apis.NamespaceCompatibility
	types  []reflect.Type
}

// Ensure Static implements apis.Assembly.
var _ apis.Assembly = (*Static)(nil)

// Option configures a Static during construction.
type Option func(*Static)

// New constructs a Static assembly named name.
func New(name string, opts ...Option) *Static {
	a := &Static{name: name}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithTypes appends defined types. Nil types are ignored.
func WithTypes(types ...reflect.Type) Option {
	return func(a *Static) {
		for _, t := range types {
			if t != nil {
				a.types = append(a.types, t)
			}
		}
	}
}

// WithDefinition declares that types of clrNamespace belong to xmlNamespace.
func WithDefinition(xmlNamespace, clrNamespace string) Option {
	return func(a *Static) {
		a.defs = append(a.defs, apis.NamespaceDefinition{XmlNamespace: xmlNamespace, ClrNamespace: clrNamespace})
	}
}

// WithPrefix declares the preferred prefix of xmlNamespace.
func WithPrefix(xmlNamespace, prefix string) Option {
	return func(a *Static) {
		a.prefix = append(a.prefix, apis.NamespacePrefix{XmlNamespace: xmlNamespace, Prefix: prefix})
	}
}

// WithCompatibility declares that oldNamespace is superseded by newNamespace.
func WithCompatibility(oldNamespace, newNamespace string) Option {
	return func(a *Static) {
		a.compat = append(a.compat, apis.NamespaceCompatibility{OldNamespace: oldNamespace, NewNamespace: newNamespace})
	}
}

// Name implements apis.Assembly.
func (a *Static) Name() string { return a.name }

// NamespaceDefinitions implements apis.Assembly.
func (a *Static) NamespaceDefinitions() []apis.NamespaceDefinition { return slices.Clone(a.defs) }

// NamespacePrefixes implements apis.Assembly.
func (a *Static) NamespacePrefixes() []apis.NamespacePrefix { return slices.Clone(a.prefix) }

// NamespaceCompatibilities implements apis.Assembly.
func (a *Static) NamespaceCompatibilities() []apis.NamespaceCompatibility {
	return slices.Clone(a.compat)
}

// Types implements apis.Assembly.
func (a *Static) Types() []reflect.Type { return slices.Clone(a.types) }

// String implements fmt.Stringer.
func (a *Static) String() string { return a.name }
