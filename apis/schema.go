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

import (
	"reflect"
	"strings"
)

// SchemaContext is the query surface a markup parser consults during name resolution.
type SchemaContext interface {
	// GetAllXamlNamespaces returns every declared markup namespace in scope.
	GetAllXamlNamespaces() []string
	// GetAllXamlTypes returns the types mapped into xamlNamespace.
	GetAllXamlTypes(xamlNamespace string) ([]*SchemaType, error)
	// GetPreferredPrefix returns the preferred prefix for xmlns.
	GetPreferredPrefix(xmlns string) (string, error)
	// TryGetCompatibleXamlNamespace returns the namespace superseding xamlNamespace.
	TryGetCompatibleXamlNamespace(xamlNamespace string) (string, bool, error)
	// GetXamlType returns the descriptor for t.
	GetXamlType(t reflect.Type) *SchemaType
}

// SchemaType describes one Go type within one SchemaContext.
// Instances are created and memoized by the owning context; compare them by pointer.
type SchemaType struct {
	typ reflect.Type
	ctx SchemaContext
}

// NewSchemaType binds t to ctx. Callers should obtain descriptors from
// SchemaContext.GetXamlType instead, which guarantees one instance per type.
func NewSchemaType(t reflect.Type, ctx SchemaContext) *SchemaType {
	return &SchemaType{typ: t, ctx: ctx}
}

// UnderlyingType returns the wrapped Go type.
func (x *SchemaType) UnderlyingType() reflect.Type { return x.typ }

// SchemaContext returns the owning context.
func (x *SchemaType) SchemaContext() SchemaContext { return x.ctx }

// Name returns the type name without generic instantiation parameters.
func (x *SchemaType) Name() string {
	name, _, _ := strings.Cut(x.typ.Name(), "[")
	return name
}

// ClrNamespace returns the source namespace (package path) of the type.
func (x *SchemaType) ClrNamespace() string { return x.typ.PkgPath() }

// String implements fmt.Stringer.
func (x *SchemaType) String() string {
	if ns := x.ClrNamespace(); ns != "" {
		return "{" + ns + "}" + x.Name()
	}
	return x.Name()
}

// Directive is a markup language directive such as x:Key or x:Name.
type Directive struct {
	XmlNamespace string
	Name         string
}
