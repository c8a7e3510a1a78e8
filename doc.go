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

// Package xschema provides a schema context: the namespace and type registry
// a markup reader consults to turn element and attribute names into Go types.
//
// A Context answers four questions about the assemblies in its scope:
//
//   - which markup namespaces exist (GetAllXamlNamespaces),
//   - which types live in a namespace (GetAllXamlTypes),
//   - which short prefix a namespace prefers (GetPreferredPrefix),
//   - whether a namespace has been superseded (TryGetCompatibleXamlNamespace).
//
// It also hands out one descriptor per Go type (GetXamlType).
//
// # Scope
//
// An assembly (apis.Assembly) is a unit of type metadata carrying namespace
// declarations, prefix hints and compatibility links. A Context is either:
//
//   - closed-world: WithReferenceAssemblies fixes the list for its lifetime;
//   - open-world (the default): every assembly loaded into an apis.Domain,
//     normally scope.CurrentDomain(), including assemblies loaded later.
//
// # Caching
//
// Each of the four answers is backed by its own cache, built from the full
// scope on first query and never earlier. In open world, a newly loaded
// assembly is merged into the caches that are already built; the others
// pick it up when they are first queried. Descriptors are memoized forever.
//
// # Lifetime
//
// An open-world Context subscribes to its domain at construction. Call
// Close when done with it:
//
//	ctx, err := xschema.New(xschema.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	types, err := ctx.GetAllXamlTypes("urn:example:controls")
//
// A Context that is never closed leaks its subscription, and everything the
// subscription references, for the rest of the process.
//
// # Conflicts
//
// When several declarations give the same namespace a prefix or a compatible
// namespace, the last one in scan order (assembly order, then declaration
// order) wins. Duplicate namespace declarations are reported as-is.
package xschema
