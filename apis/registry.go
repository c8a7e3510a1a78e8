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

// TypeRegistry maps stable textual names to Go types and back.
// Manifests refer to types by these names.
type TypeRegistry interface {
	// Register associates t with name. Re-registering the same pair is a no-op;
	// a conflicting pair is rejected.
	Register(t reflect.Type, name string) error
	// RegisterType registers t under its derived "pkg.Type" name and returns that name.
	RegisterType(t reflect.Type) (string, error)
	// Lookup returns the type registered under name.
	Lookup(name string) (reflect.Type, bool)
	// NameOf returns the name registered for t.
	NameOf(t reflect.Type) (string, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, name) association in a TypeRegistry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Name is the associated name.
	Name string
}
