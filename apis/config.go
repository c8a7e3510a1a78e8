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

// Config carries settings threaded through a schema context.
// The registry stores them verbatim; consumers are markup readers and writers.
type Config struct {
	// FullyQualifyAssemblyNamesInClrNamespaces requests assembly-qualified
	// "clr-namespace:" URIs when writers generate namespaces.
	FullyQualifyAssemblyNamesInClrNamespaces bool

	// SupportMarkupExtensionsWithDuplicateArity allows markup extension
	// overloads that share a positional parameter count.
	SupportMarkupExtensionsWithDuplicateArity bool
}
