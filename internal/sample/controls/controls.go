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

// Package controls holds sample types that manifests and tests map into
// markup namespaces. The xschema command ships them as its only nameable types.
package controls

// Button is a clickable control.
type Button struct {
	Content string
}

// Label displays text.
type Label struct {
	Text string
}

// Panel hosts child controls.
type Panel struct {
	Children []any
}
