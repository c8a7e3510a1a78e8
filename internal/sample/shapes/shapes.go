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

// Package shapes holds sample types from a second source namespace.
package shapes

// Circle is a round shape.
type Circle struct {
	Radius float64
}

// Rect is a rectangle.
type Rect struct {
	Width, Height float64
}

// Box is a generic container.
type Box[T any] struct {
	Value T
}
