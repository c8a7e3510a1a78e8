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
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the class of errors caused by a missing or malformed argument.
	ErrInvalidArgument = errors.New("xschema: invalid argument")
	// ErrEmptyNamespace is returned when a required namespace argument is empty.
	ErrEmptyNamespace = fmt.Errorf("%w: empty namespace", ErrInvalidArgument)
	// ErrNotSupported is returned by operations this registry does not implement.
	ErrNotSupported = errors.New("xschema: operation not supported")
)
