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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/xschema/apis"
)

// ErrInvalidDocument is returned when a settings document cannot be decoded.
var ErrInvalidDocument = errors.New("xschema(config): invalid settings document")

// document is the YAML shape of a settings file. Absent keys keep their defaults.
type document struct {
	FullyQualifyAssemblyNames *bool `yaml:"fullyQualifyAssemblyNamesInClrNamespaces"`
	DuplicateArity            *bool `yaml:"supportMarkupExtensionsWithDuplicateArity"`
}

// Parse decodes a YAML settings document on top of DefaultConfig.
// Unknown keys are rejected; an empty document yields the defaults.
func Parse(data []byte) (apis.Config, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var opts []Option
	if doc.FullyQualifyAssemblyNames != nil {
		opts = append(opts, WithFullyQualifyAssemblyNames(*doc.FullyQualifyAssemblyNames))
	}
	if doc.DuplicateArity != nil {
		opts = append(opts, WithDuplicateArity(*doc.DuplicateArity))
	}
	return NewConfig(opts...), nil
}

// Load reads and parses the settings file at path.
func Load(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("xschema(config): read %s: %w", path, err)
	}
	return Parse(data)
}
