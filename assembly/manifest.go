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

package assembly

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"

	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v3"

	"dirpx.dev/xschema/apis"
)

var (
	// ErrInvalidManifest is returned when a manifest cannot be decoded.
	ErrInvalidManifest = errors.New("xschema(assembly): invalid manifest")
	// ErrMissingName is returned when a manifest has no assembly name.
	ErrMissingName = errors.New("xschema(assembly): manifest has no name")
	// ErrIncompleteDeclaration is returned when a declaration has an empty field.
	ErrIncompleteDeclaration = errors.New("xschema(assembly): incomplete declaration")
	// ErrUnknownType is returned when a manifest names a type the registry does not know.
	ErrUnknownType = errors.New("xschema(assembly): unknown type")
)

// manifest is the decoded form of a manifest document.
type manifest struct {
	Name          string          `yaml:"name"`
	Definitions   []definitionDoc `yaml:"definitions"`
	Prefixes      []prefixDoc     `yaml:"prefixes"`
	Compatibility []compatDoc     `yaml:"compatibility"`
	Types         []string        `yaml:"types"`
}

type definitionDoc struct {
	XmlNamespace string `yaml:"xmlNamespace"`
	ClrNamespace string `yaml:"clrNamespace"`
}

type prefixDoc struct {
	XmlNamespace string `yaml:"xmlNamespace"`
	Prefix       string `yaml:"prefix"`
}

type compatDoc struct {
	OldNamespace string `yaml:"oldNamespace"`
	NewNamespace string `yaml:"newNamespace"`
}

// ParseManifest builds a Static assembly from a manifest document.
//
// A document whose first non-space byte is '{' is read as JSON, anything
// else as YAML. Both use the same keys:
//
//	name: example.controls
//	definitions:
//	  - {xmlNamespace: "urn:example:controls", clrNamespace: "example.dev/controls"}
//	prefixes:
//	  - {xmlNamespace: "urn:example:controls", prefix: c}
//	compatibility:
//	  - {oldNamespace: "urn:example:controls:v1", newNamespace: "urn:example:controls"}
//	types: [controls.Button, controls.Label]
//
// Type names are resolved through reg; reg may be nil when the manifest lists no types.
func ParseManifest(data []byte, reg apis.TypeRegistry) (*Static, error) {
	var (
		m   manifest
		err error
	)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		m, err = decodeJSON(trimmed)
	} else {
		m, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return m.build(reg)
}

// ReadManifest reads and parses the manifest file at path.
func ReadManifest(path string, reg apis.TypeRegistry) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xschema(assembly): read %s: %w", path, err)
	}
	a, err := ParseManifest(data, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func decodeYAML(data []byte) (manifest, error) {
	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return m, nil
}

func decodeJSON(data []byte) (manifest, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if v.Type() != fastjson.TypeObject {
		return manifest{}, fmt.Errorf("%w: top level is %s, want object", ErrInvalidManifest, v.Type())
	}
	if err := jsonKnownFields(v, "manifest", "name", "definitions", "prefixes", "compatibility", "types"); err != nil {
		return manifest{}, err
	}

	var m manifest
	if m.Name, err = jsonString(v, "name"); err != nil {
		return manifest{}, err
	}

	items, err := jsonArray(v, "definitions")
	if err != nil {
		return manifest{}, err
	}
	for i, item := range items {
		if err := jsonKnownFields(item, fmt.Sprintf("definitions[%d]", i), "xmlNamespace", "clrNamespace"); err != nil {
			return manifest{}, err
		}
		var d definitionDoc
		if d.XmlNamespace, err = jsonString(item, "xmlNamespace"); err != nil {
			return manifest{}, err
		}
		if d.ClrNamespace, err = jsonString(item, "clrNamespace"); err != nil {
			return manifest{}, err
		}
		m.Definitions = append(m.Definitions, d)
	}

	if items, err = jsonArray(v, "prefixes"); err != nil {
		return manifest{}, err
	}
	for i, item := range items {
		if err := jsonKnownFields(item, fmt.Sprintf("prefixes[%d]", i), "xmlNamespace", "prefix"); err != nil {
			return manifest{}, err
		}
		var d prefixDoc
		if d.XmlNamespace, err = jsonString(item, "xmlNamespace"); err != nil {
			return manifest{}, err
		}
		if d.Prefix, err = jsonString(item, "prefix"); err != nil {
			return manifest{}, err
		}
		m.Prefixes = append(m.Prefixes, d)
	}

	if items, err = jsonArray(v, "compatibility"); err != nil {
		return manifest{}, err
	}
	for i, item := range items {
		if err := jsonKnownFields(item, fmt.Sprintf("compatibility[%d]", i), "oldNamespace", "newNamespace"); err != nil {
			return manifest{}, err
		}
		var d compatDoc
		if d.OldNamespace, err = jsonString(item, "oldNamespace"); err != nil {
			return manifest{}, err
		}
		if d.NewNamespace, err = jsonString(item, "newNamespace"); err != nil {
			return manifest{}, err
		}
		m.Compatibility = append(m.Compatibility, d)
	}

	if items, err = jsonArray(v, "types"); err != nil {
		return manifest{}, err
	}
	for _, item := range items {
		b, err := item.StringBytes()
		if err != nil {
			return manifest{}, fmt.Errorf("%w: types: %v", ErrInvalidManifest, err)
		}
		m.Types = append(m.Types, string(b))
	}
	return m, nil
}

// jsonKnownFields fails unless v is an object whose keys are all in known.
func jsonKnownFields(v *fastjson.Value, where string, known ...string) error {
	o, err := v.Object()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidManifest, where, err)
	}
	var unknown []string
	o.Visit(func(key []byte, _ *fastjson.Value) {
		if k := string(key); !slices.Contains(known, k) {
			unknown = append(unknown, k)
		}
	})
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s: unknown field %q", ErrInvalidManifest, where, unknown[0])
	}
	return nil
}

// jsonString returns the string field key of v, or "" if absent.
func jsonString(v *fastjson.Value, key string) (string, error) {
	f := v.Get(key)
	if f == nil {
		return "", nil
	}
	b, err := f.StringBytes()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidManifest, key, err)
	}
	return string(b), nil
}

// jsonArray returns the array field key of v, or nil if absent.
func jsonArray(v *fastjson.Value, key string) ([]*fastjson.Value, error) {
	f := v.Get(key)
	if f == nil {
		return nil, nil
	}
	items, err := f.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, key, err)
	}
	return items, nil
}

// build validates m and turns it into a Static assembly.
func (m manifest) build(reg apis.TypeRegistry) (*Static, error) {
	if m.Name == "" {
		return nil, ErrMissingName
	}

	opts := make([]Option, 0, len(m.Definitions)+len(m.Prefixes)+len(m.Compatibility)+1)
	for i, d := range m.Definitions {
		if d.XmlNamespace == "" || d.ClrNamespace == "" {
			return nil, fmt.Errorf("%w: definitions[%d]", ErrIncompleteDeclaration, i)
		}
		opts = append(opts, WithDefinition(d.XmlNamespace, d.ClrNamespace))
	}
	for i, p := range m.Prefixes {
		if p.XmlNamespace == "" || p.Prefix == "" {
			return nil, fmt.Errorf("%w: prefixes[%d]", ErrIncompleteDeclaration, i)
		}
		opts = append(opts, WithPrefix(p.XmlNamespace, p.Prefix))
	}
	for i, c := range m.Compatibility {
		if c.OldNamespace == "" || c.NewNamespace == "" {
			return nil, fmt.Errorf("%w: compatibility[%d]", ErrIncompleteDeclaration, i)
		}
		opts = append(opts, WithCompatibility(c.OldNamespace, c.NewNamespace))
	}

	types := make([]reflect.Type, 0, len(m.Types))
	for _, name := range m.Types {
		if reg == nil {
			return nil, fmt.Errorf("%w: %q (no type registry)", ErrUnknownType, name)
		}
		t, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
		}
		types = append(types, t)
	}
	opts = append(opts, WithTypes(types...))

	return New(m.Name, opts...), nil
}
