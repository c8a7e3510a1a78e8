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

package config_test

import (
	"testing"

	"dirpx.dev/xschema/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.FullyQualifyAssemblyNamesInClrNamespaces != config.DefaultFullyQualifyAssemblyNames {
		t.Fatalf("FullyQualifyAssemblyNamesInClrNamespaces = %v, want %v",
			got.FullyQualifyAssemblyNamesInClrNamespaces, config.DefaultFullyQualifyAssemblyNames)
	}
	if got.SupportMarkupExtensionsWithDuplicateArity != config.DefaultDuplicateArity {
		t.Fatalf("SupportMarkupExtensionsWithDuplicateArity = %v, want %v",
			got.SupportMarkupExtensionsWithDuplicateArity, config.DefaultDuplicateArity)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithFullyQualifyAssemblyNames(t *testing.T) {
	c := config.NewConfig(config.WithFullyQualifyAssemblyNames(true))
	if !c.FullyQualifyAssemblyNamesInClrNamespaces {
		t.Fatalf("FullyQualifyAssemblyNamesInClrNamespaces = false, want true")
	}
	if c.SupportMarkupExtensionsWithDuplicateArity {
		t.Fatalf("SupportMarkupExtensionsWithDuplicateArity changed by unrelated option")
	}
}

func TestWithDuplicateArity(t *testing.T) {
	c := config.NewConfig(config.WithDuplicateArity(true))
	if !c.SupportMarkupExtensionsWithDuplicateArity {
		t.Fatalf("SupportMarkupExtensionsWithDuplicateArity = false, want true")
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithFullyQualifyAssemblyNames(true),
		config.WithFullyQualifyAssemblyNames(false),
		config.WithDuplicateArity(false),
		config.WithDuplicateArity(true),
	)

	if c.FullyQualifyAssemblyNamesInClrNamespaces {
		t.Errorf("FullyQualifyAssemblyNamesInClrNamespaces = true, want false (last option wins)")
	}
	if !c.SupportMarkupExtensionsWithDuplicateArity {
		t.Errorf("SupportMarkupExtensionsWithDuplicateArity = false, want true (last option wins)")
	}
}
