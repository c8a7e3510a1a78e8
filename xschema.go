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

package xschema

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/xschema/apis"
	"dirpx.dev/xschema/index"
	"dirpx.dev/xschema/metrics"
	"dirpx.dev/xschema/scope"
	"dirpx.dev/xschema/typecache"
)

// DefaultPrefix is the preferred prefix reported for namespaces that declare none.
const DefaultPrefix = index.DefaultPrefix

var (
	// ErrInvalidArgument is the class of argument errors.
	ErrInvalidArgument = apis.ErrInvalidArgument
	// ErrEmptyNamespace is returned when a required namespace argument is empty.
	ErrEmptyNamespace = apis.ErrEmptyNamespace
	// ErrNotSupported is returned by name and directive resolution.
	ErrNotSupported = apis.ErrNotSupported
)

// Context is a schema context: the namespace and type registry a markup
// reader consults. It is safe for concurrent use.
//
// An open-world Context subscribes to its domain's load notifications and
// must be closed; otherwise the subscription, and the caches it feeds, stay
// reachable for the rest of the process.
type Context struct {
	id      uuid.UUID
	cfg     apis.Config
	refs    []apis.Assembly
	scope   *scope.Tracker
	index   *index.Index
	types   *typecache.Cache
	log     *slog.Logger
	metrics *metrics.Metrics

	closeOnce sync.Once
}

// Ensure Context implements apis.SchemaContext.
var _ apis.SchemaContext = (*Context)(nil)

// New constructs a Context. Without WithReferenceAssemblies it is
// open-world and starts observing its domain immediately. Reference
// assemblies must be comparable (see apis.Comparable); otherwise New
// fails with ErrInvalidArgument.
func New(opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for i, a := range o.refs {
		if a != nil && !apis.Comparable(a) {
			return nil, fmt.Errorf("%w: reference assembly %d (%T) is not comparable", ErrInvalidArgument, i, a)
		}
	}

	c := &Context{id: uuid.New(), cfg: o.cfg}
	c.log = o.logger.With("component", "xschema", "context_id", c.id.String())

	if o.registerer != nil {
		m, err := metrics.New(o.registerer, c.id.String())
		if err != nil {
			return nil, fmt.Errorf("xschema: %w", err)
		}
		c.metrics = m
	}

	if o.fixed {
		c.refs = slices.Clone(o.refs)
		if c.refs == nil {
			c.refs = []apis.Assembly{}
		}
		c.scope = scope.Fixed(c.refs, scope.WithLogger(c.log))
	} else {
		d := o.domain
		if d == nil {
			d = scope.CurrentDomain()
		}
		c.scope = scope.Dynamic(d, scope.WithLogger(c.log))
	}

	c.types = typecache.New(c, c.metrics.SetDescriptors)
	c.index = index.New(c.scope, c.types.Get,
		index.WithScanner(o.scanner),
		index.WithLogger(c.log),
		index.WithMetrics(c.metrics),
	)
	c.scope.Watch(c.index.OnAssemblyLoaded)

	c.log.Debug("schema context created",
		"fixed", c.scope.IsFixed(), "assemblies", len(c.scope.Assemblies()))
	return c, nil
}

// ID returns the context's unique identifier.
func (c *Context) ID() uuid.UUID { return c.id }

// Config returns the settings the context was created with.
func (c *Context) Config() apis.Config { return c.cfg }

// FullyQualifyAssemblyNamesInClrNamespaces reports the corresponding setting.
func (c *Context) FullyQualifyAssemblyNamesInClrNamespaces() bool {
	return c.cfg.FullyQualifyAssemblyNamesInClrNamespaces
}

// SupportMarkupExtensionsWithDuplicateArity reports the corresponding setting.
func (c *Context) SupportMarkupExtensionsWithDuplicateArity() bool {
	return c.cfg.SupportMarkupExtensionsWithDuplicateArity
}

// ReferenceAssemblies returns the closed-world assembly list, or nil for an
// open-world context.
func (c *Context) ReferenceAssemblies() []apis.Assembly {
	if c.refs == nil {
		return nil
	}
	return slices.Clone(c.refs)
}

// GetAllXamlNamespaces returns every markup namespace declared in scope,
// one entry per declaration.
func (c *Context) GetAllXamlNamespaces() []string {
	return c.index.Namespaces()
}

// GetAllXamlTypes returns the types mapped into xamlNamespace. Unknown
// namespaces yield an empty slice.
func (c *Context) GetAllXamlTypes(xamlNamespace string) ([]*apis.SchemaType, error) {
	return c.index.Types(xamlNamespace)
}

// GetPreferredPrefix returns the preferred prefix of xmlns, or DefaultPrefix.
func (c *Context) GetPreferredPrefix(xmlns string) (string, error) {
	return c.index.Prefix(xmlns)
}

// TryGetCompatibleXamlNamespace returns the namespace that supersedes xamlNamespace.
func (c *Context) TryGetCompatibleXamlNamespace(xamlNamespace string) (string, bool, error) {
	return c.index.Compatible(xamlNamespace)
}

// GetXamlType returns the descriptor for t; repeated calls return the same pointer.
func (c *Context) GetXamlType(t reflect.Type) *apis.SchemaType {
	return c.types.Get(t)
}

// GetXamlTypeByName resolves a type from its markup name. Not supported.
func (c *Context) GetXamlTypeByName(xamlNamespace, name string, typeArguments ...*apis.SchemaType) (*apis.SchemaType, error) {
	return nil, fmt.Errorf("%w: resolve type {%s}%s", ErrNotSupported, xamlNamespace, name)
}

// GetXamlDirective resolves a markup directive. Not supported.
func (c *Context) GetXamlDirective(xamlNamespace, name string) (*apis.Directive, error) {
	return nil, fmt.Errorf("%w: resolve directive {%s}%s", ErrNotSupported, xamlNamespace, name)
}

// ResolveAssembly returns the first assembly in scope named name.
func (c *Context) ResolveAssembly(name string) (apis.Assembly, bool) {
	for _, a := range c.scope.Assemblies() {
		if a != nil && a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Close stops observing assembly loads and unregisters metrics. Queries keep
// working afterwards against caches that no longer grow. Close is idempotent
// and always returns nil.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.scope.Close()
		c.metrics.Unregister()
		c.log.Debug("schema context closed")
	})
	return nil
}
