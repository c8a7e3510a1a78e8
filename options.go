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
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/xschema/apis"
	"dirpx.dev/xschema/config"
)

// Option configures a Context during construction.
type Option func(*options)

// options collects construction settings before a Context is assembled.
type options struct {
	cfg        apis.Config
	refs       []apis.Assembly
	fixed      bool
	domain     apis.Domain
	logger     *slog.Logger
	registerer prometheus.Registerer
	scanner    apis.Scanner
}

func defaultOptions() options {
	return options{
		cfg:    config.DefaultConfig(),
		logger: slog.Default(),
	}
}

// WithReferenceAssemblies makes the context closed-world: exactly these
// assemblies are in scope, in this order, duplicates included. Calling it
// with no assemblies yields an empty closed world. Closed-world contexts
// never observe assembly loads.
func WithReferenceAssemblies(assemblies ...apis.Assembly) Option {
	return func(o *options) {
		o.refs = append(o.refs, assemblies...)
		o.fixed = true
	}
}

// WithConfig sets the settings stored by the context.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithDomain sets the domain an open-world context tracks.
// The default is scope.CurrentDomain(). Ignored in closed world.
func WithDomain(d apis.Domain) Option {
	return func(o *options) {
		o.domain = d
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics registers the context's collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithScanner replaces the metadata scanner.
func WithScanner(s apis.Scanner) Option {
	return func(o *options) {
		o.scanner = s
	}
}
