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

// Command xschema loads assembly manifests into a closed-world schema
// context and prints or serves its namespaces.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/xschema"
	"dirpx.dev/xschema/apis"
	"dirpx.dev/xschema/assembly"
	"dirpx.dev/xschema/config"
	"dirpx.dev/xschema/internal/sample/controls"
	"dirpx.dev/xschema/internal/sample/legacy"
	"dirpx.dev/xschema/internal/sample/shapes"
	"dirpx.dev/xschema/registry"
	"dirpx.dev/xschema/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "xschema:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := setupLogger(stderr, cli.LogLevel, cli.LogFormat)

	cfg := config.DefaultConfig()
	if cli.ConfigPath != "" {
		if cfg, err = config.Load(cli.ConfigPath); err != nil {
			return err
		}
	}

	reg := registry.New()
	if err := registerSampleTypes(reg); err != nil {
		return err
	}

	assemblies := make([]apis.Assembly, 0, len(cli.Manifests))
	for _, path := range cli.Manifests {
		a, err := assembly.ReadManifest(path, reg)
		if err != nil {
			return err
		}
		logger.Debug("manifest loaded", "path", path, "assembly", a.Name())
		assemblies = append(assemblies, a)
	}

	promReg := prometheus.NewRegistry()
	ctx, err := xschema.New(
		xschema.WithReferenceAssemblies(assemblies...),
		xschema.WithConfig(cfg),
		xschema.WithLogger(logger),
		xschema.WithMetrics(promReg),
	)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if cli.Listen == "" {
		return printSchema(stdout, ctx)
	}
	return serve(cli.Listen, server.New(ctx, server.WithLogger(logger), server.WithGatherer(promReg)), logger)
}

// sampleTypes are the only types manifests can name: this binary carries
// no other Go types to map.
var sampleTypes = []reflect.Type{
	reflect.TypeFor[controls.Button](),
	reflect.TypeFor[controls.Label](),
	reflect.TypeFor[controls.Panel](),
	reflect.TypeFor[shapes.Circle](),
	reflect.TypeFor[shapes.Rect](),
	reflect.TypeFor[shapes.Box[any]](),
	reflect.TypeFor[legacy.OldButton](),
}

func registerSampleTypes(reg apis.TypeRegistry) error {
	for _, t := range sampleTypes {
		if _, err := reg.RegisterType(t); err != nil {
			return err
		}
	}
	return nil
}

func printSchema(w io.Writer, ctx *xschema.Context) error {
	seen := make(map[string]bool)
	for _, ns := range ctx.GetAllXamlNamespaces() {
		if seen[ns] {
			continue
		}
		seen[ns] = true

		prefix, err := ctx.GetPreferredPrefix(ns)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (%s)\n", ns, prefix)

		if compat, ok, err := ctx.TryGetCompatibleXamlNamespace(ns); err != nil {
			return err
		} else if ok {
			fmt.Fprintf(w, "  -> %s\n", compat)
		}

		types, err := ctx.GetAllXamlTypes(ns)
		if err != nil {
			return err
		}
		for _, t := range types {
			fmt.Fprintf(w, "  %s\n", t)
		}
	}
	return nil
}

func serve(addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-sigCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
