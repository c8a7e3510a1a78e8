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

// Package server exposes a schema context over HTTP for inspection.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/negroni"

	"dirpx.dev/xschema/apis"
)

// Option configures the handler built by New.
type Option func(*server)

// WithLogger sets the access logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithGatherer mounts a Prometheus scrape endpoint at /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *server) {
		s.gatherer = g
	}
}

type server struct {
	ctx      apis.SchemaContext
	router   *mux.Router
	log      *slog.Logger
	gatherer prometheus.Gatherer
}

// TypeInfo is the JSON form of a schema type.
type TypeInfo struct {
	Name         string `json:"name"`
	ClrNamespace string `json:"clrNamespace"`
	GoType       string `json:"goType"`
}

// New returns a read-only handler over ctx. Every request is access-logged,
// including ones that match no route.
func New(ctx apis.SchemaContext, opts ...Option) http.Handler {
	s := &server{
		ctx:    ctx,
		router: mux.NewRouter().StrictSlash(true),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s.logMiddleware(s.router)
}

func (s *server) setupRoutes() {
	s.router.HandleFunc("/namespaces", s.handleNamespaces()).Methods(http.MethodGet)
	s.router.HandleFunc("/types", s.handleTypes()).Methods(http.MethodGet)
	s.router.HandleFunc("/prefix", s.handlePrefix()).Methods(http.MethodGet)
	s.router.HandleFunc("/compatible", s.handleCompatible()).Methods(http.MethodGet)
	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})).Methods(http.MethodGet)
	}
}

func (s *server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"proto", r.Proto,
			"status", ww.Status(),
			"bytes", ww.Size())
	})
}

func (s *server) handleNamespaces() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"namespaces": s.ctx.GetAllXamlNamespaces(),
		})
	}
}

func (s *server) handleTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ns := r.URL.Query().Get("ns")
		types, err := s.ctx.GetAllXamlTypes(ns)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]TypeInfo, 0, len(types))
		for _, x := range types {
			out = append(out, TypeInfo{
				Name:         x.Name(),
				ClrNamespace: x.ClrNamespace(),
				GoType:       x.UnderlyingType().String(),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"namespace": ns,
			"types":     out,
		})
	}
}

func (s *server) handlePrefix() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ns := r.URL.Query().Get("ns")
		prefix, err := s.ctx.GetPreferredPrefix(ns)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"namespace": ns,
			"prefix":    prefix,
		})
	}
}

func (s *server) handleCompatible() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ns := r.URL.Query().Get("ns")
		compat, ok, err := s.ctx.TryGetCompatibleXamlNamespace(ns)
		if err != nil {
			writeError(w, err)
			return
		}
		body := map[string]any{
			"namespace": ns,
			"found":     ok,
		}
		if ok {
			body["compatible"] = compat
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apis.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, apis.ErrNotSupported):
		status = http.StatusNotImplemented
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
