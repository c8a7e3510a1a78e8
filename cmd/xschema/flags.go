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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"dirpx.dev/xschema/registry"
)

type cliConfig struct {
	ConfigPath string
	Listen     string
	LogLevel   string
	LogFormat  string
	Manifests  []string
}

func parseFlags(args []string, output io.Writer) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := flag.NewFlagSet("xschema", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.ConfigPath, "config", os.Getenv("XSCHEMA_CONFIG"),
		"Path to a YAML settings file (env: XSCHEMA_CONFIG)")
	fs.StringVar(&cfg.Listen, "listen", "",
		"Serve the schema over HTTP on this address instead of printing it")
	fs.StringVar(&cfg.LogLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", "text",
		"Log format: json, text")

	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage: xschema [flags] manifest...\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(w, "\nManifest types may only name the sample types built into this binary:\n")
		for _, t := range sampleTypes {
			fmt.Fprintf(w, "  %s\n", registry.TypeName(t))
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Manifests = fs.Args()
	return cfg, nil
}
