/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/google/dbgrid/core/config"
	"github.com/google/dbgrid/core/grid"
	"github.com/google/dbgrid/core/query"
	"github.com/google/dbgrid/core/rendering"
	"github.com/google/dbgrid/core/server"
	"github.com/google/dbgrid/demo"
)

// options defines command line options.
type options struct {
	Config  string `short:"c" long:"config" description:"YAML config file"`
	Listen  string `short:"l" long:"listen" description:"address to serve on, overrides the config"`
	ASCII   bool   `long:"ascii" description:"print the demo grid as text and exit"`
	Query   string `short:"q" long:"query" description:"view state for --ascii, as a URL query (sort=points:desc&filter:status=includes:todo)"`
	Verbose bool   `short:"v" long:"verbose" description:"debug logging"`
}

func main() {
	var opt options
	parser := flags.NewParser(&opt, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := run(opt); err != nil {
		slog.Error("dbgrid failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func run(opt options) error {
	cfg := config.Default()
	if opt.Config != "" {
		var err error
		if cfg, err = config.Load(opt.Config); err != nil {
			return err
		}
	}
	if opt.Listen != "" {
		cfg.Listen = opt.Listen
	}
	level, _ := cfg.Level()
	if opt.Verbose {
		level = slog.LevelDebug
	}
	log := newLogger(level)
	slog.SetDefault(log)

	clock := cfg.Clock()
	db := demo.NewTaskDatabase(clock.Now())
	gridOpts := cfg.GridOptions(log)
	coord := grid.New(db, gridOpts)

	if opt.ASCII {
		return printASCII(coord, opt.Query, cfg)
	}

	srv, err := server.NewServer(coord, server.Options{Title: cfg.Title, Clock: clock, Logger: log})
	if err != nil {
		return err
	}
	log.Info("serving", "listen", cfg.Listen, "rows", db.RowCount(), "columns", db.ColumnCount())
	if err := http.ListenAndServe(cfg.Listen, srv.Handler()); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printASCII(coord *grid.Coordinator, rawQuery string, cfg config.Config) error {
	q := query.NewQuery(&url.URL{Path: "/", RawQuery: rawQuery})
	fs, sort := q.Resolve(coord.Database(), cfg.Clock())
	for _, err := range q.Errors {
		slog.Warn("ignoring query parameter", "error", err)
	}
	coord.SetFilterState(fs)
	coord.SetSort(sort)
	coord.SetSelection(q.Selected)

	// The default measurer counts 7 units per terminal cell.
	surface := rendering.NewAsciiSurface(coord, 7)
	_, err := fmt.Println(surface.Render())
	return err
}
