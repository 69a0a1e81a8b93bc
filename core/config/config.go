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

// Package config loads the grid server settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/google/dbgrid/core/filters"
	"github.com/google/dbgrid/core/grid"
)

// Config is the file format.
type Config struct {
	Listen              string  `yaml:"listen"`
	Title               string  `yaml:"title"`
	MultiSelect         bool    `yaml:"multi_select"`
	GripWidth           float64 `yaml:"grip_width"`
	LiveUpdateThreshold float64 `yaml:"live_update_threshold"`
	ContentWidth        float64 `yaml:"content_width"`
	WeekStart           string  `yaml:"week_start"`
	Language            string  `yaml:"language"`
	LogLevel            string  `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Listen:              "localhost:8097",
		Title:               "Tasks",
		GripWidth:           grid.DefaultGripWidth,
		LiveUpdateThreshold: grid.DefaultLiveUpdateThreshold,
		ContentWidth:        grid.DefaultContentWidth,
		WeekStart:           "sunday",
		Language:            "und",
		LogLevel:            "info",
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.GripWidth <= 0 {
		errs = append(errs, fmt.Errorf("grip_width must be positive, got %g", c.GripWidth))
	}
	if c.LiveUpdateThreshold <= 0 {
		errs = append(errs, fmt.Errorf("live_update_threshold must be positive, got %g", c.LiveUpdateThreshold))
	}
	if c.ContentWidth <= 0 {
		errs = append(errs, fmt.Errorf("content_width must be positive, got %g", c.ContentWidth))
	}
	if _, err := c.Weekday(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language: %w", err))
	}
	return errors.Join(errs...)
}

// Weekday parses week_start.
func (c Config) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.WeekStart, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("week_start: unknown weekday %q", c.WeekStart)
}

// Level parses log_level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// GridOptions converts the settings for a coordinator logging to log.
func (c Config) GridOptions(log *slog.Logger) grid.Options {
	tag, err := language.Parse(c.Language)
	if err != nil {
		tag = language.Und
	}
	return grid.Options{
		AllowsMultipleSelection: c.MultiSelect,
		GripWidth:               c.GripWidth,
		LiveUpdateThreshold:     c.LiveUpdateThreshold,
		ContentWidth:            c.ContentWidth,
		Language:                tag,
		Logger:                  log,
	}
}

// Clock is the wall clock with the configured week start.
func (c Config) Clock() filters.Clock {
	clock := filters.SystemClock()
	clock.WeekStart, _ = c.Weekday()
	return clock
}
