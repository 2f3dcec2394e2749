// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads optional per-vault run defaults. Command-line flags
// always win over file values.
package config

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/matterject/pkg/filedate"
	"gitlab.com/tozd/go/errors"
)

// DefaultExcludeDirs are the directory names pruned unless the run opts out
var DefaultExcludeDirs = []string{".obsidian", ".trash", ".git", "node_modules"}

// 📚 Config holds run defaults for a vault
type Config struct {
	Payload           string   `json:"payload,omitempty" yaml:"payload,omitempty" hcl:"payload,optional"`
	Glob              string   `json:"glob,omitempty" yaml:"glob,omitempty" hcl:"glob,optional"`
	ExcludeDirs       []string `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty" hcl:"exclude_dirs,optional"`
	NoDefaultExcludes bool     `json:"no_default_excludes,omitempty" yaml:"no_default_excludes,omitempty" hcl:"no_default_excludes,optional"`
	YearMonth         string   `json:"year_month,omitempty" yaml:"year_month,omitempty" hcl:"year_month,optional"`
	NoJSON            bool     `json:"no_json,omitempty" yaml:"no_json,omitempty" hcl:"no_json,optional"`
	NoSummary         bool     `json:"no_summary,omitempty" yaml:"no_summary,omitempty" hcl:"no_summary,optional"`
	Verbose           bool     `json:"verbose,omitempty" yaml:"verbose,omitempty" hcl:"verbose,optional"`
}

// Validate checks field formats that can be rejected before any file work
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Interface("config", cfg).Msg("validating configuration")

	if cfg.YearMonth != "" {
		if _, err := filedate.ParseYearMonth(cfg.YearMonth); err != nil {
			return errors.Errorf("year_month: %w", err)
		}
	}
	return nil
}
