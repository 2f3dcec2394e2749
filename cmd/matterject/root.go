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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/matterject/pkg/config"
	"github.com/walteh/matterject/pkg/discover"
	"github.com/walteh/matterject/pkg/filedate"
	"github.com/walteh/matterject/pkg/frontmatter"
	"github.com/walteh/matterject/pkg/operation"
	"github.com/walteh/matterject/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// Exit codes. The tri-state between "changed", "nothing to do" and
// "document errors" is part of the tool's contract with calling scripts;
// 1 stays reserved for usage and run-aborting failures.
const (
	exitChanged   = 0
	exitUsage     = 1
	exitErrors    = 2
	exitNoChanges = 3
)

// 🔧 rootFlags is the full flag surface of the root command
type rootFlags struct {
	configFile        string
	target            string
	payloadFile       string
	yearMonth         string
	apply             bool
	glob              string
	excludeDirs       []string
	noDefaultExcludes bool
	noJSON            bool
	noSummary         bool
	verbose           bool
	debug             bool
}

// Main wires the root command and returns the process exit code. Split from
// main() so tests can drive the CLI end to end.
func Main(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := &rootFlags{}
	code := exitNoChanges

	cmd := &cobra.Command{
		Use:           "matterject",
		Short:         "Bulk-replace markdown front matter, preserving document identifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			code, err = run(cmd.Context(), cmd, flags, stdout, stderr)
			return err
		},
	}
	addRootFlags(cmd, flags)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "matterject: error: %v\n", err)
		return exitUsage
	}
	return code
}

// addRootFlags declares the flag surface
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "config file path (default: probe .matterject.{yaml,yml,json,hcl})")
	cmd.Flags().StringVar(&f.target, "target", "", "target markdown file or directory")
	cmd.Flags().StringVar(&f.payloadFile, "payload", "", "YAML payload file path")
	cmd.Flags().StringVar(&f.yearMonth, "year-month", "", "fallback year-month (YYYY-MM) when not found in path")
	cmd.Flags().BoolVar(&f.apply, "apply", false, "apply in-place changes (default: dry-run)")
	cmd.Flags().StringVar(&f.glob, "glob", "**/*.md", "glob pattern when --target is a directory")
	cmd.Flags().StringArrayVar(&f.excludeDirs, "exclude-dir", nil, "directory name to exclude; repeatable")
	cmd.Flags().BoolVar(&f.noDefaultExcludes, "no-default-excludes", false, "do not apply default excluded directories (.obsidian, .trash, .git, node_modules)")
	cmd.Flags().BoolVar(&f.noJSON, "no-json", false, "disable JSONL per-file output")
	cmd.Flags().BoolVar(&f.noSummary, "no-summary", false, "disable human summary output")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "include per-file details in summary")
	cmd.Flags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("target")
}

// run executes one batch pass and returns the exit code. The error return is
// exclusively for run-aborting conditions: per-document failures are folded
// into the exit code instead.
func run(ctx context.Context, cmd *cobra.Command, f *rootFlags, stdout io.Writer, stderr io.Writer) (int, error) {
	level := zerolog.InfoLevel
	if f.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
	})).Level(level).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	cfg, err := loadConfig(ctx, f)
	if err != nil {
		return exitUsage, err
	}
	mergeConfig(cmd, f, cfg)

	if f.payloadFile == "" {
		return exitUsage, errors.New("--payload is required (flag or config file)")
	}

	payloadRaw, err := os.ReadFile(f.payloadFile)
	if err != nil {
		return exitUsage, errors.Errorf("failed to read payload: %w", err)
	}
	if !utf8.Valid(payloadRaw) {
		return exitUsage, errors.New("failed to read payload: not valid UTF-8")
	}

	payload, err := frontmatter.NormalizePayload(string(payloadRaw))
	if err != nil {
		return exitUsage, errors.Errorf("invalid payload: %w", err)
	}

	excludes := append([]string{}, f.excludeDirs...)
	if !f.noDefaultExcludes {
		excludes = append(excludes, config.DefaultExcludeDirs...)
	}

	discovered, err := discover.Discover(ctx, f.target, f.glob, excludes, discover.DefaultOptions())
	if err != nil {
		return exitUsage, err
	}
	logger.Debug().
		Int("files", len(discovered.Files)).
		Int("pruned_dirs", len(discovered.PrunedDirs)).
		Msg("discovery complete")

	fallback, err := resolveFallbackYearMonth(f, payload, discovered.Files)
	if err != nil {
		return exitUsage, err
	}

	var jsonl *report.JSONLWriter
	if !f.noJSON {
		jsonl = report.NewJSONLWriter(stdout)
	}

	processor := operation.NewProcessor(operation.Options{
		Payload:           payload,
		Apply:             f.apply,
		PreserveUUID:      true,
		FallbackYearMonth: fallback,
	})

	files, pruned, err := operation.NewRunner(processor, jsonl).Run(ctx, discovered)
	if err != nil {
		return exitUsage, err
	}

	if !f.noSummary {
		report.NewSummaryWriter(stderr, f.apply, f.verbose).Write(files, pruned)
	}

	anyChanged := false
	for _, out := range files {
		switch out.Status {
		case report.StatusError:
			return exitErrors, nil
		case report.StatusChanged:
			anyChanged = true
		}
	}
	if anyChanged {
		return exitChanged, nil
	}
	return exitNoChanges, nil
}

// loadConfig loads --config when given, otherwise probes the working
// directory for a default file
func loadConfig(ctx context.Context, f *rootFlags) (*config.Config, error) {
	if f.configFile != "" {
		cfg, err := config.Load(ctx, f.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadDefault(ctx, ".")
}

// mergeConfig applies config-file defaults for flags the user did not set.
// Exclusions accumulate instead of overriding.
func mergeConfig(cmd *cobra.Command, f *rootFlags, cfg *config.Config) {
	if !cmd.Flags().Changed("payload") && cfg.Payload != "" {
		f.payloadFile = cfg.Payload
	}
	if !cmd.Flags().Changed("glob") && cfg.Glob != "" {
		f.glob = cfg.Glob
	}
	if !cmd.Flags().Changed("year-month") && cfg.YearMonth != "" {
		f.yearMonth = cfg.YearMonth
	}
	if cfg.NoDefaultExcludes {
		f.noDefaultExcludes = true
	}
	if cfg.NoJSON {
		f.noJSON = true
	}
	if cfg.NoSummary {
		f.noSummary = true
	}
	if cfg.Verbose {
		f.verbose = true
	}
	f.excludeDirs = append(f.excludeDirs, cfg.ExcludeDirs...)
}

// resolveFallbackYearMonth validates --year-month and pre-flights the run:
// when the payload carries a file date token and no fallback is available,
// at least one discovered path must contain a usable year-month, otherwise
// every file would fail the same way and the run aborts up front.
func resolveFallbackYearMonth(f *rootFlags, payload string, files []string) (*filedate.YearMonth, error) {
	if !filedate.NeedsDate(payload) {
		return nil, nil
	}

	if f.yearMonth != "" {
		ym, err := filedate.ParseYearMonth(f.yearMonth)
		if err != nil {
			return nil, errors.Errorf("invalid --year-month: %w", err)
		}
		return &ym, nil
	}

	for _, path := range files {
		if _, ok := filedate.FromPath(path); ok {
			return nil, nil
		}
	}
	return nil, errors.New("file_date token present but year-month not found in path; provide --year-month YYYY-MM")
}
