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

// Package discover walks a target for candidate documents, pruning excluded
// directories and matching files against a glob pattern.
package discover

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// recursiveMarkdown is the default pattern, special-cased so it matches .md
// files at any depth including the target root
const recursiveMarkdown = "**/*.md"

// 🔧 Options controls traversal behavior
type Options struct {
	// CaseInsensitiveExcludes compares excluded directory names ignoring
	// case. Resolved once per run, not per comparison, so the policy is
	// testable on any platform.
	CaseInsensitiveExcludes bool
}

// DefaultOptions resolves the platform's exclusion comparison mode: only
// Windows gets case-insensitive directory name matching.
func DefaultOptions() Options {
	return Options{CaseInsensitiveExcludes: runtime.GOOS == "windows"}
}

// 📊 Result holds one traversal's output, both lists ordered
// lexicographically by full path string
type Result struct {
	Files      []string // candidate files, sorted
	PrunedDirs []string // excluded directories that were not descended into, sorted
}

// 🔍 Discover enumerates candidate files under target. A file target is
// returned as the sole result with no pruning. A directory target is walked
// top-down; directories whose name matches an exclusion are recorded and
// skipped entirely, so their contents never appear in the file list.
func Discover(ctx context.Context, target string, pattern string, excludeDirs []string, opts Options) (Result, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(target)
	if err != nil {
		return Result{}, errors.Errorf("target must be a file or directory: %w", err)
	}

	if !info.IsDir() {
		return Result{Files: []string{target}}, nil
	}

	excluded := map[string]bool{}
	for _, name := range excludeDirs {
		if opts.CaseInsensitiveExcludes {
			name = strings.ToLower(name)
		}
		excluded[name] = true
	}

	matcher := newPatternMatcher(pattern)

	var result Result
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree must not abort the run. The rest of the
			// walk still produces every candidate we can reach.
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}

		if d.IsDir() {
			if path == target {
				return nil
			}
			name := d.Name()
			if opts.CaseInsensitiveExcludes {
				name = strings.ToLower(name)
			}
			if excluded[name] {
				logger.Debug().Str("dir", path).Msg("pruning excluded directory")
				result.PrunedDirs = append(result.PrunedDirs, path)
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file. Symlinked
			// directories are still never descended into.
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			resolved, statErr := os.Stat(path)
			if statErr != nil || !resolved.Mode().IsRegular() {
				return nil
			}
		}

		rel, err := filepath.Rel(target, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}

		if matcher.matches(filepath.ToSlash(rel)) {
			result.Files = append(result.Files, path)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	sort.Strings(result.Files)
	sort.Strings(result.PrunedDirs)
	return result, nil
}

// patternMatcher captures the three pattern modes: the recursive markdown
// special case, basename-only patterns (root-level files only), and full
// path globs with a leading **/ strip fallback
type patternMatcher struct {
	recursiveMD  bool
	basenameOnly bool
	patterns     []string
}

func newPatternMatcher(pattern string) patternMatcher {
	pattern = strings.ReplaceAll(pattern, "\\", "/")

	if pattern == recursiveMarkdown {
		return patternMatcher{recursiveMD: true}
	}
	if !strings.Contains(pattern, "/") {
		return patternMatcher{basenameOnly: true, patterns: []string{pattern}}
	}

	patterns := []string{pattern}
	if stripped, ok := strings.CutPrefix(pattern, "**/"); ok {
		// An anchored **/ pattern must also match root-level files.
		patterns = append(patterns, stripped)
	}
	return patternMatcher{patterns: patterns}
}

// matches tests a slash-separated path relative to the target
func (m patternMatcher) matches(rel string) bool {
	if m.recursiveMD {
		return strings.HasSuffix(rel, ".md")
	}

	if m.basenameOnly {
		if strings.Contains(rel, "/") {
			return false
		}
		ok, err := doublestar.Match(m.patterns[0], rel)
		return err == nil && ok
	}

	for _, pattern := range m.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
